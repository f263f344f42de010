package execution

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wqa/internal/domain"
)

// ArtifactStore writes failure diagnostics under one directory per case.
// Only the final attempt's artifacts are retained to bound storage growth.
type ArtifactStore struct {
	root string
}

// NewArtifactStore creates a store rooted at dir.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{root: dir}
}

func (a *ArtifactStore) caseDir(caseID string) string {
	return filepath.Join(a.root, sanitizeID(caseID))
}

// Reset drops any artifacts from a previous attempt of the case.
func (a *ArtifactStore) Reset(caseID string) {
	_ = os.RemoveAll(a.caseDir(caseID))
}

// SaveScreenshot writes a PNG screenshot for the case.
func (a *ArtifactStore) SaveScreenshot(caseID string, png []byte) (domain.Attachment, error) {
	path, err := a.write(caseID, "screenshot.png", png)
	if err != nil {
		return domain.Attachment{}, err
	}
	return domain.Attachment{Name: "screenshot", Path: path}, nil
}

// SaveTrace writes the case's step trace.
func (a *ArtifactStore) SaveTrace(caseID string, steps []string) (domain.Attachment, error) {
	path, err := a.write(caseID, "trace.log", []byte(strings.Join(steps, "\n")+"\n"))
	if err != nil {
		return domain.Attachment{}, err
	}
	return domain.Attachment{Name: "trace", Path: path}, nil
}

func (a *ArtifactStore) write(caseID, name string, data []byte) (string, error) {
	dir := a.caseDir(caseID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}

func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, id)
}
