package storage

import (
	"os"
	"strings"
	"testing"
	"time"

	"wqa/internal/config"
	"wqa/internal/domain"
)

func testStorage(t *testing.T) *JSONStorage {
	t.Helper()
	cfg := config.New()
	cfg.ReportDir = t.TempDir()
	cfg.ReportFile = "run-results.json"
	return NewJSONStorage(cfg)
}

func sampleOutput() *domain.RunOutput {
	results := []domain.Result{
		{CaseID: "api/current-weather-valid-cities", Engine: "chromium", Outcome: domain.OutcomePassed, Attempts: 1},
		{
			CaseID:   "ui/city-search",
			Engine:   "chromium",
			Outcome:  domain.OutcomeFailed,
			Kind:     domain.KindAssertion,
			Attempts: 3,
			Message:  "city name not shown",
			Attachments: []domain.Attachment{
				{Name: "screenshot", Path: "/tmp/artifacts/ui-city-search/screenshot.png"},
			},
		},
	}
	return domain.NewRunOutput(results, 12*time.Second, "production", "chromium", 4, 2)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	st := testStorage(t)
	if err := st.Save(sampleOutput()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Meta.TotalCases != 2 || loaded.Meta.Passed != 1 || loaded.Meta.Failed != 1 {
		t.Errorf("meta = %+v", loaded.Meta)
	}
	if len(loaded.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(loaded.Results))
	}

	failed := loaded.Results[1]
	if failed.Kind != domain.KindAssertion || failed.Attempts != 3 {
		t.Errorf("failed result = %+v", failed)
	}
	if len(failed.Attachments) != 1 || failed.Attachments[0].Name != "screenshot" {
		t.Errorf("attachments = %+v", failed.Attachments)
	}
}

func TestSaveCreatesReportDir(t *testing.T) {
	cfg := config.New()
	cfg.ReportDir = t.TempDir() + "/nested/reports"
	cfg.ReportFile = "run-results.json"
	st := NewJSONStorage(cfg)

	if err := st.Save(sampleOutput()); err != nil {
		t.Fatalf("Save into missing dir: %v", err)
	}
	if _, err := os.Stat(cfg.OutputPath()); err != nil {
		t.Errorf("report file missing: %v", err)
	}
}

func TestResolvedFlagSurvivesSave(t *testing.T) {
	st := testStorage(t)
	out := sampleOutput()
	out.Results[1].Resolved = true
	if err := st.Save(out); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Results[1].Resolved {
		t.Error("Resolved flag lost after save/load")
	}
}

func TestLoadMissingFile(t *testing.T) {
	st := testStorage(t)
	if _, err := st.Load(); err == nil {
		t.Error("Load succeeded with no report file")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	st := testStorage(t)
	if err := os.WriteFile(st.cfg.OutputPath(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := st.Load()
	if err == nil || !strings.Contains(err.Error(), "parse report") {
		t.Errorf("err = %v, want parse error", err)
	}
}
