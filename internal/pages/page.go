// Package pages holds the page objects for the weather site UI.
package pages

import (
	"context"
	"fmt"
	"time"

	"wqa/internal/driver"
)

// page provides the shared selector helpers. Public sites move their markup
// around, so lookups probe a chain of candidate selectors with a short
// per-selector timeout instead of trusting a single one.
type page struct {
	s    driver.Session
	step time.Duration
}

// firstVisible returns the first selector in the chain that becomes visible.
func (p page) firstVisible(ctx context.Context, selectors []string) (string, error) {
	for _, sel := range selectors {
		stepCtx, cancel := context.WithTimeout(ctx, p.step)
		err := p.s.WaitVisible(stepCtx, sel)
		cancel()
		if err == nil {
			return sel, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("none of %d candidate selectors became visible", len(selectors))
}

// firstText returns the text of the first visible selector in the chain.
func (p page) firstText(ctx context.Context, selectors []string) (string, error) {
	sel, err := p.firstVisible(ctx, selectors)
	if err != nil {
		return "", err
	}
	return p.s.Text(ctx, sel)
}
