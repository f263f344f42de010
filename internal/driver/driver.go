// Package driver abstracts the browser engine behind the orchestrator.
// Each worker owns one Browser for the duration of the run and opens a
// fresh Session per case so no state leaks between cases.
package driver

import "context"

// Browser launches isolated sessions against one engine instance.
type Browser interface {
	// NewSession opens a fresh, isolated browser session. Launch failures
	// are infrastructure errors.
	NewSession(ctx context.Context) (Session, error)
	// Close releases the engine instance and every session it owns.
	Close() error
}

// Session drives a single browser context. Every method honors the passed
// context; on cancellation or deadline the underlying session is forcibly
// released.
type Session interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, value string) error
	SendKeys(ctx context.Context, selector, keys string) error
	Click(ctx context.Context, selector string) error
	Text(ctx context.Context, selector string) (string, error)
	Title(ctx context.Context) (string, error)
	Location(ctx context.Context) (string, error)
	Evaluate(ctx context.Context, expression string, out any) error
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}
