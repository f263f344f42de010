package registry

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"wqa/internal/config"
	"wqa/internal/domain"
	"wqa/internal/driver"
	"wqa/internal/weatherapi"
)

// Env is everything a case execution may touch: the run configuration, the
// worker's API client and browser engine, and the step trace. One Env is
// built per case attempt; nothing in it is shared between cases.
type Env struct {
	Config *config.Config
	API    *weatherapi.Client
	Log    *zap.Logger

	browser driver.Browser

	mu      sync.Mutex
	session driver.Session
	trace   []string
}

// NewEnv builds a case environment. The browser may be nil for API-only runs.
func NewEnv(cfg *config.Config, api *weatherapi.Client, browser driver.Browser, log *zap.Logger) *Env {
	return &Env{Config: cfg, API: api, Log: log, browser: browser}
}

// Session returns the case's browser session, opening one on first use.
// Launch failures are infrastructure errors.
func (e *Env) Session(ctx context.Context) (driver.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		return e.session, nil
	}
	if e.browser == nil {
		return nil, domain.Infraf("open session", fmt.Errorf("no browser engine configured"))
	}
	s, err := e.browser.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	e.session = s
	return s, nil
}

// ActiveSession returns the open session, or nil when the case never
// requested one. Used for artifact capture after a failure.
func (e *Env) ActiveSession() driver.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// CloseSession releases the case's browser session, if any.
func (e *Env) CloseSession() {
	e.mu.Lock()
	s := e.session
	e.session = nil
	e.mu.Unlock()
	if s != nil {
		_ = s.Close()
	}
}

// Trace appends a step to the case's trace. The trace is attached to the
// report when the case fails.
func (e *Env) Trace(format string, args ...any) {
	e.mu.Lock()
	e.trace = append(e.trace, fmt.Sprintf(format, args...))
	e.mu.Unlock()
}

// TraceLog returns the recorded steps.
func (e *Env) TraceLog() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.trace))
	copy(out, e.trace)
	return out
}
