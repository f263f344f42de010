package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wqa/internal/config"
	"wqa/internal/domain"
	"wqa/internal/registry"
)

// Runner executes a single case with the retry and timeout policies applied
// uniformly around its run function.
type Runner struct {
	cfg       *config.Config
	retry     RetryPolicy
	timeout   TimeoutPolicy
	artifacts *ArtifactStore
	log       *zap.Logger
}

// NewRunner creates a Runner from the run configuration.
func NewRunner(cfg *config.Config, artifacts *ArtifactStore, log *zap.Logger) *Runner {
	return &Runner{
		cfg:       cfg,
		retry:     RetryPolicy{Retries: cfg.Retries},
		timeout:   TimeoutPolicy{CaseTimeout: cfg.CaseTimeout},
		artifacts: artifacts,
		log:       log,
	}
}

// Run executes the case, re-attempting assertion and timeout failures up to
// the retry budget. The returned Result carries the last attempt's outcome
// and artifacts.
func (r *Runner) Run(ctx context.Context, c registry.Case, newEnv func() *registry.Env) domain.Result {
	maxAttempts := r.retry.Attempts()
	var res domain.Result

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res = r.attempt(ctx, c, newEnv)
		res.Attempts = attempt

		if !retryable(res) || ctx.Err() != nil {
			break
		}
		if attempt < maxAttempts {
			r.log.Warn("case failed, retrying",
				zap.String("case", c.ID),
				zap.Int("attempt", attempt),
				zap.String("kind", string(res.Kind)),
				zap.String("message", res.Message))
		}
	}
	return res
}

func retryable(res domain.Result) bool {
	return res.Outcome == domain.OutcomeFailed &&
		(res.Kind == domain.KindAssertion || res.Kind == domain.KindTimeout)
}

func (r *Runner) attempt(ctx context.Context, c registry.Case, newEnv func() *registry.Env) domain.Result {
	env := newEnv()
	defer env.CloseSession()

	// Previous attempt's artifacts are dropped so only the final set is kept.
	r.artifacts.Reset(c.ID)

	attemptCtx, cancel := context.WithTimeout(ctx, r.timeout.For(c))
	defer cancel()

	start := time.Now()
	err := runCase(attemptCtx, c, env)
	duration := time.Since(start)

	res := domain.Result{
		CaseID:   c.ID,
		Engine:   r.cfg.Engine(),
		Tags:     c.Tags.Strings(),
		Duration: duration,
	}

	switch {
	case err == nil:
		res.Outcome = domain.OutcomePassed

	case domain.IsSkip(err):
		res.Outcome = domain.OutcomeSkipped
		res.Message = err.Error()

	case domain.IsInfra(err):
		res.Outcome = domain.OutcomeErrored
		res.Kind = domain.KindInfra
		res.Message = err.Error()

	// A typed assertion failure is a real verdict even when the run is
	// being cancelled at the same moment; only untyped errors fall through
	// to the cancellation branch.
	case domain.IsAssertion(err):
		res.Outcome = domain.OutcomeFailed
		res.Kind = domain.KindAssertion
		res.Message = err.Error()

	case ctx.Err() != nil:
		// The run itself was cancelled while the case was in flight.
		res.Outcome = domain.OutcomeSkipped
		res.Kind = domain.KindCanceled
		res.Message = "run canceled during execution"

	case errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() != nil:
		res.Outcome = domain.OutcomeFailed
		res.Kind = domain.KindTimeout
		res.Message = fmt.Sprintf("case exceeded %s timeout", r.timeout.For(c))

	default:
		res.Outcome = domain.OutcomeFailed
		res.Kind = domain.KindAssertion
		res.Message = err.Error()
	}

	if res.Failed() {
		res.Attachments = r.capture(c, env)
	}
	return res
}

// runCase invokes the case function, converting panics into failures so a
// single bad case cannot take down its worker.
func runCase(ctx context.Context, c registry.Case, env *registry.Env) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("case panicked: %v", rec)
		}
	}()
	return c.Run(ctx, env)
}

// capture collects best-effort diagnostics for a failed case. Capture
// failures are logged but never escalate to a run failure.
func (r *Runner) capture(c registry.Case, env *registry.Env) []domain.Attachment {
	var attachments []domain.Attachment

	if steps := env.TraceLog(); len(steps) > 0 {
		att, err := r.artifacts.SaveTrace(c.ID, steps)
		if err != nil {
			r.log.Warn("trace capture failed", zap.String("case", c.ID), zap.Error(err))
		} else {
			attachments = append(attachments, att)
		}
	}

	if s := env.ActiveSession(); s != nil {
		captureCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		png, err := s.Screenshot(captureCtx)
		if err != nil {
			r.log.Warn("screenshot capture failed", zap.String("case", c.ID), zap.Error(err))
			return attachments
		}
		att, err := r.artifacts.SaveScreenshot(c.ID, png)
		if err != nil {
			r.log.Warn("screenshot capture failed", zap.String("case", c.ID), zap.Error(err))
			return attachments
		}
		attachments = append(attachments, att)
	}
	return attachments
}
