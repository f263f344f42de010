package execution

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"wqa/internal/config"
	"wqa/internal/domain"
	"wqa/internal/registry"
)

func testRunner(t *testing.T, retries int, timeout time.Duration) *Runner {
	t.Helper()
	cfg := config.New()
	cfg.Retries = retries
	cfg.CaseTimeout = timeout
	cfg.ArtifactsDir = t.TempDir()
	return NewRunner(cfg, NewArtifactStore(cfg.ArtifactsDir), zap.NewNop())
}

func testEnv() func() *registry.Env {
	cfg := config.New()
	return func() *registry.Env {
		return registry.NewEnv(cfg, nil, nil, zap.NewNop())
	}
}

func simpleCase(id string, fn registry.CaseFunc) registry.Case {
	return registry.Case{ID: id, Tags: domain.NewTagSet(domain.TagAPI), Run: fn}
}

func TestRunner_Pass(t *testing.T) {
	r := testRunner(t, 2, time.Second)
	res := r.Run(context.Background(), simpleCase("api/ok", func(ctx context.Context, env *registry.Env) error {
		return nil
	}), testEnv())

	if res.Outcome != domain.OutcomePassed {
		t.Errorf("Outcome = %s, want passed", res.Outcome)
	}
	if res.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", res.Attempts)
	}
	if res.Kind != domain.KindNone {
		t.Errorf("Kind = %s, want none", res.Kind)
	}
}

func TestRunner_AssertionExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	r := testRunner(t, 2, time.Second)
	res := r.Run(context.Background(), simpleCase("api/fails", func(ctx context.Context, env *registry.Env) error {
		calls.Add(1)
		return domain.Assertf("always wrong")
	}), testEnv())

	if res.Outcome != domain.OutcomeFailed || res.Kind != domain.KindAssertion {
		t.Errorf("got %s/%s, want failed/assertion", res.Outcome, res.Kind)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("case ran %d times, want 3 (1 + 2 retries)", got)
	}
	if res.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", res.Attempts)
	}
}

func TestRunner_FlakyRecoversWithinRetries(t *testing.T) {
	var calls atomic.Int32
	r := testRunner(t, 2, time.Second)
	res := r.Run(context.Background(), simpleCase("api/flaky", func(ctx context.Context, env *registry.Env) error {
		if calls.Add(1) == 1 {
			return domain.Assertf("transient mismatch")
		}
		return nil
	}), testEnv())

	if res.Outcome != domain.OutcomePassed {
		t.Errorf("Outcome = %s, want passed after retry", res.Outcome)
	}
	if res.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", res.Attempts)
	}
}

func TestRunner_SkipIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	r := testRunner(t, 3, time.Second)
	res := r.Run(context.Background(), simpleCase("api/skip", func(ctx context.Context, env *registry.Env) error {
		calls.Add(1)
		return domain.Skipf("no credentials")
	}), testEnv())

	if res.Outcome != domain.OutcomeSkipped {
		t.Errorf("Outcome = %s, want skipped", res.Outcome)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("skipped case ran %d times, want 1", got)
	}
}

func TestRunner_InfraIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	r := testRunner(t, 3, time.Second)
	res := r.Run(context.Background(), simpleCase("ui/broken", func(ctx context.Context, env *registry.Env) error {
		calls.Add(1)
		return domain.Infraf("launch browser", errors.New("binary not found"))
	}), testEnv())

	if res.Outcome != domain.OutcomeErrored || res.Kind != domain.KindInfra {
		t.Errorf("got %s/%s, want errored/infrastructure", res.Outcome, res.Kind)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("infra-failed case ran %d times, want 1", got)
	}
}

func TestRunner_Timeout(t *testing.T) {
	r := testRunner(t, 0, 50*time.Millisecond)
	start := time.Now()
	res := r.Run(context.Background(), simpleCase("ui/slow", func(ctx context.Context, env *registry.Env) error {
		<-ctx.Done()
		return ctx.Err()
	}), testEnv())

	if res.Outcome != domain.OutcomeFailed || res.Kind != domain.KindTimeout {
		t.Errorf("got %s/%s, want failed/timeout", res.Outcome, res.Kind)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v, case resources not released promptly", elapsed)
	}
}

func TestRunner_RunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := testRunner(t, 2, time.Second)

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	res := r.Run(ctx, simpleCase("ui/inflight", func(ctx context.Context, env *registry.Env) error {
		<-ctx.Done()
		return ctx.Err()
	}), testEnv())

	if res.Outcome != domain.OutcomeSkipped || res.Kind != domain.KindCanceled {
		t.Errorf("got %s/%s, want skipped/canceled", res.Outcome, res.Kind)
	}
	if res.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1 (no retry after cancellation)", res.Attempts)
	}
}

func TestRunner_AssertionVerdictSurvivesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := testRunner(t, 2, time.Second)

	// The case reaches a verdict just as the run is cancelled.
	res := r.Run(ctx, simpleCase("api/racy", func(caseCtx context.Context, env *registry.Env) error {
		cancel()
		return domain.Assertf("value mismatch")
	}), testEnv())

	if res.Outcome != domain.OutcomeFailed || res.Kind != domain.KindAssertion {
		t.Errorf("got %s/%s, want failed/assertion (verdict reached before cancellation)", res.Outcome, res.Kind)
	}
	if res.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1 (no retry after cancellation)", res.Attempts)
	}
}

func TestRunner_PanicBecomesFailure(t *testing.T) {
	r := testRunner(t, 0, time.Second)
	res := r.Run(context.Background(), simpleCase("api/panics", func(ctx context.Context, env *registry.Env) error {
		panic("nil dereference somewhere")
	}), testEnv())

	if res.Outcome != domain.OutcomeFailed || res.Kind != domain.KindAssertion {
		t.Errorf("got %s/%s, want failed/assertion", res.Outcome, res.Kind)
	}
}

func TestRunner_TraceArtifactOnFailure(t *testing.T) {
	r := testRunner(t, 0, time.Second)
	res := r.Run(context.Background(), simpleCase("api/traced", func(ctx context.Context, env *registry.Env) error {
		env.Trace("step one")
		env.Trace("step two")
		return domain.Assertf("mismatch")
	}), testEnv())

	var tracePath string
	for _, att := range res.Attachments {
		if att.Name == "trace" {
			tracePath = att.Path
		}
	}
	if tracePath == "" {
		t.Fatalf("no trace attachment on failed case: %+v", res.Attachments)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("trace file not written: %v", err)
	}
	if string(data) != "step one\nstep two\n" {
		t.Errorf("trace content = %q", string(data))
	}
}
