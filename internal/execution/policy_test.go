package execution

import (
	"testing"
	"time"

	"wqa/internal/registry"
)

func TestRetryPolicy_Attempts(t *testing.T) {
	tests := []struct {
		retries int
		want    int
	}{
		{0, 1},
		{2, 3},
		{-1, 1},
	}
	for _, tt := range tests {
		p := RetryPolicy{Retries: tt.retries}
		if got := p.Attempts(); got != tt.want {
			t.Errorf("RetryPolicy{%d}.Attempts() = %d, want %d", tt.retries, got, tt.want)
		}
	}
}

func TestTimeoutPolicy_For(t *testing.T) {
	p := TimeoutPolicy{CaseTimeout: 30 * time.Second}

	if got := p.For(registry.Case{}); got != 30*time.Second {
		t.Errorf("For(no override) = %v, want 30s", got)
	}
	if got := p.For(registry.Case{Timeout: time.Minute}); got != time.Minute {
		t.Errorf("For(override) = %v, want 1m", got)
	}
	if got := (TimeoutPolicy{}).For(registry.Case{}); got <= 0 {
		t.Errorf("For() with zero policy = %v, want positive fallback", got)
	}
}
