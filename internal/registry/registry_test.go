package registry

import (
	"context"
	"fmt"
	"testing"

	"wqa/internal/domain"
)

func noopCase(ctx context.Context, env *Env) error { return nil }

func TestRegistry_Register(t *testing.T) {
	tests := []struct {
		name    string
		c       Case
		wantErr bool
	}{
		{
			name: "valid case",
			c:    Case{ID: "api/check", Tags: domain.NewTagSet(domain.TagAPI), Run: noopCase},
		},
		{
			name:    "empty ID",
			c:       Case{Tags: domain.NewTagSet(domain.TagAPI), Run: noopCase},
			wantErr: true,
		},
		{
			name:    "no run function",
			c:       Case{ID: "api/check", Tags: domain.NewTagSet(domain.TagAPI)},
			wantErr: true,
		},
		{
			name:    "no tags",
			c:       Case{ID: "api/check", Run: noopCase},
			wantErr: true,
		},
		{
			name:    "unknown tag",
			c:       Case{ID: "api/check", Tags: domain.NewTagSet("bogus"), Run: noopCase},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.Register(tt.c)
			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	r := NewRegistry()
	c := Case{ID: "api/check", Tags: domain.NewTagSet(domain.TagAPI), Run: noopCase}
	if err := r.Register(c); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register(c); err == nil {
		t.Error("duplicate Register succeeded, want error")
	}
}

func TestRegistry_Discover(t *testing.T) {
	r := NewRegistry()

	// 10 cases, 3 tagged smoke.
	for i := 0; i < 3; i++ {
		r.MustRegister(Case{
			ID:   fmt.Sprintf("api/smoke-%d", i),
			Tags: domain.NewTagSet(domain.TagAPI, domain.TagSmoke),
			Run:  noopCase,
		})
	}
	for i := 0; i < 7; i++ {
		r.MustRegister(Case{
			ID:   fmt.Sprintf("api/regression-%d", i),
			Tags: domain.NewTagSet(domain.TagAPI, domain.TagRegression),
			Run:  noopCase,
		})
	}

	f, err := ParseFilter("tag:smoke")
	if err != nil {
		t.Fatal(err)
	}
	got := r.Discover(f)
	if len(got) != 3 {
		t.Fatalf("Discover(tag:smoke) returned %d cases, want 3", len(got))
	}
	for _, c := range got {
		if !c.Tags.Has(domain.TagSmoke) {
			t.Errorf("case %s returned without smoke tag", c.ID)
		}
	}

	if all := r.Discover(All()); len(all) != 10 {
		t.Errorf("Discover(All) returned %d cases, want 10", len(all))
	}
}
