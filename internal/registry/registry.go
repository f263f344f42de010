package registry

import (
	"context"
	"fmt"
	"sort"
	"time"

	"wqa/internal/domain"
)

// CaseFunc is the executable unit of a test case. A nil return means the
// case passed; returned errors are classified by the executor (assertion,
// skip, infrastructure, timeout).
type CaseFunc func(ctx context.Context, env *Env) error

// Case is a single automated check, immutable once registered.
type Case struct {
	// ID identifies the case in filters and reports, e.g. "api/current-weather".
	ID string
	// Summary is a one-line description shown by the list command.
	Summary string
	// Tags is the explicit tag set checked against filter expressions.
	Tags domain.TagSet
	// Timeout overrides the configured per-case timeout when non-zero.
	Timeout time.Duration
	// Run executes the check.
	Run CaseFunc
}

// Registry holds all registered test cases.
type Registry struct {
	cases []Case
	index map[string]bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]bool)}
}

// Register adds a case. IDs must be unique and every tag must be a known
// category or severity tag.
func (r *Registry) Register(c Case) error {
	if c.ID == "" {
		return fmt.Errorf("case ID must not be empty")
	}
	if r.index[c.ID] {
		return fmt.Errorf("duplicate case ID %q", c.ID)
	}
	if c.Run == nil {
		return fmt.Errorf("case %q has no run function", c.ID)
	}
	if len(c.Tags) == 0 {
		return fmt.Errorf("case %q has no tags", c.ID)
	}
	for tag := range c.Tags {
		if !tag.Known() {
			return fmt.Errorf("case %q has unknown tag %q", c.ID, tag)
		}
	}
	r.index[c.ID] = true
	r.cases = append(r.cases, c)
	return nil
}

// MustRegister is Register for static suite wiring; it panics on invalid cases.
func (r *Registry) MustRegister(c Case) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// All returns every registered case sorted by ID.
func (r *Registry) All() []Case {
	out := make([]Case, len(r.cases))
	copy(out, r.cases)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Discover returns the cases whose tag set satisfies the filter. Ordering
// carries no meaning; cases are independent.
func (r *Registry) Discover(f Filter) []Case {
	var out []Case
	for _, c := range r.All() {
		if f == nil || f.Match(c.Tags) {
			out = append(out, c)
		}
	}
	return out
}
