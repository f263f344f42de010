package domain

import "time"

// Outcome is the terminal state of a test case after retries are exhausted.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeErrored Outcome = "errored"
	OutcomeSkipped Outcome = "skipped"
)

// FailureKind distinguishes the failure taxonomy classes in the final report.
type FailureKind string

const (
	KindNone      FailureKind = ""
	KindAssertion FailureKind = "assertion"
	KindTimeout   FailureKind = "timeout"
	KindInfra     FailureKind = "infrastructure"
	KindCanceled  FailureKind = "canceled"
)

// Attachment references a diagnostic artifact captured for a failed case.
type Attachment struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Result records the outcome of one test case. It is appended to the run's
// result set at case completion and never mutated afterward (the Resolved
// flag is the one exception, written by the failures viewer between runs).
type Result struct {
	CaseID      string        `json:"case_id"`
	Engine      string        `json:"engine,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Outcome     Outcome       `json:"outcome"`
	Kind        FailureKind   `json:"kind,omitempty"`
	Attempts    int           `json:"attempts"`
	Duration    time.Duration `json:"duration_ns"`
	Message     string        `json:"message,omitempty"`
	Attachments []Attachment  `json:"attachments,omitempty"`
	Resolved    bool          `json:"resolved,omitempty"`
}

// Failed reports whether the case needs operator attention.
func (r Result) Failed() bool {
	return r.Outcome == OutcomeFailed || r.Outcome == OutcomeErrored
}

// RunMeta contains aggregate statistics for one orchestrator invocation.
type RunMeta struct {
	Environment     string  `json:"environment"`
	Engines         string  `json:"engines,omitempty"`
	TotalCases      int     `json:"total_cases"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Errored         int     `json:"errored"`
	Skipped         int     `json:"skipped"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Retries         int     `json:"retries"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete structured report for one run.
type RunOutput struct {
	Meta    RunMeta  `json:"meta"`
	Results []Result `json:"results"`
}

// Failures returns the results that were neither passed nor skipped.
func (o *RunOutput) Failures() []Result {
	var out []Result
	for _, r := range o.Results {
		if r.Failed() {
			out = append(out, r)
		}
	}
	return out
}

// NewRunOutput aggregates per-case results into a report.
func NewRunOutput(results []Result, duration time.Duration, environment, engines string, workers, retries int) *RunOutput {
	meta := RunMeta{
		Environment:     environment,
		Engines:         engines,
		TotalCases:      len(results),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         workers,
		Retries:         retries,
		Timestamp:       time.Now().Format(time.RFC3339),
	}
	for _, r := range results {
		switch r.Outcome {
		case OutcomePassed:
			meta.Passed++
		case OutcomeFailed:
			meta.Failed++
		case OutcomeErrored:
			meta.Errored++
		case OutcomeSkipped:
			meta.Skipped++
		}
	}
	return &RunOutput{Meta: meta, Results: results}
}
