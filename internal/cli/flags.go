package cli

import (
	"time"

	"wqa/internal/config"
)

// Flags holds command-line flags shared across commands.
type Flags struct {
	Environment  string
	Engines      string
	Workers      int
	Retries      int
	Timeout      time.Duration
	RunTimeout   time.Duration
	Headed       bool
	Filter       string
	NameFilter   string
	FailFast     bool
	History      bool
	OpenFailures bool
	Limit        int
}

// ToConfigFlags converts CLI flags to config flags.
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Environment:  f.Environment,
		Engines:      f.Engines,
		Workers:      f.Workers,
		Retries:      f.Retries,
		Timeout:      f.Timeout,
		RunTimeout:   f.RunTimeout,
		Headed:       f.Headed,
		Filter:       f.Filter,
		NameFilter:   f.NameFilter,
		FailFast:     f.FailFast,
		History:      f.History,
		OpenFailures: f.OpenFailures,
	}
}
