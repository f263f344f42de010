package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for one orchestrator invocation. It is
// constructed once from environment files and flags, passed explicitly to
// discovery and execution, and read-only during the run.
type Config struct {
	// Environment settings
	Environment string
	Debug       bool

	// Weather API settings
	APIBaseURL string
	GeoBaseURL string
	APIKey     string
	Units      string

	// UI settings
	UIBaseURL string

	// Browser settings
	Engines  []string
	ExecPath string
	Headless bool

	// Execution settings
	Workers     int
	Retries     int
	CaseTimeout time.Duration
	StepTimeout time.Duration
	RunTimeout  time.Duration

	// Performance settings
	PerformanceThreshold time.Duration

	// Output settings
	ReportDir    string
	ReportFile   string
	ArtifactsDir string

	// Run-history sink (optional, empty disables it)
	HistoryDSN string

	// Command flags
	Flags Flags
}

// Flags holds command-line flag values applied on top of the environment.
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
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Environment:          DefaultEnvironment,
		APIBaseURL:           DefaultAPIBaseURL,
		GeoBaseURL:           DefaultGeoBaseURL,
		Units:                DefaultUnits,
		UIBaseURL:            DefaultUIBaseURL,
		Engines:              []string{DefaultEngine},
		Headless:             true,
		Workers:              DefaultWorkers,
		Retries:              DefaultRetries,
		CaseTimeout:          DefaultCaseTimeout,
		StepTimeout:          DefaultStepTimeout,
		PerformanceThreshold: DefaultPerformanceThreshold,
		ReportDir:            DefaultReportDir,
		ReportFile:           DefaultReportFile,
		ArtifactsDir:         DefaultArtifactsDir,
	}
}

// Load builds a Config for the named environment. It reads <env>.env (if
// present) via godotenv, then process environment variables, then applies
// flag overrides.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	cfg.Flags = flags

	if flags.Environment != "" {
		cfg.Environment = flags.Environment
	}

	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(cfg.Environment + ".env")

	cfg.APIKey = os.Getenv("OPENWEATHER_API_KEY")
	if v := os.Getenv("OPENWEATHER_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("OPENWEATHER_GEO_URL"); v != "" {
		cfg.GeoBaseURL = v
	}
	if v := os.Getenv("WQA_UI_BASE_URL"); v != "" {
		cfg.UIBaseURL = v
	}
	if v := os.Getenv("WQA_UNITS"); v != "" {
		cfg.Units = v
	}
	if v := os.Getenv("WQA_BROWSER_PATH"); v != "" {
		cfg.ExecPath = v
	}
	if v := os.Getenv("WQA_HISTORY_DSN"); v != "" {
		cfg.HistoryDSN = v
	}
	if v := os.Getenv("WQA_DEBUG"); v != "" {
		cfg.Debug, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("WQA_PERFORMANCE_THRESHOLD_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid WQA_PERFORMANCE_THRESHOLD_MS %q: %w", v, err)
		}
		cfg.PerformanceThreshold = time.Duration(ms) * time.Millisecond
	}

	cfg.applyFlags(flags)
	return cfg, nil
}

func (c *Config) applyFlags(flags Flags) {
	if flags.Engines != "" {
		c.Engines = splitEngines(flags.Engines)
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Retries >= 0 {
		c.Retries = flags.Retries
	}
	if flags.Timeout > 0 {
		c.CaseTimeout = flags.Timeout
	}
	if flags.RunTimeout > 0 {
		c.RunTimeout = flags.RunTimeout
	}
	if flags.Headed {
		c.Headless = false
	}
}

func splitEngines(s string) []string {
	var out []string
	for _, e := range strings.Split(s, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		out = []string{DefaultEngine}
	}
	return out
}

// ForEngine returns a copy of the config targeting a single browser engine.
// Artifacts are rooted in a per-engine subdirectory so one engine's attempt
// reset never removes another engine's captures for the same case.
func (c *Config) ForEngine(engine string) *Config {
	cp := *c
	cp.Engines = []string{engine}
	cp.ArtifactsDir = filepath.Join(c.ArtifactsDir, engine)
	return &cp
}

// Engine returns the first configured engine.
func (c *Config) Engine() string {
	if len(c.Engines) == 0 {
		return DefaultEngine
	}
	return c.Engines[0]
}

// OutputPath resolves the absolute path of the JSON report so run and the
// failures viewer always read/write the same file regardless of cwd.
func (c *Config) OutputPath() string {
	p := filepath.Join(c.ReportDir, c.ReportFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// ArtifactsPath resolves the absolute path of the artifacts directory.
func (c *Config) ArtifactsPath() string {
	if abs, err := filepath.Abs(c.ArtifactsDir); err == nil {
		return abs
	}
	return c.ArtifactsDir
}
