package config

import "time"

const (
	// DefaultEnvironment is the environment used when none is given.
	DefaultEnvironment = "test"
	// DefaultAPIBaseURL is the weather API base URL.
	DefaultAPIBaseURL = "https://api.openweathermap.org/data/2.5"
	// DefaultGeoBaseURL is the geocoding API base URL.
	DefaultGeoBaseURL = "https://api.openweathermap.org/geo/1.0"
	// DefaultUIBaseURL is the base URL for UI checks.
	DefaultUIBaseURL = "https://openweathermap.org"
	// DefaultUnits is the measurement system requested from the API.
	DefaultUnits = "metric"
	// DefaultEngine is the browser engine used when none is given.
	DefaultEngine = "chromium"
	// DefaultWorkers is the default worker pool size.
	DefaultWorkers = 4
	// DefaultRetries is the default retry count for failed cases.
	DefaultRetries = 2
	// DefaultCaseTimeout bounds a single case execution.
	DefaultCaseTimeout = 30 * time.Second
	// DefaultStepTimeout bounds a single page interaction inside a case.
	DefaultStepTimeout = 5 * time.Second
	// DefaultPerformanceThreshold is the response-time budget for performance cases.
	DefaultPerformanceThreshold = 2 * time.Second
	// DefaultReportDir is where run reports are written.
	DefaultReportDir = "reports"
	// DefaultReportFile is the JSON report file name.
	DefaultReportFile = "run-results.json"
	// DefaultArtifactsDir is where failure artifacts are written.
	DefaultArtifactsDir = "reports/artifacts"
)
