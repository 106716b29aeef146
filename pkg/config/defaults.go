package config

// Logging defaults.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Parse defaults.
const (
	// DefaultLanguage is empty so the grammar is picked from the file
	// extension.
	DefaultLanguage    = ""
	DefaultMaxFileSize = "5MB"
)

// Telemetry defaults.
const (
	DefaultSampleRatio = 0.0
)

// Diagnostics defaults. An empty address disables the diagnostics
// server.
const (
	DefaultDiagnosticsAddr = ""
)
