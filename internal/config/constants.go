package config

// Application constants for the perf summary pipeline
const (
	// Application Info
	AppName    = "perfsummary"
	AppVersion = "1.0.0"

	// Environment variable prefix, e.g. PERF_INPUT_DIR
	EnvPrefix = "PERF"

	// ConfigFileName is the optional YAML configuration file
	ConfigFileName = "perfsummary.yaml"

	// Default directories mirror the layout the raw exports are delivered in
	DefaultInputDir  = "Raw_Files"
	DefaultOutputDir = "Results_Parsed"

	// Output formats accepted by OutputConfig.Format
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatBoth = "both"

	// DefaultOutputFormat is the serialization applied when none is requested
	DefaultOutputFormat = FormatCSV

	// DefaultDurationSeconds is the assumed profiling run length for
	// bandwidth normalization when no duration is configured. The exports
	// themselves carry no duration, so this is only correct when the runs
	// were actually capped at this length.
	DefaultDurationSeconds = 300.0

	// DefaultMinTableRows is the minimum valid row count for an aggregated
	// table export to be accepted
	DefaultMinTableRows = 1

	// TimestampLayout is appended to output filenames to keep prior runs
	TimestampLayout = "20060102_150405"
)
