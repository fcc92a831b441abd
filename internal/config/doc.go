// Package config provides configuration management for the perf summary
// pipeline. Configuration is loaded from environment variables (prefix PERF)
// merged with an optional perfsummary.yaml file, then validated with struct
// tags.
//
// The one knob worth calling out is Run.DurationSeconds: the raw counter
// exports do not record how long the profiling run lasted, so bandwidth
// normalization depends on this externally supplied value. It defaults to
// 300 seconds but should be set explicitly whenever the runs were not capped
// at that length.
package config
