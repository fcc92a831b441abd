// Package metrics computes derived performance metrics from parsed counter
// records. Every calculator is a pure function over a counters.RawRecord;
// nothing here mutates its input.
//
// All ratio calculations share one policy: a zero or missing denominator
// yields exactly 0, never NaN, Inf or a panic. Counters are routinely absent
// from an export (unsupported hardware, trimmed event lists) and that is a
// property of the data, not a failure of the run. Hit/miss complement pairs
// are always derived from the same counts within one record.
package metrics
