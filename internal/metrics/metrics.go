package metrics

// Metric is one computed output value with its column name
type Metric struct {
	Name  string
	Value interface{} // int64 for raw counts, float64 for ratios
}

// Float builds a float-valued metric
func Float(name string, v float64) Metric {
	return Metric{Name: name, Value: v}
}

// Count builds an integer-valued metric
func Count(name string, v int64) Metric {
	return Metric{Name: name, Value: v}
}

// SafeDiv divides, returning 0 on a zero denominator instead of NaN or Inf.
// Absent or degenerate counters are a normal condition in these exports and
// must never poison a record.
func SafeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// Percent returns numerator/denominator as a percentage, 0 on a zero or
// missing denominator
func Percent(numerator, denominator float64) float64 {
	return SafeDiv(numerator, denominator) * 100
}

// Complement returns the hit percentage matching a miss percentage. Both
// sides of a hit/miss pair must come from the same underlying counts, so
// the complement is derived from the already computed percentage, never
// recomputed from another record.
func Complement(missPercent float64) float64 {
	return 100 - missPercent
}
