package pipeline

import (
	"strings"
)

// groupSeparators are the filename markers between the configuration and
// algorithm parts of a grouped export. The misspelled form appears in real
// capture scripts and is accepted as-is.
var groupSeparators = []string{"_energy_", "_performance_", "_perfomance_"}

// GroupKey identifies which profiling run a grouped export belongs to. Files
// with the same key merge into one output row.
type GroupKey struct {
	Config    string
	Algorithm string
}

// SplitGroupKey extracts the group key from a grouped export filename of the
// form <config>_<kind>_<algorithm>.<ext>. Returns ok false when no separator
// is present or either side is empty.
func SplitGroupKey(name string) (GroupKey, bool) {
	base := name
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	for _, sep := range groupSeparators {
		idx := strings.Index(base, sep)
		if idx < 0 {
			continue
		}
		key := GroupKey{
			Config:    base[:idx],
			Algorithm: base[idx+len(sep):],
		}
		if key.Config == "" || key.Algorithm == "" {
			return GroupKey{}, false
		}
		return key, true
	}
	return GroupKey{}, false
}
