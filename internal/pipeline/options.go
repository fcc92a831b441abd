package pipeline

import (
	"github.com/yashgyy/ISPASS-Results/internal/counters"
	"github.com/yashgyy/ISPASS-Results/internal/files"
	"github.com/yashgyy/ISPASS-Results/internal/metrics"
)

// labelValueOptionsFor returns the parse layout for a label/value category.
// Energy exports carry the reading in field 0 with the Joules unit in field
// 1; branch statistics keep the default layout plus the tool-reported
// percentage in field 4. The cache, IPC and bandwidth exports are stored
// whole, one field per counter, for the alias tables to resolve.
func labelValueOptionsFor(category files.Category) counters.LabelValueOptions {
	switch category {
	case files.CategoryEnergy:
		return counters.LabelValueOptions{
			LabelField: 1,
			Labels:     []string{"Joules"},
		}
	case files.CategoryPerformance:
		return counters.LabelValueOptions{
			Labels:          []string{"branch-instructions", "branch-misses"},
			SecondaryField:  4,
			SecondarySuffix: metrics.ReportedSuffix,
		}
	default:
		return counters.LabelValueOptions{}
	}
}

// instructionOptions covers the two layouts instruction-mix exports come in.
// Tab-padded exports need the filler fields collapsed away; plain CSV uses
// the default layout. The parser tries tab first and falls back when the
// file yields nothing.
var instructionOptions = []counters.LabelValueOptions{
	{Delimiter: '\t', CollapseEmpty: true},
	{},
}
