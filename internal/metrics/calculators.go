package metrics

import (
	"math"

	"github.com/yashgyy/ISPASS-Results/internal/counters"
)

const (
	bytesPerCASLine = 64
	gigabyte        = 1 << 30
)

// CacheMetrics computes the cache hierarchy hit/miss percentages from a
// perf-stat export. Absent counters resolve to zero, so every metric is
// always emitted and a missing level degrades to 0% miss / 100% hit.
func CacheMetrics(rec counters.RawRecord) []Metric {
	icAccesses := resolveFloat(StatAliases, rec, "icache_accesses")
	icMisses := resolveFloat(StatAliases, rec, "icache_misses")
	dcLoads := resolveFloat(StatAliases, rec, "l1d_loads")
	dcMisses := resolveFloat(StatAliases, rec, "l1d_load_misses")
	l2Refs := resolveFloat(StatAliases, rec, "l2_references")
	l2Misses := resolveFloat(StatAliases, rec, "l2_misses")
	llcLoads := resolveFloat(StatAliases, rec, "llc_loads")
	llcMisses := resolveFloat(StatAliases, rec, "llc_load_misses")
	l2CodeRdMiss := resolveFloat(StatAliases, rec, "l2_code_rd_miss")
	l2DataRdMiss := resolveFloat(StatAliases, rec, "l2_demand_data_rd_miss")

	// IC loads are accesses net of misses in this export format
	icLoads := icAccesses - icMisses

	icMissPct := Percent(icMisses, icLoads)
	dcMissPct := Percent(dcMisses, dcLoads)
	l2MissPct := Percent(l2Misses, l2Refs)
	l3MissPct := Percent(llcMisses, llcLoads)

	return []Metric{
		Float("IC_Miss_Percentage", icMissPct),
		Float("DC_Miss_Percentage", dcMissPct),
		Float("L2_Miss_Percentage", l2MissPct),
		Float("L3_Miss_Percentage", l3MissPct),
		Float("L2_Miss_Rate_from_IC_Miss", Percent(l2CodeRdMiss, icMisses)),
		Float("L2_Miss_Rate_from_DC_Miss", Percent(l2DataRdMiss, dcMisses)),
		Float("IC_Hit_Percentage", Complement(icMissPct)),
		Float("DC_Hit_Percentage", Complement(dcMissPct)),
		Float("L2_Hit_Percentage", Complement(l2MissPct)),
		Float("L3_Hit_Percentage", Complement(l3MissPct)),
	}
}

// IPCMetrics computes instructions per cycle plus the raw counts for
// reference
func IPCMetrics(rec counters.RawRecord) []Metric {
	instructions := resolveFloat(StatAliases, rec, "instructions")
	cycles := resolveFloat(StatAliases, rec, "cycles")

	return []Metric{
		Float("IPC", SafeDiv(instructions, cycles)),
		Count("Instructions", int64(instructions)),
		Count("Cycles", int64(cycles)),
	}
}

// BandwidthMetrics converts memory-controller CAS counts into GB/s over the
// run duration. Each CAS transfers one 64-byte line. The duration is not in
// the export and must be supplied; the result is only as correct as that
// value.
func BandwidthMetrics(rec counters.RawRecord, durationSeconds float64) []Metric {
	readBytes := resolveFloat(StatAliases, rec, "cas_count_read") * bytesPerCASLine
	writeBytes := resolveFloat(StatAliases, rec, "cas_count_write") * bytesPerCASLine
	totalBytes := resolveFloat(StatAliases, rec, "cas_count_all") * bytesPerCASLine

	denominator := durationSeconds * gigabyte

	return []Metric{
		Float("Read_Bandwidth_GBs", SafeDiv(readBytes, denominator)),
		Float("Write_Bandwidth_GBs", SafeDiv(writeBytes, denominator)),
		Float("Total_Bandwidth_GBs", SafeDiv(totalBytes, denominator)),
	}
}

// InstructionMix breaks retired instructions into branch, load, store and
// ALU shares. ALU is the remainder after the explicitly counted classes.
// Percentages are rounded to two decimals for the summary table.
func InstructionMix(rec counters.RawRecord) []Metric {
	total := resolveFloat(InstructionAliases, rec, "total_instructions")
	branch := resolveFloat(InstructionAliases, rec, "branch_instructions")
	load := resolveFloat(InstructionAliases, rec, "load_ops")
	store := resolveFloat(InstructionAliases, rec, "store_ops")

	alu := 0.0
	if total > 0 {
		alu = total - branch - load - store
	}

	return []Metric{
		Float("percent_branch", round2(Percent(branch, total))),
		Float("percent_load", round2(Percent(load, total))),
		Float("percent_store", round2(Percent(store, total))),
		Float("percent_alu", round2(Percent(alu, total))),
		Count("total_instructions", int64(total)),
		Count("branch_instructions", int64(branch)),
		Count("load_ops", int64(load)),
		Count("store_ops", int64(store)),
		Count("alu_ops", int64(alu)),
	}
}

// BranchMetrics extracts branch statistics from a performance export. The
// tool-reported miss percentage is included alongside the calculated one
// when the export carried it.
func BranchMetrics(rec counters.RawRecord) []Metric {
	instructions := resolveFloat(BranchAliases, rec, "branch_instructions")
	misses := resolveFloat(BranchAliases, rec, "branch_misses")

	out := []Metric{
		Count("Branch_Instructions", int64(instructions)),
		Count("Branch_Misses", int64(misses)),
		Float("Misses_%", Percent(misses, instructions)),
	}
	if reported, ok := BranchAliases.ResolveFloat(rec, "branch_misses_reported"); ok {
		out = append(out, Float("Misses_Percentage_Reported", reported))
	}
	return out
}

// EnergyMetrics extracts the package energy reading in Joules
func EnergyMetrics(rec counters.RawRecord) []Metric {
	return []Metric{
		Float("Energy_Joules", resolveFloat(EnergyAliases, rec, "energy_joules")),
	}
}

// AggregateMetrics computes the derived percentages for an aggregated-table
// export and passes the underlying per-column means through. Raw columns the
// export did not carry are omitted; derived values with missing inputs
// degrade to 0 through the same zero-denominator guard as everywhere else.
func AggregateMetrics(rec counters.RawRecord) []Metric {
	icAccess := resolveFloat(AggregateAliases, rec, "ic_access")
	icMiss := resolveFloat(AggregateAliases, rec, "ic_miss")
	dcAccess := resolveFloat(AggregateAliases, rec, "dc_access")
	l2Access := resolveFloat(AggregateAliases, rec, "l2_access")
	l2AccessFromICMiss := resolveFloat(AggregateAliases, rec, "l2_access_from_ic_miss")
	l2AccessFromDCMiss := resolveFloat(AggregateAliases, rec, "l2_access_from_dc_miss")
	l2AccessFromHWPF := resolveFloat(AggregateAliases, rec, "l2_access_from_hwpf")
	l2Miss := resolveFloat(AggregateAliases, rec, "l2_miss")
	l2HitFromICMiss := resolveFloat(AggregateAliases, rec, "l2_hit_from_ic_miss")
	l2HitFromDCMiss := resolveFloat(AggregateAliases, rec, "l2_hit_from_dc_miss")
	l2HitFromHWPF := resolveFloat(AggregateAliases, rec, "l2_hit_from_hwpf")

	out := []Metric{
		Float("ic_hit_pct", Percent(icAccess-icMiss, icAccess)),
		Float("dc_hit_pct", Percent(dcAccess-l2AccessFromDCMiss, dcAccess)),
		Float("l2_miss_pct", Percent(l2Miss, l2Access)),
		Float("l2_hit_from_ic_miss_pct", Percent(l2HitFromICMiss, l2AccessFromICMiss)),
		Float("l2_hit_from_dc_miss_pct", Percent(l2HitFromDCMiss, l2AccessFromDCMiss)),
		Float("l2_hit_from_hwpf_pct", Percent(l2HitFromHWPF, l2AccessFromHWPF)),
	}

	// Pass the raw means through under their canonical names, only for
	// columns the export actually carried.
	passthrough := []struct {
		column    string
		canonical string
	}{
		{"utilization_pct", "utilization_pct"},
		{"ipc_sys_user", "ipc_sys_user"},
		{"l3_miss_pct", "l3_miss_pct"},
		{"total_mem_bw", "total_mem_bw"},
		{"total_mem_rdbw", "total_mem_rdbw"},
		{"total_mem_wrbw", "total_mem_wrbw"},
		{"ic_access", "ic_access"},
		{"ic_miss", "ic_miss"},
		{"dc_access", "dc_access"},
		{"l2_access", "l2_access"},
		{"l2_access_from_ic_miss", "l2_access_from_ic_miss"},
		{"l2_access_from_dc_miss", "l2_access_from_dc_miss"},
		{"l2_access_from_hwpf", "l2_access_from_hwpf"},
		{"l2_miss", "l2_miss"},
		{"l2_hit_from_ic_miss_raw", "l2_hit_from_ic_miss"},
		{"l2_hit_from_dc_miss_raw", "l2_hit_from_dc_miss"},
		{"l2_hit_from_hwpf_raw", "l2_hit_from_hwpf"},
	}
	for _, p := range passthrough {
		if v, ok := AggregateAliases.ResolveFloat(rec, p.canonical); ok {
			out = append(out, Float(p.column, v))
		}
	}

	return out
}

// resolveFloat resolves a canonical field, treating a missing field as zero
func resolveFloat(aliases counters.AliasTable, rec counters.RawRecord, canonical string) float64 {
	v, _ := aliases.ResolveFloat(rec, canonical)
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
