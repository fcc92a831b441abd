package metrics

import (
	"github.com/yashgyy/ISPASS-Results/internal/counters"
)

// StatAliases maps canonical perf-stat counter names to the spellings the
// tool emits across CPU types and versions. Hybrid parts prefix events with
// the core type (cpu_atom/, cpu_core/); older exports use bare names.
var StatAliases = counters.AliasTable{
	"icache_accesses":        {"cpu_atom/icache.accesses/", "icache.accesses"},
	"icache_misses":          {"cpu_atom/icache.misses/", "icache.misses"},
	"l1d_loads":              {"cpu_core/L1-dcache-loads/", "L1-dcache-loads"},
	"l1d_load_misses":        {"cpu_core/L1-dcache-load-misses/", "L1-dcache-load-misses"},
	"l2_references":          {"cpu_core/l2_rqsts.references/", "l2_rqsts.references"},
	"l2_misses":              {"cpu_core/l2_rqsts.miss/", "l2_rqsts.miss"},
	"llc_loads":              {"cpu_core/LLC-loads/", "LLC-loads"},
	"llc_load_misses":        {"cpu_core/LLC-load-misses/", "LLC-load-misses"},
	"l2_code_rd_miss":        {"cpu_core/l2_rqsts.code_rd_miss/", "l2_rqsts.code_rd_miss"},
	"l2_demand_data_rd_miss": {"cpu_core/l2_rqsts.demand_data_rd_miss/", "l2_rqsts.demand_data_rd_miss"},
	"instructions":           {"cpu_core/instructions/", "instructions"},
	"cycles":                 {"cpu_core/cpu-cycles/", "cpu-cycles", "cycles"},
	"cas_count_read":         {"unc_m_cas_count.rd_reg", "unc_m_cas_count.rd"},
	"cas_count_write":        {"unc_m_cas_count.wr_wmm", "unc_m_cas_count.wr"},
	"cas_count_all":          {"unc_m_cas_count.all"},
}

// BranchAliases covers the branch statistics exports. The reported
// percentage is the tool's own number captured from the row's extra field.
var BranchAliases = counters.AliasTable{
	"branch_instructions":    {"branch-instructions"},
	"branch_misses":          {"branch-misses"},
	"branch_misses_reported": {"branch-misses" + ReportedSuffix},
}

// EnergyAliases covers RAPL energy exports, keyed by the Joules unit field
var EnergyAliases = counters.AliasTable{
	"energy_joules": {"Joules"},
}

// InstructionAliases covers retired-instruction breakdown exports
var InstructionAliases = counters.AliasTable{
	"total_instructions":  {"ex_ret_instr", "instructions"},
	"branch_instructions": {"ex_ret_brn"},
	"load_ops":            {"ld_dispatch"},
	"store_ops":           {"store_dispatch"},
}

// AggregateAliases maps canonical names to aggregated-table column headers.
// The HWPF columns were renamed between profiler releases.
var AggregateAliases = counters.AliasTable{
	"utilization_pct":        {"Utilization (%)"},
	"ipc_sys_user":           {"IPC (Sys + User)"},
	"ic_access":              {"IC Access (pti)"},
	"ic_miss":                {"IC Miss (pti)"},
	"dc_access":              {"DC Access (pti)"},
	"l2_access":              {"L2 Access (pti)"},
	"l2_access_from_ic_miss": {"L2 Access from IC Miss (pti)"},
	"l2_access_from_dc_miss": {"L2 Access from DC Miss (pti)"},
	"l2_access_from_hwpf":    {"L2 Access from HWPF (pti)", "L2 Access from L2 HWPF (pti)"},
	"l2_miss":                {"L2 Miss (pti)"},
	"l2_hit_from_ic_miss":    {"L2 Hit from IC Miss (pti)"},
	"l2_hit_from_dc_miss":    {"L2 Hit from DC Miss (pti)"},
	"l2_hit_from_hwpf":       {"L2 Hit from HWPF (pti)", "L2 Hit from L2 HWPF (pti)"},
	"l3_miss_pct":            {"L3 Miss %"},
	"total_mem_bw":           {"Total Mem Bw (GB/s)"},
	"total_mem_rdbw":         {"Total Mem RdBw (GB/s)"},
	"total_mem_wrbw":         {"Total Mem WrBw (GB/s)"},
}

// ReportedSuffix is appended by the label/value parser when it captures the
// tool-reported percentage from a row's extra field
const ReportedSuffix = "/reported"
