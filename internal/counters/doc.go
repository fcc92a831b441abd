// Package counters parses raw performance-counter exports into flat
// RawRecord field maps.
//
// Two parsing modes cover the known export shapes:
//
// Label/value mode handles line-oriented exports where each relevant line
// carries a value and a counter label at fixed field positions, e.g.
// perf-stat CSV rows or tab-padded instruction breakdowns. See
// ParseLabelValue.
//
// Table mode handles aggregated profiler exports: a marker line locates the
// data table, the next line is the header, and rows follow until end of
// file. See ParseTable.
//
// Both modes are deliberately lossy on malformed input. Comment and blank
// lines are filtered, unparseable values become zero, rows with the wrong
// shape are dropped, and a file without extractable data yields no record
// rather than an error. One bad export never aborts a batch.
//
// AliasTable resolves the canonical counter names metric calculators work
// with against the several raw spellings the profiling tools emit.
package counters
