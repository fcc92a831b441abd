package summary

import (
	"sort"
)

// Table collects records and resolves the final column layout. Preferred
// columns come first, restricted to those actually present in at least one
// record; every other column follows in the order it was first seen across
// the records, or alphabetically when SortExtras is set.
type Table struct {
	preferred  []string
	sortExtras bool
	records    []*Record
}

// NewTable creates an empty table with the given preferred column order
func NewTable(preferred ...string) *Table {
	return &Table{preferred: preferred}
}

// SortExtras makes non-preferred columns sort alphabetically instead of
// keeping first-seen order
func (t *Table) SortExtras() *Table {
	t.sortExtras = true
	return t
}

// Append adds a record to the table
func (t *Table) Append(rec *Record) {
	if rec != nil {
		t.records = append(t.records, rec)
	}
}

// Len returns the record count
func (t *Table) Len() int {
	return len(t.records)
}

// Empty reports whether the table has no records
func (t *Table) Empty() bool {
	return len(t.records) == 0
}

// Records returns the backing record slice
func (t *Table) Records() []*Record {
	return t.records
}

// Columns resolves the output column layout from the current records
func (t *Table) Columns() []string {
	present := make(map[string]bool)
	var seen []string
	for _, rec := range t.records {
		for _, col := range rec.Columns() {
			if !present[col] {
				present[col] = true
				seen = append(seen, col)
			}
		}
	}

	var out []string
	inPreferred := make(map[string]bool, len(t.preferred))
	for _, col := range t.preferred {
		inPreferred[col] = true
		if present[col] {
			out = append(out, col)
		}
	}

	var extras []string
	for _, col := range seen {
		if !inPreferred[col] {
			extras = append(extras, col)
		}
	}
	if t.sortExtras {
		sort.Strings(extras)
	}
	return append(out, extras...)
}

// Rows returns every record formatted against the resolved columns. Absent
// cells are empty strings.
func (t *Table) Rows() [][]string {
	cols := t.Columns()
	rows := make([][]string, 0, len(t.records))
	for _, rec := range t.records {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = rec.String(col)
		}
		rows = append(rows, row)
	}
	return rows
}

// RawRows returns every record's unformatted values against the resolved
// columns, for writers that keep native cell types. Absent cells are nil.
func (t *Table) RawRows() [][]interface{} {
	cols := t.Columns()
	rows := make([][]interface{}, 0, len(t.records))
	for _, rec := range t.records {
		row := make([]interface{}, len(cols))
		for i, col := range cols {
			if v, ok := rec.Get(col); ok {
				row[i] = v
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// SortBy stably sorts the records by the given columns, comparing formatted
// values. Records that tie on every column keep their insertion order.
func (t *Table) SortBy(columns ...string) {
	sort.SliceStable(t.records, func(i, j int) bool {
		for _, col := range columns {
			a, b := t.records[i].String(col), t.records[j].String(col)
			if a != b {
				return a < b
			}
		}
		return false
	})
}

// MergeBy combines records that share the same values in the key columns.
// The first record with a key keeps its position; later records fill in
// columns the merged record does not have yet, never overwriting.
func (t *Table) MergeBy(keys ...string) {
	index := make(map[string]*Record)
	merged := make([]*Record, 0, len(t.records))
	for _, rec := range t.records {
		k := mergeKey(rec, keys)
		if existing, ok := index[k]; ok {
			for _, col := range rec.Columns() {
				v, _ := rec.Get(col)
				existing.SetIfAbsent(col, v)
			}
			continue
		}
		index[k] = rec
		merged = append(merged, rec)
	}
	t.records = merged
}

func mergeKey(rec *Record, keys []string) string {
	k := ""
	for _, col := range keys {
		k += rec.String(col) + "\x00"
	}
	return k
}
