package summary

// Record is one output row. Columns keep the order they were first set in,
// so a record built from a parse pass reproduces the source ordering.
type Record struct {
	values map[string]interface{}
	order  []string
}

// NewRecord creates an empty record
func NewRecord() *Record {
	return &Record{values: make(map[string]interface{})}
}

// Set stores a column value. A column keeps its original position when set
// again.
func (r *Record) Set(name string, value interface{}) {
	if _, exists := r.values[name]; !exists {
		r.order = append(r.order, name)
	}
	r.values[name] = value
}

// SetIfAbsent stores a column value only when the column is not present yet
func (r *Record) SetIfAbsent(name string, value interface{}) {
	if _, exists := r.values[name]; exists {
		return
	}
	r.Set(name, value)
}

// Get returns the column value and whether it is present
func (r *Record) Get(name string) (interface{}, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the column is present
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Columns returns the column names in first-set order
func (r *Record) Columns() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// String returns the column value formatted for text output, empty when the
// column is absent
func (r *Record) String(name string) string {
	v, ok := r.values[name]
	if !ok {
		return ""
	}
	return formatValue(v)
}
