package counters

import (
	"strconv"
	"strings"
)

// NotSupportedSentinel is emitted by the profiling tool for counters the
// hardware cannot provide. It parses as zero.
const NotSupportedSentinel = "<not supported>"

// ValueKind discriminates the scalar stored in a Value
type ValueKind int

const (
	KindInt ValueKind = iota
	KindFloat
	KindText
)

// Value is one scalar field extracted from a raw export. Counter exports mix
// integer counts, fractional means, and the occasional text cell.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Text  string
}

// IntValue wraps an integer count
func IntValue(v int64) Value {
	return Value{Kind: KindInt, Int: v}
}

// FloatValue wraps a fractional value
func FloatValue(v float64) Value {
	return Value{Kind: KindFloat, Float: v}
}

// TextValue wraps a non-numeric cell
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// AsFloat returns the numeric content as a float64. Text values are 0.
func (v Value) AsFloat() float64 {
	switch v.Kind {
	case KindInt:
		return float64(v.Int)
	case KindFloat:
		return v.Float
	default:
		return 0
	}
}

// IsNumeric reports whether the value carries a number
func (v Value) IsNumeric() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// ParseValue interprets a raw cell string. The not-supported sentinel and
// anything non-numeric map to integer zero rather than an error: an absent
// counter contributes nothing, it does not abort the file.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, NotSupportedSentinel) {
		return IntValue(0)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatValue(f)
	}
	return IntValue(0)
}

// RawRecord maps field names (counter event names or table column headers)
// to the scalar parsed from one input file. It is the unit handed to metric
// calculators and is never mutated by them.
type RawRecord map[string]Value

// Get returns the named field
func (r RawRecord) Get(name string) (Value, bool) {
	v, ok := r[name]
	return v, ok
}

// Float returns the named field as a float64, or 0 when absent
func (r RawRecord) Float(name string) float64 {
	return r[name].AsFloat()
}

// AliasTable maps a canonical field name to the ordered raw spellings that
// may carry it across tool versions. The first spelling present in a record
// wins.
type AliasTable map[string][]string

// Resolve looks up the canonical field in rec, trying each alias in priority
// order. The boolean is false when no alias is present.
func (t AliasTable) Resolve(rec RawRecord, canonical string) (Value, bool) {
	for _, alias := range t[canonical] {
		if v, ok := rec[alias]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// ResolveFloat is Resolve narrowed to the numeric content; a missing field
// yields (0, false).
func (t AliasTable) ResolveFloat(rec RawRecord, canonical string) (float64, bool) {
	v, ok := t.Resolve(rec, canonical)
	if !ok {
		return 0, false
	}
	return v.AsFloat(), true
}
