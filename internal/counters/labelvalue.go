package counters

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/yashgyy/ISPASS-Results/internal/errors"
)

// LabelValueOptions configures label/value mode parsing, covering the two
// layouts the counter exports use: comma-separated perf-stat rows
// (value,unit,event,...) and tab-separated instruction breakdowns where
// filler fields pad the columns.
type LabelValueOptions struct {
	// Delimiter is the field separator. Zero means comma.
	Delimiter rune
	// CollapseEmpty drops empty fields before positional parsing. Tab
	// exports pad with filler, so after collapsing the value sits at field
	// 0 and the label at field 1.
	CollapseEmpty bool
	// LabelField is the index of the label field. Zero means the layout
	// default: 2 for delimited rows, 1 when CollapseEmpty is set.
	LabelField int
	// Labels, when non-empty, restricts parsing to lines whose label field
	// contains one of these substrings, checked in order. The matched
	// substring becomes the field name, canonicalizing spelling variants at
	// parse time. Empty keeps every well-formed line under its full label.
	Labels []string
	// SecondaryField, when positive, additionally captures the numeric
	// value at this field index under label+SecondarySuffix. perf-stat rows
	// carry the tool's own percentage there.
	SecondaryField  int
	SecondarySuffix string
}

// ParseLabelValue reads a label/value mode export into a RawRecord. Lines
// that do not match the expected shape are skipped, never fatal; the caller
// treats an empty record as "this file contributes nothing". Only opening
// the file can fail.
func ParseLabelValue(path string, opts LabelValueOptions) (RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open export", err).
			WithContext("file", path)
	}
	defer file.Close()

	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}
	labelField := opts.LabelField
	if labelField == 0 {
		labelField = 2
		if opts.CollapseEmpty {
			labelField = 1
		}
	}

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rec := make(RawRecord)
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		if opts.CollapseEmpty {
			fields = collapseEmpty(fields)
		}
		if len(fields) <= labelField {
			continue
		}

		rawLabel := strings.TrimSpace(fields[labelField])
		if rawLabel == "" {
			continue
		}

		name, ok := matchLabel(rawLabel, opts.Labels)
		if !ok {
			continue
		}

		rec[name] = ParseValue(fields[0])

		if opts.SecondaryField > 0 && len(fields) > opts.SecondaryField {
			raw := strings.TrimSpace(fields[opts.SecondaryField])
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				rec[name+opts.SecondarySuffix] = FloatValue(v)
			}
		}
	}

	return rec, nil
}

// matchLabel applies the relevance filter. With no filter every label is
// kept verbatim; with a filter the first configured substring contained in
// the label wins and names the field.
func matchLabel(label string, filter []string) (string, bool) {
	if len(filter) == 0 {
		return label, true
	}
	for _, want := range filter {
		if strings.Contains(label, want) {
			return want, true
		}
	}
	return "", false
}

// collapseEmpty strips blank fields, preserving order
func collapseEmpty(fields []string) []string {
	out := fields[:0:0]
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			out = append(out, strings.TrimSpace(f))
		}
	}
	return out
}
