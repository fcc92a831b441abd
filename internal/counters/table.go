package counters

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/yashgyy/ISPASS-Results/internal/errors"
)

// MarkerSystemAggregated is the literal line prefix that precedes the
// system-wide data table in aggregated profiler exports.
const MarkerSystemAggregated = "System (Aggregated)"

// TableOptions configures table mode parsing
type TableOptions struct {
	// Marker locates the start of the data table. Zero value means
	// MarkerSystemAggregated.
	Marker string
	// MinRows is the minimum number of valid data rows required before the
	// file is accepted. Zero means 1.
	MinRows int
}

// ParseTable reads a table mode export: freeform preamble, a marker line,
// a comma-separated header row, then data rows until end of file. A data row
// is valid only when its field count matches the header and its first field
// is numeric, which filters stray and blank lines. Invalid rows are silently
// dropped.
//
// The parse abstains (ok false, nil error) when the marker never appears or
// fewer than MinRows valid rows remain. Multi-row tables collapse to one
// record by per-column arithmetic mean; columns with no numeric cells keep
// the first row's text.
func ParseTable(path string, opts TableOptions) (RawRecord, bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, false, apperrors.NewParsingError("failed to open export", err).
			WithContext("file", path)
	}
	defer file.Close()

	marker := opts.Marker
	if marker == "" {
		marker = MarkerSystemAggregated
	}
	minRows := opts.MinRows
	if minRows <= 0 {
		minRows = 1
	}

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, false, apperrors.NewParsingError("failed to read export", err).
			WithContext("file", path)
	}

	markerIndex := -1
	for i, line := range lines {
		if strings.Contains(line, marker) {
			markerIndex = i
			break
		}
	}
	if markerIndex == -1 || markerIndex+1 >= len(lines) {
		return nil, false, nil
	}

	headers := splitTrim(lines[markerIndex+1])

	var rows [][]string
	for _, line := range lines[markerIndex+2:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := splitTrim(trimmed)
		if isValidDataRow(fields, headers) {
			rows = append(rows, fields)
		}
	}

	if len(rows) < minRows {
		return nil, false, nil
	}

	return collapseRows(headers, rows), true, nil
}

// isValidDataRow accepts a row only when its shape matches the header and
// its first field is a number
func isValidDataRow(fields, headers []string) bool {
	if len(fields) != len(headers) {
		return false
	}
	_, err := strconv.ParseFloat(fields[0], 64)
	return err == nil
}

// collapseRows reduces the data rows to a single record, averaging each
// numeric column
func collapseRows(headers []string, rows [][]string) RawRecord {
	rec := make(RawRecord, len(headers))
	for col, header := range headers {
		if header == "" {
			continue
		}
		var sum float64
		var count int
		for _, row := range rows {
			if v, err := strconv.ParseFloat(row[col], 64); err == nil {
				sum += v
				count++
			}
		}
		if count > 0 {
			rec[header] = FloatValue(sum / float64(count))
		} else {
			rec[header] = TextValue(rows[0][col])
		}
	}
	return rec
}

// splitTrim splits a comma-separated line into whitespace-trimmed fields
func splitTrim(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
