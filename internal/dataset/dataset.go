// Package dataset provides the in-memory tabular data model: ordered rows of
// column-to-value mappings, loaded from CSV files or the catalog store.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Row maps a column name to a scalar value (string, float64, or nil).
type Row map[string]any

// Dataset is an ordered sequence of rows with a stable column list.
// Row order matters only for preview and sampling.
type Dataset struct {
	ID      string
	Name    string
	Columns []string
	Rows    []Row
}

// String returns the row's value for col rendered as a string.
// Nil and missing values render as the empty string.
func (r Row) String(col string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Float returns the row's value for col parsed as a float64.
// The second return is false when the value is missing or unparseable.
func (r Row) Float(col string) (float64, bool) {
	v, ok := r[col]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Matches reports whether the row satisfies every filter, comparing the
// row value's string form against the filter value. An empty filter set
// matches every row.
func (r Row) Matches(filters map[string]string) bool {
	for field, want := range filters {
		if r.String(field) != want {
			return false
		}
	}
	return true
}

// Filter returns the subset of rows matching all filters, preserving order.
func Filter(rows []Row, filters map[string]string) []Row {
	if len(filters) == 0 {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Matches(filters) {
			out = append(out, row)
		}
	}
	return out
}

// SampleValues returns up to n non-empty values of col, in row order.
func SampleValues(rows []Row, col string, n int) []string {
	out := make([]string, 0, n)
	for _, row := range rows {
		if len(out) >= n {
			break
		}
		if s := row.String(col); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// AllNumeric reports whether every sampled value of col parses as a float.
// Returns false when the sample is empty.
func AllNumeric(rows []Row, col string, sample int) bool {
	values := SampleValues(rows, col, sample)
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return false
		}
	}
	return true
}

// AllString reports whether every sampled value of col is non-numeric text.
// Returns false when the sample is empty.
func AllString(rows []Row, col string, sample int) bool {
	values := SampleValues(rows, col, sample)
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return false
		}
	}
	return true
}
