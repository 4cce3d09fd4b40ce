package store

import (
	"strconv"
	"time"
)

// Row is one record of a collection. Every cell is a string at this
// boundary; numeric and boolean fields are parsed on demand.
type Row map[string]string

// Float parses a numeric cell, treating empty or malformed values as 0.
func (r Row) Float(key string) float64 {
	v, err := strconv.ParseFloat(r[key], 64)
	if err != nil {
		return 0
	}
	return v
}

// Int parses an integer cell, treating empty or malformed values as 0.
func (r Row) Int(key string) int {
	v, err := strconv.Atoi(r[key])
	if err != nil {
		return int(r.Float(key))
	}
	return v
}

// Bool parses a boolean cell; "TRUE"/"true"/"1" are true, anything else false.
func (r Row) Bool(key string) bool {
	switch r[key] {
	case "TRUE", "True", "true", "1":
		return true
	}
	return false
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a copy of the row with the partial fields applied.
func (r Row) Merge(fields Row) Row {
	out := r.Clone()
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// FormatFloat renders a monetary or quantity value for a cell.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatInt renders an integer value for a cell.
func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// Timestamp renders a time for created_at/updated_at cells.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
