// Package export serializes record collections into downloadable CSV payloads.
package export

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Missing is rendered for columns whose accessor returns an empty string.
const Missing = "N/A"

// Column pairs a header label with a value accessor. Accessors return the
// already formatted cell text; an empty result renders as Missing.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Rows renders a header line followed by one line per record, comma
// delimited. Cells containing the delimiter, a quote or a newline are quoted
// RFC 4180 style so a plain split round-trips for ordinary values.
func Rows[T any](records []T, columns []Column[T]) []byte {
	var b strings.Builder
	for i, col := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escape(col.Header))
	}
	b.WriteByte('\n')
	for _, record := range records {
		for i, col := range columns {
			if i > 0 {
				b.WriteByte(',')
			}
			value := col.Value(record)
			if value == "" {
				value = Missing
			}
			b.WriteString(escape(value))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// KeyValueRows renders a two-column report of already paired cells, used for
// summary exports where each line is a metric and its value.
func KeyValueRows(pairs [][2]string) []byte {
	var b strings.Builder
	for _, pair := range pairs {
		b.WriteString(escape(pair[0]))
		if pair[0] != "" || pair[1] != "" {
			b.WriteByte(',')
			b.WriteString(escape(pair[1]))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func escape(value string) string {
	if !strings.ContainsAny(value, ",\"\n\r") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// Filename stamps an export name with the current date, e.g.
// "donations-2026-08-30.csv".
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", prefix, now.Format("2006-01-02"))
}

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats a dollar amount with grouping separators and no cents,
// matching the display formatting used across the dashboards.
func Currency(amount float64) string {
	return printer.Sprintf("$%.0f", amount)
}

// Amount formats a raw numeric cell with two decimal places.
func Amount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// Timestamp formats a cell timestamp, blank (missing) for the zero time.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
