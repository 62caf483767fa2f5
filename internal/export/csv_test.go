package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name   string
	Amount string
}

var rowColumns = []Column[row]{
	{Header: "Name", Value: func(r row) string { return r.Name }},
	{Header: "Amount", Value: func(r row) string { return r.Amount }},
}

func TestRowsRoundTrip(t *testing.T) {
	records := []row{
		{Name: "Clean Water", Amount: "50.00"},
		{Name: "School Fund", Amount: "125.50"},
	}
	out := string(Rows(records, rowColumns))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Amount", lines[0])
	// Plain values split back into the exact cells that went in.
	for i, record := range records {
		cells := strings.Split(lines[i+1], ",")
		require.Len(t, cells, 2)
		assert.Equal(t, record.Name, cells[0])
		assert.Equal(t, record.Amount, cells[1])
	}
}

func TestRowsMissingValue(t *testing.T) {
	out := string(Rows([]row{{Name: "Anonymous"}}, rowColumns))
	assert.Equal(t, "Name,Amount\nAnonymous,N/A\n", out)
}

func TestRowsEscaping(t *testing.T) {
	records := []row{
		{Name: `Food, water and "shelter"`, Amount: "10.00"},
		{Name: "line\nbreak", Amount: "20.00"},
	}
	out := string(Rows(records, rowColumns))
	assert.Contains(t, out, `"Food, water and ""shelter""",10.00`)
	assert.Contains(t, out, "\"line\nbreak\",20.00")
}

func TestRowsEmptyInput(t *testing.T) {
	out := string(Rows(nil, rowColumns))
	assert.Equal(t, "Name,Amount\n", out, "header only")
}

func TestKeyValueRows(t *testing.T) {
	out := string(KeyValueRows([][2]string{
		{"Metric", "Value"},
		{"Total Amount", "1250.00"},
		{"", ""},
		{"Top Campaigns", ""},
	}))
	assert.Equal(t, "Metric,Value\nTotal Amount,1250.00\n\nTop Campaigns,\n", out)
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "donations-2026-08-30.csv", Filename("donations", now))
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$1,250", Currency(1250))
	assert.Equal(t, "$0", Currency(0))
}

func TestTimestamp(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "2026-08-30 14:05:09", Timestamp(at))
	assert.Equal(t, "", Timestamp(time.Time{}))
}
