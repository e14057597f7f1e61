package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHeader(t *testing.T) {
	number, date := New().ExtractHeader("Invoice\nNumber: 4711\nDate: 24.12.2023")

	assert.Equal(t, "4711", number)
	assert.Equal(t, "2023-12-24", date)
}

func TestExtractHeaderCaseInsensitive(t *testing.T) {
	number, date := New().ExtractHeader("NUMBER: 88\nDATE: 01.01.2024")

	assert.Equal(t, "88", number)
	assert.Equal(t, "2024-01-01", date)
}

func TestExtractHeaderMissingFields(t *testing.T) {
	number, date := New().ExtractHeader("delivery note without labels")

	assert.Empty(t, number)
	assert.Empty(t, date)
}

func TestExtractHeaderInvalidDateKeptRaw(t *testing.T) {
	_, date := New().ExtractHeader("Date: 99.99.2024")

	assert.Equal(t, "99.99.2024", date)
}

func TestExtractHeaderFirstMatchWins(t *testing.T) {
	number, _ := New().ExtractHeader("Number: 111\nNumber: 222")

	assert.Equal(t, "111", number)
}

func TestExtractTotal(t *testing.T) {
	total, diag := New().ExtractTotal("carry over\nTotal amount 1.234,56\npage 3 of 3")

	assert.Nil(t, diag)
	assert.NotNil(t, total)
	assert.Equal(t, "1234.56", total.String())
}

func TestExtractTotalCaseInsensitive(t *testing.T) {
	total, _ := New().ExtractTotal("TOTAL AMOUNT 99,90")

	assert.NotNil(t, total)
	assert.Equal(t, "99.9", total.String())
}

func TestExtractTotalMissing(t *testing.T) {
	total, diag := New().ExtractTotal("no totals on this page")

	assert.Nil(t, total)
	assert.Nil(t, diag)
}

func TestExtractTotalMalformed(t *testing.T) {
	total, diag := New().ExtractTotal("Total amount ,.,")

	assert.Nil(t, total)
	assert.NotNil(t, diag)
	assert.Equal(t, "total_amount", diag.Field)
	assert.Equal(t, ",.,", diag.Value)
}
