package extractor

import (
	"github.com/shopspring/decimal"

	"github.com/otabekdev/invoice-data-extraction/dto"
)

// ExtractTotal finds the first grand-total figure in the text. A missing
// total returns (nil, nil); one that matched the label but would not
// convert returns (nil, diagnostic).
func (e *Extractor) ExtractTotal(text string) (*decimal.Decimal, *dto.Diagnostic) {
	m := e.patterns.Total.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	total, err := ParseEuropeanDecimal(m[1])
	if err != nil {
		return nil, &dto.Diagnostic{Field: "total_amount", Value: m[1], Reason: err.Error()}
	}
	return &total, nil
}
