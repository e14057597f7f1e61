package extractor

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseEuropeanDecimal converts a European-formatted amount into an exact
// decimal: "." separates thousands and "," marks the decimal point, so
// "1.234,56" yields 1234.56.
func ParseEuropeanDecimal(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(s, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}
