package extractor

import (
	"strings"

	"github.com/otabekdev/invoice-data-extraction/dto"
)

// orderContext is the (number, date) pair of the most recent order marker.
// Items snapshot it at match time; later markers never rewrite earlier
// items.
type orderContext struct {
	number string
	date   string
}

// ParseItems scans normalized text line by line and returns every purchase
// line in document order, together with diagnostics for lines that matched
// the item shape but carried numbers that would not convert.
func (e *Extractor) ParseItems(text string) ([]dto.LineItem, []dto.Diagnostic) {
	text = CleanText(text)
	lines := strings.Split(text, "\n")

	items := []dto.LineItem{}
	var diags []dto.Diagnostic
	var order orderContext

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if next, ok := e.matchOrder(line); ok {
			order = next
			i++
			continue
		}

		item, diag := e.matchItem(line, i+1)
		if diag != nil {
			diags = append(diags, *diag)
			i++
			continue
		}
		if item == nil {
			i++
			continue
		}

		item.OrderNumber = order.number
		item.OrderDate = order.date
		items = append(items, *item)

		// Jump over the item's free-text description. The stop line is not
		// consumed; the main loop examines it next.
		i = e.skipDescription(lines, i+1)
	}

	return items, diags
}

// matchOrder recognizes an order marker line and returns the new context.
func (e *Extractor) matchOrder(line string) (orderContext, bool) {
	m := e.patterns.Order.FindStringSubmatch(line)
	if m == nil {
		return orderContext{}, false
	}
	return orderContext{number: m[1], date: isoDate(m[2])}, true
}

// matchItem tests one line against the item pattern. It returns (nil, nil)
// when the line is not an item, and (nil, diagnostic) when the line looked
// like an item but a numeric field failed to convert.
func (e *Extractor) matchItem(line string, lineNo int) (*dto.LineItem, *dto.Diagnostic) {
	m := e.patterns.Item.FindStringSubmatch(line)
	if m == nil {
		return nil, nil
	}

	// Groups: 1 position, 2 CA code, 3 country of origin, 4 quantity,
	// 5 unit, 6 unit price, 7 per-basis, 8 line total. Country and
	// per-basis pin the line shape but are not carried into the record.
	quantity, err := ParseEuropeanDecimal(m[4])
	if err != nil {
		return nil, &dto.Diagnostic{Line: lineNo, Field: "quantity", Value: m[4], Reason: err.Error()}
	}
	unitPrice, err := ParseEuropeanDecimal(m[6])
	if err != nil {
		return nil, &dto.Diagnostic{Line: lineNo, Field: "unit_price", Value: m[6], Reason: err.Error()}
	}
	lineTotal, err := ParseEuropeanDecimal(m[8])
	if err != nil {
		return nil, &dto.Diagnostic{Line: lineNo, Field: "line_total", Value: m[8], Reason: err.Error()}
	}

	return &dto.LineItem{
		Position:    m[1],
		CatalogCode: m[2],
		Quantity:    quantity,
		Unit:        m[5],
		UnitPrice:   unitPrice,
		LineTotal:   lineTotal,
	}, nil
}

// skipDescription advances past the free text trailing an item and returns
// the index of the first line the scan should examine next: a new item
// line, a marker line (order, delivery, shipping), a blank line, or the end
// of input.
func (e *Extractor) skipDescription(lines []string, start int) int {
	j := start
	for j < len(lines) {
		line := strings.TrimSpace(lines[j])
		if line == "" {
			break
		}
		if e.patterns.ItemStart.MatchString(line) {
			break
		}
		if e.patterns.Marker.MatchString(line) {
			break
		}
		j++
	}
	return j
}
