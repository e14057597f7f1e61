package extractor

import "time"

// ExtractHeader pulls the invoice number and date from the given text,
// intended to be the document's first page. A missing label leaves the
// corresponding value empty; that is a normal outcome, not an error.
func (e *Extractor) ExtractHeader(text string) (number, date string) {
	if m := e.patterns.InvoiceNumber.FindStringSubmatch(text); m != nil {
		number = m[1]
	}
	if m := e.patterns.InvoiceDate.FindStringSubmatch(text); m != nil {
		date = isoDate(m[1])
	}
	return number, date
}

// isoDate converts DD.MM.YYYY to YYYY-MM-DD. A string that is not a valid
// calendar date is returned unchanged so the caller still sees the raw
// value.
func isoDate(s string) string {
	t, err := time.Parse("02.01.2006", s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}
