package extractor

import (
	"regexp"
	"strings"
)

var wrappedLetter = regexp.MustCompile(`_([a-zA-Z])_`)

// CleanText strips the underscore artifacts some PDF text renderers leave
// behind while preserving line boundaries: an underscore pair wrapping a
// single letter collapses to that letter, every remaining underscore is
// dropped, and line breaks pass through untouched.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = wrappedLetter.ReplaceAllString(line, "$1")
		lines[i] = strings.ReplaceAll(line, "_", "")
	}
	return strings.Join(lines, "\n")
}
