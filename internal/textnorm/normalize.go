// Package textnorm cleans raw text pulled from PDFs, OCR and model output.
package textnorm

import (
	"regexp"
	"strings"
)

var reCID = regexp.MustCompile(`\(cid:\d+\)`)

// Normalize removes "**" emphasis markers and "(cid:N)" glyph artifacts,
// collapses every whitespace run to one space and trims the result.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	// removing one artifact can expose another, e.g. "*(cid:1)*"
	for {
		next := strings.ReplaceAll(reCID.ReplaceAllString(s, ""), "**", "")
		if next == s {
			break
		}
		s = next
	}
	return strings.Join(strings.Fields(s), " ")
}
