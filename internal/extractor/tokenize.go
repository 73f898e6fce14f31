package extractor

import (
	"regexp"
	"strings"
)

// Pair is one label:value entry found in a completion. Value keeps the raw
// physical lines joined by "\n".
type Pair struct {
	Label    string
	Value    string
	Bulleted bool
}

// bullet is a list marker: "-", "•", "*", or a list number such as "1." or "2)".
const bullet = `(?:[-•*]|\d{1,2}[.)]\s)`

var (
	// labelLine matches an optional bullet, a run of letters and spaces, and a colon.
	labelLine = regexp.MustCompile(`^\s*(` + bullet + `\s*)?([A-Za-z][A-Za-z \t]*):(.*)$`)
	// bulletedColon matches a bulleted line whose label labelLine rejects,
	// such as "- Current units consumed (kWh): 320".
	bulletedColon = regexp.MustCompile(`^\s*` + bullet + `\s*[^:\n]{1,60}:`)
)

// Tokenize splits a completion into label:value pairs.
//
// A value starts after the colon and continues over following lines until
// one of:
//   - a blank line,
//   - a line starting a bulleted label,
//   - a bulleted line with a label the grammar rejects, which is dropped,
//   - an unbulleted label line, when the current label was unbulleted too,
//   - the end of the text.
//
// Text before the first label line is ignored. Emphasis markers ("**") are
// removed before a line is classified, so "* **Name:** X" is a bulleted label.
func Tokenize(completion string) []Pair {
	var (
		pairs []Pair
		cur   *Pair
		lines []string
	)
	flush := func() {
		if cur == nil {
			return
		}
		cur.Value = strings.TrimSpace(strings.Join(lines, "\n"))
		pairs = append(pairs, *cur)
		cur, lines = nil, nil
	}

	for _, raw := range strings.Split(completion, "\n") {
		line := strings.ReplaceAll(strings.TrimRight(raw, "\r"), "**", "")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		m := labelLine.FindStringSubmatch(line)
		if m != nil {
			bulleted := m[1] != ""
			if cur == nil || bulleted || !cur.Bulleted {
				flush()
				cur = &Pair{Label: strings.TrimSpace(m[2]), Bulleted: bulleted}
				lines = []string{m[3]}
				continue
			}
		} else if bulletedColon.MatchString(line) {
			flush()
			continue
		}
		if cur != nil {
			lines = append(lines, line)
		}
	}
	flush()
	return pairs
}
