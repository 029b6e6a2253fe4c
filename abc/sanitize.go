package abc

import (
	"regexp"
	"strings"
)

// headerLine matches ABC information fields like "K:Dmaj" or "L:1/8".
// Only lines starting exactly at column zero count; anything else is
// body notation.
var headerLine = regexp.MustCompile(`^[A-Za-z]:`)

// illegalBody strips everything outside the notation alphabet from
// body lines. Colons are excluded on purpose so a stripped body line
// can never turn into something header-shaped on a later pass.
var illegalBody = regexp.MustCompile(`[^A-Ga-gzZ0-9/\[\]#b| ]`)

// Sanitize normalizes generated notation before parsing. It never
// fails and is idempotent:
//   - blank lines are dropped
//   - header lines are kept verbatim, but an exact duplicate of an
//     earlier header line is dropped (a different value for the same
//     field kind is retained)
//   - body lines are stripped to the legal notation alphabet
//   - a default note length header is injected when none is present
func Sanitize(text string) string {
	var out []string
	seenHeaders := make(map[string]bool)
	hasUnit := false

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if headerLine.MatchString(line) {
			if seenHeaders[line] {
				continue
			}
			seenHeaders[line] = true
			if strings.HasPrefix(line, "L:") {
				hasUnit = true
			}
			out = append(out, line)
			continue
		}
		body := illegalBody.ReplaceAllString(line, "")
		if strings.TrimSpace(body) == "" {
			continue
		}
		out = append(out, body)
	}

	if !hasUnit {
		out = append([]string{"L:1/8"}, out...)
	}
	return strings.Join(out, "\n")
}
