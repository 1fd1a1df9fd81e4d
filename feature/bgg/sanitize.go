package bgg

import (
	"html"
	"regexp"
	"strings"
)

var (
	bannerPattern     = regexp.MustCompile(`(\s*(?:â€”|—))?\s*[Dd]escription from the (?:designer|publisher)\s*(?::\s*)?`)
	indentPattern     = regexp.MustCompile(`\n {3,}`)
	numberedPattern   = regexp.MustCompile(`([0-9])\.`)
	blankLinesPattern = regexp.MustCompile(`\n{2,}`)
)

// Sanitize turns a thing description into plain text suitable for a long text field.
// The upstream double-encodes entities, so the text is unescaped once more here.
func Sanitize(description string) string {
	s := html.UnescapeString(description)
	s = bannerPattern.ReplaceAllString(s, "\n\n")
	s = indentPattern.ReplaceAllString(s, "\n* ")
	// Keep "1." from being rendered as a markdown list
	s = numberedPattern.ReplaceAllString(s, `$1\.`)
	s = stripNonASCII(s)
	s = blankLinesPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func stripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < 0x80 {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
