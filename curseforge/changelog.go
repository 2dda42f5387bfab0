package curseforge

import (
	"html"
	"strings"
	"unicode"
)

var breakReplacer = strings.NewReplacer(
	"<p>", "",
	"</p>", "\n",
	"<br>", "\n",
	"<br/>", "\n",
	"<br />", "\n",
)

// SanitizeChangelog converts an HTML changelog into plain text: entities are
// decoded, non-ASCII noise is stripped, paragraph and line-break markup
// becomes newlines, and the result is trimmed.
func SanitizeChangelog(htmlText string) string {
	decoded := html.UnescapeString(htmlText)

	var b strings.Builder
	b.Grow(len(decoded))
	for _, r := range decoded {
		if r > unicode.MaxASCII && !unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(breakReplacer.Replace(b.String()))
}
