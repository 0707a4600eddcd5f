// Package normalizer converts raw HTML into plain text. It is the last
// resort of the extraction chain and the text backend of the targeted
// extractor: everything that leaves the pipeline has been through Normalize.
package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	scriptRe     = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	commentRe    = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	decEntityRe  = regexp.MustCompile(`&#(\d+);`)
	hexEntityRe  = regexp.MustCompile(`&#[xX]([0-9a-fA-F]+);`)
	spaceRunRe   = regexp.MustCompile(`[ \t\r\f]+`)
	blankRunRe   = regexp.MustCompile(`\n\s*\n(\s*\n)+`)
	spaceAroundN = regexp.MustCompile(` *\n *`)
)

// namedEntities is the fixed decode set. Anything outside it passes through
// untouched.
var namedEntities = map[string]string{
	"&nbsp;": " ",
	"&lt;":   "<",
	"&gt;":   ">",
	"&quot;": `"`,
	"&#39;":  "'",
	"&apos;": "'",
}

// Normalize strips html down to plain text. Order matters: script/style
// blocks go first (their content is not page text), then comments, then the
// remaining tags, then entity decoding, then whitespace collapse. It never
// panics; any internal failure yields "", which callers must treat as
// extraction failure rather than an empty page.
func Normalize(html string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	if html == "" {
		return ""
	}

	text = scriptRe.ReplaceAllString(html, " ")
	text = styleRe.ReplaceAllString(text, " ")
	text = commentRe.ReplaceAllString(text, " ")

	// Each tag becomes a space so adjacent words do not fuse across tag
	// boundaries ("<td>a</td><td>b</td>" must not read "ab").
	text = tagRe.ReplaceAllString(text, " ")

	text = decodeEntities(text)

	text = spaceRunRe.ReplaceAllString(text, " ")
	text = spaceAroundN.ReplaceAllString(text, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

func decodeEntities(s string) string {
	for entity, replacement := range namedEntities {
		s = strings.ReplaceAll(s, entity, replacement)
	}

	s = decEntityRe.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.Atoi(m[2 : len(m)-1])
		if err != nil || n <= 0 || n > 0x10FFFF {
			return m
		}
		return string(rune(n))
	})

	s = hexEntityRe.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.ParseInt(m[3:len(m)-1], 16, 32)
		if err != nil || n <= 0 || n > 0x10FFFF {
			return m
		}
		return string(rune(n))
	})

	// Ampersand last so decoded text cannot spawn new entity sequences
	return strings.ReplaceAll(s, "&amp;", "&")
}
