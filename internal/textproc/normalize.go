package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reParaBreak  = regexp.MustCompile(`\n\s*\n`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// Normalize stitches ordered page texts into one clean blob: NFKC unicode
// normalization, control characters stripped, whitespace runs collapsed to a
// single space, paragraph breaks kept as single newlines, pages joined with a
// single newline. Total over all inputs; empty input yields "".
func Normalize(pages []string) string {
	cleaned := make([]string, 0, len(pages))
	for _, page := range pages {
		if p := normalizePage(page); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "\n")
}

func normalizePage(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = stripControl(s)

	paragraphs := reParaBreak.Split(s, -1)
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.TrimSpace(reWhitespace.ReplaceAllString(p, " "))
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}

// stripControl maps page breaks and other control characters to plain
// whitespace so the collapse pass can absorb them. Newlines survive because
// they carry paragraph structure.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if r == '\r' || r == '\t' || r == '\f' || r == '\v' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
