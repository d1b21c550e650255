package types

import (
	"regexp"
	"strings"
)

// maxCodeLen bounds the derived standard code when the raw string does not
// match any known standards-body pattern.
const maxCodeLen = 100

// ParsedStandard is the result of splitting a raw standard string into its
// derived fields. FullCode carries the cleaned raw string and is the
// identity key of the standard.
type ParsedStandard struct {
	Body     string
	Code     string
	Year     *string
	FullCode string
}

// bodyPatterns match standard codes of the known standards bodies. The
// captured digits group allows dash- or space-separated part numbers
// ("60068-2-1", "60335 1").
var bodyPatterns = []struct {
	re   *regexp.Regexp
	body string
}{
	{regexp.MustCompile(`(IEC)\s*(\d+[-\s]?\d*[-\s]?\d*[-\s]?\d*)`), "IEC"},
	{regexp.MustCompile(`(IS)\s*(\d+[-\s]?\d*[-\s]?\d*[-\s]?\d*)`), "IS"},
	{regexp.MustCompile(`(ISO)\s*(\d+[-\s]?\d*[-\s]?\d*[-\s]?\d*)`), "ISO"},
	{regexp.MustCompile(`(CISPR)[-\s]?(\d+[-\s]?\d*[-\s]?\d*[-\s]?\d*)`), "CISPR"},
}

var (
	yearRe       = regexp.MustCompile(`(\d{4})`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// blankStandard reports whether the raw standard text is empty or one of
// the placeholder values spreadsheet exports produce for blank cells.
func blankStandard(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "nan", "none":
		return true
	}
	return false
}

// ParseStandard splits a raw standard string into (body, code, year) plus
// the cleaned full code. Known bodies (IEC, IS, ISO, CISPR) are matched by
// pattern; otherwise the whole cleaned string becomes the code, truncated
// to a bounded length, with the body taken from a recognizable leading
// token. Year is the first 4-digit substring, if any. A blank or
// placeholder input parses to the sentinel standard.
func ParseStandard(raw string) ParsedStandard {
	if blankStandard(raw) {
		return ParsedStandard{
			Body:     SentinelBody,
			Code:     SentinelCode,
			FullCode: SentinelFullCode,
		}
	}

	full := strings.TrimSpace(raw)
	upper := strings.ToUpper(full)

	for _, p := range bodyPatterns {
		m := p.re.FindStringSubmatch(upper)
		if m == nil {
			continue
		}
		code := whitespaceRe.ReplaceAllString(strings.TrimSpace(m[2]), "-")
		return ParsedStandard{
			Body:     p.body,
			Code:     strings.TrimSpace(p.body + " " + code),
			Year:     extractYear(full),
			FullCode: full,
		}
	}

	// No known pattern: the cleaned raw string is the code.
	code := whitespaceRe.ReplaceAllString(full, " ")
	if runes := []rune(code); len(runes) > maxCodeLen {
		code = string(runes[:maxCodeLen])
	}

	body := SentinelBody
	for _, prefix := range []string{"IEC", "IS ", "ISO", "CISPR"} {
		if strings.HasPrefix(strings.ToUpper(code), prefix) {
			if fields := strings.Fields(code); len(fields) > 0 {
				body = fields[0]
			}
			break
		}
	}

	return ParsedStandard{
		Body:     body,
		Code:     code,
		Year:     extractYear(full),
		FullCode: full,
	}
}

// extractYear returns the first 4-digit substring of s, or nil.
func extractYear(s string) *string {
	m := yearRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	year := m[1]
	return &year
}
