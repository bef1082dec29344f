package nconf

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// classifyTable is a cheap first-byte dispatch hint that avoids running
// every candidate parser (number, date, quoted string) against every
// token.
var classifyTable [256]byte

func init() {
	classifyTable['+'] = 'S'
	classifyTable['-'] = 'S'
	for _, c := range "0123456789" {
		classifyTable[c] = 'D'
	}
}

var numberGrammar = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// dateLayouts enumerates the accepted timestamp forms: YYYY-MM-DD
// optionally followed by [T ]HH:MM(:SS(.fff)?)?(Z|±HH:MM)?.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05.000Z07:00",
}

// classify maps an already-trimmed token to a typed Value. line/rawLine
// identify the source line the token came from, so that an import
// directive which itself fails can report the outer site.
func classify(t string, ctx *decodeCtx, line int, rawLine string) *Value {
	switch t {
	case "null":
		return Null()
	case "undefined":
		return Undefined()
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}

	if strings.HasPrefix(t, "@") {
		return ctx.resolveImport(t, line, rawLine)
	}

	if t != "" {
		hint := classifyTable[t[0]]
		if hint == 'S' || hint == 'D' {
			if numberGrammar.MatchString(t) {
				if n, err := strconv.ParseFloat(t, 64); err == nil {
					return Number(n)
				}
			}
			if looksLikeDate(t) {
				if ts, ok := parseDate(t); ok {
					return Date(ts)
				}
			}
		}
	}

	if q, ok := unwrapQuoted(t); ok {
		return String(decodeEscapes(q))
	}

	return String(t)
}

// looksLikeDate applies the shape test: length >= 10, first char a
// digit, and dashes at positions 4 and 7 (YYYY-MM-DD...).
func looksLikeDate(t string) bool {
	if len(t) < 10 {
		return false
	}
	if t[0] < '0' || t[0] > '9' {
		return false
	}
	return t[4] == '-' && t[7] == '-'
}

func parseDate(t string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, t); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// unwrapQuoted strips a single matching pair of outer quotes (" or ').
func unwrapQuoted(t string) (string, bool) {
	if len(t) >= 2 {
		first, last := t[0], t[len(t)-1]
		if (first == '"' || first == '\'') && first == last {
			return t[1 : len(t)-1], true
		}
	}
	return "", false
}

// decodeEscapes applies the escape rules: \n \r \t \" \' \\ decode to
// their respective characters; any other \x decodes to x literally.
func decodeEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
