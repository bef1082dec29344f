package nconf

import "strings"

// lexInlineArray walks body character by character, respecting nested
// [...] and quoted strings, and returns the classified items.
func lexInlineArray(body string, ctx *decodeCtx, line int, rawLine string) []*Value {
	toks := splitInlineArray(body, line, rawLine)
	items := make([]*Value, len(toks))
	for i, tok := range toks {
		items[i] = classifyArrayToken(tok, ctx, line, rawLine)
	}
	return items
}

// classifyArrayToken classifies one flushed inline-array item. A token
// that is itself a nested bracketed array (starts with '[' and ends with
// ']') recurses through the same lexer rather than through classify,
// which only handles scalars and import directives.
func classifyArrayToken(tok string, ctx *decodeCtx, line int, rawLine string) *Value {
	trimmed := strings.TrimSpace(tok)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
		if inner == "" {
			return NewArray()
		}
		return NewArray(lexInlineArray(inner, ctx, line, rawLine)...)
	}
	return classify(trimmed, ctx, line, rawLine)
}

// splitInlineArray splits body into raw (untrimmed) item tokens, each
// either a plain scalar/import token or a complete "[...]" nested-array
// token.
func splitInlineArray(body string, line int, rawLine string) []string {
	var toks []string
	var cur strings.Builder
	depth := 0
	inString := false
	var quote byte
	flush := func() {
		t := strings.TrimSpace(cur.String())
		if t != "" {
			toks = append(toks, t)
		}
		cur.Reset()
	}
	i := 0
	for i < len(body) {
		c := body[i]
		if inString {
			cur.WriteByte(c)
			if c == '\\' && i+1 < len(body) {
				i++
				cur.WriteByte(body[i])
				i++
				continue
			}
			if c == quote {
				inString = false
			}
			i++
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
			cur.WriteByte(c)
		case '[':
			depth++
			cur.WriteByte(c)
		case ']':
			if depth == 0 {
				failAt(ReasonUnexpectedCloseBracket, line, rawLine, "unexpected close bracket in inline array")
			}
			depth--
			cur.WriteByte(c)
		case ',':
			if depth == 0 {
				flush()
				i++
				continue
			}
			cur.WriteByte(c)
		default:
			cur.WriteByte(c)
		}
		i++
	}
	flush()
	if inString {
		failAt(ReasonUnclosedString, line, rawLine, "unclosed string in inline array")
	}
	if depth > 0 {
		failAt(ReasonUnclosedArray, line, rawLine, "unclosed array in inline array body")
	}
	return toks
}
