package nconf

import (
	"strconv"
	"strings"
)

// Encode converts v back into conformant NCONF text: empty text for
// Null/Undefined, a single encoded scalar for a non-object/non-array v,
// otherwise the multi-line object/array encoding below.
func Encode(v *Value) string {
	if v == nil || v.Kind == KindNull || v.Kind == KindUndefined {
		return ""
	}
	e := &encoder{}
	switch v.Kind {
	case KindObject:
		e.writeObject(0, v.Object)
	case KindArray:
		e.writeTopLevelArray(v.Array)
	default:
		e.writeScalar(v)
	}
	return e.buf.String()
}

type encoder struct {
	buf strings.Builder
}

// writeObject dispatches per key for an object at the given indent.
func (e *encoder) writeObject(indent int, obj *Object) {
	pad := strings.Repeat(" ", indent)
	for _, item := range obj.Items() {
		value := item.Value
		switch {
		case value.Kind == KindArray && len(value.Array) > 0 && anyPlainObject(value.Array):
			e.writeRepeatedKeyBlock(indent, pad, item.Key, value.Array)

		case value.Kind == KindArray && len(value.Array) == 1:
			e.buf.WriteString(pad)
			e.buf.WriteString("[]")
			e.buf.WriteString(item.Key)
			e.buf.WriteString(" ")
			e.writeInlineElem(value.Array[0])
			e.buf.WriteByte('\n')

		case value.Kind == KindArray:
			e.writeKeyedArray(indent, pad, item.Key, value.Array)

		case value.Kind == KindObject:
			e.buf.WriteString(pad)
			e.buf.WriteString(item.Key)
			e.buf.WriteByte('\n')
			e.writeObject(indent+2, value.Object)

		case value.Kind == KindString && isBlockStringEligible(value.Str):
			e.buf.WriteString(pad)
			e.buf.WriteString(item.Key)
			e.buf.WriteString(" ")
			e.writeKeyedBlockString(indent, value.Str)

		default:
			e.buf.WriteString(pad)
			e.buf.WriteString(item.Key)
			e.buf.WriteString(" ")
			e.writeScalar(value)
			e.buf.WriteByte('\n')
		}
	}
}

// writeRepeatedKeyBlock emits one repeated-key line/block per element.
// The condition that routes here requires only one object element, not
// every element, so that arrays mixing objects and non-objects at the
// same repeated key (a shape repeated-key merging happily produces)
// still round-trip, instead of falling into the bracket-array branch
// where a nested Object has no valid literal form (see DESIGN.md).
func (e *encoder) writeRepeatedKeyBlock(indent int, pad, key string, elems []*Value) {
	for _, elem := range elems {
		if elem.Kind == KindObject {
			e.buf.WriteString(pad)
			e.buf.WriteString(key)
			e.buf.WriteByte('\n')
			e.writeObject(indent+2, elem.Object)
			continue
		}
		e.buf.WriteString(pad)
		e.buf.WriteString(key)
		e.buf.WriteString(" ")
		if elem.Kind == KindString && isBlockStringEligible(elem.Str) {
			e.writeKeyedBlockString(indent, elem.Str)
			continue
		}
		e.writeScalar(elem)
		e.buf.WriteByte('\n')
	}
}

// writeKeyedArray emits "key" followed by an array value that contains
// no Object elements (those are routed to writeRepeatedKeyBlock above),
// choosing inline vs multi-line layout.
func (e *encoder) writeKeyedArray(indent int, pad, key string, elems []*Value) {
	e.buf.WriteString(pad)
	e.buf.WriteString(key)
	e.buf.WriteString(" ")
	if arrayIsInline(elems) {
		e.buf.WriteString(encodeInlineArray(elems))
		e.buf.WriteByte('\n')
		return
	}
	e.buf.WriteString("[\n")
	itemPad := strings.Repeat(" ", indent+2)
	for _, elem := range elems {
		e.writeMultilineArrayItem(indent+2, itemPad, elem)
	}
	e.buf.WriteString(pad)
	e.buf.WriteString("]\n")
}

func (e *encoder) writeMultilineArrayItem(indent int, itemPad string, elem *Value) {
	if elem.Kind == KindString && isBlockStringEligible(elem.Str) {
		e.writeBlockString(indent, itemPad, elem.Str)
		return
	}
	e.buf.WriteString(itemPad)
	e.buf.WriteString(e.inlineScalarOrArray(elem))
	e.buf.WriteByte('\n')
}

// writeTopLevelArray handles Encode(arrayValue) directly, without an
// enclosing object/key — not exercised by Decode's output (the root is
// always an Object) but accepted since Encode's contract is "any Value".
func (e *encoder) writeTopLevelArray(elems []*Value) {
	if arrayIsInline(elems) {
		e.buf.WriteString(encodeInlineArray(elems))
		e.buf.WriteByte('\n')
		return
	}
	e.buf.WriteString("[\n")
	for _, elem := range elems {
		e.writeMultilineArrayItem(2, "  ", elem)
	}
	e.buf.WriteString("]\n")
}

func anyPlainObject(elems []*Value) bool {
	for _, e := range elems {
		if e.Kind == KindObject {
			return true
		}
	}
	return false
}

// arrayIsInline decides inline vs multi-line layout: a nested Array
// element forces inline regardless of length, since a multi-line
// array's item lines are scanned one physical line at a time and
// cannot themselves embed a bracket that spans further lines.
func arrayIsInline(elems []*Value) bool {
	for _, e := range elems {
		if e.Kind == KindArray {
			return true
		}
	}
	if len(elems) > 3 {
		return false
	}
	for _, e := range elems {
		if e.Kind == KindString && isBlockStringEligible(e.Str) {
			return false
		}
	}
	return true
}

func encodeInlineArray(elems []*Value) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString((&encoder{}).inlineScalarOrArray(e))
	}
	b.WriteByte(']')
	return b.String()
}

// inlineScalarOrArray renders a value as it would appear inside an
// inline (single-line) array or as a multi-line-array item: scalars via
// writeScalar under the array-element quoting rule, nested arrays always
// inline regardless of their own length (see arrayIsInline).
func (e *encoder) inlineScalarOrArray(v *Value) string {
	if v.Kind == KindArray {
		return encodeInlineArray(v.Array)
	}
	tmp := &encoder{}
	tmp.writeScalarCtx(v, true)
	return tmp.buf.String()
}

func (e *encoder) writeInlineElem(v *Value) {
	e.buf.WriteString(e.inlineScalarOrArray(v))
}

// writeScalar encodes v per its Kind.
func (e *encoder) writeScalar(v *Value) {
	e.writeScalarCtx(v, false)
}

// writeScalarCtx is writeScalar with inArray indicating whether v is
// being written as an inline- or multi-line-array element, which needs
// the stricter quoting rule in needsArrayElementQuoting.
func (e *encoder) writeScalarCtx(v *Value, inArray bool) {
	switch v.Kind {
	case KindNull:
		e.buf.WriteString("null")
	case KindUndefined:
		e.buf.WriteString("undefined")
	case KindBool:
		if v.Bool {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case KindNumber:
		e.buf.WriteString(strconv.FormatFloat(v.Number, 'g', -1, 64))
	case KindDate:
		e.buf.WriteString(v.Date.UTC().Format("2006-01-02T15:04:05.000Z"))
	case KindString:
		e.writeStringScalar(v.Str, inArray)
	default:
		failf("cannot encode %s as a scalar", v.Kind)
	}
}

// writeStringScalar picks among quoted and plain forms. Block strings
// can only be emitted where the caller has already established an
// indent/key context (writeObject, array items); a bare top-level
// multi-line string scalar falls back to quoting with escaped \n, since
// Encode's scalar-only contract has no indent to hang a """ block on.
func (e *encoder) writeStringScalar(s string, inArray bool) {
	if strings.Contains(s, "\n") {
		e.buf.WriteString(quoteString(s))
		return
	}
	quote := needsQuoting(s)
	if inArray {
		quote = quote || needsArrayElementQuoting(s)
	}
	if quote {
		e.buf.WriteString(quoteString(s))
		return
	}
	e.buf.WriteString(s)
}

// isBlockStringEligible reports whether s can safely render as a """
// block: it must contain a newline, and must not start with one, since
// collectBlockString drops blank lines seen before the block indent is
// established from the first body line — a leading "\n" would silently
// vanish on decode instead of round-tripping. A string that fails this
// still needs quoting; writeStringScalar handles that unconditionally
// for any string containing "\n".
func isBlockStringEligible(s string) bool {
	return strings.Contains(s, "\n") && !strings.HasPrefix(s, "\n")
}

// writeBlockString emits a standalone """ ... """ block as a multi-line
// array item: an item line that is exactly """ opens a block string
// with no key prefix. itemPad is both the opening and closing line's
// indent; the body is indented two deeper.
func (e *encoder) writeBlockString(itemIndent int, itemPad, content string) {
	e.buf.WriteString(itemPad)
	e.buf.WriteString(blockTerminator)
	e.buf.WriteByte('\n')
	e.writeBlockBody(itemIndent+2, content)
	e.buf.WriteString(itemPad)
	e.buf.WriteString(blockTerminator)
	e.buf.WriteByte('\n')
}

// writeKeyedBlockString emits the "key \"\"\"" opening (on the line the
// caller has already started with "key "), the indented body, and a
// closing """ at the key's own indent.
func (e *encoder) writeKeyedBlockString(keyIndent int, content string) {
	e.buf.WriteString(blockTerminator)
	e.buf.WriteByte('\n')
	e.writeBlockBody(keyIndent+2, content)
	e.buf.WriteString(strings.Repeat(" ", keyIndent))
	e.buf.WriteString(blockTerminator)
	e.buf.WriteByte('\n')
}

func (e *encoder) writeBlockBody(bodyIndent int, content string) {
	bodyPad := strings.Repeat(" ", bodyIndent)
	for _, line := range strings.Split(content, "\n") {
		if line != "" {
			e.buf.WriteString(bodyPad)
			e.buf.WriteString(line)
		}
		e.buf.WriteByte('\n')
	}
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if strings.ContainsAny(s, " \t") {
		return true
	}
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	switch s {
	case "true", "false", "null", "undefined":
		return true
	}
	if looksLikeDate(s) {
		return true
	}
	// These prefixes collide with decode-side syntax (import directive,
	// inline/multi-line array open, block-string open): left unquoted
	// they'd re-decode as something other than a plain string.
	if strings.HasPrefix(s, "@") || strings.HasPrefix(s, "[") || strings.HasPrefix(s, blockTerminator) {
		return true
	}
	return false
}

// needsArrayElementQuoting extends needsQuoting for values written as an
// inline- or multi-line-array element: a comma or close-bracket anywhere
// in the string is unsafe there even though it's harmless as a plain
// object scalar, since the array forms can re-split or terminate on it.
func needsArrayElementQuoting(s string) bool {
	return needsQuoting(s) || strings.ContainsAny(s, ",]")
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func quoteString(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}
