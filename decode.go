package nconf

import (
	"regexp"
	"strings"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// decodeCtx carries the state local to one recursive decode call, plus
// the import-cycle and depth bookkeeping threaded across recursive
// decodes triggered by an import directive. It is not shared across
// goroutines; the decoder is single-threaded and synchronous.
type decodeCtx struct {
	reader  FileReader
	baseDir string

	visited  map[string]bool // resolved (base-dir-joined, cleaned) paths currently on the import stack
	depth    int
	maxDepth int
}

// Decode parses text and returns the root Object as a Value. Non-string
// input has no representation in Go's type system at this entry point;
// use DecodeAny to reject it with InputTypeError instead for callers
// that only have an interface{}.
func Decode(text string, opts ...Option) (result *Value, err error) {
	defer handleDecodeErr(&err)
	o := resolveOptions(opts)
	ctx := &decodeCtx{
		reader:   o.Reader,
		baseDir:  o.BaseDir,
		visited:  make(map[string]bool),
		maxDepth: o.MaxImportDepth,
	}
	return decodeWithCtx(text, ctx), nil
}

// DecodeAny accepts dynamically-typed input: non-string (and non-[]byte)
// values are rejected with InputTypeError rather than failing to
// compile, for callers bridging from dynamically typed data (e.g. a
// config value read from JSON).
func DecodeAny(in interface{}, opts ...Option) (*Value, error) {
	switch v := in.(type) {
	case string:
		return Decode(v, opts...)
	case []byte:
		return Decode(string(v), opts...)
	default:
		return nil, &DecodeError{
			Reason:  ReasonInputType,
			Message: "decode input must be a string",
		}
	}
}

func decodeWithCtx(text string, ctx *decodeCtx) *Value {
	root := NewObject()
	ld := &lineDecoder{
		lines: splitLines(text),
		ctx:   ctx,
		stack: []frame{{indent: -1, obj: root.Object}},
	}
	ld.run()
	return root
}

// splitLines splits text into lines, stripping a trailing \r from each:
// \r is stripped before content inspection but is not retained as
// content, so CRLF and LF input decode identically.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimSuffix(l, "\r")
	}
	return out
}

// frame is one entry of the indent-keyed stack: the indent of the
// deepest open object and an owning reference to it.
type frame struct {
	indent int
	obj    *Object
}

// lineDecoder is the single forward pass over the input.
type lineDecoder struct {
	lines []string
	ctx   *decodeCtx
	stack []frame
	pos   int
}

func (ld *lineDecoder) run() {
	for ld.pos < len(ld.lines) {
		if isSkippable(ld.lines[ld.pos]) {
			ld.pos++
			continue
		}
		ld.decodeLine()
	}
}

func countIndent(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// isSkippable reports blank lines, and comment lines whose first
// non-space character is # followed by space or EOL.
func isSkippable(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return true
	}
	if trimmed[0] == '#' {
		return len(trimmed) == 1 || trimmed[1] == ' '
	}
	return false
}

func (ld *lineDecoder) decodeLine() {
	lineIdx := ld.pos
	line := ld.lines[lineIdx]
	lineNo := lineIdx + 1
	indent := countIndent(line)
	rest := line[indent:]

	headEnd := strings.IndexByte(rest, ' ')
	if headEnd < 0 {
		headEnd = len(rest)
	}
	head := rest[:headEnd]

	forceArray := false
	if strings.HasPrefix(head, "[]") {
		forceArray = true
		head = head[2:]
	}
	if head == "" || !keyPattern.MatchString(head) {
		failAt(ReasonInvalidKey, lineNo, line, "invalid key %q", head)
	}
	key := head

	valueStart := headEnd
	for valueStart < len(rest) && rest[valueStart] == ' ' {
		valueStart++
	}

	var value *Value
	nextIdx := lineIdx + 1

	switch {
	case valueStart >= len(rest):
		value = NewObject()

	case rest[valueStart] == '[':
		if end, ok := findInlineArrayClose(rest, valueStart); ok {
			body := strings.TrimSpace(rest[valueStart+1 : end])
			if body == "" {
				value = NewArray()
			} else {
				value = NewArray(lexInlineArray(body, ld.ctx, lineNo, line)...)
			}
		} else {
			var arr *Value
			arr, nextIdx = ld.decodeMultilineArray(indent, lineIdx+1)
			value = arr
		}

	case strings.HasPrefix(rest[valueStart:], blockTerminator):
		var content string
		content, nextIdx = collectBlockString(ld.lines, lineIdx+1, indent, lineNo, line)
		value = String(content)

	default:
		token := strings.TrimSpace(rest[valueStart:])
		value = classify(token, ld.ctx, lineNo, line)
	}

	ld.attach(indent, key, value, forceArray)
	ld.pos = nextIdx
}

// attach pops frames while indent <= top.indent, attaches into the
// resulting parent, and pushes a new frame if value is a freshly
// created Object.
func (ld *lineDecoder) attach(indent int, key string, value *Value, forceArray bool) {
	for len(ld.stack) > 1 && indent <= ld.stack[len(ld.stack)-1].indent {
		ld.stack = ld.stack[:len(ld.stack)-1]
	}
	parent := ld.stack[len(ld.stack)-1].obj
	parent.attach(key, value, forceArray)

	if value.Kind == KindObject {
		ld.stack = append(ld.stack, frame{indent: indent, obj: value.Object})
	}
}

// decodeMultilineArray collects a bracketed array spanning multiple
// lines. startIdx is the index of the line right after the key line
// (the one ending in a bare "["). arrayIndent is the key line's indent.
func (ld *lineDecoder) decodeMultilineArray(arrayIndent, startIdx int) (*Value, int) {
	var items []*Value
	i := startIdx

	for i < len(ld.lines) {
		line := ld.lines[i]
		if isSkippable(line) {
			i++
			continue
		}
		indent := countIndent(line)
		trimmed := strings.TrimSpace(line[indent:])

		if trimmed == "]" && indent <= arrayIndent {
			return NewArray(items...), i + 1
		}
		if indent <= arrayIndent {
			failAt(ReasonUnclosedArray, i+1, line, "unclosed multi-line array")
		}

		if trimmed == blockTerminator {
			content, next := collectBlockString(ld.lines, i+1, indent, i+1, line)
			items = append(items, String(content))
			i = next
			continue
		}

		tok := strings.TrimSuffix(trimmed, ",")
		items = append(items, classify(tok, ld.ctx, i+1, line))
		i++
	}

	failAt(ReasonUnclosedArray, startIdx, ld.lines[startIdx-1], "unclosed multi-line array: reached end of input")
	return nil, i // unreachable: failAt panics
}

// findInlineArrayClose scans s starting at the '[' found at openIdx for
// its matching ']' on the same line, respecting nested brackets and
// quoted strings. Returns the index of the matching ']' and true if
// found; false if the line ends first (a multi-line array).
func findInlineArrayClose(s string, openIdx int) (int, bool) {
	depth := 0
	inString := false
	var quote byte
	for i := openIdx; i < len(s); i++ {
		c := s[i]
		if inString {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}
