package nconf

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolveImport resolves an @import directive. token is the raw scalar
// beginning with "@" (or "@@" for the unwrap form); line and rawLine
// identify the import site for error reporting.
func (ctx *decodeCtx) resolveImport(token string, line int, rawLine string) *Value {
	unwrap := false
	rest := token[1:]
	if strings.HasPrefix(rest, "@") {
		unwrap = true
		rest = rest[1:]
	}

	path := rest
	if q, ok := unwrapQuoted(path); ok {
		path = q
	}

	resolved := path
	if !filepath.IsAbs(path) {
		resolved = filepath.Join(ctx.baseDir, path)
	}
	resolved = filepath.Clean(resolved)

	if ctx.visited[resolved] {
		fail(newDecodeError(ReasonImportCycle, line, rawLine,
			fmt.Sprintf("import cycle detected at %q", path)))
	}
	if ctx.depth+1 > ctx.maxDepth {
		fail(newDecodeError(ReasonImportError, line, rawLine,
			fmt.Sprintf("import %q exceeds max import depth of %d", path, ctx.maxDepth)))
	}

	text, err := ctx.reader.ReadFile(resolved)
	if err != nil {
		fail(wrapImportErr(path, line, rawLine, err))
	}

	childCtx := &decodeCtx{
		reader:   ctx.reader,
		baseDir:  filepath.Dir(resolved),
		visited:  visitedWith(ctx.visited, resolved),
		depth:    ctx.depth + 1,
		maxDepth: ctx.maxDepth,
	}

	result := decodeImported(childCtx, text, path, line, rawLine)

	if !unwrap {
		return result
	}
	return unwrapSingleArray(result, path, line, rawLine)
}

// decodeImported runs a fresh recursive decode of an imported file's
// text, re-raising any failure as an ImportError attributed to the
// outer import site.
func decodeImported(ctx *decodeCtx, text, path string, line int, rawLine string) (result *Value) {
	defer func() {
		if v := recover(); v != nil {
			c, ok := v.(decodeErrorCarrier)
			if !ok {
				panic(v)
			}
			fail(wrapImportErr(path, line, rawLine, c.err))
		}
	}()
	return decodeWithCtx(text, ctx)
}

// unwrapSingleArray implements the @@ form: the parsed object must have
// exactly one key whose value is an Array; violations fail
// ImportShapeError.
func unwrapSingleArray(result *Value, path string, line int, rawLine string) *Value {
	if result.Object.Len() != 1 {
		failAt(ReasonImportShapeError, line, rawLine,
			"import %q must have exactly one key to unwrap with @@", path)
	}
	only := result.Object.Items()[0]
	if only.Value.Kind != KindArray {
		failAt(ReasonImportShapeError, line, rawLine,
			"import %q's single key %q must be an array to unwrap with @@", path, only.Key)
	}
	return only.Value
}

func visitedWith(visited map[string]bool, path string) map[string]bool {
	out := make(map[string]bool, len(visited)+1)
	for k, v := range visited {
		out[k] = v
	}
	out[path] = true
	return out
}
