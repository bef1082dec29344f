package nconf

import "strings"

const blockTerminator = `"""`

// collectBlockString scans lines starting at startIdx (the line after the
// header carrying the opening """), determines the block indent from the
// first non-blank body line, strips that common indent from subsequent
// lines, and stops at a line whose indent is <= headerIndent and whose
// trimmed content is exactly """.
//
// Returns the collected content and the index of the line following the
// terminator. headerLine/headerRawLine identify the opening line for the
// UnclosedBlockString error raised if EOF is reached first.
func collectBlockString(lines []string, startIdx, headerIndent, headerLine int, headerRawLine string) (string, int) {
	var body []string
	blockIndent := -1 // -1 until established by the first non-blank body line

	i := startIdx
	for i < len(lines) {
		line := lines[i]
		indent := countIndent(line)
		trimmed := strings.TrimSpace(line)

		if indent <= headerIndent && trimmed == blockTerminator {
			return strings.Join(body, "\n"), i + 1
		}

		if trimmed == "" {
			if blockIndent >= 0 {
				body = append(body, "")
			}
			i++
			continue
		}

		if blockIndent < 0 {
			blockIndent = indent
		}

		if indent >= blockIndent {
			body = append(body, line[blockIndent:])
		} else {
			body = append(body, strings.TrimLeft(line, " "))
		}
		i++
	}

	failAt(ReasonUnclosedBlockString, headerLine, headerRawLine, "unclosed block string")
	return "", i // unreachable: failAt panics
}
