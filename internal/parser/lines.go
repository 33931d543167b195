package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var leadingFloatRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// splitLines splits on "\n" and drops a trailing carriage return from each line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// valueAfter returns the rest of line after "**label:** ", or "" if absent.
func valueAfter(line, label string) string {
	marker := "**" + label + ":** "
	idx := strings.Index(line, marker)
	if idx < 0 {
		return ""
	}
	return line[idx+len(marker):]
}

// leadingFloat parses the numeric prefix of s, ignoring leading whitespace and
// anything after the number.
func leadingFloat(s string) (float64, bool) {
	m := leadingFloatRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CleanText converts decoded file bytes to text a UTF-8 store accepts. Each
// run of invalid bytes becomes U+FFFD and NUL bytes are dropped.
func CleanText(raw []byte) string {
	return strings.ReplaceAll(strings.ToValidUTF8(string(raw), "\uFFFD"), "\x00", "")
}
