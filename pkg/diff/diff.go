// Package diff renders line-oriented unified diffs of small text documents
// such as preference profiles.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// GenerateUnifiedDiff compares before and after line by line and returns the
// result in unified format with a single hunk. Returns empty string if content
// is identical. Truncates diffs exceeding 10,000 lines with a truncation marker.
func GenerateUnifiedDiff(before, after []byte, beforeLabel, afterLabel string) string {
	if bytes.Equal(before, after) {
		return ""
	}

	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffMain(beforeChars, afterChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var body bytes.Buffer
	removed, added := 0, 0
	for _, d := range diffs {
		lines := splitLines(d.Text)
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			prefix = " "
			removed += len(lines)
			added += len(lines)
		case diffmatchpatch.DiffDelete:
			prefix = "-"
			removed += len(lines)
		case diffmatchpatch.DiffInsert:
			prefix = "+"
			added += len(lines)
		}
		for _, line := range lines {
			body.WriteString(prefix)
			body.WriteString(line)
			body.WriteString("\n")
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", beforeLabel)
	fmt.Fprintf(&buf, "+++ %s\n", afterLabel)
	fmt.Fprintf(&buf, "@@ -%s +%s @@\n", hunkRange(removed), hunkRange(added))
	buf.Write(body.Bytes())

	result := buf.String()
	lines := strings.Split(result, "\n")
	if len(lines) > maxDiffLines {
		truncated := strings.Join(lines[:maxDiffLines], "\n")
		return truncated + "\n" + truncateMessage + "\n"
	}

	return result
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func hunkRange(n int) string {
	if n == 0 {
		return "0,0"
	}
	return fmt.Sprintf("1,%d", n)
}
