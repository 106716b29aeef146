// Package textutil provides byte-level text utilities: binary detection,
// line counting, and line-boundary scanning for offset-based edits.
package textutil

import "bytes"

// BinarySniffLength is the maximum number of bytes scanned for null-byte
// detection. Matches the heuristic used by Git and most editors.
const BinarySniffLength = 8000

// IsBinary returns true if data contains a null byte within the first
// BinarySniffLength bytes. Empty data is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// CountLines returns the number of newline-delimited lines in data.
// A non-empty buffer without a trailing newline counts the last partial line.
// Returns 0 for empty data.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	lines := bytes.Count(data, []byte{'\n'})

	if data[len(data)-1] != '\n' {
		lines++
	}

	return lines
}

// LineStart returns the offset of the first byte of the line containing
// offset: the position just past the previous newline, or 0.
// Offsets outside [0, len(data)] are clamped.
func LineStart(data []byte, offset int) int {
	offset = clampOffset(data, offset)

	if idx := bytes.LastIndexByte(data[:offset], '\n'); idx >= 0 {
		return idx + 1
	}

	return 0
}

// ExpandToLine widens the byte range [start, end) to cover whole source
// lines: start moves back to the beginning of its line and end moves
// forward past the next newline, or to the end of the buffer when the
// last line is unterminated. Removing the widened range removes the
// lines without leaving blanks behind.
func ExpandToLine(data []byte, start, end int) (int, int) {
	start = LineStart(data, start)
	end = clampOffset(data, end)

	if idx := bytes.IndexByte(data[end:], '\n'); idx >= 0 {
		return start, end + idx + 1
	}

	return start, len(data)
}

// LineIndent returns the run of leading spaces and tabs on the line
// containing offset.
func LineIndent(data []byte, offset int) string {
	lineStart := LineStart(data, offset)

	i := lineStart
	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}

	return string(data[lineStart:i])
}

func clampOffset(data []byte, offset int) int {
	if offset < 0 {
		return 0
	}

	if offset > len(data) {
		return len(data)
	}

	return offset
}
