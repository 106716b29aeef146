package commands

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// renderLineDiff produces a +/- line diff between two versions of a
// source file. Insertions print green, deletions red, context plain.
func renderLineDiff(original, transformed string) string {
	dmp := diffmatchpatch.New()

	chars1, chars2, lines := dmp.DiffLinesToChars(original, transformed)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)

	var out strings.Builder

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			writePrefixed(&out, diff.Text, "+", color.New(color.FgGreen))
		case diffmatchpatch.DiffDelete:
			writePrefixed(&out, diff.Text, "-", color.New(color.FgRed))
		case diffmatchpatch.DiffEqual:
			writePrefixed(&out, diff.Text, " ", nil)
		}
	}

	return out.String()
}

// writePrefixed writes every line of text with the given prefix,
// colorized when a color is supplied.
func writePrefixed(out *strings.Builder, text, prefix string, c *color.Color) {
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if c != nil {
			out.WriteString(c.Sprintf("%s%s", prefix, line))
		} else {
			out.WriteString(prefix + line)
		}

		out.WriteByte('\n')
	}
}
