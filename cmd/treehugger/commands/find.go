package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/qckfx/tree-hugger-js/pkg/pattern"
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// Output format names.
const (
	formatText  = "text"
	formatJSON  = "json"
	formatTable = "table"
)

// snippetLimit caps the text column in human-readable output.
const snippetLimit = 60

type findMatch struct {
	Type  string        `json:"type"`
	Name  string        `json:"name,omitempty"`
	Start tree.Position `json:"start"`
	End   tree.Position `json:"end"`
	Text  string        `json:"text"`
}

type findOutput struct {
	Pattern string      `json:"pattern"`
	Count   int         `json:"count"`
	Matches []findMatch `json:"matches"`
}

// NewFindCommand creates the find command.
func NewFindCommand() *cobra.Command {
	var language, format string

	var limit int

	cmd := &cobra.Command{
		Use:   "find <pattern> <file>",
		Short: "Find nodes matching a CSS-like pattern",
		Long: `Find syntax nodes matching a CSS-like pattern.

Patterns combine node types or aliases with attributes, pseudo-classes,
and combinators.

Examples:
  treehugger find function main.js                     # All function forms
  treehugger find 'function[name=getData]' main.js     # By name
  treehugger find 'class method[async]' main.js        # Async methods
  treehugger find 'function:has(return)' main.js       # With a return
  treehugger find 'call[text^="console."]' -f table main.js
  cat main.js | treehugger find import -l javascript -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runFind(cobraCmd, args[0], args[1], language, format, limit)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "force the grammar instead of detecting it")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json, table)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of matches to print (default: all)")

	return cmd
}

func runFind(cobraCmd *cobra.Command, pat, file, language, format string, limit int) error {
	st, err := loadSetup(configPathFrom(cobraCmd))
	if err != nil {
		return err
	}

	_, err = pattern.ParseSelector(pat)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	content, language, err := readSource(file, language, st.cfg)
	if err != nil {
		return err
	}

	parsed, err := tree.Parse(content, language)
	if err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}

	defer parsed.Close()

	matches := parsed.Root().Find(st.cache.Predicate(pat))
	total := len(matches)

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	st.logger.Debug("find complete", "pattern", pat, "file", file, "matches", total)

	return writeMatches(cobraCmd.OutOrStdout(), pat, matches, total, format)
}

func writeMatches(writer io.Writer, pat string, matches []*tree.Node, total int, format string) error {
	switch format {
	case formatText:
		for _, m := range matches {
			fmt.Fprintf(writer, "%d:%d\t%s\t%s\n", m.Line(), m.Column(), m.Type(), matchLabel(m))
		}

		return nil
	case formatJSON:
		out := findOutput{
			Pattern: pat,
			Count:   total,
			Matches: make([]findMatch, 0, len(matches)),
		}

		for _, m := range matches {
			out.Matches = append(out.Matches, findMatch{
				Type:  m.Type(),
				Name:  m.Name(),
				Start: m.StartPos(),
				End:   m.EndPos(),
				Text:  m.Text(),
			})
		}

		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")

		encodeErr := enc.Encode(out)
		if encodeErr != nil {
			return fmt.Errorf("failed to encode JSON: %w", encodeErr)
		}

		return nil
	case formatTable:
		writeMatchTable(writer, matches, total)

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func writeMatchTable(writer io.Writer, matches []*tree.Node, total int) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(writer)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendHeader(table.Row{"LINE", "COL", "TYPE", "TEXT"})

	for _, m := range matches {
		tbl.AppendRow(table.Row{m.Line(), m.Column(), m.Type(), matchLabel(m)})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %s matches", humanize.Comma(int64(total)))})
	tbl.Render()
}

// matchLabel prefers the node's declared name, falling back to the
// first line of its text.
func matchLabel(n *tree.Node) string {
	if name := n.Name(); name != "" {
		return name
	}

	return snippet(n.Text())
}

func snippet(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}

	runes := []rune(text)
	if len(runes) > snippetLimit {
		return string(runes[:snippetLimit]) + "..."
	}

	return text
}
