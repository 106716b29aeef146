package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// NewTreeCommand creates the tree command.
func NewTreeCommand() *cobra.Command {
	var language, format string

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Dump the parse tree",
		Long: `Dump the parse tree of a source file. Named nodes only; leaves carry
their source text.

Examples:
  treehugger tree main.js                 # JSON tree
  treehugger tree -f text main.js         # Indented outline
  cat main.js | treehugger tree -l javascript -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runTree(cobraCmd, args[0], language, format)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "force the grammar instead of detecting it")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format (json, text)")

	return cmd
}

func runTree(cobraCmd *cobra.Command, file, language, format string) error {
	st, err := loadSetup(configPathFrom(cobraCmd))
	if err != nil {
		return err
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

	dump := tree.Dump(parsed.Root())
	writer := cobraCmd.OutOrStdout()

	switch format {
	case formatJSON:
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")

		encodeErr := enc.Encode(dump)
		if encodeErr != nil {
			return fmt.Errorf("failed to encode JSON: %w", encodeErr)
		}

		return nil
	case formatText:
		writeOutline(writer, dump, 0)

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// writeOutline prints one node per line, indented by depth.
func writeOutline(writer io.Writer, dump tree.NodeDump, depth int) {
	indent := strings.Repeat("  ", depth)

	if dump.Text != "" {
		fmt.Fprintf(writer, "%s%s %d:%d %s\n", indent, dump.Type, dump.Start.Line, dump.Start.Column, snippet(dump.Text))
	} else {
		fmt.Fprintf(writer, "%s%s %d:%d\n", indent, dump.Type, dump.Start.Line, dump.Start.Column)
	}

	for _, child := range dump.Children {
		writeOutline(writer, child, depth+1)
	}
}
