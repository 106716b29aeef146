package commands

import (
	"github.com/spf13/cobra"

	"github.com/qckfx/tree-hugger-js/pkg/transform"
)

// NewImportsCommand creates the imports command.
func NewImportsCommand() *cobra.Command {
	var opts transformOptions

	cmd := &cobra.Command{
		Use:   "imports <file>",
		Short: "Remove unused imports",
		Long: `Remove import bindings that are never referenced in the file. Unused
named specifiers are pruned individually; statements with no used
bindings are dropped entirely. Side-effect imports are kept.

Examples:
  treehugger imports main.js
  treehugger imports -w main.js       # Write in place
  treehugger imports --diff main.js   # Preview as a diff`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runTransform(cobraCmd, args[0], opts, func(session *transform.Session) error {
				session.RemoveUnusedImports()

				return nil
			})
		},
	}

	addTransformFlags(cmd, &opts)

	return cmd
}
