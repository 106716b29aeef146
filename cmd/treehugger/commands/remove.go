package commands

import (
	"github.com/spf13/cobra"

	"github.com/qckfx/tree-hugger-js/pkg/transform"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand() *cobra.Command {
	var opts transformOptions

	cmd := &cobra.Command{
		Use:   "remove <pattern> <file>",
		Short: "Remove matched nodes",
		Long: `Remove every node matching the pattern. Statements and declarations
take their whole line with them; a dotted name like console.log is
shorthand for removing those calls.

Examples:
  treehugger remove console.log main.js
  treehugger remove 'function[name=legacyHandler]' main.js
  treehugger remove debugger_statement -w main.js`,
		Args: cobra.ExactArgs(2),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runTransform(cobraCmd, args[1], opts, func(session *transform.Session) error {
				session.Remove(args[0])

				return nil
			})
		},
	}

	addTransformFlags(cmd, &opts)

	return cmd
}
