package commands

import (
	"github.com/spf13/cobra"

	"github.com/qckfx/tree-hugger-js/pkg/transform"
)

// NewRenameCommand creates the rename command.
func NewRenameCommand() *cobra.Command {
	var opts transformOptions

	var identifiersOnly bool

	cmd := &cobra.Command{
		Use:   "rename <old> <new> <file>",
		Short: "Rename an identifier everywhere it is referenced",
		Long: `Rename an identifier across the file, including object properties and
shorthand property forms. Comments and string literals stay untouched.

With --identifiers-only, only plain identifier nodes are renamed and
property names are left alone.

Examples:
  treehugger rename getData fetchData main.js
  treehugger rename getData fetchData -w main.js      # Write in place
  treehugger rename getData fetchData --diff main.js  # Preview as a diff`,
		Args: cobra.ExactArgs(3),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runTransform(cobraCmd, args[2], opts, func(session *transform.Session) error {
				if identifiersOnly {
					session.RenameIdentifier(args[0], args[1])
				} else {
					session.Rename(args[0], args[1])
				}

				return nil
			})
		},
	}

	addTransformFlags(cmd, &opts)
	cmd.Flags().BoolVar(&identifiersOnly, "identifiers-only", false, "skip property names, rename plain identifiers only")

	return cmd
}
