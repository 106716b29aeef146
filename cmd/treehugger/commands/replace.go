package commands

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/qckfx/tree-hugger-js/pkg/transform"
)

// NewReplaceCommand creates the replace command.
func NewReplaceCommand() *cobra.Command {
	var opts transformOptions

	var literal bool

	cmd := &cobra.Command{
		Use:   "replace <pattern> <find> <replacement> <file>",
		Short: "Rewrite text inside matched nodes",
		Long: `Rewrite text inside every node matching the pattern. The find argument
is a Go regular expression unless --literal is set, and the replacement
may use $1-style group references.

Examples:
  treehugger replace comment 'TODO' 'DONE' main.js
  treehugger replace string 'v(\d+)' 'version-$1' main.js
  treehugger replace string 'a.b' 'a-b' --literal main.js`,
		Args: cobra.ExactArgs(4),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runTransform(cobraCmd, args[3], opts, func(session *transform.Session) error {
				if literal {
					session.ReplaceInLiteral(args[0], args[1], args[2])

					return nil
				}

				re, err := regexp.Compile(args[1])
				if err != nil {
					return fmt.Errorf("compile find regexp: %w", err)
				}

				session.ReplaceIn(args[0], re, args[2])

				return nil
			})
		},
	}

	addTransformFlags(cmd, &opts)
	cmd.Flags().BoolVar(&literal, "literal", false, "treat find as plain text instead of a regular expression")

	return cmd
}
