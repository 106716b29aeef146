package commands

import (
	"github.com/spf13/cobra"

	"github.com/qckfx/tree-hugger-js/pkg/transform"
)

// NewInsertCommand creates the insert command.
func NewInsertCommand() *cobra.Command {
	var opts transformOptions

	var after bool

	cmd := &cobra.Command{
		Use:   "insert <pattern> <text> <file>",
		Short: "Insert text before or after matched nodes",
		Long: `Insert text before every node matching the pattern, or after it with
--after. Statement-like targets get their own line at the matched
node's indentation; keywords like const widen to their statement first.

Examples:
  treehugger insert 'function[name=main]' '// entry point' main.js
  treehugger insert return 'console.log("returning");' main.js
  treehugger insert --after 'import[text*="react"]' 'import "./setup";' main.js`,
		Args: cobra.ExactArgs(3),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runTransform(cobraCmd, args[2], opts, func(session *transform.Session) error {
				if after {
					session.InsertAfter(args[0], args[1])
				} else {
					session.InsertBefore(args[0], args[1])
				}

				return nil
			})
		},
	}

	addTransformFlags(cmd, &opts)
	cmd.Flags().BoolVar(&after, "after", false, "insert after the matched nodes instead of before")

	return cmd
}
