package commands

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/qckfx/tree-hugger-js/pkg/pattern"
)

// exitCodeValidationFailure is the exit code for alias files that fail
// schema validation.
const exitCodeValidationFailure = 2

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var colorize, nocolor bool

	cmd := &cobra.Command{
		Use:   "validate <alias-file.yaml>",
		Short: "Validate an alias override file",
		Long: `Validate an alias override file against the alias schema. Overrides
map alias names to lists of node types and are merged over the
built-in alias table by the find and transform commands.

Examples:
  treehugger validate aliases.yaml
  treehugger validate --no-color aliases.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			if nocolor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			} else if colorize {
				color.NoColor = false //nolint:reassign // intentional override of library global
			}

			code, err := runValidate(args[0], cobraCmd.OutOrStdout())
			if err != nil {
				return err
			}

			if code != 0 {
				os.Exit(code)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&colorize, "color", false, "force colored output")
	cmd.Flags().BoolVar(&nocolor, "no-color", false, "disable colored output")

	return cmd
}

// runValidate checks the alias file, prints the verdict, and returns
// the process exit code.
func runValidate(path string, writer io.Writer) (int, error) {
	violations, err := pattern.ValidateAliasFile(path)
	if err != nil {
		return 0, err
	}

	if len(violations) == 0 {
		color.New(color.FgGreen).Fprintf(writer, "alias file is valid (%s)\n", path)

		return 0, nil
	}

	color.New(color.FgRed).Fprintf(writer, "alias file validation failed (%s)\n", path)

	for _, violation := range violations {
		color.New(color.FgRed).Fprintf(writer, "  - %s\n", violation)
	}

	return exitCodeValidationFailure, nil
}
