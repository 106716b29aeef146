package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qckfx/tree-hugger-js/pkg/transform"
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// transformOptions holds the flags shared by all transform commands.
type transformOptions struct {
	language string
	write    bool
	diff     bool
}

// addTransformFlags registers the shared transform flags on cmd.
func addTransformFlags(cmd *cobra.Command, opts *transformOptions) {
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "force the grammar instead of detecting it")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print a line diff instead of the full result")
}

// runTransform parses the file, lets queue stage edits on the session,
// renders, and routes the result to stdout, a diff, or back into the
// file. queue returns an error for invalid command arguments.
func runTransform(cobraCmd *cobra.Command, file string, opts transformOptions, queue func(*transform.Session) error) error {
	if opts.write && file == stdinPath {
		return ErrWriteStdin
	}

	st, err := loadSetup(configPathFrom(cobraCmd))
	if err != nil {
		return err
	}

	content, language, err := readSource(file, opts.language, st.cfg)
	if err != nil {
		return err
	}

	parsed, err := tree.Parse(content, language)
	if err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}

	defer parsed.Close()

	session := transform.NewWithCache(parsed.Root(), parsed.Source(), st.cache)

	err = queue(session)
	if err != nil {
		return err
	}

	result, err := session.Render()
	if err != nil {
		return fmt.Errorf("apply edits to %s: %w", file, err)
	}

	changed := result != string(content)

	st.logger.Debug("transform complete",
		"file", file, "edits", len(session.PeekEdits()), "changed", changed)

	writer := cobraCmd.OutOrStdout()

	switch {
	case opts.diff:
		if changed {
			fmt.Fprint(writer, renderLineDiff(string(content), result))
		} else {
			fmt.Fprintln(writer, "no changes")
		}
	case !opts.write:
		fmt.Fprint(writer, result)
	}

	if opts.write && changed {
		return writeBack(file, result)
	}

	return nil
}

// writeBack replaces the file contents, keeping its permission bits.
func writeBack(file, result string) error {
	info, err := os.Stat(file)
	if err != nil {
		return fmt.Errorf("stat %s: %w", file, err)
	}

	err = os.WriteFile(file, []byte(result), info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}

	return nil
}
