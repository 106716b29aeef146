// Package main provides the entry point for the treehugger CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qckfx/tree-hugger-js/cmd/treehugger/commands"
	"github.com/qckfx/tree-hugger-js/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "treehugger",
		Short: "Pattern-based querying and editing for JavaScript and TypeScript",
		Long: `Treehugger parses JavaScript, TypeScript, and TSX sources into syntax
trees and exposes CSS-like patterns for finding nodes and a set of
safe, position-based source transformations.

Commands:
  find      Find nodes matching a pattern
  rename    Rename an identifier everywhere it is referenced
  replace   Rewrite text inside matched nodes
  remove    Remove matched nodes
  imports   Remove unused imports
  insert    Insert text before or after matched nodes
  tree      Dump the parse tree
  validate  Validate an alias override file
  mcp       Start the MCP server on stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default is ./.treehugger.yaml)")

	rootCmd.AddCommand(commands.NewFindCommand())
	rootCmd.AddCommand(commands.NewRenameCommand())
	rootCmd.AddCommand(commands.NewReplaceCommand())
	rootCmd.AddCommand(commands.NewRemoveCommand())
	rootCmd.AddCommand(commands.NewImportsCommand())
	rootCmd.AddCommand(commands.NewInsertCommand())
	rootCmd.AddCommand(commands.NewTreeCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "treehugger %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
