package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// newDocsCmd returns the hidden gen-docs command. It documents the command
// it is attached to, which is always the root.
func newDocsCmd() *cobra.Command {
	var dir, format string
	cmd := &cobra.Command{
		Use:    "gen-docs",
		Short:  "Write covidspark man pages or markdown reference",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return genDocs(cmd.Root(), dir, format)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "docs", "output directory")
	cmd.Flags().StringVar(&format, "format", "man", "output format (man or markdown)")
	return cmd
}

// genDocs writes reference pages for root and its visible subcommands into
// dir. The format is checked before anything is created.
func genDocs(root *cobra.Command, dir, format string) error {
	var write func() error
	switch format {
	case "man":
		write = func() error {
			return doc.GenManTree(root, &doc.GenManHeader{
				Title:   "COVIDSPARK",
				Section: "1",
				Source:  "covidspark " + version,
				Manual:  "covidspark manual",
			}, dir)
		}
	case "markdown":
		write = func() error { return doc.GenMarkdownTree(root, dir) }
	default:
		return fmt.Errorf("unknown docs format %q (use man or markdown)", format)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create docs dir: %w", err)
	}
	// Generated pages stay byte-stable across runs.
	root.DisableAutoGenTag = true
	if err := write(); err != nil {
		return fmt.Errorf("write %s docs: %w", format, err)
	}
	return nil
}
