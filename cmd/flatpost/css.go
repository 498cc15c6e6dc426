package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/flatpost/markdown"
)

func newCSSCmd() *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print the stylesheet for highlighted code blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := getEnv(cmd)
			if err != nil {
				return err
			}
			if style == "" {
				style = e.cfg.HighlightStyle
			}
			return markdown.NewChromaLexicon(style).WriteCSS(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "chroma style (defaults to highlight_style)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the flatpost version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "flatpost %s\n", version)
			return err
		},
	}
}
