package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eringen/flatpost/parser"
)

func newParseCmd() *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse post files and print them as JSON",
		Long: `Parse post files and print the records as a JSON array, newest first.
Use "-" to parse a source read from stdin; it carries no file metadata.
Files that fail to parse are reported and skipped; the command then exits non-zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := getEnv(cmd)
			if err != nil {
				return err
			}

			var (
				posts  []parser.Post
				failed int
				paths  []string
			)
			for _, arg := range args {
				if arg != "-" {
					paths = append(paths, arg)
					continue
				}
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				post, err := e.parser.ParseBytes(raw)
				if err != nil {
					e.logger.Errorf("<stdin>: %v", err)
					failed++
					continue
				}
				posts = append(posts, post)
			}

			parsed, failures := e.parser.ParseFiles(cmd.Context(), paths)
			for _, fe := range failures {
				e.logger.Errorf("%v", fe)
			}
			failed += len(failures)
			posts = append(posts, parsed...)

			if err := printPosts(cmd.OutOrStdout(), posts, field); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d sources failed to parse", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "print only this field of each record (title, html, summary, ...)")
	return cmd
}

func printPosts(w io.Writer, posts []parser.Post, field string) error {
	if field == "" {
		if posts == nil {
			posts = []parser.Post{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(posts)
	}
	for _, p := range posts {
		v, ok := p.Field(field)
		if !ok {
			return fmt.Errorf("unknown field %q", field)
		}
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}
