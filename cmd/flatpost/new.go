package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/flatpost/scaffold"
)

// now is replaced in tests.
var now = time.Now

func newNewCmd() *cobra.Command {
	var data scaffold.PostData

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a post file named after the current time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := getEnv(cmd)
			if err != nil {
				return err
			}
			if err := data.Validate(); err != nil {
				return err
			}
			if err := os.MkdirAll(e.cfg.SourceDir, 0o755); err != nil {
				return err
			}

			path := filepath.Join(e.cfg.SourceDir, e.parser.Filename(now()))
			f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if err != nil {
				if errors.Is(err, fs.ErrExist) {
					return fmt.Errorf("%s already exists", path)
				}
				return err
			}
			if err := scaffold.RenderPost(f, data); err != nil {
				f.Close()
				os.Remove(path)
				return fmt.Errorf("render %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			// The scaffold must always produce a parseable post.
			if _, err := e.parser.ParseFile(path); err != nil {
				return err
			}
			e.logger.Debugf("created %s", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&data.Title, "title", "", "post title (required)")
	cmd.Flags().StringVar(&data.TitlePic, "pic", "", "title picture, relative to the source directory or an http(s) URL")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
