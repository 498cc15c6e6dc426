package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/flatpost"
)

func newServeCmd() *cobra.Command {
	var staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the source directory as a preview site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := getEnv(cmd)
			if err != nil {
				return err
			}
			opts := []flatpost.Option{
				flatpost.WithLogger(e.logger),
				flatpost.WithParser(e.parser),
			}
			if staticDir != "" {
				opts = append(opts, flatpost.WithStaticDir(staticDir))
			}
			app := flatpost.New(e.cfg, flatpost.ViewFuncs{}, opts...)
			return app.Start(cmd.Context())
		},
	}

	cmd.Flags().String("addr", "", "listen address")
	cmd.Flags().Bool("watch", false, "reload posts when the source directory changes")
	cmd.Flags().StringVar(&staticDir, "static", "", "directory served under /public")
	return cmd
}
