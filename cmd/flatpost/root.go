package main

import (
	"context"
	"errors"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/flatpost"
	"github.com/eringen/flatpost/parser"
)

type ctxKey string

const envKey ctxKey = "env"

// env is what every subcommand runs with, built once from the merged config.
type env struct {
	cfg    flatpost.Config
	logger *log.Logger
	parser *parser.Parser
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "flatpost",
		Short:         "flatpost - parse and preview flat-file blog posts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := loadConfig(v); err != nil {
				return err
			}
			applyFlagOverrides(cmd, v)

			cfg, err := configFromViper(v)
			if err != nil {
				return err
			}
			logger, err := flatpost.NewLogger("flatpost", cfg.LogLevel)
			if err != nil {
				return err
			}
			logger.SetOutput(cmd.ErrOrStderr())
			logger.SetHeader("${time_rfc3339} ${level}")

			p, err := flatpost.NewParser(cfg, logger)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), envKey, &env{cfg: cfg, logger: logger, parser: p}))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")
	cmd.PersistentFlags().String("source-dir", "", "directory holding post files")
	cmd.PersistentFlags().String("ext", "", "post file extension")
	cmd.PersistentFlags().String("charset", "", "encoding of post files")
	cmd.PersistentFlags().String("log-level", "", "debug, info, warn, error or off")

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newNewCmd())
	cmd.AddCommand(newCSSCmd())
	cmd.AddCommand(newVersionCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getEnv(cmd *cobra.Command) (*env, error) {
	e, ok := cmd.Context().Value(envKey).(*env)
	if !ok {
		return nil, errors.New("internal error: config not loaded")
	}
	return e, nil
}
