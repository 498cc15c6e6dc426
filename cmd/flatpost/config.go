package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/flatpost"
)

type configOption struct {
	Key     string
	Default any
	Comment string
}

// configOptions is the single source of truth for config keys and defaults.
func configOptions() []configOption {
	return []configOption{
		{Key: "site.name", Default: "Blog", Comment: "Site name shown in pages and the feed"},
		{Key: "site.url", Default: "http://localhost:3000", Comment: "Canonical URL used in links, feed and sitemap"},
		{Key: "site.description", Default: "", Comment: "Site description for the feed and meta tags"},
		{Key: "site.author", Default: "", Comment: "Author name for JSON-LD"},

		{Key: "addr", Default: ":3000", Comment: "Listen address of the preview server"},
		{Key: "source_dir", Default: "posts", Comment: "Directory holding post files"},
		{Key: "source_ext", Default: ".md", Comment: "Post file extension; only its length is checked"},
		{Key: "charset", Default: "utf-8", Comment: "Encoding of post files (WHATWG label)"},
		{Key: "highlight_style", Default: "monokai", Comment: "chroma style for code blocks"},
		{Key: "cache_ttl", Default: "5m", Comment: "How long parsed posts are served from memory"},
		{Key: "log_level", Default: "info", Comment: "debug, info, warn, error or off"},
		{Key: "watch", Default: false, Comment: "Reload posts when the source directory changes"},
	}
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"source-dir": "source_dir",
	"ext":        "source_ext",
	"charset":    "charset",
	"log-level":  "log_level",
	"addr":       "addr",
	"watch":      "watch",
}

// loadConfig resolves configuration with precedence: defaults < file < env.
func loadConfig(v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("flatpost")
		v.AddConfigPath(".")
	}

	for _, o := range configOptions() {
		v.SetDefault(o.Key, o.Default)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// FLATPOST_SITE_NAME, FLATPOST_SOURCE_DIR, ...
	v.SetEnvPrefix("flatpost")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, v *viper.Viper) {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		switch f.Value.Type() {
		case "bool":
			if b, err := cmd.Flags().GetBool(name); err == nil {
				v.Set(key, b)
			}
		default:
			v.Set(key, f.Value.String())
		}
	}
}

func configFromViper(v *viper.Viper) (flatpost.Config, error) {
	ttl, err := time.ParseDuration(v.GetString("cache_ttl"))
	if err != nil {
		return flatpost.Config{}, fmt.Errorf("cache_ttl: %w", err)
	}
	return flatpost.Config{
		Name:           v.GetString("site.name"),
		URL:            v.GetString("site.url"),
		Description:    v.GetString("site.description"),
		Author:         v.GetString("site.author"),
		Addr:           v.GetString("addr"),
		SourceDir:      v.GetString("source_dir"),
		SourceExt:      v.GetString("source_ext"),
		Charset:        v.GetString("charset"),
		HighlightStyle: v.GetString("highlight_style"),
		PostCacheTTL:   ttl,
		LogLevel:       v.GetString("log_level"),
		Watch:          v.GetBool("watch"),
	}, nil
}
