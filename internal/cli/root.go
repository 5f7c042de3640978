// Package cli implements the mastopress command line.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string // переопределяет log.level из конфигурации
}

// NewRootCommand creates the root command for the mastopress CLI.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mastopress",
		Short: "Mirror Mastodon hashtag posts and their replies into WordPress pages",
		Long: `mastopress watches a Mastodon hashtag timeline, publishes a WordPress page
for every new post and appends replies from the post's thread to that page.

Tracked posts are persisted locally so that pages are never duplicated
and replies are never appended twice.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "mastopress.yaml", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewOnceCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))

	return cmd
}
