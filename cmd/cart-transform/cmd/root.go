// Package cmd provides the cart-transform CLI commands.
package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noah-isme/cart-transform/internal/obs"
)

type rootOptions struct {
	logLevel  string
	logFormat string
	logger    zerolog.Logger
}

// NewRootCmd builds the command tree. Logs always go to stderr so stdout carries only results.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "cart-transform",
		Short: "Apply _Price line attributes as percentage decreases",
		Long: `cart-transform reads a cart snapshot and emits one price update per line
that carries a _Price attribute such as "$600.00".

Examples:
  cart-transform run < input.json
  cart-transform run --input input.json --pretty
  cart-transform percentage --original 1000 --target 600`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logger = obs.NewLoggerTo(cmd.ErrOrStderr(), opts.logFormat, opts.logLevel).
				With().Str("component", "cli").Logger()
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "json", "log format (json, console)")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newPercentageCmd(opts))
	return root
}

// Execute runs the CLI against the process streams.
func Execute() error {
	return NewRootCmd().Execute()
}
