// Package cmd implements the photoedit CLI commands.
//
// The root command dispatches to subcommands that apply editing layers to
// image files:
//   - watermark: tile diagonal text across a photo
//   - sticker: place a text sticker on a photo
//
// All commands accept --verbose (-v) for debug logging. The logger travels
// in the command context.
package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/go-drift/photoedit/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "photoedit",
		Short: "Apply watermarks and text stickers to photos",
		Long: `photoedit renders the editing layers of a photo editor onto image files.

Use "photoedit <command> --help" for more information about a command.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: verbose})
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("photoedit %s (built %s)\n", Version, BuildTime))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newWatermarkCmd())
	root.AddCommand(newStickerCmd())

	return root
}

// guarded runs fn and turns a panic into a returned error once the handler
// has seen it.
func guarded(op string, fn func() error) (err error) {
	defer errors.RecoverWithCallback(op, func(r any) {
		err = errors.FromPanic(op, r)
	})
	return fn()
}
