// Command devserver serves a directory over HTTP or HTTPS for local development.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/devserver/core/devserver"
	"github.com/dmitrymomot/devserver/core/logger"
)

const appName = "devserver"

// Build info, injected via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName + " [flags]",
		Short: "Local development HTTP/HTTPS server",
		Long: `devserver serves a single-page application during development.

It picks the first free port at or above the preferred one, allows any
origin with credentials, compresses responses and falls back to index.html
for client-side routes. With --https it generates and caches a self-signed
certificate unless --cert and --key are given.

Settings are read from flags, then the devServer section of the config
file, then DEV_SERVER_* environment variables.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	registerFlags(cmd.Flags())
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log := newLogger(s, cmd)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h, err := devserver.Create(ctx, s.Server, devserver.WithLogger(log))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return h.Server.Serve(ctx)
	})

	return g.Wait()
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.New(logger.WithOutput(os.Stderr)).Error("command failed", logger.Error(err))
		os.Exit(1)
	}
}
