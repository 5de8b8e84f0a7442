package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/inspekt"
	"github.com/aretw0/inspekt/pkg/adapters/events"
)

func newWatchCmd() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print capture records as they are committed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, _, err := openService(ctx,
				inspekt.WithReadOnly(true),
				inspekt.WithWatcherErrorHandler(func(err error) {
					slog.Error("watcher error", "error", err)
				}),
			)
			if err != nil {
				return err
			}

			commits, err := svc.Watch(ctx, pattern)
			if err != nil {
				return err
			}
			src := events.NewSource(commits)
			if err := src.Start(ctx); err != nil {
				return err
			}
			slog.Info("watching for new captures, press Ctrl+C to stop")

			for e := range src.Events() {
				fmt.Fprintln(cmd.OutOrStdout(), e.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "Only report metadata files matching this glob (default metadata_*)")
	return cmd
}
