package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/inspekt/pkg/core"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Compile the most recent capture into a report and share it",
		Long: `Select the most recent valid capture record, compile it into a single-page
report, save the report in the storage directory (never overwriting a file)
and hand it to the configured share command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, _, err := openService(ctx)
			if err != nil {
				return err
			}

			res, err := svc.Export(ctx)
			if res.Path != "" {
				fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			}
			if err != nil {
				return err
			}
			if errors.Is(res.Sharing, core.ErrSharingUnavailable) {
				fmt.Fprintln(cmd.ErrOrStderr(), sharingUnavailableNotice)
			}
			return nil
		},
	}
}
