package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/inspekt"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the pipeline state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService(cmd.Context(), inspekt.WithReadOnly(true))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), svc.State())
		},
	}
}
