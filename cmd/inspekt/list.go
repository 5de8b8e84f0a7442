package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		asJSON  bool
		orphans bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List capture records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, _, err := openService(ctx)
			if err != nil {
				return err
			}

			if orphans {
				tokens, err := svc.Orphans(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), tokens)
				}
				for _, tok := range tokens {
					fmt.Fprintln(cmd.OutOrStdout(), tok)
				}
				return nil
			}

			recs, err := svc.List(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), recs)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED AT\tTIME\tCATEGORY\tTECHNICIAN\tPHOTO")
			for _, rec := range recs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					rec.CreatedAt,
					rec.CreatedAt.Time().Format("2006-01-02 15:04:05"),
					rec.Category,
					rec.TechnicianName,
					rec.PhotoRef,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&orphans, "orphans", false, "List photos without valid metadata instead")
	return cmd
}
