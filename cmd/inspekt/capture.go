package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/inspekt"
	"github.com/aretw0/inspekt/pkg/adapters/capture"
	"github.com/aretw0/inspekt/pkg/adapters/location"
	"github.com/aretw0/inspekt/pkg/core"
	"github.com/aretw0/inspekt/pkg/report"
)

var savedNotice = map[report.Locale]string{
	report.LocaleEnglish: "The photo has been saved. Don't forget to run 'inspekt export' to compile and share the report.",
	report.LocaleDutch:   "De foto is opgeslagen! Vergeet niet 'inspekt export' uit te voeren om het rapport te maken en te delen.",
}

func newCaptureCmd() *cobra.Command {
	var (
		technician  string
		description string
		category    string
		coords      string
		noLocation  bool
	)

	cmd := &cobra.Command{
		Use:   "capture <photo.jpg>",
		Short: "Commit a photo with its inspection form",
		Long: `Commit a JPEG photo together with the inspection form as one capture record.
The photo is copied into the storage directory as photo_<createdAt>.jpg and the
form is written next to it as metadata_<createdAt>.json.

Categories: GroundCables, AerialCables, WaterPipes, GasPipes
(Dutch names such as Grondkabels are accepted too).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, cfg, err := openService(ctx)
			if err != nil {
				return err
			}

			cat, err := core.ParseCategory(category)
			if err != nil {
				return err
			}

			if technician == "" {
				technician = cfg.Capture.Technician
			}
			form := inspekt.FormState{
				TechnicianName: technician,
				Description:    description,
				Category:       cat,
			}

			if coords == "" {
				coords = cfg.Capture.Location
			}
			if coords != "" && !noLocation {
				provider, err := location.ParseStatic(coords)
				if err != nil {
					return err
				}
				label, err := svc.ResolveLocation(ctx, provider)
				if err != nil {
					if !errors.Is(err, core.ErrLocationUnavailable) && !errors.Is(err, core.ErrPermissionDenied) {
						return err
					}
					// The form stays usable without a position.
					slog.Warn("location not added", "error", err)
				}
				form.LocationLabel = label
			}

			provider := capture.NewFile(args[0])
			provider.Logger = slog.Default()

			rec, err := svc.Capture(ctx, provider, form)
			if err != nil {
				return err
			}

			locale, _ := report.ParseLocale(cfg.Report.Locale)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", rec.CreatedAt, rec.PhotoRef)
			fmt.Fprintln(cmd.ErrOrStderr(), savedNotice[locale])
			return nil
		},
	}

	cmd.Flags().StringVarP(&technician, "technician", "t", "", "Technician name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Free-text description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Infrastructure category (required)")
	cmd.Flags().StringVarP(&coords, "location", "l", "", `Position as "lat,long"`)
	cmd.Flags().BoolVar(&noLocation, "no-location", false, "Do not add a location")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}
