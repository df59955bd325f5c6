package main

import (
	"strings"

	"yahoo-geocoder/internal/app"
	"yahoo-geocoder/internal/service"

	"github.com/spf13/cobra"
)

func newYahooCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "yahoo <query>",
		Short: "Geocode with the Yahoo Maps XML service",
		Long: `Prints every location the service returns. The query is passed through
YAHOO_FORMAT_STRING before it is sent.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yahoo, placeFinder, err := app.NewGeocoders(opts.config)
			if err != nil {
				return err
			}

			svc := service.NewGeoCodeService(yahoo, placeFinder, nil)
			locations, err := svc.GeocodeYahoo(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			return opts.printLocations(cmd.OutOrStdout(), locations, locations)
		},
	}
}
