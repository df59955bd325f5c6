package main

import (
	"strings"

	"yahoo-geocoder/internal/app"
	"yahoo-geocoder/internal/geocoder"
	"yahoo-geocoder/internal/service"

	"github.com/spf13/cobra"
)

func newPlaceFinderCmd(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "placefinder <query>",
		Short: "Geocode with the PlaceFinder JSON service",
		Long: `Without --all the query must match exactly one place, which is printed as a
single object. With --all every match is printed as a list.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yahoo, placeFinder, err := app.NewGeocoders(opts.config)
			if err != nil {
				return err
			}

			svc := service.NewGeoCodeService(yahoo, placeFinder, nil)
			result, err := svc.GeocodePlaceFinder(cmd.Context(), strings.Join(args, " "), !all)
			if err != nil {
				return err
			}

			locations := geocoder.Locations(result)
			if one, ok := result.(geocoder.One); ok {
				return opts.printLocations(cmd.OutOrStdout(), one.Location, locations)
			}
			return opts.printLocations(cmd.OutOrStdout(), locations, locations)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "print every match instead of requiring exactly one")

	return cmd
}
