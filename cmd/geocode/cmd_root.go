package main

import (
	"encoding/json"
	"fmt"
	"io"

	"yahoo-geocoder/internal/config"
	"yahoo-geocoder/internal/logger"
	"yahoo-geocoder/internal/models"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	geojson    bool
	trace      bool

	config config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "geocode",
		Short: "Query the Yahoo Maps and PlaceFinder geocoders",
		Long: `
geocode resolves free-text locations with the Yahoo Maps (XML) or PlaceFinder
(JSON) services and prints the result as JSON on stdout.

$ geocode yahoo "701 First Ave, Sunnyvale, CA"
$ geocode placefinder --all Springfield
`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			opts.config = cfg

			level := cfg.LogLevel
			if opts.trace {
				level = "trace"
			}
			return logger.Setup(level, true)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "./configs", "directory holding app.env")
	flags.BoolVar(&opts.geojson, "geojson", false, "print a GeoJSON FeatureCollection")
	flags.BoolVar(&opts.trace, "trace", false, "log provider requests")

	root.AddCommand(newYahooCmd(opts), newPlaceFinderCmd(opts), newMigrateCmd(opts))

	return root
}

// printLocations writes v as indented JSON, or locations as GeoJSON when
// requested.
func (o *rootOptions) printLocations(w io.Writer, v any, locations []models.Location) error {
	if o.geojson {
		v = models.FeatureCollection(locations)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
