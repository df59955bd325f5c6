package main

import (
	"errors"
	"fmt"

	"yahoo-geocoder/internal/app"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the lookup history schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.config.DBSource == "" {
				return errors.New("DB_SOURCE is not set")
			}

			_, closeDB, err := app.OpenRepository(cmd.Context(), opts.config.DBSource)
			if err != nil {
				return err
			}
			defer closeDB()

			log.Info().Msg("schema up to date")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return err
		},
	}
}
