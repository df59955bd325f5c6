// Package app wires configuration into the geocoders and the lookup history
// shared by the API server and the CLI.
package app

import (
	"context"
	"fmt"

	"yahoo-geocoder/internal/config"
	"yahoo-geocoder/internal/geocoder"
	"yahoo-geocoder/internal/httputil"
	"yahoo-geocoder/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewGeocoders builds both providers on one HTTP client.
func NewGeocoders(cfg config.Config) (*geocoder.Yahoo, *geocoder.PlaceFinder, error) {
	client := httputil.NewClient(httputil.Options{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.HTTPTimeout,
	})

	yahooOpts := []geocoder.Option{
		geocoder.WithHTTPClient(client),
		geocoder.WithFormatString(cfg.YahooFormatString),
		geocoder.WithOutputFormat(geocoder.OutputFormat(cfg.YahooOutputFormat)),
	}
	if cfg.YahooBaseURL != "" {
		yahooOpts = append(yahooOpts, geocoder.WithBaseURL(cfg.YahooBaseURL))
	}
	yahoo, err := geocoder.NewYahoo(cfg.YahooAppID, yahooOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("app: %w", err)
	}

	placeFinderOpts := []geocoder.Option{geocoder.WithHTTPClient(client)}
	if cfg.PlaceFinderBaseURL != "" {
		placeFinderOpts = append(placeFinderOpts, geocoder.WithBaseURL(cfg.PlaceFinderBaseURL))
	}
	placeFinder := geocoder.NewPlaceFinder(cfg.PlaceFinderAppID, placeFinderOpts...)

	return yahoo, placeFinder, nil
}

// OpenRepository connects to dbSource and makes sure the history schema exists.
// The returned func closes the pool.
func OpenRepository(ctx context.Context, dbSource string) (*repository.Repository, func(), error) {
	pool, err := pgxpool.New(ctx, dbSource)
	if err != nil {
		return nil, nil, fmt.Errorf("app: connecting to db: %w", err)
	}

	repo := repository.NewRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("app: %w", err)
	}

	return repo, pool.Close, nil
}
