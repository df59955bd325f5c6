package service

import (
	"context"
	"fmt"
	"iter"
	"time"

	"yahoo-geocoder/internal/geocoder"
	"yahoo-geocoder/internal/models"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
)

// GeoCodeService contains the core business logic for geocoding operations
type GeoCodeService struct {
	yahoo       YahooGeocoder
	placeFinder PlaceFinderGeocoder
	recorder    LookupRecorder
}

// YahooGeocoder is the XML Yahoo Maps client.
type YahooGeocoder interface {
	Geocode(ctx context.Context, query string) ([]models.Location, error)
}

// PlaceFinderGeocoder is the JSON PlaceFinder client.
type PlaceFinderGeocoder interface {
	Geocode(ctx context.Context, query string, exactlyOne bool) (geocoder.Result, error)
}

// LookupRecorder persists geocoded lookups.
type LookupRecorder interface {
	SaveLookup(ctx context.Context, lookup models.Lookup) error
}

// NewGeoCodeService creates a new geo code service. recorder may be nil, in
// which case nothing is recorded.
func NewGeoCodeService(yahoo YahooGeocoder, placeFinder PlaceFinderGeocoder, recorder LookupRecorder) *GeoCodeService {
	return &GeoCodeService{
		yahoo:       yahoo,
		placeFinder: placeFinder,
		recorder:    recorder,
	}
}

// GeocodeYahoo geocodes query with the Yahoo Maps service.
func (s *GeoCodeService) GeocodeYahoo(ctx context.Context, query string) ([]models.Location, error) {
	if query == "" {
		return nil, fmt.Errorf("service: %w", ErrEmptyQuery)
	}

	locations, err := s.yahoo.Geocode(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("service: failed to geocode with yahoo: %w", err)
	}

	for _, loc := range locations {
		s.record(ctx, models.ProviderYahoo, query, loc)
	}

	return locations, nil
}

// GeocodePlaceFinder geocodes query with the PlaceFinder service. Locations of
// a Many result are recorded as they are consumed.
func (s *GeoCodeService) GeocodePlaceFinder(ctx context.Context, query string, exactlyOne bool) (geocoder.Result, error) {
	if query == "" {
		return nil, fmt.Errorf("service: %w", ErrEmptyQuery)
	}

	result, err := s.placeFinder.Geocode(ctx, query, exactlyOne)
	if err != nil {
		return nil, fmt.Errorf("service: failed to geocode with placefinder: %w", err)
	}

	switch r := result.(type) {
	case geocoder.One:
		s.record(ctx, models.ProviderPlaceFinder, query, r.Location)
	case geocoder.Many:
		if s.recorder != nil {
			result = geocoder.NewMany(r.Len(), s.recording(ctx, query, r.All()))
		}
	}

	return result, nil
}

func (s *GeoCodeService) recording(ctx context.Context, query string, seq iter.Seq[models.Location]) iter.Seq[models.Location] {
	return func(yield func(models.Location) bool) {
		for loc := range seq {
			s.record(ctx, models.ProviderPlaceFinder, query, loc)
			if !yield(loc) {
				return
			}
		}
	}
}

// record stores loc in the lookup history. Failures are logged only.
func (s *GeoCodeService) record(ctx context.Context, provider models.Provider, query string, loc models.Location) {
	if s.recorder == nil {
		return
	}

	lookup := models.Lookup{
		ID:        xid.New().String(),
		Provider:  provider,
		Query:     query,
		Address:   loc.Address,
		CreatedAt: time.Now().UTC(),
	}
	if loc.Point != nil {
		lat, lon := loc.Point.Latitude, loc.Point.Longitude
		lookup.Latitude, lookup.Longitude = &lat, &lon
	}

	if err := s.recorder.SaveLookup(ctx, lookup); err != nil {
		log.Warn().Err(err).Str("provider", string(provider)).Str("query", query).Msg("failed to record lookup")
	}
}
