package service

import (
	"context"
	"errors"
	"fmt"

	"yahoo-geocoder/internal/models"
	"yahoo-geocoder/internal/repository"
)

// ReverseGeoCodeService finds recorded lookups near a coordinate
type ReverseGeoCodeService struct {
	repo ReverseGeoCodeRepository
}

// ReverseGeoCodeRepository interface for dependency injection
type ReverseGeoCodeRepository interface {
	FindNearestLookup(ctx context.Context, lat, lon float64) (*models.Lookup, error)
}

// NewReverseGeoCodeService creates a new reverse geo code service
func NewReverseGeoCodeService(repo ReverseGeoCodeRepository) *ReverseGeoCodeService {
	return &ReverseGeoCodeService{repo: repo}
}

// ReverseGeocode returns the recorded lookup nearest to the given coordinates,
// or nil when none is close enough.
func (s *ReverseGeoCodeService) ReverseGeocode(ctx context.Context, lat, lon float64) (*models.Lookup, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("service: %w: latitude %f", ErrInvalidCoordinates, lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("service: %w: longitude %f", ErrInvalidCoordinates, lon)
	}

	lookup, err := s.repo.FindNearestLookup(ctx, lat, lon)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("service: failed to find nearest lookup: %w", err)
	}

	return lookup, nil
}
