package service

import (
	"context"
	"fmt"

	"yahoo-geocoder/internal/models"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryService lists recorded lookups
type HistoryService struct {
	repo HistoryRepository
}

// HistoryRepository interface for dependency injection
type HistoryRepository interface {
	RecentLookups(ctx context.Context, limit int) ([]models.Lookup, error)
}

// NewHistoryService creates a new history service
func NewHistoryService(repo HistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Recent returns up to limit lookups, newest first. A non-positive limit
// selects the default; larger limits are capped.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]models.Lookup, error) {
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	lookups, err := s.repo.RecentLookups(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list lookups: %w", err)
	}

	return lookups, nil
}
