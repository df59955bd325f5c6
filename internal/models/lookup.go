package models

import "time"

// Lookup is a geocoded location recorded in the lookup history.
type Lookup struct {
	ID        string    `json:"id"`
	Provider  Provider  `json:"provider"`
	Query     string    `json:"query"`
	Address   string    `json:"address"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider names a geocoding service.
type Provider string

const (
	ProviderYahoo       Provider = "yahoo"
	ProviderPlaceFinder Provider = "placefinder"
)
