package models

import (
	"maps"
	"strconv"
	"strings"
)

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParsePoint builds a Point from its textual components. It returns nil when
// either component is missing or is not a valid float.
func ParsePoint(lat, lon string) *Point {
	lat, lon = strings.TrimSpace(lat), strings.TrimSpace(lon)
	if lat == "" || lon == "" {
		return nil
	}

	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil
	}

	longitude, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return nil
	}

	return &Point{Latitude: latitude, Longitude: longitude}
}

// Location is a single geocoding result: the display address assembled from the
// provider's components, its coordinate when the provider returned one, and every
// raw field of the provider record.
type Location struct {
	Address string         `json:"address"`
	Point   *Point         `json:"point"`
	Raw     map[string]any `json:"raw"`
}

// NewLocation creates a Location owning a copy of raw.
func NewLocation(address string, point *Point, raw map[string]any) Location {
	return Location{
		Address: address,
		Point:   point,
		Raw:     maps.Clone(raw),
	}
}
