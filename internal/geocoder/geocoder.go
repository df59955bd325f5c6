// Package geocoder implements clients for the Yahoo Maps geocoding service
// (XML) and the Yahoo PlaceFinder service (JSON).
package geocoder

import (
	"errors"
	"iter"
	"sync/atomic"

	"yahoo-geocoder/internal/models"
)

var (
	// ErrUnsupportedFormat is returned when no parser exists for the configured
	// output format.
	ErrUnsupportedFormat = errors.New("geocoder: unsupported output format")

	// ErrNoResults is returned when an XML payload holds no Result element.
	ErrNoResults = errors.New("geocoder: no results in response")

	// ErrNotExactlyOne is returned when exactly one result was requested and the
	// result set holds some other number.
	ErrNotExactlyOne = errors.New("geocoder: didn't find exactly one placemark")
)

// Result is the outcome of a PlaceFinder query: either One or Many.
type Result interface {
	isResult()
}

// One is the Result of a query that asked for exactly one location.
type One struct {
	Location models.Location
}

func (One) isResult() {}

// Many is the Result of a query that asked for every location. Its locations
// are parsed lazily and can be iterated once.
type Many struct {
	n    int
	seq  iter.Seq[models.Location]
	used *atomic.Bool
}

func (Many) isResult() {}

// NewMany wraps seq, which produces n locations, as a single-pass Many.
func NewMany(n int, seq iter.Seq[models.Location]) Many {
	return Many{n: n, seq: seq, used: new(atomic.Bool)}
}

// Len returns the size of the provider's result set.
func (m Many) Len() int {
	return m.n
}

// All returns the location sequence. Only the first iteration yields values.
func (m Many) All() iter.Seq[models.Location] {
	return func(yield func(models.Location) bool) {
		if m.seq == nil || m.used.Swap(true) {
			return
		}
		m.seq(yield)
	}
}

// Locations flattens r into a slice, consuming a Many.
func Locations(r Result) []models.Location {
	switch r := r.(type) {
	case One:
		return []models.Location{r.Location}
	case Many:
		locs := make([]models.Location, 0, r.Len())
		for loc := range r.All() {
			locs = append(locs, loc)
		}
		return locs
	default:
		return nil
	}
}
