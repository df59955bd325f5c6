package geocoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"yahoo-geocoder/internal/httputil"
	"yahoo-geocoder/internal/models"
	"yahoo-geocoder/internal/textutil"

	"github.com/rs/zerolog/log"
)

const placeFinderBaseURL = "http://where.yahooapis.com/geocode"

// PlaceFinder geocodes free-text locations with the Yahoo PlaceFinder service.
type PlaceFinder struct {
	appID   string
	baseURL string
	client  httputil.Doer
}

// NewPlaceFinder creates a PlaceFinder geocoder. The application ID is kept
// but the service's geocode endpoint is queried without it.
func NewPlaceFinder(appID string, opts ...Option) *PlaceFinder {
	s := newSettings(placeFinderBaseURL, opts)
	return &PlaceFinder{
		appID:   appID,
		baseURL: s.baseURL,
		client:  s.client,
	}
}

// AppID returns the application ID the geocoder was created with.
func (p *PlaceFinder) AppID() string {
	return p.appID
}

// Geocode looks up query. With exactlyOne the result is a One and any other
// result count is an error; otherwise it is a Many.
func (p *PlaceFinder) Geocode(ctx context.Context, query string, exactlyOne bool) (Result, error) {
	params := url.Values{}
	params.Set("flags", "j")
	params.Set("q", query)

	return p.GeocodeURL(ctx, p.baseURL+"?"+params.Encode(), exactlyOne)
}

// GeocodeURL fetches a prepared request URL and parses the JSON response.
func (p *PlaceFinder) GeocodeURL(ctx context.Context, rawURL string, exactlyOne bool) (Result, error) {
	log.Debug().Str("url", rawURL).Msg("fetching")
	page, err := httputil.Fetch(ctx, p.client, rawURL)
	if err != nil {
		return nil, err
	}

	return p.ParseJSON(page.Body, exactlyOne)
}

type placeFinderResponse struct {
	ResultSet struct {
		Results      *[]map[string]any `json:"Results"`
		ErrorMessage string            `json:"ErrorMessage"`
	} `json:"ResultSet"`
}

// ParseJSON parses a PlaceFinder JSON response.
func (p *PlaceFinder) ParseJSON(body []byte, exactlyOne bool) (Result, error) {
	d := json.NewDecoder(bytes.NewReader(body))
	d.UseNumber()

	var resp placeFinderResponse
	if err := d.Decode(&resp); err != nil {
		return nil, fmt.Errorf("geocoder: decoding response: %w", err)
	}
	if _, err := d.Token(); err != io.EOF {
		return nil, errors.New("geocoder: decoding response: unexpected data after JSON value")
	}
	if resp.ResultSet.Results == nil {
		if msg := resp.ResultSet.ErrorMessage; msg != "" {
			return nil, fmt.Errorf("geocoder: decoding response: missing ResultSet.Results (%s)", msg)
		}
		return nil, errors.New("geocoder: decoding response: missing ResultSet.Results")
	}

	results := *resp.ResultSet.Results
	if exactlyOne {
		if len(results) != 1 {
			return nil, fmt.Errorf("%w (found %d)", ErrNotExactlyOne, len(results))
		}
		return One{Location: parsePlaceFinderResult(results[0])}, nil
	}

	return NewMany(len(results), func(yield func(models.Location) bool) {
		for _, r := range results {
			if !yield(parsePlaceFinderResult(r)) {
				return
			}
		}
	}), nil
}

func parsePlaceFinderResult(result map[string]any) models.Location {
	f := func(key string) string {
		return fieldText(result[key])
	}

	display := textutil.CollapseSpaces(fmt.Sprintf("%s %s %s %s (%s) %s (%s) %s",
		f("house"), f("street"), f("city"), f("state"), f("statecode"),
		f("country"), f("countrycode"), f("uzip")))

	var point *models.Point
	if lat, lon := result["latitude"], result["longitude"]; truthy(lat) && truthy(lon) {
		point = models.ParsePoint(fieldText(lat), fieldText(lon))
	}

	return models.NewLocation(display, point, result)
}

// fieldText renders a decoded JSON value for the display template.
func fieldText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// truthy reports whether a decoded JSON value is set: a non-empty string, a
// non-zero number, true, or a non-empty array or object.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case bool:
		return v
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}
