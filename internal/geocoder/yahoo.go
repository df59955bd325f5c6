package geocoder

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"yahoo-geocoder/internal/httputil"
	"yahoo-geocoder/internal/models"
	"yahoo-geocoder/internal/textutil"

	"github.com/rs/zerolog/log"
)

const (
	yahooBaseURL = "http://api.local.yahoo.com/MapsService/V1/geocode"

	// characters trimmed from address components
	yahooCutset = ", \n"
)

type yahooParser func(page *httputil.Page) ([]models.Location, error)

// Yahoo geocodes free-text locations with the Yahoo Maps V1 geocode service.
type Yahoo struct {
	appID        string
	formatString string
	outputFormat OutputFormat
	baseURL      string
	client       httputil.Doer
	parsers      map[OutputFormat]yahooParser
}

// NewYahoo creates a Yahoo geocoder for the given application ID.
func NewYahoo(appID string, opts ...Option) (*Yahoo, error) {
	s := newSettings(yahooBaseURL, opts)
	if n := strings.Count(s.formatString, "%s"); n != 1 {
		return nil, fmt.Errorf("geocoder: format string %q must contain exactly one %%s, found %d", s.formatString, n)
	}

	y := &Yahoo{
		appID:        appID,
		formatString: s.formatString,
		outputFormat: s.outputFormat,
		baseURL:      s.baseURL,
		client:       s.client,
	}
	y.parsers = map[OutputFormat]yahooParser{
		FormatXML: func(page *httputil.Page) ([]models.Location, error) {
			return y.ParseXML(page.Body, page.ContentType)
		},
	}

	return y, nil
}

// Geocode looks up query.
func (y *Yahoo) Geocode(ctx context.Context, query string) ([]models.Location, error) {
	params := url.Values{}
	params.Set("location", strings.Replace(y.formatString, "%s", query, 1))
	params.Set("output", string(y.outputFormat))
	params.Set("appid", y.appID)

	return y.GeocodeURL(ctx, y.baseURL+"?"+params.Encode())
}

// GeocodeURL fetches a prepared request URL and parses the response with the
// parser of the configured output format. Without a parser for that format it
// returns ErrUnsupportedFormat and sends no request.
func (y *Yahoo) GeocodeURL(ctx context.Context, rawURL string) ([]models.Location, error) {
	parse, ok := y.parsers[y.outputFormat]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, y.outputFormat)
	}

	log.Debug().Str("url", rawURL).Msg("fetching")
	page, err := httputil.Fetch(ctx, y.client, rawURL)
	if err != nil {
		return nil, err
	}

	return parse(page)
}

// ParseXML parses a Yahoo Maps XML response into one location per Result
// element.
func (y *Yahoo) ParseXML(body []byte, contentType string) ([]models.Location, error) {
	text, err := textutil.DecodePage(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("geocoder: %w", err)
	}

	doc, err := textutil.ParseXML(text)
	if err != nil {
		return nil, fmt.Errorf("geocoder: %w", err)
	}

	results := doc.FindAll("Result")
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	// Precision is read from the first result and applied to every location.
	precision := results[0].Attr("precision")

	locations := make([]models.Location, 0, len(results))
	for _, r := range results {
		locations = append(locations, parseYahooResult(r, precision))
	}

	return locations, nil
}

func parseYahooResult(result *textutil.Node, precision string) models.Location {
	text := func(tag string) string {
		s, _ := result.FirstText(tag, yahooCutset)
		return s
	}

	address := text("Address")
	city := text("City")
	state := text("State")
	zip := text("Zip")
	country := text("Country")

	place := textutil.JoinFilter(" ", textutil.JoinFilter(", ", city, state), zip)
	display := textutil.JoinFilter(", ", address, place, country)

	lat, _ := result.FirstText("Latitude", "")
	lon, _ := result.FirstText("Longitude", "")

	return models.NewLocation(display, models.ParsePoint(lat, lon), map[string]any{
		"Address":   address,
		"City":      city,
		"State":     state,
		"Zip":       zip,
		"Country":   country,
		"precision": precision,
	})
}
