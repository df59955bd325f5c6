package geocoder

import (
	"net/http"
	"strings"

	"yahoo-geocoder/internal/httputil"
)

// OutputFormat selects the response format requested from the Yahoo Maps
// service.
type OutputFormat string

// FormatXML is the only output format with a parser.
const FormatXML OutputFormat = "xml"

type settings struct {
	client       httputil.Doer
	baseURL      string
	formatString string
	outputFormat OutputFormat
}

// Option configures a geocoder.
type Option func(*settings)

// WithHTTPClient sets the client used to fetch provider pages.
func WithHTTPClient(client httputil.Doer) Option {
	return func(s *settings) {
		s.client = client
	}
}

// WithBaseURL overrides the provider endpoint.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) {
		s.baseURL = baseURL
	}
}

// WithFormatString sets the template applied to queries before encoding. It
// must contain a single %s. Only the Yahoo geocoder uses it.
func WithFormatString(format string) Option {
	return func(s *settings) {
		s.formatString = format
	}
}

// WithOutputFormat sets the requested response format. Only the Yahoo geocoder
// uses it.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *settings) {
		s.outputFormat = OutputFormat(strings.ToLower(string(format)))
	}
}

func newSettings(baseURL string, opts []Option) settings {
	s := settings{
		client:       http.DefaultClient,
		baseURL:      baseURL,
		formatString: "%s",
		outputFormat: FormatXML,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
