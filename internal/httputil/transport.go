// Package httputil builds the HTTP client used to reach the geocoding
// providers and performs the synchronous page fetch.
package httputil

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultUserAgent = "yahoo-geocoder/dev"

// LoggingRoundTripper logs one line per HTTP exchange.
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger
}

// RoundTrip implements the http.RoundTripper interface.
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	logger := t.Logger
	if logger == nil {
		logger = &log.Logger
	}

	start := time.Now()
	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		logger.Debug().
			Err(err).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Dur("duration", time.Since(start)).
			Msg("http request failed")
		return nil, err
	}

	logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("http request")

	return resp, nil
}

// HeaderRoundTripper sets fixed headers on every request.
type HeaderRoundTripper struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

// RoundTrip implements the http.RoundTripper interface.
func (t *HeaderRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.Headers {
		req.Header.Set(k, v)
	}
	return t.Transport.RoundTrip(req)
}

// Options configures NewClient.
type Options struct {
	UserAgent string
	// Timeout bounds a whole exchange. Zero means no timeout.
	Timeout time.Duration
	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper
	Logger    *zerolog.Logger
}

// NewClient returns an http.Client that sends the configured headers and logs
// every exchange.
func NewClient(opts Options) *http.Client {
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	userAgent := defaultUserAgent
	if opts.UserAgent != "" {
		userAgent = opts.UserAgent
	}

	return &http.Client{
		Timeout: opts.Timeout,
		Transport: &HeaderRoundTripper{
			Headers: map[string]string{
				"User-Agent": userAgent,
				"Accept":     "*/*",
			},
			Transport: &LoggingRoundTripper{
				Transport: transport,
				Logger:    opts.Logger,
			},
		},
	}
}
