package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "text/xml; charset=utf-8")
			_, _ = w.Write([]byte("<ResultSet/>"))
		default:
			http.Error(w, "forbidden", http.StatusForbidden)
		}
	}))
	defer srv.Close()

	page, err := Fetch(context.Background(), srv.Client(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "<ResultSet/>", string(page.Body))
	assert.Equal(t, "text/xml; charset=utf-8", page.ContentType)

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/denied")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

func TestFetch_TransportError(t *testing.T) {
	client := &http.Client{Transport: &dummyRoundTripper{err: errors.New("dial tcp: no route")}}

	_, err := Fetch(context.Background(), client, "http://example.invalid/")
	assert.ErrorContains(t, err, "no route")
}

func TestFetch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fetch(ctx, http.DefaultClient, "http://example.invalid/")
	assert.ErrorIs(t, err, context.Canceled)
}
