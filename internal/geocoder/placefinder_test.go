package geocoder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"yahoo-geocoder/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const springfieldRecord = `{"house":"","street":"Main St","city":"Springfield","state":"IL","statecode":"IL","country":"US","countrycode":"US","uzip":"62701","latitude":"39.8","longitude":"-89.6"}`

func resultSet(records ...string) []byte {
	return []byte(`{"ResultSet":{"Results":[` + strings.Join(records, ",") + `]}}`)
}

func TestPlaceFinder_ParseJSON_ExactlyOne(t *testing.T) {
	p := NewPlaceFinder("app")

	res, err := p.ParseJSON(resultSet(springfieldRecord), true)
	require.NoError(t, err)

	one, ok := res.(One)
	require.True(t, ok, "expected One, got %T", res)
	assert.Equal(t, "Main St Springfield IL (IL) US (US) 62701", one.Location.Address)
	assert.Equal(t, &models.Point{Latitude: 39.8, Longitude: -89.6}, one.Location.Point)
}

func TestPlaceFinder_ParseJSON_ExactlyOneCount(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		found   string
	}{
		{name: "empty result set", payload: resultSet(), found: "(found 0)"},
		{name: "two results", payload: resultSet(springfieldRecord, springfieldRecord), found: "(found 2)"},
	}

	p := NewPlaceFinder("app")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseJSON(tt.payload, true)
			assert.ErrorIs(t, err, ErrNotExactlyOne)
			assert.ErrorContains(t, err, tt.found)
		})
	}
}

func TestPlaceFinder_ParseJSON_Many(t *testing.T) {
	second := `{"house":"742","street":"Evergreen Terrace","city":"Springfield","state":"","statecode":"","country":"US","countrycode":"US","uzip":"","latitude":"","longitude":"-89.6"}`

	res, err := NewPlaceFinder("app").ParseJSON(resultSet(springfieldRecord, second), false)
	require.NoError(t, err)

	many, ok := res.(Many)
	require.True(t, ok, "expected Many, got %T", res)
	assert.Equal(t, 2, many.Len())

	var locs []models.Location
	for loc := range many.All() {
		locs = append(locs, loc)
	}
	require.Len(t, locs, 2)
	assert.Equal(t, "742 Evergreen Terrace Springfield () US (US)", locs[1].Address)
	assert.Nil(t, locs[1].Point)

	// The sequence is single pass.
	for range many.All() {
		t.Fatal("second iteration yielded a location")
	}
}

func TestPlaceFinder_ParseJSON_ManyIsLazy(t *testing.T) {
	res, err := NewPlaceFinder("app").ParseJSON(resultSet(springfieldRecord, springfieldRecord, springfieldRecord), false)
	require.NoError(t, err)

	n := 0
	for range res.(Many).All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestPlaceFinder_ParseJSON_ManyEmpty(t *testing.T) {
	res, err := NewPlaceFinder("app").ParseJSON(resultSet(), false)
	require.NoError(t, err)
	assert.Empty(t, Locations(res))
}

func TestPlaceFinder_ParseJSON_RawIsWholeRecord(t *testing.T) {
	record := `{"quality":87,"city":"Springfield","woeid":2497646,"latitude":"39.8","longitude":"-89.6","extra":{"a":[1,2]}}`

	res, err := NewPlaceFinder("app").ParseJSON(resultSet(record), true)
	require.NoError(t, err)

	var want map[string]any
	d := json.NewDecoder(strings.NewReader(record))
	d.UseNumber()
	require.NoError(t, d.Decode(&want))

	if diff := cmp.Diff(want, res.(One).Location.Raw); diff != "" {
		t.Errorf("raw mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Springfield () ()", res.(One).Location.Address)
}

func TestPlaceFinder_ParseJSON_Point(t *testing.T) {
	tests := []struct {
		name     string
		coords   string
		expected *models.Point
	}{
		{name: "strings", coords: `"latitude":"39.8","longitude":"-89.6"`, expected: &models.Point{Latitude: 39.8, Longitude: -89.6}},
		{name: "numbers", coords: `"latitude":39.8,"longitude":-89.6`, expected: &models.Point{Latitude: 39.8, Longitude: -89.6}},
		{name: "missing longitude", coords: `"latitude":"39.8"`},
		{name: "empty latitude", coords: `"latitude":"","longitude":"-89.6"`},
		{name: "null latitude", coords: `"latitude":null,"longitude":"-89.6"`},
		{name: "zero latitude is unset", coords: `"latitude":0,"longitude":-89.6`},
		{name: "unparsable", coords: `"latitude":"north","longitude":"-89.6"`},
	}

	p := NewPlaceFinder("app")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.ParseJSON(resultSet(`{"city":"Springfield",`+tt.coords+`}`), true)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res.(One).Location.Point)
		})
	}
}

func TestPlaceFinder_ParseJSON_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		message string
	}{
		{name: "truncated", payload: `{"ResultSet":`},
		{name: "trailing data", payload: `{"ResultSet":{"Results":[]}} trailing`, message: "unexpected data after JSON value"},
		{name: "second value", payload: `{"ResultSet":{"Results":[]}} {}`, message: "unexpected data after JSON value"},
		{name: "missing result set", payload: `{}`, message: "missing ResultSet.Results"},
		{name: "null results", payload: `{"ResultSet":{"Results":null}}`, message: "missing ResultSet.Results"},
		{
			name:    "provider error envelope",
			payload: `{"ResultSet":{"Error":100,"ErrorMessage":"No location parameter","Found":0}}`,
			message: "missing ResultSet.Results (No location parameter)",
		},
	}

	p := NewPlaceFinder("app")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, exactlyOne := range []bool{true, false} {
				res, err := p.ParseJSON([]byte(tt.payload), exactlyOne)
				require.Error(t, err)
				assert.Nil(t, res)
				assert.NotErrorIs(t, err, ErrNotExactlyOne)
				assert.ErrorContains(t, err, "geocoder: decoding response")
				if tt.message != "" {
					assert.ErrorContains(t, err, tt.message)
				}
			}
		})
	}
}

func TestPlaceFinder_ParseJSON_TrailingWhitespace(t *testing.T) {
	res, err := NewPlaceFinder("app").ParseJSON(append(resultSet(springfieldRecord), " \n\t"...), true)
	require.NoError(t, err)
	assert.IsType(t, One{}, res)
}

func TestPlaceFinder_Geocode(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(resultSet(springfieldRecord))
	}))
	defer srv.Close()

	p := NewPlaceFinder("app", WithBaseURL(srv.URL+"/geocode"), WithHTTPClient(srv.Client()))
	assert.Equal(t, "app", p.AppID())

	res, err := p.Geocode(context.Background(), "Main St, Springfield", true)
	require.NoError(t, err)
	assert.Equal(t, "Main St Springfield IL (IL) US (US) 62701", res.(One).Location.Address)

	require.NotNil(t, got)
	assert.Equal(t, "/geocode", got.URL.Path)
	assert.Equal(t, "j", got.URL.Query().Get("flags"))
	assert.Equal(t, "Main St, Springfield", got.URL.Query().Get("q"))

	res, err = p.Geocode(context.Background(), "Main St, Springfield", false)
	require.NoError(t, err)
	assert.Len(t, Locations(res), 1)
}

func TestLocations(t *testing.T) {
	loc := models.NewLocation("a", nil, nil)

	assert.Equal(t, []models.Location{loc}, Locations(One{Location: loc}))
	assert.Nil(t, Locations(nil))
}
