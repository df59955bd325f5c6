package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"yahoo-geocoder/internal/models"
	"yahoo-geocoder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReverseGeoCodeService is a mock implementation of the ReverseGeoCodeService interface
type MockReverseGeoCodeService struct {
	mock.Mock
}

func (m *MockReverseGeoCodeService) ReverseGeocode(ctx context.Context, lat float64, lon float64) (*models.Lookup, error) {
	args := m.Called(ctx, lat, lon)
	lookup, _ := args.Get(0).(*models.Lookup)
	return lookup, args.Error(1)
}

func TestReverseGeocodeHandler_ReverseGeocode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	lat, lon := 39.8, -89.6
	found := &models.Lookup{
		ID:        "lookup-1",
		Provider:  models.ProviderYahoo,
		Query:     "Springfield",
		Address:   "Springfield, IL",
		Latitude:  &lat,
		Longitude: &lon,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	tests := []struct {
		name           string
		params         url.Values
		setup          func(*MockReverseGeoCodeService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing query parameters",
			params:         url.Values{"lat": {"39.8"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"missing required query parameters 'lat' and 'lon'"}`,
		},
		{
			name:           "invalid latitude",
			params:         url.Values{"lat": {"north"}, "lon": {"-89.6"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid latitude format"}`,
		},
		{
			name:           "invalid longitude",
			params:         url.Values{"lat": {"39.8"}, "lon": {"west"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid longitude format"}`,
		},
		{
			name:   "out of range",
			params: url.Values{"lat": {"91"}, "lon": {"0"}},
			setup: func(m *MockReverseGeoCodeService) {
				m.On("ReverseGeocode", mock.Anything, 91.0, 0.0).Return(nil, service.ErrInvalidCoordinates)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"coordinates out of range"}`,
		},
		{
			name:   "nearest lookup",
			params: url.Values{"lat": {"39.8"}, "lon": {"-89.6"}},
			setup: func(m *MockReverseGeoCodeService) {
				m.On("ReverseGeocode", mock.Anything, 39.8, -89.6).Return(found, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"id":"lookup-1","provider":"yahoo","query":"Springfield","address":"Springfield, IL",` +
				`"latitude":39.8,"longitude":-89.6,"created_at":"2024-01-02T03:04:05Z"}`,
		},
		{
			name:   "nothing nearby",
			params: url.Values{"lat": {"0"}, "lon": {"0"}},
			setup: func(m *MockReverseGeoCodeService) {
				m.On("ReverseGeocode", mock.Anything, 0.0, 0.0).Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"no lookup recorded near the specified coordinates"}`,
		},
		{
			name:   "service error",
			params: url.Values{"lat": {"39.8"}, "lon": {"-89.6"}},
			setup: func(m *MockReverseGeoCodeService) {
				m.On("ReverseGeocode", mock.Anything, 39.8, -89.6).Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockReverseGeoCodeService)
			if tt.setup != nil {
				tt.setup(mockSvc)
			}
			handler := NewReverseGeocodeHandler(mockSvc)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/reverse-geocode?"+tt.params.Encode(), nil)

			handler.ReverseGeocode(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockSvc.AssertExpectations(t)
		})
	}
}
