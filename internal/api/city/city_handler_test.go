package city

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tourism-api/internal/api"
	"github.com/FACorreiaa/go-tourism-api/internal/types"
)

// MockService is a mock implementation of Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GetAllCities(ctx context.Context) ([]types.CityResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.CityResponse), args.Error(1)
}

func (m *MockService) GetCity(ctx context.Context, name string) (*types.CityResponse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CityResponse), args.Error(1)
}

func (m *MockService) RecommendPlaces(ctx context.Context, name string, limit int) (*types.RecommendationResponse, error) {
	args := m.Called(ctx, name, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecommendationResponse), args.Error(1)
}

func (m *MockService) CityCount() int {
	return m.Called().Int(0)
}

func newTestRouter(svc Service) http.Handler {
	h := NewCityHandler(svc, discardLogger())
	r := chi.NewRouter()
	r.Get("/healthz", h.Health)
	r.Get("/city", h.GetAllCities)
	r.Get("/city/{city_name}", h.GetCity)
	r.Get("/city/{city_name}/recommend", h.RecommendPlaces)
	return r
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandler_GetAllCities(t *testing.T) {
	svc := new(MockService)
	svc.On("GetAllCities", mock.Anything).Return([]types.CityResponse{
		{City: "Agra", CityAverageRating: 4.6, BestTimeToVisit: "October-March", Places: []types.PlaceResponse{}},
	}, nil).Once()

	w := doGet(t, newTestRouter(svc), "/city")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Agra", body[0]["city"])
	assert.Contains(t, body[0], "city_average_rating")
	assert.Contains(t, body[0], "best_time_to_visit")
	assert.Contains(t, body[0], "places")
	svc.AssertExpectations(t)
}

func TestHandler_GetAllCitiesServiceError(t *testing.T) {
	svc := new(MockService)
	svc.On("GetAllCities", mock.Anything).Return(nil, errors.New("boom")).Once()

	w := doGet(t, newTestRouter(svc), "/city")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	svc.AssertExpectations(t)
}

func TestHandler_GetCity(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetCity", mock.Anything, "agra").Return(&types.CityResponse{
			City: "Agra",
			Places: []types.PlaceResponse{{
				PlaceName: "Taj Mahal", Type: "Mausoleum", Rating: 4.9, Significance: "Historical",
				WeeklyOff: "Friday", EntranceFee: 50, DSLRAllowed: "Yes",
			}},
		}, nil).Once()

		w := doGet(t, newTestRouter(svc), "/city/agra")

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Agra", body["city"])
		places := body["places"].([]interface{})
		require.Len(t, places, 1)
		place := places[0].(map[string]interface{})
		for _, key := range []string{"place_name", "type", "rating", "significance", "weekly_off", "entrance_fee", "dslr_allowed"} {
			assert.Contains(t, place, key)
		}
		svc.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetCity", mock.Anything, "Atlantis").Return(nil, &NotFoundError{Name: "Atlantis"}).Once()

		w := doGet(t, newTestRouter(svc), "/city/Atlantis")

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body api.ErrorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "City 'Atlantis' not found", body.Error)
		svc.AssertExpectations(t)
	})

	t.Run("EscapedName", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetCity", mock.Anything, "New Delhi").Return(&types.CityResponse{City: "New Delhi"}, nil).Once()

		w := doGet(t, newTestRouter(svc), "/city/New%20Delhi")

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})
}

func TestHandler_RecommendPlaces(t *testing.T) {
	rec := &types.RecommendationResponse{
		City:      "Agra",
		TopPlaces: []types.PlaceResponse{{PlaceName: "Taj Mahal", Rating: 4.9}},
	}

	t.Run("DefaultLimit", func(t *testing.T) {
		svc := new(MockService)
		svc.On("RecommendPlaces", mock.Anything, "Agra", DefaultRecommendLimit).Return(rec, nil).Once()

		w := doGet(t, newTestRouter(svc), "/city/Agra/recommend")

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body, "top_5_places")
		assert.NotContains(t, body, "places")
		svc.AssertExpectations(t)
	})

	t.Run("ExplicitLimit", func(t *testing.T) {
		svc := new(MockService)
		svc.On("RecommendPlaces", mock.Anything, "Agra", 3).Return(rec, nil).Once()

		w := doGet(t, newTestRouter(svc), "/city/Agra/recommend?limit=3")

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("NonIntegerLimit", func(t *testing.T) {
		svc := new(MockService)

		w := doGet(t, newTestRouter(svc), "/city/Agra/recommend?limit=lots")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "RecommendPlaces", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NegativeLimit", func(t *testing.T) {
		svc := new(MockService)
		svc.On("RecommendPlaces", mock.Anything, "Agra", -2).Return(nil, ErrInvalidLimit).Once()

		w := doGet(t, newTestRouter(svc), "/city/Agra/recommend?limit=-2")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockService)
		svc.On("RecommendPlaces", mock.Anything, "Atlantis", DefaultRecommendLimit).
			Return(nil, &NotFoundError{Name: "Atlantis"}).Once()

		w := doGet(t, newTestRouter(svc), "/city/Atlantis/recommend")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "City 'Atlantis' not found")
		svc.AssertExpectations(t)
	})
}

func TestHandler_Health(t *testing.T) {
	svc := new(MockService)
	svc.On("CityCount").Return(3).Once()

	w := doGet(t, newTestRouter(svc), "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","cities":3}`, w.Body.String())
}
