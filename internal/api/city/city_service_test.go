package city

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tourism-api/internal/types"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) All(ctx context.Context) []types.City {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]types.City)
}

func (m *MockRepository) FindByName(ctx context.Context, name string) (*types.City, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.City), args.Error(1)
}

func (m *MockRepository) Count() int {
	return m.Called().Int(0)
}

func agraFixture() types.City {
	ratings := []float64{4.8, 4.5, 4.9, 4.5, 4.7}
	names := []string{"Agra Fort", "Mehtab Bagh", "Taj Mahal", "Jama Masjid", "Itimad-ud-Daulah"}
	c := types.City{Name: "Agra", AverageRating: 4.68, BestTimeToVisit: "October-March"}
	for i := range ratings {
		c.Places = append(c.Places, types.Place{
			ID:     PlaceID("Agra", i, names[i]),
			Name:   names[i],
			Rating: ratings[i],
		})
	}
	return c
}

func newTestService(cities ...types.City) *ServiceImpl {
	return NewServiceImpl(NewInMemoryRepository(cities, discardLogger()), nil, nil, discardLogger())
}

func ratingsOf(places []types.PlaceResponse) []float64 {
	out := make([]float64, 0, len(places))
	for _, p := range places {
		out = append(out, p.Rating)
	}
	return out
}

func TestServiceImpl_RecommendPlaces(t *testing.T) {
	svc := newTestService(agraFixture())
	ctx := context.Background()

	t.Run("top three, any case", func(t *testing.T) {
		rec, err := svc.RecommendPlaces(ctx, "agra", 3)
		require.NoError(t, err)
		assert.Equal(t, "Agra", rec.City)
		assert.InDelta(t, 4.68, rec.CityAverageRating, 1e-9)
		assert.Equal(t, "October-March", rec.BestTimeToVisit)
		assert.Equal(t, []float64{4.9, 4.8, 4.7}, ratingsOf(rec.TopPlaces))
		assert.Equal(t, "Taj Mahal", rec.TopPlaces[0].PlaceName)
	})

	t.Run("default limit", func(t *testing.T) {
		rec, err := svc.RecommendPlaces(ctx, "AGRA", DefaultRecommendLimit)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(rec.TopPlaces), 5)
		assert.Equal(t, []float64{4.9, 4.8, 4.7, 4.5, 4.5}, ratingsOf(rec.TopPlaces))
	})

	t.Run("ties keep source order", func(t *testing.T) {
		rec, err := svc.RecommendPlaces(ctx, "Agra", 5)
		require.NoError(t, err)
		assert.Equal(t, "Mehtab Bagh", rec.TopPlaces[3].PlaceName)
		assert.Equal(t, "Jama Masjid", rec.TopPlaces[4].PlaceName)
	})

	t.Run("limit above place count returns everything", func(t *testing.T) {
		rec, err := svc.RecommendPlaces(ctx, "Agra", 50)
		require.NoError(t, err)
		assert.Len(t, rec.TopPlaces, 5)
	})

	t.Run("zero limit", func(t *testing.T) {
		rec, err := svc.RecommendPlaces(ctx, "Agra", 0)
		require.NoError(t, err)
		assert.NotNil(t, rec.TopPlaces)
		assert.Empty(t, rec.TopPlaces)
	})

	t.Run("negative limit", func(t *testing.T) {
		_, err := svc.RecommendPlaces(ctx, "Agra", -1)
		assert.ErrorIs(t, err, ErrInvalidLimit)
	})

	t.Run("unknown city", func(t *testing.T) {
		_, err := svc.RecommendPlaces(ctx, "Atlantis", 5)
		require.ErrorIs(t, err, ErrCityNotFound)
		assert.Contains(t, err.Error(), "Atlantis")
	})
}

func TestTopRated_SubsequenceAndNoMutation(t *testing.T) {
	agra := agraFixture()
	before := make([]types.Place, len(agra.Places))
	copy(before, agra.Places)

	top := TopRated(agra.Places, 4)
	require.Len(t, top, 4)

	ids := make(map[string]bool, len(agra.Places))
	for _, p := range agra.Places {
		ids[p.ID.String()] = true
	}
	for i, p := range top {
		assert.True(t, ids[p.ID.String()], "place %q not from source", p.Name)
		if i > 0 {
			assert.GreaterOrEqual(t, top[i-1].Rating, p.Rating)
		}
	}
	assert.Equal(t, before, agra.Places, "source order must be preserved")
}

func TestServiceImpl_GetCity(t *testing.T) {
	svc := newTestService(agraFixture())

	c, err := svc.GetCity(context.Background(), "aGRA")
	require.NoError(t, err)
	assert.Equal(t, "Agra", c.City)
	require.Len(t, c.Places, 5)
	assert.Equal(t, "Agra Fort", c.Places[0].PlaceName, "places stay in source order")

	_, err = svc.GetCity(context.Background(), "Nowhere")
	require.Error(t, err)
	assert.Equal(t, "City 'Nowhere' not found", err.Error())
}

func TestServiceImpl_GetAllCities(t *testing.T) {
	svc := newTestService(agraFixture(), types.City{Name: "Leh"})

	all, err := svc.GetAllCities(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Agra", all[0].City)
	assert.Equal(t, "Leh", all[1].City)
	assert.NotNil(t, all[1].Places)
	assert.Equal(t, 2, svc.CityCount())
}

func TestServiceImpl_RecommendPlacesCached(t *testing.T) {
	repo := new(MockRepository)
	agra := agraFixture()
	repo.On("FindByName", mock.Anything, "Agra").Return(&agra, nil).Once()
	repo.On("FindByName", mock.Anything, "Atlantis").Return(nil, &NotFoundError{Name: "Atlantis"}).Twice()

	svc := NewServiceImpl(repo, cache.New(time.Minute, time.Minute), nil, discardLogger())
	ctx := context.Background()

	first, err := svc.RecommendPlaces(ctx, "Agra", 2)
	require.NoError(t, err)
	// same key modulo case: served from cache, no second lookup
	second, err := svc.RecommendPlaces(ctx, "agra", 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// misses are not cached
	for i := 0; i < 2; i++ {
		_, err = svc.RecommendPlaces(ctx, "Atlantis", 2)
		assert.True(t, errors.Is(err, ErrCityNotFound))
	}

	repo.AssertExpectations(t)
}
