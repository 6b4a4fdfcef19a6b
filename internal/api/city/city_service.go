package city

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-tourism-api/app/observability/metrics"
	"github.com/FACorreiaa/go-tourism-api/internal/types"
)

// DefaultRecommendLimit is used when the caller does not ask for a size.
const DefaultRecommendLimit = 5

var _ Service = (*ServiceImpl)(nil)

// Service defines the read operations exposed over HTTP.
type Service interface {
	GetAllCities(ctx context.Context) ([]types.CityResponse, error)
	GetCity(ctx context.Context, name string) (*types.CityResponse, error)
	RecommendPlaces(ctx context.Context, name string, limit int) (*types.RecommendationResponse, error)
	CityCount() int
}

type ServiceImpl struct {
	logger  *slog.Logger
	repo    Repository
	cache   *cache.Cache
	metrics *metrics.AppMetrics
}

// NewServiceImpl builds the query service. recommendations may be nil to
// disable memoisation; m may be nil to disable metrics.
func NewServiceImpl(repo Repository, recommendations *cache.Cache, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		repo:    repo,
		cache:   recommendations,
		metrics: m,
	}
}

func (s *ServiceImpl) GetAllCities(ctx context.Context) ([]types.CityResponse, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "GetAllCities")
	defer span.End()
	s.metrics.CityRequest(ctx, "list")

	cities := s.repo.All(ctx)
	out := make([]types.CityResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, types.NewCityResponse(c))
	}

	span.SetAttributes(attribute.Int("cities.count", len(out)))
	span.SetStatus(codes.Ok, "Cities listed")
	return out, nil
}

func (s *ServiceImpl) GetCity(ctx context.Context, name string) (*types.CityResponse, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "GetCity", trace.WithAttributes(
		attribute.String("city.name", name),
	))
	defer span.End()
	s.metrics.CityRequest(ctx, "get")

	c, err := s.repo.FindByName(ctx, name)
	if err != nil {
		s.recordLookupError(ctx, span, "get", err)
		return nil, err
	}

	resp := types.NewCityResponse(*c)
	span.SetStatus(codes.Ok, "City found")
	return &resp, nil
}

func (s *ServiceImpl) RecommendPlaces(ctx context.Context, name string, limit int) (*types.RecommendationResponse, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "RecommendPlaces", trace.WithAttributes(
		attribute.String("city.name", name),
		attribute.Int("limit", limit),
	))
	defer span.End()
	s.metrics.CityRequest(ctx, "recommend")

	if limit < 0 {
		span.SetStatus(codes.Error, "negative limit")
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	key := recommendCacheKey(name, limit)
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			s.metrics.RecommendCacheHit(ctx)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			resp := cached.(types.RecommendationResponse)
			return &resp, nil
		}
	}

	start := time.Now()
	c, err := s.repo.FindByName(ctx, name)
	if err != nil {
		s.recordLookupError(ctx, span, "recommend", err)
		return nil, err
	}

	top := TopRated(c.Places, limit)
	resp := types.RecommendationResponse{
		City:              c.Name,
		CityAverageRating: c.AverageRating,
		BestTimeToVisit:   c.BestTimeToVisit,
		TopPlaces:         types.NewPlaceResponses(top),
	}
	s.metrics.RecommendDuration(ctx, time.Since(start))

	if s.cache != nil {
		s.cache.SetDefault(key, resp)
	}

	s.logger.DebugContext(ctx, "Ranked places",
		slog.String("city", c.Name),
		slog.Int("limit", limit),
		slog.Int("returned", len(top)))
	span.SetStatus(codes.Ok, "Recommendations ranked")
	return &resp, nil
}

func (s *ServiceImpl) CityCount() int {
	return s.repo.Count()
}

func (s *ServiceImpl) recordLookupError(ctx context.Context, span trace.Span, operation string, err error) {
	if errors.Is(err, ErrCityNotFound) {
		s.metrics.CityNotFound(ctx, operation)
		span.SetStatus(codes.Error, "city not found")
		return
	}
	s.logger.ErrorContext(ctx, "City lookup failed", slog.Any("error", err))
	span.RecordError(err)
	span.SetStatus(codes.Error, "lookup failed")
}

// TopRated returns up to limit places ordered by rating, highest first.
// Equal ratings keep their source order. The input slice is not modified.
func TopRated(places []types.Place, limit int) []types.Place {
	ranked := make([]types.Place, len(places))
	copy(ranked, places)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}

func recommendCacheKey(name string, limit int) string {
	return fmt.Sprintf("%s|%d", strings.ToLower(name), limit)
}
