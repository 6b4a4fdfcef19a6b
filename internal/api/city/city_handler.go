package city

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-tourism-api/internal/api"
	"github.com/FACorreiaa/go-tourism-api/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewCityHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// GetAllCities godoc
// @Summary      List all cities
// @Description  Returns every city with its places, in dataset order.
// @Tags         city
// @Produce      json
// @Success      200  {array}   types.CityResponse
// @Router       /city [get]
func (h *Handler) GetAllCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetAllCities", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/city"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetAllCities"))
	l.DebugContext(ctx, "Retrieving all cities")

	cities, err := h.service.GetAllCities(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to retrieve cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve cities")
		return
	}

	l.InfoContext(ctx, "Successfully returned cities", slog.Int("count", len(cities)))
	span.SetStatus(codes.Ok, "Cities returned successfully")
	api.WriteJSONResponse(w, r, http.StatusOK, cities)
}

// GetCity godoc
// @Summary      Get a city
// @Description  Case-insensitive lookup of a single city.
// @Tags         city
// @Produce      json
// @Param        city_name  path      string  true  "City name"
// @Success      200        {object}  types.CityResponse
// @Failure      404        {object}  api.ErrorBody
// @Router       /city/{city_name} [get]
func (h *Handler) GetCity(w http.ResponseWriter, r *http.Request) {
	name := cityParam(r)
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetCity", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/city/{city_name}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetCity"), slog.String("city", name))

	city, err := h.service.GetCity(ctx, name)
	if err != nil {
		span.SetStatus(codes.Error, "lookup failed")
		h.writeServiceError(w, r, l, err)
		return
	}

	span.SetStatus(codes.Ok, "City returned")
	api.WriteJSONResponse(w, r, http.StatusOK, city)
}

// RecommendPlaces godoc
// @Summary      Top rated places of a city
// @Description  Places sorted by rating, highest first, truncated to limit.
// @Tags         city
// @Produce      json
// @Param        city_name  path      string  true   "City name"
// @Param        limit      query     int     false  "Maximum number of places"  default(5)
// @Success      200        {object}  types.RecommendationResponse
// @Failure      400        {object}  api.ErrorBody
// @Failure      404        {object}  api.ErrorBody
// @Router       /city/{city_name}/recommend [get]
func (h *Handler) RecommendPlaces(w http.ResponseWriter, r *http.Request) {
	name := cityParam(r)
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "RecommendPlaces", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/city/{city_name}/recommend"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "RecommendPlaces"), slog.String("city", name))

	limit, ok := api.QueryInt(r, "limit", DefaultRecommendLimit)
	if !ok {
		l.WarnContext(ctx, "Invalid limit parameter", slog.String("limit", r.URL.Query().Get("limit")))
		span.SetStatus(codes.Error, "invalid limit")
		api.ErrorResponse(w, r, http.StatusBadRequest, "limit must be an integer")
		return
	}

	rec, err := h.service.RecommendPlaces(ctx, name, limit)
	if err != nil {
		span.SetStatus(codes.Error, "recommendation failed")
		h.writeServiceError(w, r, l, err)
		return
	}

	span.SetStatus(codes.Ok, "Recommendations returned")
	api.WriteJSONResponse(w, r, http.StatusOK, rec)
}

// Health godoc
// @Summary  Liveness and dataset size
// @Tags     health
// @Produce  json
// @Success  200  {object}  types.HealthResponse
// @Router   /healthz [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, types.HealthResponse{
		Status: "ok",
		Cities: h.service.CityCount(),
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	var notFound *NotFoundError
	switch {
	case errors.As(err, &notFound):
		l.InfoContext(r.Context(), "City not found")
		api.ErrorResponse(w, r, http.StatusNotFound, notFound.Error())
	case errors.Is(err, ErrCityNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, (&NotFoundError{Name: cityParam(r)}).Error())
	case errors.Is(err, ErrInvalidLimit):
		api.ErrorResponse(w, r, http.StatusBadRequest, "limit must not be negative")
	default:
		l.ErrorContext(r.Context(), "City query failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal Server Error")
	}
}

// cityParam returns the decoded {city_name} path segment.
func cityParam(r *http.Request) string {
	raw := chi.URLParam(r, "city_name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
