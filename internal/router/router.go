package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/FACorreiaa/go-tourism-api/internal/api/city"
)

// Config contains dependencies needed for the router setup
type Config struct {
	CityHandler    *city.Handler
	AllowedOrigins []string
	// RateLimitRequests <= 0 disables per-IP rate limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300, // Maximum value not ignored by any major browsers
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
	r.Get("/healthz", cfg.CityHandler.Health)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		if cfg.RateLimitRequests > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
		}
		r.Mount("/city", CityRoutes(cfg.CityHandler))
	})

	return r
}

// CityRoutes holds the read-only dataset endpoints.
func CityRoutes(h *city.Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.GetAllCities)
	r.Get("/{city_name}", h.GetCity)
	r.Get("/{city_name}/recommend", h.RecommendPlaces)
	return r
}
