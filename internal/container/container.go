package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/patrickmn/go-cache"

	database "github.com/FACorreiaa/go-tourism-api/app/db"
	"github.com/FACorreiaa/go-tourism-api/app/observability/metrics"
	"github.com/FACorreiaa/go-tourism-api/config"
	"github.com/FACorreiaa/go-tourism-api/internal/api/city"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *slog.Logger
	Pool        *pgxpool.Pool // only held while loading from postgres
	CityRepo    *city.InMemoryRepository
	CityService *city.ServiceImpl
	CityHandler *city.Handler
}

// NewContainer loads the dataset and wires the query stack on top of it.
// Any load failure is returned so the caller can refuse to serve.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	loader, err := c.datasetLoader(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	cities, err := loader.Load(ctx)
	// the dataset lives in memory from here on
	c.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to load city dataset: %w", err)
	}

	c.CityRepo = city.NewInMemoryRepository(cities, logger)
	m := metrics.Get()
	m.CitiesLoaded(ctx, c.CityRepo.Count())

	var recommendations *cache.Cache
	if cfg.Cache.TTL > 0 {
		recommendations = cache.New(cfg.Cache.TTL, cfg.Cache.Cleanup)
	}
	c.CityService = city.NewServiceImpl(c.CityRepo, recommendations, m, logger)
	c.CityHandler = city.NewCityHandler(c.CityService, logger)
	return c, nil
}

func (c *Container) datasetLoader(ctx context.Context) (city.DatasetLoader, error) {
	switch c.Config.Dataset.Source {
	case config.DatasetSourcePostgres:
		dbConfig, err := database.NewDatabaseConfig(c.Config, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to generate database config: %w", err)
		}
		if c.Config.Repositories.Postgres.RunMigrations {
			if err := database.RunMigrations(dbConfig.ConnectionURL, c.Logger); err != nil {
				return nil, err
			}
		}
		pool, err := database.Init(ctx, dbConfig.ConnectionURL, c.Logger)
		if err != nil {
			return nil, err
		}
		c.Pool = pool
		if !database.WaitForDB(ctx, pool, c.Logger) {
			return nil, fmt.Errorf("database not ready")
		}
		return city.NewPostgresLoader(pool, c.Logger), nil
	default:
		return city.NewFileLoader(c.Config.Dataset.Path, c.Logger), nil
	}
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
		c.Pool = nil
	}
}
