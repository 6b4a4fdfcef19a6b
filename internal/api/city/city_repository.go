package city

import (
	"context"
	"log/slog"
	"strings"

	"github.com/FACorreiaa/go-tourism-api/internal/types"
)

var _ Repository = (*InMemoryRepository)(nil)

// Repository is the read-only view over the loaded dataset.
type Repository interface {
	All(ctx context.Context) []types.City
	FindByName(ctx context.Context, name string) (*types.City, error)
	Count() int
}

// InMemoryRepository holds the dataset for the lifetime of the process.
// It is filled once by NewInMemoryRepository and never written again, so
// any number of goroutines may read it without locking.
type InMemoryRepository struct {
	logger *slog.Logger
	cities []types.City
}

func NewInMemoryRepository(cities []types.City, logger *slog.Logger) *InMemoryRepository {
	owned := make([]types.City, len(cities))
	copy(owned, cities)
	logger.Info("City dataset ready", slog.Int("cities", len(owned)))
	return &InMemoryRepository{
		logger: logger,
		cities: owned,
	}
}

// All returns the cities in the order they appeared in the source artifact.
// Callers must treat the result as read-only.
func (r *InMemoryRepository) All(_ context.Context) []types.City {
	return r.cities
}

// FindByName does a case-insensitive match; the first match in source order wins.
func (r *InMemoryRepository) FindByName(ctx context.Context, name string) (*types.City, error) {
	for i := range r.cities {
		if strings.EqualFold(r.cities[i].Name, name) {
			return &r.cities[i], nil
		}
	}
	r.logger.DebugContext(ctx, "City lookup missed", slog.String("city", name))
	return nil, &NotFoundError{Name: name}
}

func (r *InMemoryRepository) Count() int {
	return len(r.cities)
}
