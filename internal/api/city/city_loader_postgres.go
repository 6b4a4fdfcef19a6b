package city

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/FACorreiaa/go-tourism-api/internal/types"
)

var _ DatasetLoader = (*PostgresLoader)(nil)

// Querier is the subset of pgxpool.Pool the loader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresLoader reads a prebuilt dataset out of the cities and places tables.
// It only ever issues SELECTs.
type PostgresLoader struct {
	logger *slog.Logger
	db     Querier
}

func NewPostgresLoader(db Querier, logger *slog.Logger) *PostgresLoader {
	return &PostgresLoader{logger: logger, db: db}
}

const (
	selectCitiesQuery = `
        SELECT id, name, average_rating, best_time_to_visit
        FROM cities
        ORDER BY position`
	selectPlacesQuery = `
        SELECT id, city_id, name, type, rating, significance, weekly_off, entrance_fee, dslr_allowed
        FROM places
        ORDER BY city_id, position`
)

func (l *PostgresLoader) Load(ctx context.Context) ([]types.City, error) {
	l.logger.InfoContext(ctx, "Loading city dataset from postgres")

	rows, err := l.db.Query(ctx, selectCitiesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	var (
		cities []types.City
		index  = make(map[uuid.UUID]int)
	)
	for rows.Next() {
		var (
			id uuid.UUID
			c  types.City
		)
		if err := rows.Scan(&id, &c.Name, &c.AverageRating, &c.BestTimeToVisit); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		c.Places = []types.Place{}
		index[id] = len(cities)
		cities = append(cities, c)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("error iterating city rows: %w", err)
	}

	rows, err = l.db.Query(ctx, selectPlacesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	for rows.Next() {
		var (
			cityID uuid.UUID
			p      types.Place
		)
		if err := rows.Scan(&p.ID, &cityID, &p.Name, &p.Type, &p.Rating,
			&p.Significance, &p.WeeklyOff, &p.EntranceFee, &p.DSLRAllowed); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan place row: %w", err)
		}
		idx, ok := index[cityID]
		if !ok {
			l.logger.WarnContext(ctx, "Skipping place with unknown city",
				slog.String("place", p.Name), slog.String("city_id", cityID.String()))
			continue
		}
		cities[idx].Places = append(cities[idx].Places, p)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("error iterating place rows: %w", err)
	}

	l.logger.InfoContext(ctx, "Loaded city dataset from postgres", slog.Int("cities", len(cities)))
	return cities, nil
}

func closeRows(rows pgx.Rows) error {
	rows.Close()
	return rows.Err()
}
