package city

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-tourism-api/internal/types"
)

// placeNamespace seeds the deterministic place IDs so that the same
// artifact always yields the same identities.
var placeNamespace = uuid.MustParse("6f1c1f0e-8a54-4c52-9d55-2f3f0c7f6a10")

// DatasetLoader produces the full city table once at startup.
type DatasetLoader interface {
	Load(ctx context.Context) ([]types.City, error)
}

var _ DatasetLoader = (*FileLoader)(nil)

// rawCity and rawPlace mirror the keys of the prebuilt artifact.
type rawCity struct {
	AverageRating   float64    `json:"city_average_rating"`
	BestTimeToVisit string     `json:"best_time_to_visit"`
	Places          []rawPlace `json:"places"`
}

type rawPlace struct {
	Name         string      `json:"Place Name"`
	Type         string      `json:"Type"`
	Rating       float64     `json:"Rating"`
	Significance string      `json:"Significance"`
	WeeklyOff    string      `json:"Weekly Off"`
	EntranceFee  json.Number `json:"Entrance Fee"`
	DSLRAllowed  string      `json:"DSLR Allowed"`
}

// FileLoader reads the dataset from a JSON artifact on disk.
type FileLoader struct {
	path   string
	logger *slog.Logger
}

func NewFileLoader(path string, logger *slog.Logger) *FileLoader {
	return &FileLoader{path: path, logger: logger}
}

func (l *FileLoader) Load(ctx context.Context) ([]types.City, error) {
	l.logger.InfoContext(ctx, "Loading city dataset", slog.String("path", l.path))
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	cities, err := DecodeDataset(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", l.path, err)
	}
	return cities, nil
}

// DecodeDataset parses the artifact, keeping the key order of the top-level
// object. A repeated key overwrites the earlier entry in its original slot.
func DecodeDataset(r io.Reader) ([]types.City, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var cities []types.City
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading city key: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v, want city name", tok)
		}

		var rc rawCity
		if err := dec.Decode(&rc); err != nil {
			return nil, fmt.Errorf("decoding city %q: %w", name, err)
		}
		c, err := rc.toCity(name)
		if err != nil {
			return nil, err
		}

		if idx, dup := seen[name]; dup {
			cities[idx] = c
			continue
		}
		seen[name] = len(cities)
		cities = append(cities, c)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return cities, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading dataset: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("unexpected token %v, want %q", tok, want)
	}
	return nil
}

func (rc rawCity) toCity(name string) (types.City, error) {
	c := types.City{
		Name:            name,
		AverageRating:   rc.AverageRating,
		BestTimeToVisit: rc.BestTimeToVisit,
		Places:          make([]types.Place, 0, len(rc.Places)),
	}
	for i, rp := range rc.Places {
		fee, err := parseFee(rp.EntranceFee)
		if err != nil {
			return types.City{}, fmt.Errorf("city %q place %q: %w", name, rp.Name, err)
		}
		c.Places = append(c.Places, types.Place{
			ID:           PlaceID(name, i, rp.Name),
			Name:         rp.Name,
			Type:         rp.Type,
			Rating:       rp.Rating,
			Significance: rp.Significance,
			WeeklyOff:    rp.WeeklyOff,
			EntranceFee:  fee,
			DSLRAllowed:  rp.DSLRAllowed,
		})
	}
	return c, nil
}

// parseFee accepts integral or float fees; floats are rounded.
func parseFee(n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	if v, err := n.Int64(); err == nil {
		return int(v), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("invalid entrance fee %q: %w", n.String(), err)
	}
	return int(math.Round(f)), nil
}

// PlaceID derives a stable identity for the place at position idx of city.
func PlaceID(city string, idx int, place string) uuid.UUID {
	return uuid.NewSHA1(placeNamespace, []byte(city+"/"+strconv.Itoa(idx)+"/"+place))
}
