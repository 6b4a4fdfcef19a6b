package types

import "github.com/google/uuid"

// City is one entry of the tourism dataset, keyed by Name.
type City struct {
	Name            string
	AverageRating   float64
	BestTimeToVisit string
	Places          []Place // source order
}

// Place is a single attraction within a city.
type Place struct {
	ID           uuid.UUID
	Name         string
	Type         string
	Rating       float64
	Significance string
	WeeklyOff    string
	EntranceFee  int
	DSLRAllowed  string
}

// PlaceResponse is the public shape of a Place.
type PlaceResponse struct {
	PlaceName    string  `json:"place_name" example:"Taj Mahal"`
	Type         string  `json:"type" example:"Mausoleum"`
	Rating       float64 `json:"rating" example:"4.9"`
	Significance string  `json:"significance" example:"Historical"`
	WeeklyOff    string  `json:"weekly_off" example:"Friday"`
	EntranceFee  int     `json:"entrance_fee" example:"50"`
	DSLRAllowed  string  `json:"dslr_allowed" example:"Yes"`
}

// CityResponse is the public shape of a City with every place in source order.
type CityResponse struct {
	City              string          `json:"city" example:"Agra"`
	CityAverageRating float64         `json:"city_average_rating" example:"4.6"`
	BestTimeToVisit   string          `json:"best_time_to_visit" example:"October-March"`
	Places            []PlaceResponse `json:"places"`
}

// RecommendationResponse carries the top rated places of a city.
type RecommendationResponse struct {
	City              string          `json:"city" example:"Agra"`
	CityAverageRating float64         `json:"city_average_rating" example:"4.6"`
	BestTimeToVisit   string          `json:"best_time_to_visit" example:"October-March"`
	TopPlaces         []PlaceResponse `json:"top_5_places"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Cities int    `json:"cities" example:"42"`
}

// NewPlaceResponse shapes a Place for the API.
func NewPlaceResponse(p Place) PlaceResponse {
	return PlaceResponse{
		PlaceName:    p.Name,
		Type:         p.Type,
		Rating:       p.Rating,
		Significance: p.Significance,
		WeeklyOff:    p.WeeklyOff,
		EntranceFee:  p.EntranceFee,
		DSLRAllowed:  p.DSLRAllowed,
	}
}

// NewPlaceResponses shapes a slice of places, never returning nil so that
// empty lists encode as [] rather than null.
func NewPlaceResponses(places []Place) []PlaceResponse {
	out := make([]PlaceResponse, 0, len(places))
	for _, p := range places {
		out = append(out, NewPlaceResponse(p))
	}
	return out
}

// NewCityResponse shapes a City for the API.
func NewCityResponse(c City) CityResponse {
	return CityResponse{
		City:              c.Name,
		CityAverageRating: c.AverageRating,
		BestTimeToVisit:   c.BestTimeToVisit,
		Places:            NewPlaceResponses(c.Places),
	}
}
