// Package geocode resolves free-text locations to coordinates.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/rainwater-advisor/internal/estimation"
	"github.com/jonathan/rainwater-advisor/internal/types"
)

// Accuracy levels reported with a Location
const (
	AccuracyCoordinates = "coordinates"
	AccuracyExact       = "exact"
	AccuracyPartial     = "partial"
)

// ErrNoMatch is returned when a query cannot be resolved.
var ErrNoMatch = errors.New("no matching location")

// Location is a resolved address.
type Location struct {
	Address     string            `json:"address"`
	Coordinates types.Coordinates `json:"coordinates"`
	Accuracy    string            `json:"accuracy"`
}

// Geocoder resolves a free-text query to a Location.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Location, error)
}

// TableGeocoder resolves queries against the estimator's region table. It
// also accepts literal "lat,lng" queries.
type TableGeocoder struct{}

// NewTableGeocoder returns an offline geocoder.
func NewTableGeocoder() *TableGeocoder {
	return &TableGeocoder{}
}

// Geocode implements Geocoder.
func (g *TableGeocoder) Geocode(ctx context.Context, query string) (*Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("empty query: %w", ErrNoMatch)
	}

	if c, ok := parseLatLng(q); ok {
		return &Location{Address: q, Coordinates: c, Accuracy: AccuracyCoordinates}, nil
	}

	r, ok := estimation.MatchRegion(q)
	if !ok {
		return nil, fmt.Errorf("%q: %w", q, ErrNoMatch)
	}
	accuracy := AccuracyPartial
	if strings.EqualFold(r.Name, q) {
		accuracy = AccuracyExact
	}
	return &Location{
		Address:     r.Name + ", India",
		Coordinates: types.Coordinates{Lat: r.Lat, Lng: r.Lng},
		Accuracy:    accuracy,
	}, nil
}

func parseLatLng(s string) (types.Coordinates, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return types.Coordinates{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return types.Coordinates{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return types.Coordinates{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return types.Coordinates{}, false
	}
	return types.Coordinates{Lat: lat, Lng: lng}, true
}
