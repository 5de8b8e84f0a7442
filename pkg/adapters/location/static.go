// Package location provides position sources for capture forms.
package location

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/inspekt/pkg/core"
)

// Static always reports the same coordinates.
type Static struct {
	Coordinates core.Coordinates
}

// NewStatic creates a provider reporting lat, long.
func NewStatic(lat, long float64) *Static {
	return &Static{Coordinates: core.Coordinates{Latitude: lat, Longitude: long}}
}

// ParseStatic reads "lat,long" (spaces allowed) and checks the ranges.
func ParseStatic(s string) (*Static, error) {
	latStr, longStr, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("invalid coordinates %q (want lat,long)", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", latStr, err)
	}
	long, err := strconv.ParseFloat(strings.TrimSpace(longStr), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", longStr, err)
	}
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("latitude %v out of range", lat)
	}
	if math.IsNaN(long) || long < -180 || long > 180 {
		return nil, fmt.Errorf("longitude %v out of range", long)
	}
	return NewStatic(lat, long), nil
}

func (s *Static) Locate(ctx context.Context) (core.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return core.Coordinates{}, fmt.Errorf("%w: %w", core.ErrLocationUnavailable, err)
	}
	return s.Coordinates, nil
}

// Denied models a user refusing location access.
type Denied struct{}

func (Denied) Locate(ctx context.Context) (core.Coordinates, error) {
	return core.Coordinates{}, core.ErrPermissionDenied
}

var _ core.LocationProvider = (*Static)(nil)
var _ core.LocationProvider = Denied{}
