package paint

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/image/draw"
)

// DefaultScaler is used when no scaler is configured.
const DefaultScaler = "bilinear"

var ErrUnknownScaler = errors.New("unknown scaler")

var scalers = []struct {
	name   string
	scaler draw.Scaler
}{
	{"nearest", draw.NearestNeighbor},
	{"approx-bilinear", draw.ApproxBiLinear},
	{"bilinear", draw.BiLinear},
	{"catmull-rom", draw.CatmullRom},
}

// ScalerNames lists the accepted scaler names.
func ScalerNames() []string {
	names := make([]string, len(scalers))
	for i, s := range scalers {
		names[i] = s.name
	}
	return names
}

// ParseScaler maps a name to an interpolator. An empty name selects
// DefaultScaler.
func ParseScaler(name string) (draw.Scaler, error) {
	if name == "" {
		name = DefaultScaler
	}
	for _, s := range scalers {
		if s.name == name {
			return s.scaler, nil
		}
	}
	return nil, fmt.Errorf("%w %q (allowed: %s)", ErrUnknownScaler, name, strings.Join(ScalerNames(), ", "))
}
