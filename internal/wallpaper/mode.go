package wallpaper

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode defines how an image is mapped onto the screen.
type Mode int

const (
	ModeCenter Mode = iota // Native size, centred, offsets applied.
	ModeFill               // Scaled to cover the screen, cropped, offsets applied.
	ModeMax                // Scaled to fit inside the screen, centred.
	ModeScale              // Stretched to exactly the screen size.
	ModeTile               // Native size, repeated from the top-left corner.
)

// DefaultMode is used when no mode is given.
const DefaultMode = ModeFill

var ErrInvalidMode = errors.New("invalid mode")

var modeNames = []struct {
	name string
	mode Mode
}{
	{"center", ModeCenter},
	{"fill", ModeFill},
	{"max", ModeMax},
	{"scale", ModeScale},
	{"tile", ModeTile},
}

// ModeNames returns the accepted mode names in declaration order.
func ModeNames() []string {
	names := make([]string, 0, len(modeNames))
	for _, entry := range modeNames {
		names = append(names, entry.name)
	}
	return names
}

// ParseMode converts a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	for _, entry := range modeNames {
		if entry.name == name {
			return entry.mode, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (allowed: %s)", ErrInvalidMode, name, strings.Join(ModeNames(), " "))
}

func (m Mode) String() string {
	for _, entry := range modeNames {
		if entry.mode == m {
			return entry.name
		}
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the five known modes.
func (m Mode) Valid() bool {
	return m >= ModeCenter && m <= ModeTile
}

// AcceptsOffset reports whether offsets are meaningful for m.
func (m Mode) AcceptsOffset() bool {
	return m == ModeCenter || m == ModeFill
}

func (m Mode) MarshalYAML() (interface{}, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return m.String(), nil
}

func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("mode must be a string")
	}
	parsed, err := ParseMode(value.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
