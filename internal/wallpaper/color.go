package wallpaper

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultColor is the background colour used when none is configured.
const DefaultColor = "000000"

var ErrInvalidColor = errors.New("colour must be RGB or RRGGBB")

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// ParseColor converts a 3 or 6 digit hex string into an RGB triple.
// Three digit colours are nibble-doubled: "a0f" is "aa00ff".
func ParseColor(hex string) (RGB, error) {
	s := strings.TrimPrefix(hex, "#")
	if err := ValidateColor(s); err != nil {
		return RGB{}, err
	}

	switch len(s) {
	case 3:
		return RGB{
			R: hexVal(s[0]) * 17,
			G: hexVal(s[1]) * 17,
			B: hexVal(s[2]) * 17,
		}, nil
	default:
		return RGB{
			R: hexVal(s[0])<<4 | hexVal(s[1]),
			G: hexVal(s[2])<<4 | hexVal(s[3]),
			B: hexVal(s[4])<<4 | hexVal(s[5]),
		}, nil
	}
}

// ValidateColor checks the length and digits of a colour string
// without a leading '#'.
func ValidateColor(s string) error {
	if len(s) != 3 && len(s) != 6 {
		return fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	return nil
}

// Hex renders the colour as six lowercase hex digits.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// X11 returns the 16-bit channel values used by colormap allocation.
func (c RGB) X11() (r, g, b uint16) {
	return uint16(c.R) * 257, uint16(c.G) * 257, uint16(c.B) * 257
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
