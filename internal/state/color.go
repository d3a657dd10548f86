package state

import (
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.RGBA{
	"black":  {R: 0, G: 0, B: 0, A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"red":    {R: 224, G: 49, B: 49, A: 255},
	"green":  {R: 47, G: 158, B: 68, A: 255},
	"blue":   {R: 25, G: 113, B: 194, A: 255},
	"yellow": {R: 245, G: 159, B: 0, A: 255},
	"orange": {R: 232, G: 89, B: 12, A: 255},
	"purple": {R: 156, G: 54, B: 181, A: 255},
	"gray":   {R: 134, G: 142, B: 150, A: 255},
}

// ParseColor resolves a style colour ("#rgb", "#rrggbb" or a small named
// palette) to an opaque RGBA. ok is false for the transparent sentinel, the
// empty string and anything unparseable; callers skip painting in that case.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == Transparent {
		return color.RGBA{}, false
	}
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, false
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}
