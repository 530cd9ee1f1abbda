package render

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor converts a CSS-like colour string (#rgb, #rgba, #rrggbb,
// #rrggbbaa or a CSS colour name) to a colour. Unknown values paint black.
func ParseColor(s string) color.Color {
	c, ok := LookupColor(s)
	if !ok {
		return color.Black
	}
	return c
}

// LookupColor is ParseColor reporting whether s was understood.
func LookupColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return color.NRGBA{}, true
	}
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[s]
		if !ok {
			return color.NRGBA{}, false
		}
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
	}
	hex := s[1:]
	switch len(hex) {
	case 3, 4:
		var long strings.Builder
		for _, r := range hex {
			long.WriteRune(r)
			long.WriteRune(r)
		}
		hex = long.String()
	case 6, 8:
	default:
		return color.NRGBA{}, false
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// FormatColor renders a colour as #rrggbb, or #rrggbbaa when translucent.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return "#" + hex2(n.R) + hex2(n.G) + hex2(n.B)
	}
	return "#" + hex2(n.R) + hex2(n.G) + hex2(n.B) + hex2(n.A)
}

func hex2(v uint8) string {
	s := strconv.FormatUint(uint64(v), 16)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
