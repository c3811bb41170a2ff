// Package csscolor parses CSS-style color specifiers: hex notation, rgb()/rgba() and named colors.
package csscolor

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var ErrInvalidColor = errors.New("invalid color")

// Parse returns the non-premultiplied color for s.
func Parse(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return color.NRGBA{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseFunc(s)
	case s == "transparent":
		return color.NRGBA{}, nil
	}

	c, ok := colornames.Map[s]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("%w: unknown name %q", ErrInvalidColor, s)
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

func parseHex(h string) (color.NRGBA, error) {
	// #rgb и #rgba разворачиваются до полной записи
	if len(h) == 3 || len(h) == 4 {
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: bad hex length", ErrInvalidColor)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func parseFunc(s string) (color.NRGBA, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return color.NRGBA{}, fmt.Errorf("%w: malformed %q", ErrInvalidColor, s)
	}
	name := s[:open]
	if name != "rgb" && name != "rgba" {
		return color.NRGBA{}, fmt.Errorf("%w: unknown function %q", ErrInvalidColor, name)
	}

	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("%w: expected 3 or 4 components", ErrInvalidColor)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("%w: invalid channel %q", ErrInvalidColor, parts[i])
		}
		ch[i] = uint8(v)
	}

	a := uint8(255)
	if len(parts) == 4 {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || f < 0 || f > 1 {
			return color.NRGBA{}, fmt.Errorf("%w: invalid alpha %q", ErrInvalidColor, parts[3])
		}
		a = uint8(f*255 + 0.5)
	}

	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: a}, nil
}
