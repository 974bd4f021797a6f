package docjson

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/surface"
)

// jsonColor accepts either a "#rrggbb"/"#rrggbbaa" hex string or a
// [r, g, b, a?] array of 0-255 integers, matching the two shapes a
// hand-authored JSON document is most likely to reach for.
type jsonColor surface.Color

func (c *jsonColor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return c.fromHex(s)
	}
	var arr []int
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("color must be a hex string or an [r,g,b,a] array: %w", err)
	}
	return c.fromArray(arr)
}

func (c *jsonColor) fromHex(s string) error {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("color hex string %q must be 6 or 8 digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("color hex string %q: %w", s, err)
	}
	a := uint8(255)
	if len(s) == 8 {
		a = uint8(v)
		v >>= 8
	}
	*c = jsonColor(surface.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: a})
	return nil
}

func (c *jsonColor) fromArray(arr []int) error {
	if len(arr) != 3 && len(arr) != 4 {
		return fmt.Errorf("color array must have 3 or 4 elements, got %d", len(arr))
	}
	a := 255
	if len(arr) == 4 {
		a = arr[3]
	}
	*c = jsonColor(surface.Color{R: uint8(arr[0]), G: uint8(arr[1]), B: uint8(arr[2]), A: uint8(a)})
	return nil
}

// orBlack returns the parsed color, or surface.Black when c is nil.
func (c *jsonColor) orBlack() surface.Color {
	if c == nil {
		return surface.Black
	}
	return surface.Color(*c)
}

// orNil returns a *surface.Color, or nil when c is nil, matching the
// optional Fill/Stroke color fields on Rectangle and Circle.
func (c *jsonColor) orNil() *surface.Color {
	if c == nil {
		return nil
	}
	col := surface.Color(*c)
	return &col
}

func (s *jsonStroke) build() *surface.Stroke {
	if s == nil {
		return nil
	}
	return &surface.Stroke{
		Color:     surface.Color(s.Color),
		Thickness: geom.Abs(s.Thickness),
		Cap:       parseLineCap(s.Cap),
		Join:      parseLineJoin(s.Join),
	}
}

func parseLineCap(s string) surface.LineCap {
	switch s {
	case "round":
		return surface.LineCapRound
	case "square":
		return surface.LineCapSquare
	default:
		return surface.LineCapButt
	}
}

func parseLineJoin(s string) surface.LineJoin {
	switch s {
	case "round":
		return surface.LineJoinRound
	case "bevel":
		return surface.LineJoinBevel
	default:
		return surface.LineJoinMiter
	}
}
