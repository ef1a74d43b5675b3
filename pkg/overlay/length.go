// length.go — Resolve overlay position and size tokens against canvas pixels.
package overlay

import (
	"strconv"
	"strings"
)

// Length is one axis of an overlay position or size: a pixel number ("40",
// "40px"), a percentage of the canvas dimension ("60%"), a keyword (center,
// left, right, top, bottom) or a calc() sum such as "calc(100% - 80px)".
type Length string

const (
	Center Length = "center"
	Left   Length = "left"
	Right  Length = "right"
	Top    Length = "top"
	Bottom Length = "bottom"
)

// Px returns a pixel length.
func Px(n float64) Length { return Length(strconv.FormatFloat(n, 'f', -1, 64)) }

// Pct returns a percentage length.
func Pct(p float64) Length { return Length(strconv.FormatFloat(p, 'f', -1, 64) + "%") }

// Inset returns a length n pixels in from the far edge of the canvas for an
// item of the given size, e.g. Inset(20, 60) == "calc(100% - 80px)".
func Inset(n, size float64) Length {
	return Length("calc(100% - " + strconv.FormatFloat(n+size, 'f', -1, 64) + "px)")
}

// Position places an overlay's top-left corner.
type Position struct {
	X Length `json:"x"`
	Y Length `json:"y"`
}

// Size is an overlay's extent.
type Size struct {
	Width  Length `json:"width"`
	Height Length `json:"height"`
}

// Sized is anything with pixel dimensions, typically *canvas.Context.
type Sized interface {
	Width() int
	Height() int
}

// ResolveSize converts s to pixels against the current canvas dimensions.
func ResolveSize(c Sized, s Size) (w, h float64) {
	return resolveLength(s.Width, float64(c.Width()), 0, false),
		resolveLength(s.Height, float64(c.Height()), 0, false)
}

// ResolvePosition converts p to pixels. Keywords align the overlay's resolved
// size s within the canvas. Unknown values resolve to 0.
func ResolvePosition(c Sized, p Position, s Size) (x, y float64) {
	w, h := ResolveSize(c, s)
	return resolveLength(p.X, float64(c.Width()), w, true),
		resolveLength(p.Y, float64(c.Height()), h, true)
}

func resolveLength(v Length, dim, extent float64, position bool) float64 {
	s := strings.ToLower(strings.TrimSpace(string(v)))
	if position {
		switch Length(s) {
		case Center:
			return (dim - extent) / 2
		case Left, Top:
			return 0
		case Right, Bottom:
			return dim - extent
		}
	}
	if strings.HasPrefix(s, "calc(") && strings.HasSuffix(s, ")") {
		if n, ok := evalCalc(s[5:len(s)-1], dim); ok {
			return n
		}
		return 0
	}
	if n, ok := term(s, dim); ok {
		return n
	}
	return 0
}

// evalCalc sums "a + b - c" where each operand is a pixel or percentage term.
func evalCalc(expr string, dim float64) (float64, bool) {
	fields := strings.Fields(expr)
	if len(fields) == 0 || len(fields)%2 == 0 {
		return 0, false
	}
	total, ok := term(fields[0], dim)
	if !ok {
		return 0, false
	}
	for i := 1; i < len(fields); i += 2 {
		n, ok := term(fields[i+1], dim)
		if !ok {
			return 0, false
		}
		switch fields[i] {
		case "+":
			total += n
		case "-":
			total -= n
		default:
			return 0, false
		}
	}
	return total, true
}

func term(s string, dim float64) (float64, bool) {
	switch {
	case s == "":
		return 0, false
	case strings.HasSuffix(s, "%"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return n / 100 * dim, true
	default:
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
}
