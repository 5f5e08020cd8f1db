// Package colorutil provides shared color utilities for the annotator application.
package colorutil

import (
	"image/color"
	"strings"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Blue    = color.RGBA{R: 66, G: 133, B: 244, A: 255}
	Green   = color.RGBA{R: 52, G: 168, B: 83, A: 255}
	Yellow  = color.RGBA{R: 251, G: 188, B: 4, A: 255}
	Red     = color.RGBA{R: 234, G: 67, B: 53, A: 255}
	Purple  = color.RGBA{R: 156, G: 39, B: 176, A: 255}
	Gray    = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// MethodColor returns the overlay color conventionally associated with an
// HTTP method (the palettes used by Swagger-style API viewers).
func MethodColor(method string) color.RGBA {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case "GET":
		return Green
	case "POST":
		return Blue
	case "PUT", "PATCH":
		return Yellow
	case "DELETE":
		return Red
	case "HEAD", "OPTIONS":
		return Purple
	default:
		return Gray
	}
}

// WithAlpha returns the color with its alpha channel replaced.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

// Blend mixes src over dst using the given opacity in [0,1].
func Blend(dst, src color.RGBA, opacity float64) color.RGBA {
	if opacity <= 0 {
		return dst
	}
	if opacity >= 1 {
		return src
	}
	inv := 1 - opacity
	return color.RGBA{
		R: uint8(float64(src.R)*opacity + float64(dst.R)*inv),
		G: uint8(float64(src.G)*opacity + float64(dst.G)*inv),
		B: uint8(float64(src.B)*opacity + float64(dst.B)*inv),
		A: 255,
	}
}
