package canvas

import (
	"image"
	"image/color"

	"mockup-annotator/pkg/colorutil"
	"mockup-annotator/pkg/geometry"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
// Each digit is represented as 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// letterPatterns contains 3x5 pixel patterns for letters A-Z and common symbols.
var letterPatterns = map[rune][5]uint8{
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b001, 0b001, 0b001, 0b101, 0b010},
	'K': {0b101, 0b101, 0b110, 0b101, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'Q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'/': {0b001, 0b001, 0b010, 0b100, 0b100},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

// getCharPattern returns the 3x5 pixel pattern for a character.
// Returns a zero pattern for unsupported characters.
func getCharPattern(ch rune) [5]uint8 {
	if ch >= '0' && ch <= '9' {
		return digitPatterns[ch-'0']
	}
	if ch >= 'a' && ch <= 'z' {
		ch = ch - 'a' + 'A'
	}
	if pattern, ok := letterPatterns[ch]; ok {
		return pattern
	}
	return [5]uint8{}
}

// labelScale returns the font pixel scale for the current zoom.
func (ac *AnnotationCanvas) labelScale() int {
	scale := int(ac.zoom * 2)
	if scale < 1 {
		scale = 1
	}
	if scale > 6 {
		scale = 6
	}
	return scale
}

// drawLabel draws text with its top-left corner at (x, y), on a dark
// backing strip so it stays readable over light mockups.
func (ac *AnnotationCanvas) drawLabel(output *image.RGBA, label string, x, y int, col color.RGBA) {
	scale := ac.labelScale()
	charWidth := 3 * scale
	charHeight := 5 * scale
	spacing := scale

	labelWidth := len(label)*charWidth + (len(label)-1)*spacing
	backing := geometry.RectInt{
		X:      x - scale,
		Y:      y - scale,
		Width:  labelWidth + 2*scale,
		Height: charHeight + 2*scale,
	}
	ac.fillRect(output, backing, colorutil.WithAlpha(colorutil.Black, 180))

	bounds := output.Bounds()
	for i, ch := range label {
		pattern := getCharPattern(ch)
		charX := x + i*(charWidth+spacing)

		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if (pattern[row] & (1 << (2 - c))) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						px := charX + c*scale + dx
						py := y + row*scale + dy
						if px >= bounds.Min.X && px < bounds.Max.X &&
							py >= bounds.Min.Y && py < bounds.Max.Y {
							output.Set(px, py, col)
						}
					}
				}
			}
		}
	}
}

// strokeRect draws a rectangle outline with the given thickness.
func (ac *AnnotationCanvas) strokeRect(output *image.RGBA, r geometry.RectInt, col color.RGBA, thickness int) {
	bounds := output.Bounds()
	x1, y1 := r.X, r.Y
	x2, y2 := r.X+r.Width, r.Y+r.Height

	for t := 0; t < thickness; t++ {
		for x := x1; x <= x2; x++ {
			setPixel(output, bounds, x, y1+t, col)
			setPixel(output, bounds, x, y2-t, col)
		}
		for y := y1; y <= y2; y++ {
			setPixel(output, bounds, x1+t, y, col)
			setPixel(output, bounds, x2-t, y, col)
		}
	}
}

// fillRect fills a rectangle, alpha-blending when the color is translucent.
func (ac *AnnotationCanvas) fillRect(output *image.RGBA, r geometry.RectInt, col color.RGBA) {
	bounds := output.Bounds()
	opacity := float64(col.A) / 255

	for y := r.Y; y < r.Y+r.Height; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := r.X; x < r.X+r.Width; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			if col.A == 255 {
				output.SetRGBA(x, y, col)
			} else {
				output.SetRGBA(x, y, colorutil.Blend(output.RGBAAt(x, y), col, opacity))
			}
		}
	}
}

// dashRect draws a dashed rectangle outline, used for the draw preview.
func (ac *AnnotationCanvas) dashRect(output *image.RGBA, r geometry.RectInt, col color.RGBA) {
	bounds := output.Bounds()
	x1, y1 := r.X, r.Y
	x2, y2 := r.X+r.Width, r.Y+r.Height

	for x := x1; x <= x2; x++ {
		if (x+y1)%4 < 2 {
			setPixel(output, bounds, x, y1, col)
		}
		if (x+y2)%4 < 2 {
			setPixel(output, bounds, x, y2, col)
		}
	}
	for y := y1; y <= y2; y++ {
		if (x1+y)%4 < 2 {
			setPixel(output, bounds, x1, y, col)
		}
		if (x2+y)%4 < 2 {
			setPixel(output, bounds, x2, y, col)
		}
	}
}

func setPixel(output *image.RGBA, bounds image.Rectangle, x, y int, col color.RGBA) {
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		output.SetRGBA(x, y, col)
	}
}
