// Package palette derives stable display colors from category names, so a
// category renders in the same color everywhere without storing one.
package palette

import (
	"fmt"
	"unicode/utf16"
)

// HSL is a color in hue/saturation/lightness space. Saturation and lightness
// are percentages.
type HSL struct {
	Hue        int
	Saturation int
	Lightness  int
}

// String renders the CSS form, e.g. "hsl(225, 75%, 45%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.Hue, c.Saturation, c.Lightness)
}

// Hash is the 31-multiplier rolling hash over the UTF-16 code units of name,
// wrapping at 32 bits. Browsers compute the same value for the same string.
func Hash(name string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(name)) {
		h = (h << 5) - h + int32(unit)
	}
	return h
}

// For returns the color for a category name. Saturation stays within 70-89%
// and lightness within 45-59%.
func For(name string) HSL {
	h := int64(Hash(name))
	if h < 0 {
		h = -h
	}
	return HSL{
		Hue:        int(h % 360),
		Saturation: 70 + int(h%20),
		Lightness:  45 + int(h%15),
	}
}

// ColorFor is For(name).String().
func ColorFor(name string) string {
	return For(name).String()
}
