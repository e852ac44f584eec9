// Package palette picks the color the server sends back.
package palette

import (
	"math/rand/v2"
	"slices"
)

var colors = [...]string{
	"Red", "Blue", "Green", "Yellow", "Magenta", "Silver", "Aqua", "Gray", "Peach", "Orange",
}

// Pick returns a palette color chosen uniformly at random.
// It is safe for concurrent use.
func Pick() string {
	return colors[rand.IntN(len(colors))]
}

// Colors returns a copy of the palette in its fixed order.
func Colors() []string {
	return slices.Clone(colors[:])
}

// Contains reports whether name is a palette color.
func Contains(name string) bool {
	return slices.Contains(colors[:], name)
}
