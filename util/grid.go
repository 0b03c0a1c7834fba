package util

import "math/rand"

// RandomGrid fills a width x height grid, each cell alive with the given probability.
func RandomGrid(width, height int, density float64, r *rand.Rand) []bool {
	grid := make([]bool, width*height)
	for i := range grid {
		grid[i] = r.Float64() < density
	}
	return grid
}
