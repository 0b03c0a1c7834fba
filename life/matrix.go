package life

import (
	"uk.ac.bris.cs/lifeview/util"
)

// Matrix is a toroidal world plus the live-neighbour count of every cell.
// Rows are views into single flat arrays so a whole matrix can be copied at once.
type Matrix struct {
	width              int
	height             int
	pixels             [][]uint8
	surrounding_counts [][]int8
	pixel_data         []uint8
	count_data         []int8
}

// Make matrix object with empty data
func MakeMatrix(width, height int) Matrix {
	matrix := Matrix{
		width:              width,
		height:             height,
		pixels:             make([][]uint8, height),
		surrounding_counts: make([][]int8, height),
		pixel_data:         make([]uint8, width*height),
		count_data:         make([]int8, width*height),
	}
	for i := 0; i != height; i++ {
		matrix.pixels[i] = matrix.pixel_data[i*width : (i+1)*width]
		matrix.surrounding_counts[i] = matrix.count_data[i*width : (i+1)*width]
	}
	return matrix
}

// Make matrix object from a row-major grid and count neighbours
func MakeMatrixFromGrid(width, height int, grid []bool) Matrix {
	matrix := MakeMatrix(width, height)
	for i, alive := range grid {
		if alive {
			matrix.setAlive(util.Cell{X: i % width, Y: i / width})
		}
	}
	return matrix
}

// Get position of eight surrounding cells
func (matrix *Matrix) getSurrounding(cell util.Cell) [8]util.Cell {
	if cell.X == 0 || cell.Y == 0 || cell.X == matrix.width-1 || cell.Y == matrix.height-1 {
		return [8]util.Cell{
			{X: (cell.X - 1 + matrix.width) % matrix.width, Y: (cell.Y - 1 + matrix.height) % matrix.height},
			{X: cell.X, Y: (cell.Y - 1 + matrix.height) % matrix.height},
			{X: (cell.X + 1) % matrix.width, Y: (cell.Y - 1 + matrix.height) % matrix.height},
			{X: (cell.X - 1 + matrix.width) % matrix.width, Y: cell.Y},
			{X: (cell.X + 1) % matrix.width, Y: cell.Y},
			{X: (cell.X - 1 + matrix.width) % matrix.width, Y: (cell.Y + 1) % matrix.height},
			{X: cell.X, Y: (cell.Y + 1) % matrix.height},
			{X: (cell.X + 1) % matrix.width, Y: (cell.Y + 1) % matrix.height},
		}
	}
	return [8]util.Cell{
		{X: cell.X - 1, Y: cell.Y - 1},
		{X: cell.X, Y: cell.Y - 1},
		{X: cell.X + 1, Y: cell.Y - 1},
		{X: cell.X - 1, Y: cell.Y},
		{X: cell.X + 1, Y: cell.Y},
		{X: cell.X - 1, Y: cell.Y + 1},
		{X: cell.X, Y: cell.Y + 1},
		{X: cell.X + 1, Y: cell.Y + 1},
	}
}

// setAlive revives a dead cell and bumps its neighbours. Returns false if it was already alive.
func (matrix *Matrix) setAlive(cell util.Cell) bool {
	if matrix.pixels[cell.Y][cell.X] != 0 {
		return false
	}
	matrix.pixels[cell.Y][cell.X] = 255
	matrix.adjustSurrounding(cell, 1)
	return true
}

func (matrix *Matrix) adjustSurrounding(cell util.Cell, delta int8) {
	for _, surrounding := range matrix.getSurrounding(cell) {
		matrix.surrounding_counts[surrounding.Y][surrounding.X] += delta
	}
}

// Conway's rules, B3/S23
func nextState(alive bool, neighbours int8) bool {
	return (alive && neighbours == 2) || neighbours == 3
}

// Evaluate cells in a block into next_matrix, collecting flipped cells
// Only pixels are written; surrounding counts are fixed up afterwards from the flips
// Return alive cell count difference
func (matrix *Matrix) evolveBlock(block Block, next_matrix *Matrix, flipping_buffer *[]util.Cell) int {
	count_diff := 0
	for y := block.Start.Y; y != block.End.Y; y++ {
		for x := block.Start.X; x != block.End.X; x++ {
			alive := matrix.pixels[y][x] != 0
			if nextState(alive, matrix.surrounding_counts[y][x]) {
				next_matrix.pixels[y][x] = 255
				if !alive {
					*flipping_buffer = append(*flipping_buffer, util.Cell{X: x, Y: y})
					count_diff++
				}
			} else {
				next_matrix.pixels[y][x] = 0
				if alive {
					*flipping_buffer = append(*flipping_buffer, util.Cell{X: x, Y: y})
					count_diff--
				}
			}
		}
	}
	return count_diff
}

// Grid flattens the pixels into a row-major grid
func (matrix *Matrix) Grid() []bool {
	grid := make([]bool, len(matrix.pixel_data))
	for i, pixel := range matrix.pixel_data {
		grid[i] = pixel != 0
	}
	return grid
}

// aliveCells lists every live cell, row by row
func (matrix *Matrix) aliveCells() []util.Cell {
	cells := make([]util.Cell, 0)
	for y := 0; y != matrix.height; y++ {
		for x := 0; x != matrix.width; x++ {
			if matrix.pixels[y][x] != 0 {
				cells = append(cells, util.Cell{X: x, Y: y})
			}
		}
	}
	return cells
}
