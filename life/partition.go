package life

import (
	"math"

	"uk.ac.bris.cs/lifeview/util"
)

type Block struct {
	Start util.Cell // Top-left corner of block
	End   util.Cell // Bottom-right corner of block (not inclusive)
}

// Largest composite number not above threads, so the workers factor into a grid.
// Below 4 there is no composite and the count is used as is.
func workerCount(threads int) int {
	if threads < 4 {
		return threads
	}
	for n := threads; ; n-- {
		if len(primeFactors(n)) > 1 {
			return n
		}
	}
}

// Prime factors in ascending order
func primeFactors(n int) []int {
	factors := make([]int, 0)
	for factor := 2; n > 1; {
		if n%factor == 0 {
			factors = append(factors, factor)
			n /= factor
		} else {
			factor++
		}
	}
	return factors
}

// Split n workers into rows x columns as close to square as the factors allow.
// Rows take the largest factors first.
func gridShape(n int) (int, int) {
	factors := primeFactors(n)
	desired := math.Sqrt(float64(n))
	rows, columns := 1, 1
	i := len(factors) - 1
	for ; i >= 0 && float64(rows) < desired; i-- {
		rows *= factors[i]
	}
	for ; i >= 0; i-- {
		columns *= factors[i]
	}
	return rows, columns
}

// Start of part i when length is cut into n near-equal parts
func cut(i, n, length int) int {
	return i * length / n
}

// Divide matrix into roughly square blocks, one per worker
func divideToBlocks(threads, width, height int) []Block {
	rows, columns := 1, 1
	if threads > 1 {
		rows, columns = gridShape(workerCount(threads))
	}
	rows = min(rows, height)
	columns = min(columns, width)

	blocks := make([]Block, 0, rows*columns)
	for y := 0; y != rows; y++ {
		for x := 0; x != columns; x++ {
			blocks = append(blocks, Block{
				Start: util.Cell{X: cut(x, columns, width), Y: cut(y, rows, height)},
				End:   util.Cell{X: cut(x+1, columns, width), Y: cut(y+1, rows, height)},
			})
		}
	}
	return blocks
}
