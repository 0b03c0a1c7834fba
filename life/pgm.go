package life

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadPgm loads a binary (P5) PGM image as a grid. Non-zero pixels are alive.
func ReadPgm(filename string, width, height int) ([]bool, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return DecodePgm(bufio.NewReader(file), width, height)
}

// DecodePgm parses a P5 header and then width*height pixel bytes.
func DecodePgm(r *bufio.Reader, width, height int) ([]bool, error) {
	fields := make([]string, 0, 4)
	for len(fields) != 4 {
		field, err := readField(r)
		if err != nil {
			return nil, fmt.Errorf("reading pgm header: %w", err)
		}
		fields = append(fields, field)
	}

	if fields[0] != "P5" {
		return nil, fmt.Errorf("not a pgm file")
	}
	if w, _ := strconv.Atoi(fields[1]); w != width {
		return nil, fmt.Errorf("incorrect width %s, want %d", fields[1], width)
	}
	if h, _ := strconv.Atoi(fields[2]); h != height {
		return nil, fmt.Errorf("incorrect height %s, want %d", fields[2], height)
	}
	if maxval, _ := strconv.Atoi(fields[3]); maxval != 255 {
		return nil, fmt.Errorf("incorrect maxval/bit depth %s", fields[3])
	}

	data := make([]byte, width*height)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("reading pgm pixels: %w", err)
	}
	grid := make([]bool, len(data))
	for i, pixel := range data {
		grid[i] = pixel != 0
	}
	return grid, nil
}

// readField returns the next whitespace separated header token and consumes
// exactly one whitespace byte after it, as the format requires before the pixels.
func readField(r *bufio.Reader) (string, error) {
	field := make([]byte, 0, 8)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		switch b {
		case '#':
			if len(field) == 0 {
				if _, err := r.ReadString('\n'); err != nil {
					return "", err
				}
				continue
			}
		case ' ', '\t', '\n', '\r':
			if len(field) == 0 {
				continue
			}
			return string(field), nil
		}
		field = append(field, b)
	}
}
