package util

import "testing"

func TestCellEquals(t *testing.T) {
	a := &Cell{X: 2, Y: 3}
	tests := []struct {
		name string
		a, b *Cell
		want bool
	}{
		{"same coordinates", a, &Cell{X: 2, Y: 3}, true},
		{"same pointer", a, a, true},
		{"different x", a, &Cell{X: 3, Y: 3}, false},
		{"different y", a, &Cell{X: 2, Y: 4}, false},
		{"nil left", nil, a, false},
		{"nil right", a, nil, false},
		{"both nil", nil, nil, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CellEquals(test.a, test.b); got != test.want {
				t.Errorf("CellEquals(%v, %v) = %v, want %v", test.a, test.b, got, test.want)
			}
		})
	}
}

func TestCellIn(t *testing.T) {
	if !(Cell{X: 0, Y: 0}).In(80, 40) || !(Cell{X: 79, Y: 39}).In(80, 40) {
		t.Error("corner cells should be inside an 80x40 grid")
	}
	for _, c := range []Cell{{X: -1, Y: 0}, {X: 80, Y: 0}, {X: 0, Y: 40}, {X: 0, Y: -1}} {
		if c.In(80, 40) {
			t.Errorf("%v reported inside an 80x40 grid", c)
		}
	}
}
