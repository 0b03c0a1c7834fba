package remote

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeGrid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Grid
		wantErr bool
	}{
		{"booleans", `[true,false,false,true]`, Grid{true, false, false, true}, false},
		{"numbers", `[1,0,0,1]`, Grid{true, false, false, true}, false},
		{"mixed", `[1,false,true,0]`, Grid{true, false, true, false}, false},
		{"only 1 is alive", `[2,1.0,0.5,-1]`, Grid{false, true, false, false}, false},
		{"too short", `[true,false]`, nil, true},
		{"too long", `[true,false,true,true,true]`, nil, true},
		{"strings", `["a","b","c","d"]`, nil, true},
		{"object", `{"area":[true]}`, nil, true},
		{"null", `null`, nil, true},
		{"garbage", `not json`, nil, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := DecodeGrid(strings.NewReader(test.body), 2, 2)
			if test.wantErr {
				if !errors.Is(err, ErrGridShape) {
					t.Fatalf("DecodeGrid(%s) err = %v, want ErrGridShape", test.body, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeGrid(%s): %v", test.body, err)
			}
			if len(got) != len(test.want) {
				t.Fatalf("DecodeGrid(%s) = %v, want %v", test.body, got, test.want)
			}
			for i := range got {
				if got[i] != test.want[i] {
					t.Fatalf("DecodeGrid(%s) = %v, want %v", test.body, got, test.want)
				}
			}
		})
	}
}
