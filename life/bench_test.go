package life

import (
	"fmt"
	"math/rand"
	"testing"
)

func BenchmarkStep(b *testing.B) {
	for _, size := range []int{64, 256, 512} {
		r := rand.New(rand.NewSource(1))
		initial := make([]bool, size*size)
		for i := range initial {
			initial[i] = r.Float64() < 0.25
		}
		for threads := 1; threads <= 16; threads *= 2 {
			p := Params{Width: size, Height: size, Threads: threads}
			name := fmt.Sprintf("%dx%d-%d", p.Width, p.Height, p.Threads)
			b.Run(name, func(b *testing.B) {
				engine, err := NewEngine(p, initial)
				if err != nil {
					b.Fatal(err)
				}
				defer engine.Close()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					engine.Step()
				}
			})
		}
	}
}
