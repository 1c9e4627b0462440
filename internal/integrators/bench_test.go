package integrators

import (
	"testing"

	"github.com/san-kum/predprey/internal/dynamo"
)

func benchmarkStep(b *testing.B, integ dynamo.Integrator) {
	dyn := &oscillator{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkEuler(b *testing.B) { benchmarkStep(b, NewEuler()) }
func BenchmarkHeun(b *testing.B)  { benchmarkStep(b, NewHeun()) }
func BenchmarkRK4(b *testing.B)   { benchmarkStep(b, NewRK4()) }
