package integrators

import "github.com/san-kum/predprey/internal/dynamo"

// Heun is the explicit trapezoidal rule (second-order Runge-Kutta).
type Heun struct {
	predictor dynamo.State
}

func NewHeun() *Heun {
	return &Heun{}
}

func (h *Heun) Name() string { return "heun" }

func (h *Heun) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	if len(h.predictor) != n {
		h.predictor = make(dynamo.State, n)
	}

	k1 := sys.Derive(x, t)
	for i := 0; i < n; i++ {
		h.predictor[i] = x[i] + dt*k1[i]
	}
	k2 := sys.Derive(h.predictor, t+dt)

	result := make(dynamo.State, n)
	half := dt * 0.5
	for i := 0; i < n; i++ {
		result[i] = x[i] + half*(k1[i]+k2[i])
	}
	return result
}
