package dynamo

import "math"

// Pi is the working-precision value of π used for grids and the flip predicate.
const Pi float64 = math.Pi

// Constants are the physical parameters of one run. They are never mutated
// once a simulation starts.
type Constants struct {
	RodLength float64 `yaml:"rod_length" json:"rod_length"`
	Mass      float64 `yaml:"mass" json:"mass"`
	Gravity   float64 `yaml:"gravity" json:"gravity"`
}

// Inertia returns m·l², the scale shared by all four derivatives.
func (c Constants) Inertia() float64 {
	return c.Mass * c.RodLength * c.RodLength
}

// Validate reports the first constant that is non-positive or not finite.
func (c Constants) Validate() error {
	if !positive(c.RodLength) {
		return invalid("rod_length", c.RodLength, "must be positive and finite")
	}
	if !positive(c.Mass) {
		return invalid("mass", c.Mass, "must be positive and finite")
	}
	if !positive(c.Gravity) {
		return invalid("gravity", c.Gravity, "must be positive and finite")
	}
	if in := c.Inertia(); in == 0 || math.IsInf(in, 0) {
		return invalid("mass*rod_length^2", in, "must be non-zero and finite")
	}
	return nil
}

// State is a point in phase space. Angles are not wrapped.
type State struct {
	Theta1 float64
	Theta2 float64
	P1     float64
	P2     float64
}

// Rest returns the state at the given angles with zero momenta.
func Rest(theta1, theta2 float64) State {
	return State{Theta1: theta1, Theta2: theta2}
}

// ValidateStart rejects initial angles that are NaN or infinite.
func ValidateStart(theta1, theta2 float64) error {
	if Rest(theta1, theta2).IsFinite() {
		return nil
	}
	if math.IsNaN(theta1) || math.IsInf(theta1, 0) {
		return invalid("theta1", theta1, "must be finite")
	}
	return invalid("theta2", theta2, "must be finite")
}

func (s State) Add(o State) State {
	return State{s.Theta1 + o.Theta1, s.Theta2 + o.Theta2, s.P1 + o.P1, s.P2 + o.P2}
}

func (s State) Scale(f float64) State {
	return State{s.Theta1 * f, s.Theta2 * f, s.P1 * f, s.P2 * f}
}

// IsFinite reports whether every component of s is a finite number.
func (s State) IsFinite() bool {
	for _, v := range [4]float64{s.Theta1, s.Theta2, s.P1, s.P2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Flipped reports whether the lower rod has passed the inverted position.
func (s State) Flipped() bool {
	return math.Abs(s.Theta2) > Pi
}

// Params are the variable parameters of a run. TotalTime is kept in step
// with StepCount*Dt by the caller.
type Params struct {
	StepCount  int       `json:"step_count"`
	Dt         float64   `json:"dt"`
	TotalTime  float64   `json:"total_time"`
	SampleFreq int       `json:"sample_freq"`
	PlotFreq   int       `json:"plot_freq"`
	GridSide   int       `json:"grid_side"`
	Constants  Constants `json:"constants"`
}

// HalfStep returns h = dt/2.
func (p Params) HalfStep() float64 {
	return p.Dt / 2
}

// Validate checks everything a trajectory or single flip run needs.
func (p Params) Validate() error {
	if p.StepCount < 2 {
		return invalid("step_count", float64(p.StepCount), "must be at least 2")
	}
	if !positive(p.Dt) {
		return invalid("dt", p.Dt, "must be positive and finite")
	}
	return p.Constants.Validate()
}

// ValidateGrid additionally checks the grid side used by a scan.
func (p Params) ValidateGrid() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.GridSide < 2 {
		return invalid("grid_side", float64(p.GridSide), "must be at least 2")
	}
	return nil
}

// SampleStride is the number of steps between two written samples.
func (p Params) SampleStride() int {
	if p.PlotFreq <= 0 {
		return 1
	}
	stride := p.SampleFreq / p.PlotFreq
	if stride < 1 {
		return 1
	}
	return stride
}

// FlipTime is the simulated time until the first flip, or NoFlip.
type FlipTime float64

// NoFlip marks a run that did not flip within its step count.
const NoFlip FlipTime = -1

func (f FlipTime) Flipped() bool {
	return f >= 0
}

func (f FlipTime) Seconds() float64 {
	return float64(f)
}

// FlipTimeAt converts a zero-based stepping iteration into a flip time.
// Iteration i produces trajectory index i+2.
func FlipTimeAt(iteration int, dt float64) FlipTime {
	return FlipTime(float64(iteration) * dt)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
