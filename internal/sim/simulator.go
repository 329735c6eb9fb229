package sim

import (
	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/integrators"
	"go.uber.org/zap"
)

// ProgressFunc receives the number of completed grid rows. Calls are
// serialized and done is strictly increasing.
type ProgressFunc func(done, total int)

type Simulator struct {
	stepper  integrators.Stepper
	logger   *zap.Logger
	workers  int
	progress []ProgressFunc
}

type Option func(*Simulator)

func WithStepper(st integrators.Stepper) Option {
	return func(s *Simulator) { s.stepper = st }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// WithWorkers bounds the number of rows scanned concurrently. Values below 1
// select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(s *Simulator) { s.workers = n }
}

func WithProgress(fn ProgressFunc) Option {
	return func(s *Simulator) { s.progress = append(s.progress, fn) }
}

// Stepper returns the stepper the simulator advances with.
func (s *Simulator) Stepper() integrators.Stepper {
	return s.stepper
}

func New(opts ...Option) *Simulator {
	s := &Simulator{
		stepper: integrators.NewBlended(integrators.Symmetric),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Trajectory integrates from rest at (theta1, theta2) and returns all
// p.StepCount states. Indices 0 and 1 both hold the initial state. c takes
// precedence over p.Constants.
func (s *Simulator) Trajectory(theta1, theta2 float64, c dynamo.Constants, p dynamo.Params) (dynamo.Trajectory, error) {
	p.Constants = c
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dynamo.ValidateStart(theta1, theta2); err != nil {
		return nil, err
	}

	states, err := dynamo.NewTrajectory(p.StepCount)
	if err != nil {
		return nil, err
	}

	states[0] = dynamo.Rest(theta1, theta2)
	states[1] = states[0]

	h := p.HalfStep()
	for i := 2; i < p.StepCount; i++ {
		states[i] = s.stepper.Step(states[i-2], states[i-1], c, h)
	}

	s.logger.Debug("trajectory complete",
		zap.Float64("theta1", theta1),
		zap.Float64("theta2", theta2),
		zap.Int("steps", p.StepCount),
	)
	return states, nil
}

// Flip integrates from rest at (theta1, theta2) keeping only the last two
// states and returns the time of the first step with |theta2| > Pi, or
// dynamo.NoFlip.
func (s *Simulator) Flip(theta1, theta2 float64, c dynamo.Constants, p dynamo.Params) (dynamo.FlipTime, error) {
	p.Constants = c
	if err := p.Validate(); err != nil {
		return dynamo.NoFlip, err
	}
	if err := dynamo.ValidateStart(theta1, theta2); err != nil {
		return dynamo.NoFlip, err
	}
	return s.flip(theta1, theta2, c, p), nil
}

// flip assumes validated parameters.
func (s *Simulator) flip(theta1, theta2 float64, c dynamo.Constants, p dynamo.Params) dynamo.FlipTime {
	old := dynamo.Rest(theta1, theta2)
	prev := old
	h := p.HalfStep()

	for i := 0; i < p.StepCount-2; i++ {
		current := s.stepper.Step(old, prev, c, h)
		if current.Flipped() {
			return dynamo.FlipTimeAt(i, p.Dt)
		}
		old, prev = prev, current
	}
	return dynamo.NoFlip
}

var defaultSimulator = New()

// RunTrajectory runs [Simulator.Trajectory] with the symmetric stepper.
func RunTrajectory(theta1, theta2 float64, c dynamo.Constants, p dynamo.Params) (dynamo.Trajectory, error) {
	return defaultSimulator.Trajectory(theta1, theta2, c, p)
}

// RunFlip runs [Simulator.Flip] with the symmetric stepper.
func RunFlip(theta1, theta2 float64, c dynamo.Constants, p dynamo.Params) (dynamo.FlipTime, error) {
	return defaultSimulator.Flip(theta1, theta2, c, p)
}

// StepOnce advances one step with the symmetric stepper.
func StepOnce(old, prev dynamo.State, c dynamo.Constants, h float64) dynamo.State {
	return integrators.Step(old, prev, c, h)
}
