package dynamo

import "unsafe"

// Trajectory is the state history of one run, indexed by step.
type Trajectory []State

// NewTrajectory allocates a zeroed trajectory of n states.
func NewTrajectory(n int) (Trajectory, error) {
	var traj Trajectory
	err := allocate("trajectory", n, int(unsafe.Sizeof(State{})), func() {
		traj = make(Trajectory, n)
	})
	if err != nil {
		return nil, err
	}
	return traj, nil
}

// Sample returns every stride-th state starting at index 0.
func (t Trajectory) Sample(stride int) []State {
	if stride < 1 {
		stride = 1
	}
	out := make([]State, 0, (len(t)+stride-1)/stride)
	for i := 0; i < len(t); i += stride {
		out = append(out, t[i])
	}
	return out
}

// FirstFlip returns the flip time as the streaming scanner reports it.
func (t Trajectory) FirstFlip(dt float64) FlipTime {
	for i := 2; i < len(t); i++ {
		if t[i].Flipped() {
			return FlipTimeAt(i-2, dt)
		}
	}
	return NoFlip
}

// Column extracts one field of every state.
func (t Trajectory) Column(field func(State) float64) []float64 {
	out := make([]float64, len(t))
	for i, s := range t {
		out[i] = field(s)
	}
	return out
}

func allocate(what string, n, elemSize int, alloc func()) (err error) {
	const maxInt = int(^uint(0) >> 1)
	if n < 0 || (n > 0 && elemSize > 0 && n > maxInt/elemSize) {
		return &AllocError{What: what, Count: n}
	}
	defer func() {
		if r := recover(); r != nil {
			err = &AllocError{What: what, Count: n}
		}
	}()
	alloc()
	return nil
}
