package metrics

import (
	"math"

	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/physics"
)

// Energy is the mean Hamiltonian over the observed states.
type Energy struct {
	name        string
	constants   dynamo.Constants
	samples     int
	totalEnergy float64
}

func NewEnergy(c dynamo.Constants) *Energy {
	return &Energy{
		name:      "energy",
		constants: c,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, t float64) {
	e.totalEnergy += physics.Energy(x, e.constants)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative deviation of the Hamiltonian from its
// value at the first observed state. When that value is zero the absolute
// deviation is used.
type EnergyDrift struct {
	name          string
	constants     dynamo.Constants
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(c dynamo.Constants) *EnergyDrift {
	return &EnergyDrift{
		name:      "energy_drift",
		constants: c,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	energy := physics.Energy(x, e.constants)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	drift := math.Abs(energy - e.initialEnergy)
	if e.initialEnergy != 0 {
		drift /= math.Abs(e.initialEnergy)
	}
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
