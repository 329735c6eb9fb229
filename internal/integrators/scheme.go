package integrators

import (
	"fmt"
	"strings"
)

// Scheme selects how the four stages of the blended step are wired.
type Scheme int

const (
	// Symmetric evaluates both rods at the same stage point in every stage.
	Symmetric Scheme = iota
	// Legacy reproduces the historical tool bit for bit: the stage-2 momentum
	// derivative of the lower rod reads the upper angle from stage 0, and the
	// stage-3 angle derivative of the lower rod advances p2 by h instead of 2h.
	Legacy
	// Classical is textbook RK4 with velocities taken from the stage momenta.
	// It ignores the older state and serves as a reference for comparisons.
	Classical
)

func (s Scheme) String() string {
	switch s {
	case Symmetric:
		return "symmetric"
	case Legacy:
		return "legacy"
	case Classical:
		return "rk4"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// ParseScheme maps a case-insensitive scheme name to its Scheme. The empty
// name selects Symmetric.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "symmetric":
		return Symmetric, nil
	case "legacy":
		return Legacy, nil
	case "rk4", "classical":
		return Classical, nil
	default:
		return Symmetric, fmt.Errorf("unknown scheme: %s (available: %s)", name, strings.Join(Schemes(), ", "))
	}
}

// Schemes lists the accepted scheme names.
func Schemes() []string {
	return []string{Symmetric.String(), Legacy.String(), Classical.String()}
}
