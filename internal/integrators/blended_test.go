package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/dpendulum/internal/dynamo"
)

func TestBlendedRestState(t *testing.T) {
	for _, scheme := range []Scheme{Symmetric, Legacy} {
		t.Run(scheme.String(), func(t *testing.T) {
			b := NewBlended(scheme)
			rest := dynamo.Rest(0, 0)
			got := b.Step(rest, rest, unit, 0.0005)
			if got.Theta1 != 0 || got.Theta2 != 0 || got.P1 != 0 || got.P2 != 0 {
				t.Errorf("expected rest state to stay at rest, got %+v", got)
			}
		})
	}
}

func TestBlendedDeterministic(t *testing.T) {
	old := dynamo.Rest(1.2, -0.7)
	prev := dynamo.State{Theta1: 1.19, Theta2: -0.69, P1: -0.3, P2: 0.2}

	for _, scheme := range []Scheme{Symmetric, Legacy} {
		b := NewBlended(scheme)
		first := b.Step(old, prev, unit, 0.0005)
		for i := 0; i < 10; i++ {
			if got := b.Step(old, prev, unit, 0.0005); got != first {
				t.Fatalf("%s: step %d differs: %+v vs %+v", scheme, i, got, first)
			}
		}
	}
}

func TestBlendedSchemesDiffer(t *testing.T) {
	start := dynamo.Rest(1.0, 0.5)

	sym := NewBlended(Symmetric).Step(start, start, unit, 0.0005)
	leg := NewBlended(Legacy).Step(start, start, unit, 0.0005)

	if sym.P2 == leg.P2 {
		t.Errorf("expected lower rod momentum to differ between schemes, both %v", sym.P2)
	}
}

func TestBlendedMirrorSymmetry(t *testing.T) {
	b := NewBlended(Symmetric)
	old := dynamo.State{Theta1: 0.8, Theta2: 0.3, P1: 0.1, P2: -0.2}
	prev := dynamo.State{Theta1: 0.81, Theta2: 0.29, P1: 0.05, P2: -0.25}

	a := b.Step(old, prev, unit, 0.001)
	m := b.Step(old.Scale(-1), prev.Scale(-1), unit, 0.001)

	for _, d := range []float64{a.Theta1 + m.Theta1, a.Theta2 + m.Theta2, a.P1 + m.P1, a.P2 + m.P2} {
		if math.Abs(d) > 1e-12 {
			t.Fatalf("mirrored step not antisymmetric: %+v vs %+v", a, m)
		}
	}
}

func TestBlendedSmallAngleMatchesRK4(t *testing.T) {
	b := NewBlended(Symmetric)
	r := NewRK4()
	h := 0.0005

	old := dynamo.Rest(0.01, 0.01)
	prev := old
	x := old
	for i := 0; i < 2000; i++ {
		next := b.Step(old, prev, unit, h)
		old, prev = prev, next
		x = r.Step(x, x, unit, h)
	}

	if math.Abs(prev.Theta1-x.Theta1) > 1e-3 || math.Abs(prev.Theta2-x.Theta2) > 1e-3 {
		t.Errorf("blended %+v drifted from rk4 %+v", prev, x)
	}
}

func TestBlendedGoldenSteps(t *testing.T) {
	seed := dynamo.Rest(1.0, 0.5)
	old := dynamo.State{Theta1: 0.8, Theta2: 0.3, P1: 0.1, P2: -0.2}
	prev := dynamo.State{Theta1: 0.81, Theta2: 0.29, P1: 0.05, P2: -0.25}

	tests := []struct {
		name      string
		scheme    Scheme
		old, prev dynamo.State
		want      dynamo.State
	}{
		{
			"legacy from rest", Legacy, seed, seed,
			dynamo.State{Theta1: 0.99997542279194584, Theta2: 0.50002239275962845, P1: -0.024764333944139166, P2: -0.0047032437558405448},
		},
		{
			"symmetric from rest", Symmetric, seed, seed,
			dynamo.State{Theta1: 0.9999754227919451, Theta2: 0.500018243546353, P1: -0.024764333944139166, P2: -0.004703243755437607},
		},
		{
			"legacy in motion", Legacy, old, prev,
			dynamo.State{Theta1: 0.8109646869287032, Theta2: 0.2872267998793967, P1: 0.03102805633541767, P2: -0.2551457968822571},
		},
		{
			"symmetric in motion", Symmetric, old, prev,
			dynamo.State{Theta1: 0.8109646869307001, Theta2: 0.28722408373468566, P1: 0.03102805633541767, P2: -0.2551457980673934},
		},
	}

	const tol = 1e-13
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBlended(tt.scheme).Step(tt.old, tt.prev, unit, 0.001)
			diffs := []float64{
				got.Theta1 - tt.want.Theta1,
				got.Theta2 - tt.want.Theta2,
				got.P1 - tt.want.P1,
				got.P2 - tt.want.P2,
			}
			for _, d := range diffs {
				if math.Abs(d) > tol {
					t.Fatalf("Step = %+v, want %+v", got, tt.want)
				}
			}
		})
	}
}

func TestParseScheme(t *testing.T) {
	tests := []struct {
		name    string
		want    Scheme
		wantErr bool
	}{
		{"", Symmetric, false},
		{"symmetric", Symmetric, false},
		{"Legacy", Legacy, false},
		{"rk4", Classical, false},
		{"euler", Symmetric, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScheme(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScheme(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseScheme(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNewStepper(t *testing.T) {
	s, err := NewStepper("rk4")
	if err != nil {
		t.Fatalf("NewStepper failed: %v", err)
	}
	if _, ok := s.(*RK4); !ok {
		t.Errorf("expected *RK4, got %T", s)
	}

	s, err = NewStepper("legacy")
	if err != nil {
		t.Fatalf("NewStepper failed: %v", err)
	}
	if b, ok := s.(*Blended); !ok || b.Scheme() != Legacy {
		t.Errorf("expected legacy blended stepper, got %T", s)
	}
}

func BenchmarkBlended(b *testing.B) {
	st := NewBlended(Symmetric)
	old := dynamo.Rest(1.0, 0.5)
	prev := old

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		next := st.Step(old, prev, unit, 0.0005)
		old, prev = prev, next
	}
}
