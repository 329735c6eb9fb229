package metrics

import "github.com/san-kum/dpendulum/internal/dynamo"

// Upright is the fraction of observed states whose lower rod has not gone
// over the top, i.e. |theta2| <= Pi.
type Upright struct {
	name       string
	violations int
	samples    int
}

func NewUpright() *Upright {
	return &Upright{name: "upright"}
}

func (s *Upright) Name() string {
	return s.name
}

func (s *Upright) Observe(x dynamo.State, t float64) {
	s.samples++
	if x.Flipped() {
		s.violations++
	}
}

func (s *Upright) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Upright) Reset() {
	s.violations = 0
	s.samples = 0
}
