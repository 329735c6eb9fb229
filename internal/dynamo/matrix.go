package dynamo

import "unsafe"

// FlipMatrix holds flip times for every pair of grid angles. Row i is
// theta1 = Angles[i], column j is theta2 = Angles[j].
type FlipMatrix struct {
	Side   int
	Angles []float64
	Cells  []float64
}

// NewFlipMatrix allocates a side×side matrix over the given angles.
func NewFlipMatrix(angles []float64) (*FlipMatrix, error) {
	side := len(angles)
	const maxInt = int(^uint(0) >> 1)
	if side > 0 && side > maxInt/side {
		return nil, &AllocError{What: "flip matrix", Count: side}
	}

	m := &FlipMatrix{Side: side}
	err := allocate("flip matrix", side*side, int(unsafe.Sizeof(float64(0))), func() {
		m.Cells = make([]float64, side*side)
		m.Angles = make([]float64, side)
	})
	if err != nil {
		return nil, err
	}
	copy(m.Angles, angles)
	return m, nil
}

func (m *FlipMatrix) At(i, j int) FlipTime {
	return FlipTime(m.Cells[i*m.Side+j])
}

func (m *FlipMatrix) Set(i, j int, v FlipTime) {
	m.Cells[i*m.Side+j] = float64(v)
}

// Row returns row i without copying.
func (m *FlipMatrix) Row(i int) []float64 {
	return m.Cells[i*m.Side : (i+1)*m.Side]
}
