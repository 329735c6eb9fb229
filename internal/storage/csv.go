package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/dpendulum/internal/dynamo"
)

var sampleHeader = []string{"theta1", "p1", "theta2", "p2"}

// WriteSamples writes one theta1,p1,theta2,p2 row per state.
func WriteSamples(w io.Writer, samples []dynamo.State) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sampleHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			formatFloat(s.Theta1),
			formatFloat(s.P1),
			formatFloat(s.Theta2),
			formatFloat(s.P2),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadSamples parses the output of WriteSamples.
func ReadSamples(r io.Reader) ([]dynamo.State, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(sampleHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []dynamo.State{}, nil
	}

	samples := make([]dynamo.State, 0, len(records)-1)
	for i, record := range records[1:] {
		var v [4]float64
		for j := range v {
			v[j], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i+2, sampleHeader[j], err)
			}
		}
		samples = append(samples, dynamo.State{Theta1: v[0], P1: v[1], Theta2: v[2], P2: v[3]})
	}
	return samples, nil
}

// WriteMatrix writes the flip matrix with the grid angles as the first row
// and column.
func WriteMatrix(w io.Writer, m *dynamo.FlipMatrix) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, m.Side+1)
	header = append(header, "theta1\\theta2")
	for _, a := range m.Angles {
		header = append(header, formatFloat(a))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := 0; i < m.Side; i++ {
		row := make([]string, 0, m.Side+1)
		row = append(row, formatFloat(m.Angles[i]))
		for _, v := range m.Row(i) {
			row = append(row, formatFloat(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadMatrix parses the output of WriteMatrix.
func ReadMatrix(r io.Reader) (*dynamo.FlipMatrix, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("empty flip matrix")
	}

	side := len(records[0]) - 1
	if len(records) != side+1 {
		return nil, fmt.Errorf("flip matrix is not square: %d columns, %d rows", side, len(records)-1)
	}

	angles := make([]float64, side)
	for j := range angles {
		if angles[j], err = strconv.ParseFloat(records[0][j+1], 64); err != nil {
			return nil, fmt.Errorf("header column %d: %w", j+1, err)
		}
	}

	m, err := dynamo.NewFlipMatrix(angles)
	if err != nil {
		return nil, err
	}
	for i := 0; i < side; i++ {
		row := m.Row(i)
		for j := range row {
			if row[j], err = strconv.ParseFloat(records[i+1][j+1], 64); err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+1, j+1, err)
			}
		}
	}
	return m, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
