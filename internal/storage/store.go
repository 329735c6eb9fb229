package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/san-kum/dpendulum/internal/dynamo"
)

const (
	KindTrajectory = "trajectory"
	KindScan       = "scan"

	metadataFile   = "metadata.json"
	samplesFile    = "samples.csv"
	flipMatrixFile = "flip.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Scheme    string             `json:"scheme"`
	Theta1    float64            `json:"theta1,omitempty"`
	Theta2    float64            `json:"theta2,omitempty"`
	Params    dynamo.Params      `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
	Files     []string           `json:"files,omitempty"`
}

// RunDir is the directory holding the files of one run.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// SaveTrajectory stores the metadata and the trajectory sampled at
// meta.Params.SampleStride().
func (s *Store) SaveTrajectory(meta RunMetadata, traj dynamo.Trajectory) (string, error) {
	meta.Kind = KindTrajectory
	runID, err := s.create(&meta)
	if err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(s.RunDir(runID), samplesFile), func(f *os.File) error {
		return WriteSamples(f, traj.Sample(meta.Params.SampleStride()))
	}); err != nil {
		return "", err
	}
	return runID, s.writeMetadata(meta)
}

// SaveScan stores the metadata and the flip matrix.
func (s *Store) SaveScan(meta RunMetadata, m *dynamo.FlipMatrix) (string, error) {
	meta.Kind = KindScan
	runID, err := s.create(&meta)
	if err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(s.RunDir(runID), flipMatrixFile), func(f *os.File) error {
		return WriteMatrix(f, m)
	}); err != nil {
		return "", err
	}
	return runID, s.writeMetadata(meta)
}

// AddFile records an extra artifact written into the run directory. Names
// already recorded are kept once.
func (s *Store) AddFile(runID, name string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	if slices.Contains(meta.Files, name) {
		return nil
	}
	meta.Files = append(meta.Files, name)
	return s.writeMetadata(*meta)
}

func (s *Store) create(meta *RunMetadata) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Kind, now.UnixNano())
	meta.Timestamp = now
	// JSON cannot carry NaN or Inf; a diverged run simply omits them.
	finite := make(map[string]float64, len(meta.Metrics))
	for k, v := range meta.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite[k] = v
		}
	}
	meta.Metrics = finite

	if err := os.MkdirAll(s.RunDir(meta.ID), 0755); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func (s *Store) writeMetadata(meta RunMetadata) error {
	return writeFile(filepath.Join(s.RunDir(meta.ID), metadataFile), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.RunDir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]dynamo.State, error) {
	file, err := os.Open(filepath.Join(s.RunDir(runID), samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadSamples(file)
}

func (s *Store) LoadMatrix(runID string) (*dynamo.FlipMatrix, error) {
	file, err := os.Open(filepath.Join(s.RunDir(runID), flipMatrixFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadMatrix(file)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
