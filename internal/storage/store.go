package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/npy"
	"go.uber.org/zap"
)

const (
	TrajectoryFile = "sys_x.npy"
	EnergyFile     = "energy.npy"
	TimesFile      = "times.npy"
	MetadataFile   = "metadata.json"
)

// Store persists one run into a directory.
type Store struct {
	baseDir string
	log     *zap.Logger
}

func New(baseDir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{baseDir: baseDir, log: log}
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	Name           string             `json:"name"`
	Timestamp      time.Time          `json:"timestamp"`
	Integrator     string             `json:"integrator"`
	G              float64            `json:"g"`
	Dt             float64            `json:"dt"`
	TotalTime      float64            `json:"total_time"`
	SampleInterval float64            `json:"sample_interval"`
	Bodies         []string           `json:"bodies"`
	Masses         []float64          `json:"masses"`
	Steps          int                `json:"steps"`
	Samples        int                `json:"samples"`
	Metrics        map[string]float64 `json:"metrics"`
}

func (s *Store) path(name string) string {
	return filepath.Join(s.baseDir, name)
}

// Save writes the trajectory (samples, N, 3), the energy log (samples, 2),
// the sample times and the metadata.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) error {
	if err := s.Init(); err != nil {
		return err
	}

	samples := len(result.Times)
	n := result.Bodies()
	if len(result.Positions) != samples || len(result.Energy) != samples {
		return fmt.Errorf("%d times, %d snapshots, %d energies: %w",
			samples, len(result.Positions), len(result.Energy), dynamo.ErrDimensionMismatch)
	}

	traj := make([]float64, 0, samples*n*3)
	for i, snap := range result.Positions {
		if len(snap) != n {
			return fmt.Errorf("snapshot %d has %d bodies, expected %d: %w", i, len(snap), n, dynamo.ErrDimensionMismatch)
		}
		for _, x := range snap {
			traj = append(traj, x[0], x[1], x[2])
		}
	}
	if err := npy.WriteFile(s.path(TrajectoryFile), []int{samples, n, 3}, traj); err != nil {
		return fmt.Errorf("write %s: %w", TrajectoryFile, err)
	}

	energy := make([]float64, 0, samples*2)
	for _, e := range result.Energy {
		energy = append(energy, e[0], e[1])
	}
	if err := npy.WriteFile(s.path(EnergyFile), []int{samples, 2}, energy); err != nil {
		return fmt.Errorf("write %s: %w", EnergyFile, err)
	}

	if err := npy.WriteFile(s.path(TimesFile), []int{samples}, result.Times); err != nil {
		return fmt.Errorf("write %s: %w", TimesFile, err)
	}

	meta.Steps = result.StepsTaken
	meta.Samples = samples
	meta.Metrics = result.Metrics
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	metaFile, err := os.Create(s.path(MetadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("write %s: %w", MetadataFile, err)
	}

	s.log.Info("run saved",
		zap.String("dir", s.baseDir),
		zap.Int("samples", samples),
		zap.Int("bodies", n),
	)
	return nil
}

func (s *Store) Load() (*RunMetadata, error) {
	data, err := os.ReadFile(s.path(MetadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads sys_x.npy back as samples × N positions.
func (s *Store) LoadTrajectory() ([][]mgl64.Vec3, error) {
	shape, data, err := npy.ReadFile(s.path(TrajectoryFile))
	if err != nil {
		return nil, err
	}
	if len(shape) != 3 || shape[2] != 3 {
		return nil, fmt.Errorf("%s has shape %v: %w", TrajectoryFile, shape, dynamo.ErrDimensionMismatch)
	}

	samples, n := shape[0], shape[1]
	out := make([][]mgl64.Vec3, samples)
	for i := range out {
		out[i] = make([]mgl64.Vec3, n)
		for j := range out[i] {
			k := (i*n + j) * 3
			out[i][j] = mgl64.Vec3{data[k], data[k+1], data[k+2]}
		}
	}
	return out, nil
}

// LoadEnergy reads energy.npy back as (kinetic, potential) pairs.
func (s *Store) LoadEnergy() ([][2]float64, error) {
	shape, data, err := npy.ReadFile(s.path(EnergyFile))
	if err != nil {
		return nil, err
	}
	if len(shape) != 2 || shape[1] != 2 {
		return nil, fmt.Errorf("%s has shape %v: %w", EnergyFile, shape, dynamo.ErrDimensionMismatch)
	}

	out := make([][2]float64, shape[0])
	for i := range out {
		out[i] = [2]float64{data[2*i], data[2*i+1]}
	}
	return out, nil
}

func (s *Store) LoadTimes() ([]float64, error) {
	shape, data, err := npy.ReadFile(s.path(TimesFile))
	if err != nil {
		return nil, err
	}
	if len(shape) != 1 {
		return nil, fmt.Errorf("%s has shape %v: %w", TimesFile, shape, dynamo.ErrDimensionMismatch)
	}
	return data, nil
}
