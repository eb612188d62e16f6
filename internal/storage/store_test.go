package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/npy"
)

func sampleResult() *dynamo.Result {
	r := dynamo.NewResult(3, 2)
	for i := 0; i < 3; i++ {
		f := float64(i)
		r.Positions[i][0] = mgl64.Vec3{f, f + 0.1, f + 0.2}
		r.Positions[i][1] = mgl64.Vec3{-f, -f - 0.1, -f - 0.2}
		r.Times[i] = 5 * f
		r.Energy[i] = [2]float64{1 + f, -2 - f}
	}
	r.Samples = 3
	r.StepsTaken = 10
	r.Metrics["energy_drift"] = 1.5
	return r
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(filepath.Join(tmpDir, "run"), nil)

	meta := RunMetadata{Name: "test", G: 2, Dt: 1, Bodies: []string{"a", "b"}, Masses: []float64{1, 2}}
	if err := st.Save(meta, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Name != "test" || loaded.Steps != 10 || loaded.Samples != 3 {
		t.Errorf("unexpected metadata: %+v", loaded)
	}
	if loaded.Metrics["energy_drift"] != 1.5 {
		t.Errorf("expected energy_drift 1.5, got %f", loaded.Metrics["energy_drift"])
	}
	if loaded.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	traj, err := st.LoadTrajectory()
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(traj) != 3 || len(traj[2]) != 2 {
		t.Fatalf("expected 3x2 trajectory, got %dx%d", len(traj), len(traj[0]))
	}
	if want := sampleResult().Positions[2][1]; traj[2][1] != want {
		t.Errorf("expected position %v, got %v", want, traj[2][1])
	}

	energy, err := st.LoadEnergy()
	if err != nil {
		t.Fatalf("load energy failed: %v", err)
	}
	if energy[1] != [2]float64{2, -3} {
		t.Errorf("expected energy (2, -3), got %v", energy[1])
	}

	times, err := st.LoadTimes()
	if err != nil {
		t.Fatalf("load times failed: %v", err)
	}
	if len(times) != 3 || times[2] != 10 {
		t.Errorf("unexpected times: %v", times)
	}
}

func TestStoreArrayShapes(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir, nil)

	if err := st.Save(RunMetadata{Name: "shape"}, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	tests := []struct {
		file  string
		shape []int
	}{
		{TrajectoryFile, []int{3, 2, 3}},
		{EnergyFile, []int{3, 2}},
		{TimesFile, []int{3}},
	}
	for _, tt := range tests {
		shape, _, err := npy.ReadFile(filepath.Join(tmpDir, tt.file))
		if err != nil {
			t.Fatalf("%s: %v", tt.file, err)
		}
		if len(shape) != len(tt.shape) {
			t.Fatalf("%s: expected shape %v, got %v", tt.file, tt.shape, shape)
		}
		for i := range shape {
			if shape[i] != tt.shape[i] {
				t.Errorf("%s: expected shape %v, got %v", tt.file, tt.shape, shape)
			}
		}
	}

	if _, err := os.Stat(filepath.Join(tmpDir, MetadataFile)); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
}

func TestStoreSaveUnwritable(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	st := New(filepath.Join(blocker, "run"), nil)
	if err := st.Save(RunMetadata{}, sampleResult()); err == nil {
		t.Error("expected error writing below a regular file")
	}
}
