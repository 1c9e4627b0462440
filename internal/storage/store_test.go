package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/san-kum/predprey/internal/predprey"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	st, err := Open(dir, log.New(io.Discard))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st, dir
}

func sampleTrajectory() predprey.Trajectory {
	return predprey.Trajectory{
		Time:      []float64{0, 0.25, 0.5},
		Prey:      []float64{50, 49.6875, 49.1234567890123},
		Predators: []float64{20, 20.325, 20.6},
	}
}

func sampleMeta() RunMetadata {
	return RunMetadata{
		Model:      "native",
		Integrator: "euler",
		Params:     predprey.DefaultParams(),
		Metrics:    map[string]float64{"peak_prey": 50},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st, _ := openStore(t)

	runID, err := st.Save(sampleMeta(), sampleTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Model != "native" {
		t.Errorf("expected model 'native', got '%s'", meta.Model)
	}
	if meta.Params != predprey.DefaultParams() {
		t.Errorf("params mismatch: %+v", meta.Params)
	}
	if meta.Samples != 3 {
		t.Errorf("expected 3 samples, got %d", meta.Samples)
	}
	if meta.Metrics["peak_prey"] != 50 {
		t.Errorf("expected peak_prey 50, got %f", meta.Metrics["peak_prey"])
	}
	if meta.Timestamp.IsZero() {
		t.Error("expected timestamp")
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	want := sampleTrajectory()
	for i := range want.Time {
		if traj.Time[i] != want.Time[i] || traj.Prey[i] != want.Prey[i] || traj.Predators[i] != want.Predators[i] {
			t.Errorf("row %d mismatch: got (%v, %v, %v)", i, traj.Time[i], traj.Prey[i], traj.Predators[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st, _ := openStore(t)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, err := st.Save(sampleMeta(), sampleTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	meta := sampleMeta()
	meta.Integrator = "rk4"
	second, err := st.Save(meta, sampleTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("expected newest first, got %s then %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreFileStructure(t *testing.T) {
	st, dir := openStore(t)

	runID, err := st.Save(sampleMeta(), sampleTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "runs.db")); os.IsNotExist(err) {
		t.Error("runs.db not created")
	}

	data, err := os.ReadFile(filepath.Join(dir, runID, "trajectory.csv"))
	if err != nil {
		t.Fatalf("trajectory.csv not created: %v", err)
	}
	if !strings.HasPrefix(string(data), "TIME,prey,predators\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestStoreReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	st, err := Open(dir, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	runID, err := st.Save(sampleMeta(), sampleTrajectory())
	if err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = Open(dir, log.New(io.Discard))
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer st.Close()

	if _, err := st.Load(runID); err != nil {
		t.Errorf("run lost after reopen: %v", err)
	}
}

func TestStoreNotFound(t *testing.T) {
	st, _ := openStore(t)

	if _, err := st.Load("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadTrajectory("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if err := st.Delete("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	st, dir := openStore(t)

	runID, err := st.Save(sampleMeta(), sampleTrajectory())
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(runID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, runID)); !os.IsNotExist(err) {
		t.Error("run directory still present")
	}
	if _, err := st.Load(runID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(csv.NewWriter(&buf), sampleTrajectory()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[1] != "0,50,20" {
		t.Errorf("unexpected first row %q", lines[1])
	}
}

func TestExportJSON(t *testing.T) {
	meta := sampleMeta()
	meta.ID = "abc"

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, sampleTrajectory(), nil); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var decoded struct {
		ID       string               `json:"id"`
		Model    string               `json:"model"`
		Outcomes map[string][]float64 `json:"outcomes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.ID != "abc" || decoded.Model != "native" {
		t.Errorf("unexpected metadata %+v", decoded)
	}
	if len(decoded.Outcomes["prey"]) != 3 || len(decoded.Outcomes["TIME"]) != 3 {
		t.Errorf("unexpected outcomes %+v", decoded.Outcomes)
	}
}

func divergedTrajectory(t *testing.T) predprey.Trajectory {
	t.Helper()
	p := predprey.DefaultParams()
	p.PreyBirthRate = 5
	p.PredationRate = 0
	traj, err := predprey.Simulate(p)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if !traj.Diverged() {
		t.Fatal("expected the trajectory to overflow")
	}
	return traj
}

func TestSaveDivergedRun(t *testing.T) {
	st, dir := openStore(t)
	traj := divergedTrajectory(t)

	meta := sampleMeta()
	meta.Metrics = map[string]float64{
		"peak_prey":   math.Inf(1),
		"mean_prey":   math.NaN(),
		"trough_prey": math.Inf(-1),
		"peak_other":  1.78e18,
	}
	id, err := st.Save(meta, traj)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !math.IsInf(loaded.Metrics["peak_prey"], 1) || !math.IsInf(loaded.Metrics["trough_prey"], -1) {
		t.Errorf("infinite metrics lost: %v", loaded.Metrics)
	}
	if !math.IsNaN(loaded.Metrics["mean_prey"]) {
		t.Errorf("NaN metric lost: %v", loaded.Metrics["mean_prey"])
	}
	if loaded.Metrics["peak_other"] != 1.78e18 {
		t.Errorf("finite metric changed: %v", loaded.Metrics["peak_other"])
	}

	back, err := st.LoadTrajectory(id)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if back.Len() != traj.Len() || !back.Diverged() {
		t.Errorf("trajectory not round-tripped: len %d diverged %v", back.Len(), back.Diverged())
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, *loaded, back, nil); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"+Inf"`) {
		t.Error("expected +Inf encoded as a string")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.IsDir() && e.Name() != id {
			t.Errorf("unexpected run directory %s", e.Name())
		}
	}
}

func TestSaveInvalidParamsLeavesNoDirectory(t *testing.T) {
	st, dir := openStore(t)

	meta := sampleMeta()
	meta.Params.Dt = math.NaN()
	if _, err := st.Save(meta, sampleTrajectory()); err == nil {
		t.Fatal("expected encode error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.IsDir() {
			t.Errorf("leftover run directory %s", e.Name())
		}
	}
}

func TestFloatJSON(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{0, "0"},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
		{math.NaN(), `"NaN"`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(Float(tt.in))
		if err != nil {
			t.Fatalf("marshal %v: %v", tt.in, err)
		}
		if string(data) != tt.want {
			t.Errorf("marshal %v = %s, want %s", tt.in, data, tt.want)
		}

		var back Float
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if float64(back) != tt.in && !(math.IsNaN(tt.in) && math.IsNaN(float64(back))) {
			t.Errorf("round trip %v = %v", tt.in, back)
		}
	}

	var f Float
	if err := json.Unmarshal([]byte(`"lots"`), &f); err == nil {
		t.Error("expected error for non-numeric string")
	}
}

func TestWriteOutcomesSelection(t *testing.T) {
	var buf bytes.Buffer
	out := sampleTrajectory().Outcomes()
	if err := WriteOutcomes(csv.NewWriter(&buf), out, []string{"prey", "TIME"}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "prey,TIME" || lines[2] != "49.6875,0.25" {
		t.Errorf("unexpected csv %q", lines)
	}

	if err := WriteOutcomes(csv.NewWriter(&buf), out, []string{"wolves"}); err == nil {
		t.Error("expected error for unknown outcome")
	}
}

func TestExportJSONSelection(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, sampleMeta(), sampleTrajectory(), []string{"predators"}); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Outcomes map[string][]float64 `json:"outcomes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Outcomes) != 1 || len(decoded.Outcomes["predators"]) != 3 {
		t.Errorf("unexpected outcomes %+v", decoded.Outcomes)
	}
}

func TestOpenNilLogger(t *testing.T) {
	st, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer st.Close()
	if _, err := st.Save(sampleMeta(), sampleTrajectory()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
}
