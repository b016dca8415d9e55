package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/orbit"
	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Frames: []sim.Frame{
			{Time: 0, Bodies: []orbit.BodyState{
				{Name: "sun", X: orbit.Vec{X: 0, Y: 0}},
				{Name: "earth", X: orbit.Vec{X: 1.496e11, Y: 0}},
			}},
			{Time: 300000, Bodies: []orbit.BodyState{
				{Name: "sun", X: orbit.Vec{X: 100, Y: -50}},
				{Name: "earth", X: orbit.Vec{X: 1.4959e11, Y: 8.9e9}},
			}},
		},
		Metrics:    map[string]float64{"energy_drift": 0.0012},
		StepsTaken: 5000,
	}
}

func testMeta() RunMetadata {
	return RunMetadata{
		Source:        "catalog",
		Epoch:         "2022-01-01 00:00:00",
		Bodies:        []string{"sun", "earth"},
		Dt:            60,
		DurationDays:  1000,
		StepsPerFrame: 5000,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testMeta(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Source != "catalog" {
		t.Errorf("expected source catalog, got %s", meta.Source)
	}
	if meta.Dt != 60 {
		t.Errorf("expected dt 60, got %f", meta.Dt)
	}
	if meta.Metrics["energy_drift"] != 0.0012 {
		t.Errorf("expected stored metric, got %v", meta.Metrics)
	}
}

func TestStoreLoadFrames(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save(testMeta(), testResult())
	if err != nil {
		t.Fatal(err)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}

	f := frames[1]
	if f.Time != 300000 {
		t.Errorf("expected t=300000, got %g", f.Time)
	}
	if len(f.Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(f.Bodies))
	}
	if f.Bodies[1].Name != "earth" {
		t.Errorf("expected earth, got %s", f.Bodies[1].Name)
	}
	if math.Abs(f.Bodies[1].X.Y-8.9e9)/8.9e9 > 1e-9 {
		t.Errorf("position did not survive round trip: %g", f.Bodies[1].X.Y)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := st.Save(testMeta(), testResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New("/nonexistent/path/for/sure")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected empty list for missing dir, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	meta := testMeta()
	meta.ID = "run_42"
	meta.Metrics = map[string]float64{"energy_drift": 0.5}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, &meta, testResult().Frames); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if data.ID != "run_42" {
		t.Errorf("expected id run_42, got %s", data.ID)
	}
	if len(data.Frames) != 2 {
		t.Errorf("expected 2 frames, got %d", len(data.Frames))
	}
	if pos := data.Frames[0].Bodies["earth"]; len(pos) != 2 || pos[0] != 1.496e11 {
		t.Errorf("unexpected earth position: %v", pos)
	}
}
