// Package storage persists simulation runs as one directory per run:
// metadata.json describes the run, trajectory.csv holds per-frame body
// positions.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/orbit"
	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/sim"
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
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Source        string             `json:"source"`
	Epoch         string             `json:"epoch"`
	Bodies        []string           `json:"bodies"`
	Dt            float64            `json:"dt"`
	DurationDays  float64            `json:"duration_days"`
	StepsPerFrame int                `json:"steps_per_frame"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Save writes metadata and the frame trajectory, returning the run id.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Frames) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for _, b := range result.Frames[0].Bodies {
		header = append(header, b.Name+"_x", b.Name+"_y")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, f := range result.Frames {
		row := []string{strconv.FormatFloat(f.Time, 'f', 3, 64)}
		for _, b := range f.Bodies {
			row = append(row,
				strconv.FormatFloat(b.X.X, 'e', 9, 64),
				strconv.FormatFloat(b.X.Y, 'e', 9, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads back the trajectory. Only names and positions survive
// the CSV round trip; radii and colors are render-time data.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	header := records[0]
	names := make([]string, 0, (len(header)-1)/2)
	for i := 1; i < len(header); i += 2 {
		name := header[i]
		names = append(names, name[:len(name)-2]) // strip "_x"
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		f := sim.Frame{Time: t, Bodies: make([]orbit.BodyState, 0, len(names))}
		for i, name := range names {
			x, errX := strconv.ParseFloat(record[1+i*2], 64)
			y, errY := strconv.ParseFloat(record[2+i*2], 64)
			if errX != nil || errY != nil {
				continue
			}
			f.Bodies = append(f.Bodies, orbit.BodyState{Name: name, X: orbit.Vec{X: x, Y: y}})
		}
		frames = append(frames, f)
	}

	return frames, nil
}
