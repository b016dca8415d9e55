package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/sim"
)

type ExportData struct {
	ID            string             `json:"id"`
	Source        string             `json:"source"`
	Epoch         string             `json:"epoch"`
	Dt            float64            `json:"dt"`
	DurationDays  float64            `json:"duration_days"`
	StepsPerFrame int                `json:"steps_per_frame"`
	Frames        []exportFrame      `json:"frames"`
	Metrics       map[string]float64 `json:"metrics"`
}

type exportFrame struct {
	Time   float64              `json:"time"`
	Bodies map[string][]float64 `json:"bodies"`
}

// ExportJSON writes a run's metadata and trajectory as one JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		ID:            meta.ID,
		Source:        meta.Source,
		Epoch:         meta.Epoch,
		Dt:            meta.Dt,
		DurationDays:  meta.DurationDays,
		StepsPerFrame: meta.StepsPerFrame,
		Frames:        make([]exportFrame, 0, len(frames)),
		Metrics:       meta.Metrics,
	}

	for _, f := range frames {
		ef := exportFrame{Time: f.Time, Bodies: make(map[string][]float64, len(f.Bodies))}
		for _, b := range f.Bodies {
			ef.Bodies[b.Name] = []float64{b.X.X, b.X.Y}
		}
		data.Frames = append(data.Frames, ef)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONStdout is ExportJSON aimed at standard output.
func ExportJSONStdout(meta *RunMetadata, frames []sim.Frame) error {
	return ExportJSON(os.Stdout, meta, frames)
}
