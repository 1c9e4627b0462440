package storage

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/predprey/internal/predprey"
)

// ExportData is the JSON document of one run. Floats that overflowed are
// encoded as strings, see Float.
type ExportData struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Integrator string             `json:"integrator"`
	Timestamp  time.Time          `json:"timestamp"`
	Params     predprey.Params    `json:"params"`
	Samples    int                `json:"samples"`
	Metrics    map[string]Float   `json:"metrics"`
	Outcomes   map[string][]Float `json:"outcomes"`
}

// ExportJSON writes meta and the named outcomes of traj; no names exports
// all of them.
func ExportJSON(w io.Writer, meta RunMetadata, traj predprey.Trajectory, outcomes []string) error {
	selected, err := traj.Outcomes().Select(outcomes)
	if err != nil {
		return err
	}

	data := ExportData{
		ID:         meta.ID,
		Model:      meta.Model,
		Integrator: meta.Integrator,
		Timestamp:  meta.Timestamp,
		Params:     meta.Params,
		Samples:    meta.Samples,
		Metrics:    toFloatMap(meta.Metrics),
		Outcomes:   make(map[string][]Float, len(selected)),
	}
	for name, series := range selected {
		data.Outcomes[name] = toFloats(series)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
