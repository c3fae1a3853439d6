package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Points []ExportPoint `json:"points"`
}

// ExportPoint carries decimals as strings so no digits are lost to float64.
type ExportPoint struct {
	X         string `json:"x"`
	Y         string `json:"y"`
	Exact     string `json:"exact"`
	Deviation string `json:"deviation"`
}

// ExportJSON writes a stored run and its grid to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	rows, err := s.LoadRows(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:    *meta,
		Points: make([]ExportPoint, len(rows)),
	}
	for i, row := range rows {
		data.Points[i] = ExportPoint{
			X:         row.X.String(),
			Y:         row.Y.String(),
			Exact:     row.Exact.String(),
			Deviation: row.Deviation.String(),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
