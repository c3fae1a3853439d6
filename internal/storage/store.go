package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"github.com/san-kum/decsim/internal/dynamo"
	"github.com/san-kum/decsim/internal/experiment"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"x", "y", "exact", "deviation"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a stored run. Decimal fields are kept as their
// full-precision strings.
type RunMetadata struct {
	ID             string    `json:"id"`
	Problem        string    `json:"problem"`
	Method         string    `json:"method"`
	Timestamp      time.Time `json:"timestamp"`
	X0             string    `json:"x0"`
	Y0             string    `json:"y0"`
	H              string    `json:"h"`
	Steps          int       `json:"steps"`
	Precision      uint32    `json:"precision"`
	Rounding       string    `json:"rounding"`
	Evaluations    int       `json:"derivative_evals"`
	MaxDeviation   string    `json:"max_deviation"`
	MaxDeviationAt string    `json:"max_deviation_at"`
	FinalDeviation string    `json:"final_deviation"`
}

// Row is one stored grid point.
type Row struct {
	X         *apd.Decimal
	Y         *apd.Decimal
	Exact     *apd.Decimal
	Deviation *apd.Decimal
}

func (s *Store) Save(run dynamo.Config, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s_%s", result.Problem, result.Method, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Problem:     result.Problem,
		Method:      result.Method,
		Timestamp:   time.Now(),
		X0:          run.X0.String(),
		Y0:          run.Y0.String(),
		H:           run.H.String(),
		Steps:       run.Steps,
		Precision:   run.Math.Precision,
		Rounding:    fmt.Sprint(run.Math.Rounding),
		Evaluations: result.Evaluations,
	}
	if sum := result.Summary; sum.MaxAbs != nil {
		meta.MaxDeviation = sum.MaxAbs.String()
		meta.MaxDeviationAt = sum.MaxAt.String()
		meta.FinalDeviation = sum.Final.String()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), result); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrajectory(path string, result *experiment.Result) error {
	if len(result.Approx) != len(result.Exact) || len(result.Approx) != len(result.Deviations) {
		return dynamo.ErrLengthMismatch
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(trajectoryHeader); err != nil {
		return err
	}
	for i := range result.Approx {
		row := []string{
			result.Approx.XAt(i).String(),
			result.Approx.YAt(i).String(),
			result.Exact.YAt(i).String(),
			result.Deviations[i].Err.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns stored runs, oldest first. Unreadable entries are skipped.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadRows reads a run's grid back at full precision.
func (s *Store) LoadRows(runID string) ([]Row, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(trajectoryHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Row{}, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [4]*apd.Decimal
		for j, field := range record {
			d, _, err := apd.NewFromString(field)
			if err != nil {
				return nil, fmt.Errorf("row %d, %s: %w", i, trajectoryHeader[j], err)
			}
			vals[j] = d
		}
		rows = append(rows, Row{X: vals[0], Y: vals[1], Exact: vals[2], Deviation: vals[3]})
	}

	return rows, nil
}
