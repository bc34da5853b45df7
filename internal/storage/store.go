package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"orbitsearch/internal/optim"
	"orbitsearch/internal/spectral"
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
	ID         string    `json:"id"`
	System     string    `json:"system"`
	Method     string    `json:"method"`
	Timestamp  time.Time `json:"timestamp"`
	Modes      int       `json:"modes"`
	Freq       float64   `json:"freq"`
	Residual   float64   `json:"residual"`
	Iterations int       `json:"iterations"`
	Status     string    `json:"status"`
}

// Save writes one search run under a fresh run directory: metadata.json,
// orbit.csv with the converged orbit sampled in the time domain, and
// trace.csv with the per-iteration descent history when a trace was kept.
func (s *Store) Save(system, method string, result optim.Result, trace *optim.Trace) (string, error) {
	runID := fmt.Sprintf("%s_%d", system, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		System:     system,
		Method:     method,
		Timestamp:  time.Now(),
		Modes:      result.Trajectory.ModeCount(),
		Freq:       result.Freq,
		Residual:   result.Residual,
		Iterations: result.Iterations,
		Status:     result.Status.String(),
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeOrbit(runDir, result.Trajectory); err != nil {
		return "", err
	}
	if trace != nil && trace.Len() > 0 {
		if err := s.writeTrace(runDir, trace); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) writeOrbit(runDir string, traj spectral.Trajectory) error {
	csvFile, err := os.Create(filepath.Join(runDir, "orbit.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	curve := spectral.ToTimeDomain(traj)
	header := []string{"theta"}
	for i := range curve {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	n := traj.Samples()
	for j := 0; j < n; j++ {
		theta := 2 * math.Pi * float64(j) / float64(n)
		row := []string{strconv.FormatFloat(theta, 'f', 6, 64)}
		for i := range curve {
			row = append(row, strconv.FormatFloat(curve[i][j], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeTrace(runDir string, trace *optim.Trace) error {
	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"iteration", "residual", "grad_norm", "freq"}); err != nil {
		return err
	}
	for i := 0; i < trace.Len(); i++ {
		snap := trace.At(i)
		row := []string{
			strconv.Itoa(snap.Iteration),
			strconv.FormatFloat(snap.GlobalResidual, 'e', 8, 64),
			strconv.FormatFloat(snap.GradientNorm(), 'e', 8, 64),
			strconv.FormatFloat(snap.Freq, 'f', 8, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadOrbit reads the orbit samples back: one slice per state dimension plus
// the phase grid.
func (s *Store) LoadOrbit(runID string) ([][]float64, []float64, error) {
	records, err := s.readCSV(runID, "orbit.csv")
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	dim := len(records[0]) - 1
	thetas := make([]float64, 0, len(records)-1)
	curve := make([][]float64, dim)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != dim+1 {
			continue
		}
		theta, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		thetas = append(thetas, theta)
		for j := 0; j < dim; j++ {
			val, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				val = math.NaN()
			}
			curve[j] = append(curve[j], val)
		}
	}

	return curve, thetas, nil
}

// LoadTrace reads the residual history of a saved run.
func (s *Store) LoadTrace(runID string) ([]float64, error) {
	records, err := s.readCSV(runID, "trace.csv")
	if err != nil {
		return nil, err
	}

	residuals := make([]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			continue
		}
		residuals = append(residuals, v)
	}
	return residuals, nil
}

func (s *Store) readCSV(runID, name string) ([][]string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
