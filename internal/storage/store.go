package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/mverlet/spinlab/internal/sim"
)

// Store persists finished runs under a base directory, one
// subdirectory per run holding metadata.json, samples.csv and the
// final lattice.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return errors.Wrap(os.MkdirAll(s.baseDir, 0755), "init store")
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Dynamics    string             `json:"dynamics"`
	Rows        int                `json:"rows"`
	Cols        int                `json:"cols"`
	Temperature float64            `json:"temperature"`
	EnergyJ     float64            `json:"energy_j"`
	KB          float64            `json:"k_b"`
	Seed        int64              `json:"seed"`
	Sweeps      int                `json:"sweeps"`
	Timestamp   time.Time          `json:"timestamp"`
	Metrics     map[string]float64 `json:"metrics"`
}

func (s *Store) Save(meta RunMetadata, result *sim.Result, finalGrid [][]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Dynamics, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.Wrap(err, "create run dir")
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Sweeps = result.SweepsRun
	meta.Metrics = result.Metrics

	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}
	if err := s.writeSamples(runDir, result.Samples); err != nil {
		return "", err
	}
	if err := s.writeLattice(runDir, finalGrid); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeMetadata(runDir string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return errors.Wrap(err, "create metadata")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(meta), "encode metadata")
}

func (s *Store) writeSamples(runDir string, samples []sim.Sample) error {
	f, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return errors.Wrap(err, "create samples")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"sweep", "energy", "magnetism"}); err != nil {
		return err
	}
	for _, sample := range samples {
		row := []string{
			strconv.Itoa(sample.Sweep),
			strconv.FormatFloat(sample.Energy, 'f', 6, 64),
			strconv.FormatFloat(sample.Magnetism, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeLattice(runDir string, grid [][]float64) error {
	if grid == nil {
		return nil
	}

	f, err := os.Create(filepath.Join(runDir, "lattice.csv"))
	if err != nil {
		return errors.Wrap(err, "create lattice")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	for _, gridRow := range grid {
		row := make([]string, len(gridRow))
		for j, v := range gridRow {
			row[j] = strconv.FormatFloat(v, 'f', 0, 64)
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
		return nil, errors.Wrap(err, "list runs")
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

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, errors.Wrapf(err, "load run %s", runID)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "decode run %s", runID)
	}

	return &meta, nil
}

// LoadSamples reads back the observable series of a run.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, errors.Wrapf(err, "open samples for %s", runID)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read samples for %s", runID)
	}

	samples := make([]sim.Sample, 0, len(records))
	for i, record := range records {
		if i == 0 || len(record) < 3 {
			continue // header
		}
		sweep, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		energy, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		magnetism, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		samples = append(samples, sim.Sample{Sweep: sweep, Energy: energy, Magnetism: magnetism})
	}

	return samples, nil
}

// LoadLattice reads back the final spin grid of a run.
func (s *Store) LoadLattice(runID string) ([][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "lattice.csv"))
	if err != nil {
		return nil, errors.Wrapf(err, "open lattice for %s", runID)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read lattice for %s", runID)
	}

	grid := make([][]float64, 0, len(records))
	for _, record := range records {
		row := make([]float64, 0, len(record))
		for _, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parse lattice for %s", runID)
			}
			row = append(row, v)
		}
		grid = append(grid, row)
	}

	return grid, nil
}
