// Package store persists run results under a data directory, one
// subdirectory per run holding metadata.json and series.csv.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
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

// Series is one named observable trace, aligned with the run's times.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
	TFinal    float64   `json:"t_final"`
	Points    int       `json:"points"`
	Method    string    `json:"method"`
	RTol      float64   `json:"rtol"`
	ATol      float64   `json:"atol"`
	Columns   []string  `json:"columns"`
}

// Save writes a run and returns its generated ID. Every series must
// have the same length as times.
func (s *Store) Save(meta RunMetadata, times []float64, series []Series) (string, error) {
	for _, col := range series {
		if len(col.Values) != len(times) {
			return "", fmt.Errorf("store: series %q has %d values for %d times", col.Name, len(col.Values), len(times))
		}
	}

	runID := fmt.Sprintf("%s_%d", meta.Model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Columns = make([]string, len(series))
	for i, col := range series {
		meta.Columns[i] = col.Name
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := append([]string{"time"}, meta.Columns...)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for i := range times {
		row := []string{strconv.FormatFloat(times[i], 'g', 12, 64)}
		for _, col := range series {
			row = append(row, strconv.FormatFloat(col.Values[i], 'g', 12, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return runID, w.Error()
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

// LoadSeries reads back the time grid and observable columns of a run.
func (s *Store) LoadSeries(runID string) ([]float64, []Series, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("store: run %s has an empty series file", runID)
	}

	header := rows[0]
	series := make([]Series, len(header)-1)
	for i := range series {
		series[i].Name = header[i+1]
	}
	times := make([]float64, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, nil, fmt.Errorf("store: run %s has a ragged series row", runID)
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, nil, err
		}
		times = append(times, t)
		for i := range series {
			v, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return nil, nil, err
			}
			series[i].Values = append(series[i].Values, v)
		}
	}
	return times, series, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}
