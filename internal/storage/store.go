// Package storage persists finished layout runs under a data directory,
// one subdirectory per run holding metadata.json and points.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"bubbleplot/internal/chart"
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
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Timestamp time.Time         `json:"timestamp"`
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Points    int               `json:"points"`
	Select    chart.Selections  `json:"select"`
	Layout    chart.LayoutStats `json:"layout"`
}

var pointHeader = []string{"index", "x", "y", "r", "fill", "label", "size_val", "color_val", "x_val", "y_val"}

// Save persists the chart's settled geometry and returns the run ID.
func (s *Store) Save(title string, c *chart.Chart, stats chart.LayoutStats) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	meta := RunMetadata{
		ID:        runID,
		Title:     title,
		Timestamp: time.Now(),
		Width:     c.Width(),
		Height:    c.Height(),
		Points:    len(c.Points()),
		Select:    c.Selections(),
		Layout:    stats,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", fmt.Errorf("create metadata: %w", err)
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(runDir, "points.csv"))
	if err != nil {
		return "", fmt.Errorf("create points file: %w", err)
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(pointHeader); err != nil {
		return "", err
	}
	for _, p := range c.Points() {
		row := []string{
			strconv.Itoa(p.Index),
			strconv.FormatFloat(p.X, 'f', 4, 64),
			strconv.FormatFloat(p.Y, 'f', 4, 64),
			strconv.FormatFloat(p.R, 'f', 4, 64),
			p.Fill,
			p.Label,
			p.SizeVal,
			p.ColorVal,
			p.XVal,
			p.YVal,
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
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadPoints(runID string) ([]chart.Point, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "points.csv"))
	if err != nil {
		return nil, fmt.Errorf("load points for %s: %w", runID, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read points for %s: %w", runID, err)
	}
	if len(rows) < 2 {
		return []chart.Point{}, nil
	}

	points := make([]chart.Point, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(pointHeader) {
			continue
		}
		idx, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		p := chart.Point{
			Index:    idx,
			Fill:     row[4],
			Label:    row[5],
			SizeVal:  row[6],
			ColorVal: row[7],
			XVal:     row[8],
			YVal:     row[9],
		}
		p.X, _ = strconv.ParseFloat(row[1], 64)
		p.Y, _ = strconv.ParseFloat(row[2], 64)
		p.R, _ = strconv.ParseFloat(row[3], 64)
		points = append(points, p)
	}

	return points, nil
}

// ExportJSON writes a run's metadata and points as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	points, err := s.LoadPoints(runID)
	if err != nil {
		return err
	}

	doc := struct {
		RunMetadata
		PointData []chart.Point `json:"point_data"`
	}{*meta, points}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
