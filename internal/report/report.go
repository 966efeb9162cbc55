// Package report renders a finished scan into the CSV, JSON and text
// artifacts that get archived and mailed out.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"TrinityScanner/internal/model"
)

// Writer persists report artifacts under a directory.
type Writer struct {
	Dir string
	log zerolog.Logger
}

func NewWriter(dir string, log zerolog.Logger) *Writer {
	return &Writer{Dir: dir, log: log.With().Str("component", "report").Logger()}
}

// SaveAll writes the full CSV, the top-picks CSV and a JSON artifact for
// the run. Re-running the same day overwrites the same files, so a
// repeated scan leaves identical output. Returns the written paths.
func (w *Writer) SaveAll(run model.ScanRun, cands []model.Candidate) ([]string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	date := run.AsOf.Format("2006-01-02")

	full := filepath.Join(w.Dir, fmt.Sprintf("trinity_trading_report_%s.csv", date))
	if err := w.writeCSVFile(full, cands); err != nil {
		return nil, err
	}

	picks := filepath.Join(w.Dir, fmt.Sprintf("trinity_top_picks_%s.csv", date))
	if err := w.writeCSVFile(picks, TopPicks(cands)); err != nil {
		return nil, err
	}

	artifact := filepath.Join(w.Dir, fmt.Sprintf("trinity_report_%s.json", date))
	if err := w.writeJSONFile(artifact, run, cands); err != nil {
		return nil, err
	}

	w.log.Info().Str("dir", w.Dir).Int("candidates", len(cands)).Msg("report artifacts saved")
	return []string{full, picks, artifact}, nil
}

func (w *Writer) writeCSVFile(path string, cands []model.Candidate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteCSV(f, cands); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (w *Writer) writeJSONFile(path string, run model.ScanRun, cands []model.Candidate) error {
	payload := struct {
		Run        model.ScanRun     `json:"run"`
		Candidates []model.Candidate `json:"candidates"`
	}{Run: run, Candidates: cands}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// TopPicks returns the STRONG BUY and BUY rows, preserving order.
func TopPicks(cands []model.Candidate) []model.Candidate {
	var top []model.Candidate
	for _, c := range cands {
		if c.Rating == model.RatingStrongBuy || c.Rating == model.RatingBuy {
			top = append(top, c)
		}
	}
	return top
}
