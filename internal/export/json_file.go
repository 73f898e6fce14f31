// Package export writes extracted bills to files outside the database: the
// running JSON summary log and XLSX workbooks.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"billscan/internal/domain"
)

// JSONFile appends bill summaries to a JSON array stored at a single path.
// Appends are serialized within the process.
type JSONFile struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewJSONFile creates a JSONFile writing to path.
func NewJSONFile(path string, logger *zap.Logger) *JSONFile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONFile{path: path, logger: logger}
}

// Append reads the current array, appends s and rewrites the file with
// indentation. A missing file starts a new array.
func (j *JSONFile) Append(s domain.BillSummary) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.load()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	entries = append(entries, raw)

	out, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling summaries: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(j.path), ".summaries-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing summaries: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), j.path); err != nil {
		return fmt.Errorf("replacing %s: %w", j.path, err)
	}

	j.logger.Info("jsonFile.Append: summary saved", zap.String("path", j.path), zap.Int("entries", len(entries)))
	return nil
}

// Save appends s and logs any failure instead of returning it.
func (j *JSONFile) Save(s domain.BillSummary) {
	if err := j.Append(s); err != nil {
		j.logger.Error("jsonFile.Save: error saving to JSON", zap.String("path", j.path), zap.Error(err))
	}
}

// Entries returns every stored summary as a generic map.
func (j *JSONFile) Entries() ([]map[string]string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	raw, err := j.load()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]string, 0, len(raw))
	for i, r := range raw {
		var m map[string]string
		if err := json.Unmarshal(r, &m); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (j *JSONFile) load() ([]json.RawMessage, error) {
	data, err := os.ReadFile(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", j.path, err)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", j.path, err)
	}
	return entries, nil
}
