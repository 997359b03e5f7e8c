package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skonate/griot/internal/model"
)

// LoadRaw reads a raw corpus file: a JSON array of untrusted records.
func LoadRaw(path string) ([]model.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read raw corpus: %w", err)
	}

	var records []model.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode raw corpus: %w", err)
	}

	return records, nil
}

// WriteRaw writes raw records as a JSON array.
func WriteRaw(path string, records []model.RawRecord) error {
	return writeJSON(path, records)
}

// LoadProcessed reads a processed corpus file.
func LoadProcessed(path string) (*model.ProcessedCorpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read processed corpus: %w", err)
	}

	var pc model.ProcessedCorpus
	if err := json.Unmarshal(data, &pc); err != nil {
		return nil, fmt.Errorf("decode processed corpus: %w", err)
	}

	return &pc, nil
}

// WriteProcessed writes the processed corpus file consumed by indexing.
func WriteProcessed(path string, pc *model.ProcessedCorpus) error {
	return writeJSON(path, pc)
}

func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
