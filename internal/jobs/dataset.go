package jobs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Descriptions can run long; lines are capped well above anything the fetch
// pipeline produces.
const maxLineBytes = 10 * 1024 * 1024

// LoadDataset reads a JSON-lines dataset file into memory, preserving row
// order. The file is read fresh on every call; the caller gets an
// independent read-only snapshot.
func LoadDataset(path string) ([]JobRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	var records []JobRecord

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec JobRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode dataset line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	return records, nil
}

// SaveDataset writes records as JSON lines, one record per line, creating
// parent directories if needed.
func SaveDataset(path string, records []JobRecord) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create dataset directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return fmt.Errorf("failed to encode record %d: %w", i, err)
		}
	}

	return w.Flush()
}

// FindByID returns the first record with the given Job Id.
func FindByID(records []JobRecord, id string) (*JobRecord, bool) {
	for i := range records {
		if records[i].JobID.String() == id {
			return &records[i], true
		}
	}
	return nil, false
}
