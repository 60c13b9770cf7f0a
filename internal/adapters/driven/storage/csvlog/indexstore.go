// Package csvlog persists the retrieval index as an append-only CSV
// file. The format is deliberately textual: one row per record with
// the embedding serialized as a JSON array, so the log round-trips
// through any text tool and parses back into vectors on read.
package csvlog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// DefaultFileName is the index log file name.
const DefaultFileName = "index.csv"

// columns per row: title, local path, embedding as JSON text.
const recordColumns = 3

// IndexStore is a file-backed, append-only implementation of
// driven.IndexStore. Rows are never rewritten; Append opens the file
// in append mode and adds exactly one row.
type IndexStore struct {
	mu       sync.Mutex
	filePath string
}

// NewIndexStore creates an index store writing to dir/index.csv.
// The directory is created if needed; the file is created lazily on
// first append.
func NewIndexStore(dir string) (*IndexStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	return &IndexStore{
		filePath: filepath.Join(dir, DefaultFileName),
	}, nil
}

// Append writes one record to the end of the log.
func (s *IndexStore) Append(_ context.Context, record domain.DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	embedding, err := json.Marshal(record.Embedding)
	if err != nil {
		return fmt.Errorf("encode embedding: %w", err)
	}

	file, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open index log: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{record.Title, record.LocalPath, string(embedding)}); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush record: %w", err)
	}
	return nil
}

// List returns all records in insertion order. A missing file is an
// empty index, not an error.
func (s *IndexStore) List(_ context.Context) ([]domain.DocumentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open index log: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = recordColumns

	var records []domain.DocumentRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read index log: %w", err)
		}

		var embedding []float32
		if err := json.Unmarshal([]byte(row[2]), &embedding); err != nil {
			return nil, fmt.Errorf("parse embedding for %q: %w", row[0], err)
		}
		records = append(records, domain.DocumentRecord{
			Title:     row[0],
			LocalPath: row[1],
			Embedding: embedding,
		})
	}
	return records, nil
}

// Len returns the number of records.
func (s *IndexStore) Len(ctx context.Context) (int, error) {
	records, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Path returns the index log file path.
func (s *IndexStore) Path() string {
	return s.filePath
}
