// Package record persists selected jokes in an append-only text file,
// one "id|text" line per record.
//
// The store performs no locking. Two dadjoke processes appending to the
// same file at once may interleave their writes.
package record

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/flemzord/dadjoke/internal/joke"
)

// FileStore is the record file at Path. The file and its directory are
// created on first Append.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Append writes rec at the end of the file. Existing content is never
// read or rewritten.
func (s *FileStore) Append(rec joke.Record) error {
	line, err := Encode(rec)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("record: create directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("record: open %s: %w", s.path, err)
	}

	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("record: append to %s: %w", s.path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("record: sync %s: %w", s.path, err)
	}
	return f.Close()
}

// LoadAll reads every record in file order. A missing file is an empty
// store. The first undecodable line aborts the read.
func (s *FileStore) LoadAll() ([]joke.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []joke.Record{}, nil
		}
		return nil, fmt.Errorf("record: read %s: %w", s.path, err)
	}

	lines := strings.Split(string(data), "\n")
	records := make([]joke.Record, 0, len(lines))
	for i, line := range lines {
		if line == "" {
			continue
		}
		rec, err := Decode(line)
		if err != nil {
			var cre *joke.CorruptRecordError
			if errors.As(err, &cre) {
				cre.Line = i + 1
			}
			return nil, fmt.Errorf("record: %s: %w", s.path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
