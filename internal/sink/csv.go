package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"plantgen/internal/model"
)

// CSVDir writes each table to <dir>/<table>.csv. Files are opened lazily on
// the first record of a table, the header is written once, and everything is
// flushed on Close.
type CSVDir struct {
	dir     string
	files   map[string]*os.File
	writers map[string]*csv.Writer
}

// NewCSVDir ensures the output directory exists.
func NewCSVDir(dir string) (*CSVDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &CSVDir{
		dir:     dir,
		files:   make(map[string]*os.File),
		writers: make(map[string]*csv.Writer),
	}, nil
}

func (s *CSVDir) Write(rec model.Tabular) error {
	table := rec.TableName()
	w, ok := s.writers[table]
	if !ok {
		path := filepath.Join(s.dir, table+".csv")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		w = csv.NewWriter(f)
		if err := w.Write(rec.Header()); err != nil {
			f.Close()
			return fmt.Errorf("write %s header: %w", table, err)
		}
		s.files[table] = f
		s.writers[table] = w
	}
	if err := w.Write(rec.Row()); err != nil {
		return fmt.Errorf("write %s record: %w", table, err)
	}
	return nil
}

func (s *CSVDir) Close() error {
	var first error
	for table, w := range s.writers {
		w.Flush()
		if err := w.Error(); err != nil && first == nil {
			first = fmt.Errorf("flush %s: %w", table, err)
		}
	}
	for table, f := range s.files {
		if err := f.Close(); err != nil && first == nil {
			first = fmt.Errorf("close %s: %w", table, err)
		}
	}
	return first
}
