package sink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"plantgen/internal/model"
)

// JSONLDir writes each table to <dir>/<table>.jsonl, one JSON object per
// line, buffered and flushed on Close.
type JSONLDir struct {
	dir     string
	files   map[string]*os.File
	writers map[string]*bufio.Writer
}

// NewJSONLDir ensures the output directory exists.
func NewJSONLDir(dir string) (*JSONLDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONLDir{
		dir:     dir,
		files:   make(map[string]*os.File),
		writers: make(map[string]*bufio.Writer),
	}, nil
}

func (s *JSONLDir) Write(rec model.Tabular) error {
	table := rec.TableName()
	w, ok := s.writers[table]
	if !ok {
		path := filepath.Join(s.dir, table+".jsonl")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		w = bufio.NewWriterSize(f, 64*1024)
		s.files[table] = f
		s.writers[table] = w
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", table, err)
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return nil
}

func (s *JSONLDir) Close() error {
	var first error
	for table, w := range s.writers {
		if err := w.Flush(); err != nil && first == nil {
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
