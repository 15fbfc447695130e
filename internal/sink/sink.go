// Package sink provides the tabular sinks the generator streams records
// into: per-table CSV or JSONL files, a SQLite database, an MQTT broker, and
// a fan-out combining them. All sinks support streaming append so memory
// stays bounded for multi-million-record tables.
package sink

import "plantgen/internal/model"

// Sink persists a stream of field-named records grouped by table. Write is
// called once per record in generation order; Close flushes and releases
// resources.
type Sink interface {
	Write(rec model.Tabular) error
	Close() error
}

// Multi fans every record out to all member sinks; the first error wins.
type Multi []Sink

func (m Multi) Write(rec model.Tabular) error {
	for _, s := range m {
		if err := s.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
