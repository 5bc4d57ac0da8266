package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"aptos-etl/core"
)

// LocalFileSink appends JSONL records under OutputDir/{family}.jsonl, or
// writes one JSON file per record when JSONPerRecord is set, per the
// "JSON"/"JSONL" output features named in spec §4.9.
type LocalFileSink struct {
	OutputDir     string
	JSONPerRecord bool

	mu    sync.Mutex
	files map[string]*os.File
}

// NewLocalFileSink opens (creating if necessary) the output directory.
func NewLocalFileSink(outputDir string, jsonPerRecord bool) (*LocalFileSink, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("output: mkdir %s: %w", outputDir, err)
	}
	return &LocalFileSink{OutputDir: outputDir, JSONPerRecord: jsonPerRecord, files: map[string]*os.File{}}, nil
}

func (s *LocalFileSink) Publish(family string, record any) error {
	return s.PublishBatch(family, []any{record}, nil)
}

func (s *LocalFileSink) PublishBatch(family string, records []any, timestamps []core.UnixTimestamp) error {
	if len(records) == 0 {
		return nil
	}
	encoded, err := marshalAll(records)
	if err != nil {
		return err
	}

	if s.JSONPerRecord {
		return s.writePerRecordFiles(family, encoded)
	}
	return s.appendJSONL(family, encoded)
}

func (s *LocalFileSink) appendJSONL(family string, encoded [][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.fileFor(family)
	if err != nil {
		return err
	}
	for _, line := range encoded {
		if _, err := f.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("output: write %s: %w", family, err)
		}
	}
	return nil
}

func (s *LocalFileSink) fileFor(family string) (*os.File, error) {
	if f, ok := s.files[family]; ok {
		return f, nil
	}
	path := filepath.Join(s.OutputDir, family+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("output: open %s: %w", path, err)
	}
	s.files[family] = f
	return f, nil
}

func (s *LocalFileSink) writePerRecordFiles(family string, encoded [][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.OutputDir, family)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output: mkdir %s: %w", dir, err)
	}
	existing, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("output: read %s: %w", dir, err)
	}
	for i, record := range encoded {
		path := filepath.Join(dir, fmt.Sprintf("%s_%d.json", family, len(existing)+i))
		if err := os.WriteFile(path, record, 0o644); err != nil {
			return fmt.Errorf("output: write %s: %w", path, err)
		}
	}
	return nil
}

func (s *LocalFileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for _, f := range s.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
