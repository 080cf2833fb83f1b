package xmlgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Sink receives generated documents. data is only valid during the call.
type Sink interface {
	Emit(ctx context.Context, key string, data []byte) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, key string, data []byte) error

func (f SinkFunc) Emit(ctx context.Context, key string, data []byte) error {
	return f(ctx, key, data)
}

// DirSink writes each entry to Dir/key. Files are written to a temporary
// name first and renamed, so a failed entry never leaves a partial file.
type DirSink struct {
	Dir  string
	Perm os.FileMode
}

func (s DirSink) Emit(_ context.Context, key string, data []byte) error {
	if key == "" || key != filepath.Base(key) {
		return fmt.Errorf("xmlgen: invalid entry name %q", key)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("xmlgen: create output dir: %w", err)
	}
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}

	tmp, err := os.CreateTemp(s.Dir, "."+key+".*")
	if err != nil {
		return fmt.Errorf("xmlgen: create temp file: %w", err)
	}
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("xmlgen: write %s: %w", key, err))
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(fmt.Errorf("xmlgen: chmod %s: %w", key, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("xmlgen: close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.Dir, key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("xmlgen: rename %s: %w", key, err)
	}
	return nil
}

// ErrDuplicateKey is returned by MemorySink when a key is emitted twice.
var ErrDuplicateKey = errors.New("xmlgen: duplicate entry")

// MemorySink keeps entries in memory, in emission order.
type MemorySink struct {
	mu      sync.Mutex
	keys    []string
	entries map[string][]byte
}

func (s *MemorySink) Emit(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		s.entries = make(map[string][]byte)
	}
	if _, exists := s.entries[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}
	s.entries[key] = append([]byte(nil), data...)
	s.keys = append(s.keys, key)
	return nil
}

// Keys returns the emitted keys in order.
func (s *MemorySink) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...)
}

// Get returns the bytes emitted under key.
func (s *MemorySink) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[key]
	return data, ok
}
