package offer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// ErrEmptyDocument is returned when the input holds no JSON value.
var ErrEmptyDocument = errors.New("offer: document is empty")

// Decode reads one JSON document from r.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("offer: read document: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal parses a JSON document.
func Unmarshal(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("offer: unmarshal document: %w", err)
	}
	return &doc, nil
}

// LoadFile reads the JSON document stored at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("offer: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
