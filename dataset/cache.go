package dataset

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// Serialize encodes a Snapshot using gob
func Serialize(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeToWriter(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Deserialize decodes a Snapshot and rebuilds its indexes
func Deserialize(data []byte) (*Snapshot, error) {
	return DeserializeFromReader(bytes.NewReader(data))
}

// SerializeToWriter writes a Snapshot to w using gob
func SerializeToWriter(s *Snapshot, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// DeserializeFromReader reads a Snapshot from r and rebuilds its indexes
func DeserializeFromReader(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if err := s.index(); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveFile writes a Snapshot to path
func SaveFile(s *Snapshot, path string) error {
	data, err := Serialize(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFile reads a Snapshot previously written by SaveFile
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	defer f.Close()
	return DeserializeFromReader(f)
}
