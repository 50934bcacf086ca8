package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/brotli"

	"github.com/thelolagemann/sm83/internal/types"
)

// SaveStateFile compresses the given state with brotli and writes it to
// filename.
func SaveStateFile(filename string, s *types.State) error {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(s.Bytes()); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return os.WriteFile(filename, buf.Bytes(), 0o644)
}

// LoadStateFile reads a state written by SaveStateFile.
func LoadStateFile(filename string) (*types.State, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return types.StateFromBytes(raw), nil
}
