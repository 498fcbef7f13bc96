package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"trylint/internal/diag"
)

// ReadFile loads, decodes and validates an artifact from disk.
func ReadFile(path string) (*Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a payload from r and validates it.
func Read(r io.Reader) (*Decoded, error) {
	var p Payload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return nil, errf(diag.ArtCorruptPayload, "decode artifact: %v", err)
	}
	return Decode(&p)
}

// WriteFile serialises the payload atomically: write to a temp file in the
// target directory, then rename over the destination.
func WriteFile(path string, p *Payload) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := msgpack.NewEncoder(f).Encode(p); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Write serialises the payload to w.
func Write(w io.Writer, p *Payload) error {
	return msgpack.NewEncoder(w).Encode(p)
}

// IsValidationError reports whether err is a coded artifact failure, and
// returns it when so.
func IsValidationError(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
