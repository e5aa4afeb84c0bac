package datfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadRaw reads a container file. Errors are *IOError.
func ReadRaw(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// WriteRaw writes data to path through a temporary file in the same
// directory, so path either keeps its old content or gets all of data.
// Errors are *IOError.
func WriteRaw(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, data); err != nil {
		_ = os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func writeAndClose(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", f.Name(), err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", f.Name(), err)
	}
	return nil
}

// ReadFile reads and decodes a container file.
func (c *Codec) ReadFile(path string) (*Document, error) {
	raw, err := ReadRaw(path)
	if err != nil {
		return nil, err
	}
	doc, err := c.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return doc, nil
}

// WriteFile encodes doc and writes it to path.
func (c *Codec) WriteFile(path string, doc *Document) error {
	raw, err := c.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return WriteRaw(path, raw)
}
