package config

import (
	"errors"
	"fmt"
	"io"

	iox "github.com/wdm0006/purifier/pkg/io/ioutils"
	p "github.com/wdm0006/purifier/pkg/purifier"
)

// FileError reports a failed save or load. It unwraps to the cause, so
// errors.Is(err, purifier.ErrUnknownStageKind) and os.ErrNotExist still work.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err) }
func (e *FileError) Unwrap() error { return e.Err }

// IsFileError reports whether err came from Save or Load.
func IsFileError(err error) bool {
	var fe *FileError
	return errors.As(err, &fe)
}

// Save writes the chain to path in the format chosen by its extension.
func Save(path string, c *p.Chain) error {
	b, err := Marshal(FormatFor(path), Encode(c))
	if err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	w, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	if _, err := w.Write(b); err != nil {
		_ = w.Close()
		return &FileError{Op: "save", Path: path, Err: err}
	}
	if err := w.Close(); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// Load reads path into a fresh chain. On any failure no chain is returned.
func Load(path string) (*p.Chain, error) {
	r, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, &FileError{Op: "load", Path: path, Err: err}
	}
	defer func() { _ = r.Close() }()
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &FileError{Op: "load", Path: path, Err: err}
	}
	records, err := Unmarshal(FormatFor(path), b)
	if err != nil {
		return nil, &FileError{Op: "load", Path: path, Err: err}
	}
	c, err := Decode(records)
	if err != nil {
		return nil, &FileError{Op: "load", Path: path, Err: err}
	}
	return c, nil
}
