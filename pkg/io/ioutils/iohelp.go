package ioutils

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Stdio is the path that selects stdin or stdout instead of a file.
const Stdio = "-"

// BaseExt returns the extension of path with any trailing ".gz" removed,
// lower-cased: "chain.yaml.gz" -> ".yaml".
func BaseExt(path string) string {
	p := path
	if IsGzipPath(p) {
		p = p[:len(p)-len(".gz")]
	}
	return strings.ToLower(filepath.Ext(p))
}

// IsGzipPath reports whether path names a gzip file.
func IsGzipPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}

// OpenMaybeCompressed opens a file path or stdin ("-") for reading.
// Gzip input is detected by extension or magic bytes and decompressed.
func OpenMaybeCompressed(path string) (io.ReadCloser, error) {
	if path == Stdio || path == "" {
		return sniff(bufio.NewReader(os.Stdin), func() error { return nil })
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if IsGzipPath(path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		return readCloser{Reader: zr, closeFn: func() error { _ = zr.Close(); return f.Close() }}, nil
	}
	rc, err := sniff(bufio.NewReader(f), f.Close)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return rc, nil
}

func sniff(br *bufio.Reader, closeFn func() error) (io.ReadCloser, error) {
	b, err := br.Peek(2)
	if err == nil && b[0] == 0x1f && b[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return readCloser{Reader: zr, closeFn: func() error { _ = zr.Close(); return closeFn() }}, nil
	}
	return readCloser{Reader: br, closeFn: closeFn}, nil
}

// CreateMaybeCompressed creates a file (or stdout for "-") for writing.
// A ".gz" path is gzip compressed. Close flushes before closing the file.
func CreateMaybeCompressed(path string) (io.WriteCloser, error) {
	if path == Stdio || path == "" {
		bw := bufio.NewWriter(os.Stdout)
		return writeCloser{Writer: bw, closeFn: bw.Flush}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if IsGzipPath(path) {
		zw := gzip.NewWriter(f)
		return writeCloser{Writer: zw, closeFn: func() error {
			if err := zw.Close(); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		}}, nil
	}
	bw := bufio.NewWriter(f)
	return writeCloser{Writer: bw, closeFn: func() error {
		if err := bw.Flush(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}}, nil
}

type readCloser struct {
	io.Reader
	closeFn func() error
}

func (r readCloser) Close() error { return r.closeFn() }

type writeCloser struct {
	io.Writer
	closeFn func() error
}

func (w writeCloser) Close() error { return w.closeFn() }
