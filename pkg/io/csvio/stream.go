package csvio

import (
	"encoding/csv"
	"io"

	iox "github.com/wdm0006/purifier/pkg/io/ioutils"
	p "github.com/wdm0006/purifier/pkg/purifier"
)

// StreamWriter writes trace steps to CSV one row at a time. The header is
// written before the first row.
type StreamWriter struct {
	w           *csv.Writer
	out         io.WriteCloser
	wroteHeader bool
}

// NewStreamWriter creates path (gzip when it ends in .gz) for trace rows.
func NewStreamWriter(path string, opt WriterOptions) (*StreamWriter, error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return &StreamWriter{w: newWriter(out, opt), out: out}, nil
}

func (s *StreamWriter) Write(step p.Step) error {
	if !s.wroteHeader {
		if err := s.w.Write(Header); err != nil {
			return err
		}
		s.wroteHeader = true
	}
	if err := s.w.Write(formatRow(step)); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *StreamWriter) Close() error {
	if !s.wroteHeader {
		_ = s.w.Write(Header)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = s.out.Close()
		return err
	}
	return s.out.Close()
}
