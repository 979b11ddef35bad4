package parquetio

import (
	"errors"
	"io"
	"os"

	parquet "github.com/segmentio/parquet-go"

	p "github.com/wdm0006/purifier/pkg/purifier"
)

// ReadAll reads every trace step from a Parquet file.
func ReadAll(path string) ([]p.Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	r := parquet.NewGenericReader[traceRow](f)
	defer func() { _ = r.Close() }()

	out := make([]p.Step, 0, r.NumRows())
	buf := make([]traceRow, 64)
	for {
		n, err := r.Read(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i].step())
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return out, nil
		}
	}
}
