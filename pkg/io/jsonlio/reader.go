package jsonlio

import (
	"encoding/json"
	"fmt"
	"io"

	iox "github.com/wdm0006/purifier/pkg/io/ioutils"
	p "github.com/wdm0006/purifier/pkg/purifier"
)

// ReadAll reads a JSON lines trace written by WriteAll.
func ReadAll(path string) ([]p.Step, error) {
	in, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()
	dec := json.NewDecoder(in)
	var out []p.Step
	for {
		var r row
		if err := dec.Decode(&r); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, fmt.Errorf("record %d: %w", len(out)+1, err)
		}
		out = append(out, r.step())
	}
}
