package parquetio

import (
	"encoding/json"
	"fmt"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	p "github.com/wdm0006/purifier/pkg/purifier"
)

// traceSchema is the parquet-go JSON schema of a trace file. Column names
// match the parquet tags on traceRow.
const traceSchema = `{
  "Tag": "name=trace, repetitiontype=REQUIRED",
  "Fields": [
    {"Tag": "name=step, type=INT64, repetitiontype=REQUIRED"},
    {"Tag": "name=label, type=UTF8, repetitiontype=REQUIRED"},
    {"Tag": "name=stage, type=UTF8, repetitiontype=REQUIRED"},
    {"Tag": "name=efficiency, type=INT64, repetitiontype=REQUIRED"},
    {"Tag": "name=sediment, type=DOUBLE, repetitiontype=REQUIRED"},
    {"Tag": "name=chemicals, type=DOUBLE, repetitiontype=REQUIRED"},
    {"Tag": "name=microbes, type=DOUBLE, repetitiontype=REQUIRED"}
  ]
}`

// WriteAll writes a whole trace to a Parquet file using the parquet-go JSONWriter.
func WriteAll(path string, steps []p.Step) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(traceSchema, fw, 1)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	for _, s := range steps {
		b, err := json.Marshal(map[string]any{
			"step":       s.Index,
			"label":      s.Label(),
			"stage":      s.Stage,
			"efficiency": s.Efficiency,
			"sediment":   s.State.Sediment,
			"chemicals":  s.State.Chemicals,
			"microbes":   s.State.Microbes,
		})
		if err != nil {
			_ = fw.Close()
			return err
		}
		if err := writer.Write(string(b)); err != nil {
			_ = fw.Close()
			return fmt.Errorf("parquet write row: %w", err)
		}
	}
	if err := writer.WriteStop(); err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet finish: %w", err)
	}
	return fw.Close()
}
