package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	csvio "github.com/wdm0006/purifier/pkg/io/csvio"
	jsonlio "github.com/wdm0006/purifier/pkg/io/jsonlio"
	parquetio "github.com/wdm0006/purifier/pkg/io/parquetio"
	p "github.com/wdm0006/purifier/pkg/purifier"
)

type blackholeSink struct{ rows int }

func (b *blackholeSink) Write(p.Step) error { b.rows++; return nil }
func (b *blackholeSink) Close() error       { return nil }

func randomChain(rnd *rand.Rand, n, maxEff int) *p.Chain {
	c := p.NewChain()
	for i := 0; i < n; i++ {
		_ = c.Append(p.Stage{Kind: p.Kinds[rnd.Intn(len(p.Kinds))], Efficiency: rnd.Intn(maxEff + 1)})
	}
	return c
}

func openSink(kind, path string) (p.TraceSink, error) {
	switch kind {
	case "none":
		return &blackholeSink{}, nil
	case "csv":
		return csvio.NewStreamWriter(path, csvio.WriterOptions{})
	case "jsonl":
		return jsonlio.NewStreamWriter(path)
	case "parquet":
		return parquetio.NewStreamWriter(path)
	}
	return nil, fmt.Errorf("unknown sink %q", kind)
}

func main() {
	var (
		stages  = flag.Int("stages", 10_000, "stages per chain")
		runs    = flag.Int("runs", 100, "number of simulations")
		maxEff  = flag.Int("max-efficiency", 3, "upper bound of random efficiencies")
		sink    = flag.String("sink", "none", "replay one trace into: none|csv|jsonl|parquet")
		out     = flag.String("out", "bench.trace", "output path for -sink")
		jsonOut = flag.Bool("json", false, "emit JSON summary")
		seed    = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	rnd := rand.New(rand.NewSource(*seed))
	c := randomChain(rnd, *stages, *maxEff)

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	var msBefore, msAfter runtime.MemStats
	runtime.ReadMemStats(&msBefore)
	start := time.Now()
	var final p.WaterState
	for i := 0; i < *runs; i++ {
		trace, err := p.SimulateTrace(c, p.NewWaterState())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		final = trace[len(trace)-1]
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&msAfter)

	if *sink != "none" {
		s, err := openSink(*sink, *out)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if err := p.ReplayTrace(context.Background(), c, p.NewWaterState(), s); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	stagesPerSec := float64(*stages) * float64(*runs) / elapsed.Seconds()
	summary := map[string]any{
		"stages":                *stages,
		"runs":                  *runs,
		"elapsed_ms":            elapsed.Milliseconds(),
		"stages_per_sec":        stagesPerSec,
		"mem_alloc_bytes":       msAfter.Alloc,
		"mem_total_alloc_bytes": msAfter.TotalAlloc - msBefore.TotalAlloc,
		"gc_num":                msAfter.NumGC - msBefore.NumGC,
		"final":                 final,
		"sink":                  *sink,
	}

	if *jsonOut {
		b, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(b))
		return
	}
	fmt.Printf("Stages: %d x %d runs\n", *stages, *runs)
	fmt.Printf("Elapsed: %s\n", elapsed)
	fmt.Printf("Throughput: %.0f stages/s\n", stagesPerSec)
	fmt.Printf("Final: %s\n", final)
	fmt.Printf("Total Alloc (delta): %d MB\n", (msAfter.TotalAlloc-msBefore.TotalAlloc)/1024/1024)
	fmt.Printf("GC cycles (delta): %d\n", msAfter.NumGC-msBefore.NumGC)
}
