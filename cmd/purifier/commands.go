package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	csvio "github.com/wdm0006/purifier/pkg/io/csvio"
	iox "github.com/wdm0006/purifier/pkg/io/ioutils"
	jsonlio "github.com/wdm0006/purifier/pkg/io/jsonlio"
	parquetio "github.com/wdm0006/purifier/pkg/io/parquetio"
	p "github.com/wdm0006/purifier/pkg/purifier"
	"github.com/wdm0006/purifier/pkg/report"
	"github.com/wdm0006/purifier/pkg/session"
)

// openSession loads the chain file into a new session. A missing file is an
// empty chain.
func (a *app) openSession() (*session.Session, error) {
	s := session.New(a.log)
	if _, err := os.Stat(a.chainPath); errors.Is(err, os.ErrNotExist) {
		a.log.Debugw("chain file not found, starting empty", "path", a.chainPath)
		return s, nil
	}
	if err := s.Load(a.chainPath); err != nil {
		return nil, err
	}
	return s, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printFilters(w io.Writer, s *session.Session) error {
	recs := s.Describe()
	if a.jsonOut {
		return printJSON(w, recs)
	}
	_, err := fmt.Fprintln(w, report.FiltersText(recs))
	return err
}

func newAddCmd(a *app) *cobra.Command {
	var kind, efficiency string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a filter to the end of the chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind == "" {
				return fmt.Errorf("%w: --type is required", errUsage)
			}
			s, err := a.openSession()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("efficiency") {
				_, err = s.AddFilter(kind, efficiency)
			} else {
				_, err = s.AddDefault(kind)
			}
			if err != nil {
				return err
			}
			if err := s.Save(a.chainPath); err != nil {
				return err
			}
			return a.printFilters(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "", "filter type: sediment, carbon or reverse_osmosis")
	cmd.Flags().StringVarP(&efficiency, "efficiency", "e", "", "efficiency 0-100 (default depends on type)")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the filters in the chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession()
			if err != nil {
				return err
			}
			return a.printFilters(cmd.OutOrStdout(), s)
		},
	}
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Filter untreated water through the chain and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession()
			if err != nil {
				return err
			}
			final, err := s.Run()
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), final)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), report.FinalText(final))
			return err
		},
	}
}

func newTraceCmd(a *app) *cobra.Command {
	var out string
	var summary bool
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print or export the contamination levels after every stage",
		Long: "Print or export the contamination levels after every stage.\n" +
			"--out picks the exporter from the extension: .csv, .tsv, .jsonl (optionally .gz) or .parquet.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession()
			if err != nil {
				return err
			}
			if s.Empty() {
				return p.ErrEmptyChain
			}
			w := cmd.OutOrStdout()
			if out != "" {
				if err := a.exportTrace(cmd.Context(), s, out); err != nil {
					return err
				}
				a.log.Infow("trace exported", "path", out)
			}
			steps, err := s.Trace()
			if err != nil {
				return err
			}
			if summary {
				sum := report.Summarize(steps)
				if a.jsonOut {
					return printJSON(w, sum)
				}
				_, err = fmt.Fprint(w, sum.Text())
				return err
			}
			if out != "" {
				return nil
			}
			if a.jsonOut {
				return printJSON(w, steps)
			}
			_, err = fmt.Fprint(w, report.TraceText(steps))
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "export the trace to this file")
	cmd.Flags().BoolVar(&summary, "summary", false, "print per-contaminant statistics")
	return cmd
}

func (a *app) exportTrace(ctx context.Context, s *session.Session, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	switch iox.BaseExt(path) {
	case ".csv":
		sw, err := csvio.NewStreamWriter(path, csvio.WriterOptions{})
		if err != nil {
			return err
		}
		return s.Replay(ctx, sw)
	case ".tsv":
		sw, err := csvio.NewStreamWriter(path, csvio.WriterOptions{Delimiter: '\t'})
		if err != nil {
			return err
		}
		return s.Replay(ctx, sw)
	case ".jsonl", ".ndjson":
		sw, err := jsonlio.NewStreamWriter(path)
		if err != nil {
			return err
		}
		return s.Replay(ctx, sw)
	case ".parquet":
		if iox.IsGzipPath(path) {
			return fmt.Errorf("%w: parquet output is compressed internally, drop the .gz suffix", errUsage)
		}
		steps, err := s.Trace()
		if err != nil {
			return err
		}
		return parquetio.WriteAll(path, steps)
	}
	return fmt.Errorf("%w: unsupported trace format %q", errUsage, path)
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Describe the available filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOut {
				type entry struct {
					Type              string `json:"type"`
					Name              string `json:"name"`
					Description       string `json:"description"`
					DefaultEfficiency int    `json:"default_efficiency"`
				}
				var out []entry
				for _, k := range p.Kinds {
					out = append(out, entry{k.String(), k.DisplayName(), k.Description(), k.DefaultEfficiency()})
				}
				return printJSON(cmd.OutOrStdout(), out)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), report.CatalogText())
			return err
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove every filter from the chain file",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session.New(a.log)
			if err := s.Save(a.chainPath); err != nil {
				return err
			}
			return a.printFilters(cmd.OutOrStdout(), s)
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the chain with one loaded from another file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession()
			if err != nil {
				return err
			}
			if err := s.Load(args[0]); err != nil {
				return err
			}
			if err := s.Save(a.chainPath); err != nil {
				return err
			}
			return a.printFilters(cmd.OutOrStdout(), s)
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Save the chain to another file, converting its format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession()
			if err != nil {
				return err
			}
			if err := s.Save(args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "saved "+strconv.Itoa(s.Len())+" filters to "+args[0])
			return err
		},
	}
}
