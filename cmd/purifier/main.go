package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wdm0006/purifier/pkg/config"
	iox "github.com/wdm0006/purifier/pkg/io/ioutils"
	p "github.com/wdm0006/purifier/pkg/purifier"
)

var version = "0.1.0-dev"

const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

// app carries the flags and shared dependencies of every command.
type app struct {
	chainPath string
	debug     bool
	jsonOut   bool
	log       *zap.SugaredLogger
}

func main() {
	a := &app{}
	root := newRootCmd(a)
	err := root.Execute()
	if a.log != nil {
		_ = a.log.Sync()
	}
	os.Exit(exitCode(err, root.ErrOrStderr()))
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}
	fmt.Fprintln(stderr, "error:", err)
	if isUserError(err) {
		return exitUsage
	}
	return exitRuntime
}

// isUserError reports failures caused by input the user can correct.
func isUserError(err error) bool {
	return errors.Is(err, p.ErrInvalidEfficiency) ||
		errors.Is(err, p.ErrUnknownStageKind) ||
		errors.Is(err, p.ErrEmptyChain) ||
		errors.Is(err, config.ErrMalformed) ||
		errors.Is(err, errUsage)
}

var errUsage = errors.New("usage")

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "purifier",
		Short:         "Build, persist and simulate water purification filter chains",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The chain is saved back to --chain, so stdio is not a valid target.
			if strings.TrimSpace(a.chainPath) == "" || a.chainPath == iox.Stdio {
				return fmt.Errorf("%w: --chain must name a file, got %q", errUsage, a.chainPath)
			}
			if a.log != nil {
				return nil
			}
			log, err := newLogger(a.debug)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.chainPath, "chain", "chain.json", "chain file (.json, .yaml, .toml, optionally .gz)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "development logging")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print JSON instead of text")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newRunCmd(a),
		newTraceCmd(a),
		newInfoCmd(a),
		newResetCmd(a),
		newImportCmd(a),
		newExportCmd(a),
	)
	return root
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return l.Sugar(), nil
}
