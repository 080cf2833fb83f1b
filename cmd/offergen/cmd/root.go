// Package cmd implements the offergen command line.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-offergen/internal/prompt"
	"github.com/goliatone/go-offergen/pkg/config"
	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/orchestrator"
	"github.com/goliatone/go-offergen/pkg/validation"
	"github.com/goliatone/go-offergen/pkg/xmlgen"
)

// errInvalid makes the process exit non-zero after the findings are printed.
var errInvalid = errors.New("document is invalid")

type app struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger
	orch       *orchestrator.Orchestrator
	driver     prompt.Driver
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "offergen",
		Short: "Validate energy offers and generate Portale Offerte XML",
		Long: `offergen validates electricity, gas and dual fuel offers against the
structural and business rules of the Portale Offerte, generates the XML
submission with its canonical file name and re-checks XML documents.

The configuration file is taken from --config or $` + config.EnvPath + `.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (.yaml, .toml or .json)")

	root.AddCommand(
		newValidateCommand(a),
		newGenerateCommand(a),
		newBatchCommand(a),
		newCheckCommand(a),
		newFileNameCommand(a),
		newParseNameCommand(a),
		newDraftCommand(a),
		newServeCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	if a.logger, err = newLogger(a.cfg.Log, cmd.ErrOrStderr()); err != nil {
		return err
	}
	if a.driver == nil {
		a.driver = prompt.NewSurveyDriver(cmd.OutOrStdout())
	}

	options := []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithSelfCheck(a.cfg.Validation.SelfCheck),
		orchestrator.WithGeneratorOptions(xmlgen.WithOptions(xmlgen.Options{
			Optimize:       a.cfg.Output.Optimize,
			Minify:         a.cfg.Output.Minify,
			SchemaLocation: a.cfg.SchemaLocation,
		})),
		orchestrator.WithTransformers(orchestrator.Normalize),
	}
	if path := a.cfg.Validation.Preset; path != "" {
		preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithTransformers(preset))
	}
	a.orch = orchestrator.New(options...)
	return nil
}

func newLogger(cfg config.Log, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

func parseAction(raw string) (offer.Action, error) {
	if raw == "" {
		return offer.ActionInsert, nil
	}
	return offer.ParseAction(raw)
}

// loadDocument reads a JSON document from path, or stdin when path is "-".
func loadDocument(cmd *cobra.Command, path string) (*offer.Document, error) {
	if path == "-" {
		return offer.Decode(cmd.InOrStdin())
	}
	return offer.LoadFile(path)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

func writeResult(w io.Writer, result validation.Result) error {
	if err := writeJSON(w, result); err != nil {
		return err
	}
	if !result.Valid() {
		return errInvalid
	}
	return nil
}
