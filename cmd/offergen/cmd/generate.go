package cmd

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-offergen/pkg/orchestrator"
	"github.com/goliatone/go-offergen/pkg/xmlgen"
)

type generateFlags struct {
	action      string
	description string
	outDir      string
	unique      bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.action, "action", "insert", "insert or update")
	cmd.Flags().StringVar(&f.outDir, "out-dir", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&f.unique, "unique", false, "append a time based suffix to file names")
}

func (f *generateFlags) sink(a *app) xmlgen.DirSink {
	dir := f.outDir
	if dir == "" {
		dir = a.cfg.Output.Dir
	}
	return xmlgen.DirSink{Dir: dir}
}

func newGenerateCommand(a *app) *cobra.Command {
	var flags generateFlags
	var stdout bool

	cmd := &cobra.Command{
		Use:   "generate <offer.json|->",
		Short: "Validate a JSON offer and write its XML submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := parseAction(flags.action)
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}

			out, err := a.orch.Generate(cmd.Context(), orchestrator.Request{
				Document:    doc,
				Action:      action,
				Description: flags.description,
				Unique:      flags.unique || a.cfg.Output.Unique,
			})
			var invalid *orchestrator.InvalidDocumentError
			if errors.As(err, &invalid) {
				return writeResult(cmd.ErrOrStderr(), invalid.Result)
			}
			if err != nil {
				return err
			}

			if stdout {
				_, err := cmd.OutOrStdout().Write(out.XML)
				return err
			}
			sink := flags.sink(a)
			if err := sink.Emit(cmd.Context(), out.FileName, out.XML); err != nil {
				return err
			}
			a.logger.Info("offer generated", "file", out.FileName)
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(sink.Dir, out.FileName))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&flags.description, "description", "", "file name description (default: offer name)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the XML to stdout instead of a file")
	return cmd
}

func newBatchCommand(a *app) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "batch <offer.json>...",
		Short: "Generate one XML file per JSON offer, continuing past failures",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := parseAction(flags.action)
			if err != nil {
				return err
			}

			var loadFailures []xmlgen.BatchFailure
			requests := func(yield func(orchestrator.Request) bool) {
				for _, path := range args {
					doc, err := loadDocument(cmd, path)
					if err != nil {
						loadFailures = append(loadFailures, xmlgen.BatchFailure{Key: path, Err: err})
						continue
					}
					req := orchestrator.Request{
						Document: doc,
						Action:   action,
						Unique:   flags.unique || a.cfg.Output.Unique,
						Key:      path,
					}
					if !yield(req) {
						return
					}
				}
			}

			report := a.orch.GenerateBatch(cmd.Context(), iter.Seq[orchestrator.Request](requests), flags.sink(a))
			report.Failures = append(loadFailures, report.Failures...)

			w := cmd.OutOrStdout()
			for _, name := range report.Emitted {
				fmt.Fprintf(w, "ok    %s\n", name)
			}
			for _, failure := range report.Failures {
				fmt.Fprintf(w, "fail  %s\n", failure.Error())
			}
			a.logger.Info("batch finished", "run", report.RunID, "emitted", len(report.Emitted), "failed", len(report.Failures))

			if report.Err != nil {
				return report.Err
			}
			if len(report.Failures) > 0 {
				return fmt.Errorf("%d of %d documents failed", len(report.Failures), len(args))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
