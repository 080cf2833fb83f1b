package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-offergen/internal/prompt"
)

func newDraftCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Interactively build the mandatory sections of a new offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := prompt.Draft(cmd.Context(), a.driver)
			if err != nil {
				return err
			}
			if output == "" {
				return writeJSON(cmd.OutOrStdout(), doc)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := writeJSON(f, doc); err != nil {
				f.Close()
				return err
			}
			a.logger.Info("draft written", "file", output)
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON draft to this file")
	return cmd
}
