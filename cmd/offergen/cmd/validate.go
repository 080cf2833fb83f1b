package cmd

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/xmlcheck"
)

func newValidateCommand(a *app) *cobra.Command {
	var action, section string

	cmd := &cobra.Command{
		Use:   "validate <offer.json|->",
		Short: "Run the structural and business rules on a JSON offer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			act, err := parseAction(action)
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}

			if section != "" {
				name := offer.SectionName(section)
				data, _ := doc.Section(name)
				result, err := a.orch.Runner().ValidateSection(cmd.Context(), name, data, doc, act)
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), result)
			}

			result, err := a.orch.Validate(cmd.Context(), doc, act)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&action, "action", "insert", "insert or update")
	cmd.Flags().StringVar(&section, "section", "", "only validate this section (e.g. payment-methods)")
	return cmd
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <offer.xml>",
		Short: "Re-check an Offerta XML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := xmlcheck.ValidateFile(args[0])
			a.logger.Debug("xml checked", "file", args[0], "errors", result.Len())
			return writeResult(cmd.OutOrStdout(), result)
		},
	}
}
