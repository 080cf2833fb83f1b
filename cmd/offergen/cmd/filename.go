package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-offergen/internal/prompt"
	"github.com/goliatone/go-offergen/pkg/filename"
	"github.com/goliatone/go-offergen/pkg/offer"
)

func newFileNameCommand(a *app) *cobra.Command {
	var identity, action, description string
	var unique, interactive bool

	cmd := &cobra.Command{
		Use:   "filename",
		Short: "Derive the canonical submission file name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var parts filename.Parts
			if interactive {
				var err error
				if parts, err = prompt.FileNameParts(cmd.Context(), a.driver); err != nil {
					return err
				}
			} else {
				act, err := parseAction(action)
				if err != nil {
					return err
				}
				token, err := filename.ActionFor(act)
				if err != nil {
					return err
				}
				parts = filename.Parts{IdentityCode: identity, Action: token, Description: description}
			}

			var name string
			var err error
			if unique {
				name, err = filename.GenerateUnique(parts, time.Now())
			} else {
				name, err = filename.Generate(parts)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
	cmd.Flags().StringVar(&identity, "identity", "", "16 character identity code")
	cmd.Flags().StringVar(&action, "action", string(offer.ActionInsert), "insert or update")
	cmd.Flags().StringVar(&description, "description", "", "free text description")
	cmd.Flags().BoolVar(&unique, "unique", false, "append a time based suffix")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for the parts")
	return cmd
}

func newParseNameCommand(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse-name <file name>",
		Short: "Split a submission file name into its parts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := filename.Parse(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), parts)
		},
	}
}
