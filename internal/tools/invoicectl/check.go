package invoicectl

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/invoicecreator/invoice-creator/internal/normalize"
	"github.com/invoicecreator/invoice-creator/internal/tools/common"
	"github.com/invoicecreator/invoice-creator/internal/validation"
)

func newABNCommand(opts *common.Options) *cobra.Command {
	cmd := &cobra.Command{Use: "abn", Short: "Australian Business Number helpers"}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <abn>",
		Short: "Normalise an ABN and run the checksum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd.OutOrStdout(), "abn check", "abn check", func(context.Context) ([]string, error) {
				return checkABN(args[0])
			})
		},
	})
	return cmd
}

func checkABN(raw string) ([]string, error) {
	canonical := normalize.ABN(raw)
	details := []string{
		"canonical: " + canonical,
		"display: " + normalize.FormatABN(raw),
	}
	switch {
	case len(canonical) != 11:
		return details, oops.Code("ABN_INVALID").With("digits", len(canonical)).Errorf("ABN must contain 11 digits")
	case !validation.IsValidABN(canonical):
		return details, oops.Code("ABN_INVALID").Errorf("ABN is invalid")
	}
	return append(details, "checksum: ok"), nil
}

func newPhoneCommand(opts *common.Options) *cobra.Command {
	cmd := &cobra.Command{Use: "phone", Short: "Contact phone helpers"}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <phone-or-email>",
		Short: "Normalise a contact phone and classify it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd.OutOrStdout(), "phone check", "phone check", func(context.Context) ([]string, error) {
				return checkPhone(args[0])
			})
		},
	})
	return cmd
}

// checkPhone applies the same contact_phone rule as the client form.
func checkPhone(raw string) ([]string, error) {
	row, errs := validation.ValidateClient(validation.ClientInput{CompanyName: "-", ContactPhone: raw})
	details := []string{
		"stored: " + row.ContactPhone,
		"display: " + normalize.FormatPhone(strings.TrimSpace(raw)),
		fmt.Sprintf("type: %s", normalize.DetectPhoneType(raw)),
	}
	if msg, bad := errs.Get(validation.FieldContactPhone); bad {
		return details, oops.Code("PHONE_INVALID").Errorf("%s", msg)
	}
	return details, nil
}
