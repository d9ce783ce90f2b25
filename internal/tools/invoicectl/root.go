// Package invoicectl is the operator command line for the invoice-creator
// core: account administration, record listing, checks and health probes.
package invoicectl

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/invoicecreator/invoice-creator/internal/tools/common"
)

func NewRootCommand() *cobra.Command {
	opts := &common.Options{}
	cmd := &cobra.Command{
		Use:           common.ToolName,
		Short:         "Invoice creator operator tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "path to env file")
	cmd.PersistentFlags().BoolVar(&opts.CI, "ci", false, "non-interactive machine-readable output")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "operation timeout")

	cmd.AddCommand(
		newUserCommand(opts),
		newClientCommand(opts),
		newJobCommand(opts),
		newABNCommand(opts),
		newPhoneCommand(opts),
		newHealthCommand(opts),
		newSeedCommand(opts),
	)
	return cmd
}
