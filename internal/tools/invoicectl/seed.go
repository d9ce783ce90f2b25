package invoicectl

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/invoicecreator/invoice-creator/internal/app"
	"github.com/invoicecreator/invoice-creator/internal/service"
	"github.com/invoicecreator/invoice-creator/internal/tools/common"
	"github.com/invoicecreator/invoice-creator/internal/validation"
)

var demoClients = []validation.ClientInput{
	{CompanyName: "Harbour Cafe", CompanyContact: "Sam Lee", ABN: "51 824 753 556", ContactPhone: "0412 345 678", Address: "1 Wharf St, Sydney NSW"},
	{CompanyName: "Ridge Builders", ABN: "53 004 085 616", ContactEmail: "office@ridge.example", ContactPhone: "accounts@ridge.example"},
}

var demoJobs = []validation.JobInput{
	{Title: "Kitchen shift", Rate: "38.50", StartTime: "07:00", EndTime: "15:30", Had30MinBreak: "1"},
	{Title: "Site clean-up", Rate: "320", RateType: "daily", TargetType: "client_client", TargetName: "Lot 14 owner"},
}

func newSeedCommand(opts *common.Options) *cobra.Command {
	var email, password string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a demo account with sample clients and jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd.OutOrStdout(), "seed", "seed demo data", func(ctx context.Context) ([]string, error) {
				if dryRun {
					return []string{
						"would register user: " + email,
						fmt.Sprintf("would create %d clients when none exist", len(demoClients)),
						fmt.Sprintf("would create %d jobs per client", len(demoJobs)),
					}, nil
				}
				return opts.WithApp(ctx, func(ctx context.Context, a *app.App) ([]string, error) {
					return seedDemo(ctx, a, email, password)
				})
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "demo@invoice.local", "demo account email")
	cmd.Flags().StringVar(&password, "password", "demo-password", "demo account password")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be created")
	return cmd
}

// seedDemo is safe to rerun: an existing account or existing clients are
// left alone.
func seedDemo(ctx context.Context, a *app.App, email, password string) ([]string, error) {
	var details []string
	id, err := a.Auth.Register(ctx, "Demo User", email, password)
	switch {
	case errors.Is(err, service.ErrDuplicateCredential):
		details = append(details, "demo user already registered: "+email)
	case err != nil:
		return nil, oops.Code("SEED_FAILED").With("step", "register").Wrap(err)
	default:
		details = append(details, fmt.Sprintf("registered demo user %d: %s", id, email))
	}

	existing, err := a.Clients.List(ctx)
	if err != nil {
		return details, oops.Code("SEED_FAILED").With("step", "list clients").Wrap(err)
	}
	if len(existing) > 0 {
		return append(details, fmt.Sprintf("%d clients already present, skipping records", len(existing))), nil
	}

	for _, in := range demoClients {
		c, err := a.Clients.Create(ctx, in)
		if err != nil {
			return details, oops.Code("SEED_FAILED").With("step", "create client", "company", in.CompanyName).Wrap(err)
		}
		details = append(details, fmt.Sprintf("created client %d: %s", c.ID, c.CompanyName))
		for _, jin := range demoJobs {
			jin.ClientID = fmt.Sprint(c.ID)
			if _, err := a.Jobs.Create(ctx, jin); err != nil {
				return details, oops.Code("SEED_FAILED").With("step", "create job", "title", jin.Title).Wrap(err)
			}
		}
	}
	return append(details, fmt.Sprintf("created %d jobs", len(demoClients)*len(demoJobs))), nil
}
