package invoicectl

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/invoicecreator/invoice-creator/internal/app"
	"github.com/invoicecreator/invoice-creator/internal/repository"
	"github.com/invoicecreator/invoice-creator/internal/tools/common"
	"github.com/invoicecreator/invoice-creator/internal/validation"
)

func newClientCommand(opts *common.Options) *cobra.Command {
	cmd := &cobra.Command{Use: "client", Short: "Manage client records"}
	cmd.AddCommand(newClientAddCommand(opts), newClientListCommand(opts))
	return cmd
}

func newClientAddCommand(opts *common.Options) *cobra.Command {
	var in validation.ClientInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Validate and store a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd.OutOrStdout(), "client add", "client add", func(ctx context.Context) ([]string, error) {
				return opts.WithApp(ctx, func(ctx context.Context, a *app.App) ([]string, error) {
					c, err := a.Clients.Create(ctx, in)
					if details, vErr := validationFailure(err); vErr != nil {
						return details, vErr
					}
					if err != nil {
						return nil, oops.Code("CLIENT_CREATE_FAILED").Wrap(err)
					}
					return []string{fmt.Sprintf("client id: %d", c.ID), "abn: " + c.ABN, "contact phone: " + c.ContactPhone}, nil
				})
			})
		},
	}
	cmd.Flags().StringVar(&in.CompanyName, "company-name", "", "company name")
	cmd.Flags().StringVar(&in.CompanyContact, "company-contact", "", "contact person")
	cmd.Flags().StringVar(&in.ABN, "abn", "", "Australian Business Number")
	cmd.Flags().StringVar(&in.ContactEmail, "contact-email", "", "contact email")
	cmd.Flags().StringVar(&in.ContactPhone, "contact-phone", "", "contact phone or email")
	cmd.Flags().StringVar(&in.Address, "address", "", "postal address")
	return cmd
}

func newClientListCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients by company name",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd.OutOrStdout(), "client list", "client list", func(ctx context.Context) ([]string, error) {
				return opts.WithApp(ctx, func(ctx context.Context, a *app.App) ([]string, error) {
					clients, err := a.Clients.List(ctx)
					if err != nil {
						return nil, oops.Code("CLIENT_LIST_FAILED").Wrap(err)
					}
					out := make([]string, 0, len(clients))
					for _, c := range clients {
						line := fmt.Sprintf("%d %s", c.ID, c.CompanyName)
						if c.ABNDisplay != "" {
							line += " | ABN " + c.ABNDisplay
						}
						if c.PhoneDisplay != "" {
							line += fmt.Sprintf(" | %s %s", c.PhoneType, c.PhoneDisplay)
						}
						out = append(out, line)
					}
					return out, nil
				})
			})
		},
	}
}

func newJobCommand(opts *common.Options) *cobra.Command {
	cmd := &cobra.Command{Use: "job", Short: "Manage job records"}
	cmd.AddCommand(newJobAddCommand(opts), newJobListCommand(opts))
	return cmd
}

func newJobAddCommand(opts *common.Options) *cobra.Command {
	var in validation.JobInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Validate and store a job",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd.OutOrStdout(), "job add", "job add", func(ctx context.Context) ([]string, error) {
				return opts.WithApp(ctx, func(ctx context.Context, a *app.App) ([]string, error) {
					j, err := a.Jobs.Create(ctx, in)
					if details, vErr := validationFailure(err); vErr != nil {
						return details, vErr
					}
					if err != nil {
						return nil, oops.Code("JOB_CREATE_FAILED").Wrap(err)
					}
					return []string{fmt.Sprintf("job id: %d", j.ID)}, nil
				})
			})
		},
	}
	cmd.Flags().StringVar(&in.ClientID, "client-id", "", "owning client id")
	cmd.Flags().StringVar(&in.Title, "title", "", "job title")
	cmd.Flags().StringVar(&in.Description, "description", "", "job description")
	cmd.Flags().StringVar(&in.Location, "location", "", "job location")
	cmd.Flags().StringVar(&in.Rate, "rate", "", "rate amount")
	cmd.Flags().StringVar(&in.RateType, "rate-type", "", "hourly or daily")
	cmd.Flags().StringVar(&in.TargetType, "target-type", "", "client or client_client")
	cmd.Flags().StringVar(&in.TargetName, "target-name", "", "the client's client name")
	cmd.Flags().StringVar(&in.StartTime, "start-time", "", "HH:MM or HH:MM:SS")
	cmd.Flags().StringVar(&in.EndTime, "end-time", "", "HH:MM or HH:MM:SS")
	cmd.Flags().StringVar(&in.Had30MinBreak, "had-30min-break", "", "1 when a 30 minute break was taken")
	return cmd
}

func newJobListCommand(opts *common.Options) *cobra.Command {
	var req repository.PageRequest
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd.OutOrStdout(), "job list", "job list", func(ctx context.Context) ([]string, error) {
				return opts.WithApp(ctx, func(ctx context.Context, a *app.App) ([]string, error) {
					page, err := a.Jobs.ListPage(ctx, req)
					if err != nil {
						return nil, oops.Code("JOB_LIST_FAILED").Wrap(err)
					}
					out := make([]string, 0, len(page.Items)+1)
					out = append(out, fmt.Sprintf("page %d of %d (%d jobs)", page.Page, page.TotalPages, page.Total))
					for _, j := range page.Items {
						out = append(out, fmt.Sprintf("%d %s | %s", j.ID, j.Title, j.ClientName))
					}
					return out, nil
				})
			})
		},
	}
	cmd.Flags().IntVar(&req.Page, "page", repository.DefaultPage, "page number")
	cmd.Flags().IntVar(&req.PageSize, "page-size", repository.DefaultPageSize, "jobs per page")
	return cmd
}

func validationFailure(err error) ([]string, error) {
	var errs validation.FieldErrors
	if !errors.As(err, &errs) {
		return nil, nil
	}
	return fieldDetails(errs), oops.Code("VALIDATION_FAILED").With("fields", errs.Map()).Wrap(errs)
}
