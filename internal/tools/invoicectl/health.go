package invoicectl

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/invoicecreator/invoice-creator/internal/app"
	"github.com/invoicecreator/invoice-creator/internal/tools/common"
)

func newHealthCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the database and session backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd.OutOrStdout(), "health", "health", func(ctx context.Context) ([]string, error) {
				return opts.WithApp(ctx, func(ctx context.Context, a *app.App) ([]string, error) {
					ready, results := a.Readiness.Ready(ctx)
					details := make([]string, 0, len(results))
					failed := 0
					for _, r := range results {
						state := "healthy"
						if !r.Healthy {
							state = "unhealthy: " + r.Error
							failed++
						}
						details = append(details, fmt.Sprintf("%s: %s (%s)", r.Name, state, r.Duration.Round(time.Millisecond)))
					}
					if !ready {
						return details, oops.Code("UNHEALTHY").With("failed", failed).Errorf("%d of %d checks failed", failed, len(results))
					}
					return details, nil
				})
			})
		},
	}
}
