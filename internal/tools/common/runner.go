package common

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/samber/oops"

	"github.com/invoicecreator/invoice-creator/internal/app"
	"github.com/invoicecreator/invoice-creator/internal/di"
	"github.com/invoicecreator/invoice-creator/internal/observability"
	"github.com/invoicecreator/invoice-creator/internal/tools/ui"
)

const ToolName = "invoicectl"

// Options are the flags shared by every invoicectl command.
type Options struct {
	EnvFile string
	CI      bool
	Timeout time.Duration
}

// Action does the work of one command and returns human readable details.
type Action func(ctx context.Context) ([]string, error)

// Run executes fn either as a one-shot JSON result (CI mode) or inside the
// interactive view, and counts the outcome.
func (o *Options) Run(ctx context.Context, out io.Writer, command, title string, fn Action) error {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	var (
		details []string
		err     error
	)
	if o.CI {
		runCtx, cancel := context.WithTimeout(ctx, timeout)
		details, err = fn(runCtx)
		cancel()
		PrintCIResult(out, title, details, err)
	} else {
		details, err = ui.Run(ctx, title, timeout, fn)
	}
	observability.RecordToolCommandRun(ctx, ToolName, command, observability.StatusFromError(err))
	if err != nil {
		return oops.Code(ErrorCode(err)).With("command", command).Wrap(err)
	}
	return nil
}

// OpenApp loads the env file and builds the application graph.
func (o *Options) OpenApp() (*app.App, error) {
	if _, err := LoadEnvFile(o.EnvFile); err != nil {
		return nil, oops.Code("CONFIG_INVALID").With("env_file", o.EnvFile).Wrap(err)
	}
	a, err := di.InitializeApp()
	if err != nil {
		return nil, oops.Code("BOOTSTRAP_FAILED").Wrap(err)
	}
	return a, nil
}

// WithApp opens the application for the duration of fn.
func (o *Options) WithApp(ctx context.Context, fn func(ctx context.Context, a *app.App) ([]string, error)) ([]string, error) {
	a, err := o.OpenApp()
	if err != nil {
		return nil, err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := a.Close(closeCtx); cerr != nil {
			a.Logger.Warn("shutdown incomplete", "error", cerr)
		}
	}()
	return fn(ctx, a)
}

// ErrorCode returns the oops code carried by err, or COMMAND_FAILED.
func ErrorCode(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		if code := fmt.Sprint(oopsErr.Code()); code != "" && code != "<nil>" {
			return code
		}
	}
	return "COMMAND_FAILED"
}
