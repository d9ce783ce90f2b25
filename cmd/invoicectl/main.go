package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/invoicecreator/invoice-creator/internal/tools/common"
	tool "github.com/invoicecreator/invoice-creator/internal/tools/invoicectl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tool.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", common.ToolName, err)
		stop()
		os.Exit(3)
	}
}
