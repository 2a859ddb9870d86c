package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/medport/medport/internal/cmd"
	"github.com/medport/medport/internal/exitcode"
	"github.com/medport/medport/internal/tui"
)

func main() {
	// A local .env is optional; absence is not an error
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
			exitcode.Exit(exitcode.Interrupted)
		}

		fmt.Fprintln(os.Stderr, tui.DefaultStyles().Error.Render(fmt.Sprintf("Error: %v", err)))
		exitcode.ExitWithError(err)
	}
	exitcode.Exit(exitcode.Success)
}
