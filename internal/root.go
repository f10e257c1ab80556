package internal

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/MrSnakeDoc/gradle-updater/internal/config"
	"github.com/MrSnakeDoc/gradle-updater/internal/errs"
	"github.com/MrSnakeDoc/gradle-updater/internal/logger"
	"github.com/MrSnakeDoc/gradle-updater/internal/middleware"
	"github.com/MrSnakeDoc/gradle-updater/internal/reporter"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := middleware.UseMiddlewareChain(middleware.LoadConfig, middleware.RequireWrapper)(NewRunCmd)()

	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		logger.ConfigureLoggerFromFlags("")
	}

	cmd.PersistentFlags().CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Verbose output (debug logs)")
	cmd.PersistentFlags().BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only print errors")
	cmd.PersistentFlags().BoolVar(&logger.FlagJSON, "json", false, "Log as JSON lines")
	config.RegisterFlags(cmd.PersistentFlags())

	RegisterSubCommands(cmd)

	return cmd
}

// Execute runs the CLI. Any failure is reported once, through the reporter
// matching the environment, and returned as middleware.ErrLogged.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, middleware.ErrLogged) {
			return err
		}
		ReportFailure(reporter.Detect(), err)
		return middleware.ErrLogged
	}
	return nil
}

// ReportFailure emits the single terminal failure line of a run.
func ReportFailure(r reporter.Reporter, err error) {
	msg := err.Error()
	if code := errs.CodeOf(err); code != "" {
		msg = errs.Msg(code, err)
	}
	r.Error("%s", msg)
}
