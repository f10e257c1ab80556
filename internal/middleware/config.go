package middleware

import (
	"context"

	"github.com/MrSnakeDoc/gradle-updater/internal/config"
	"github.com/MrSnakeDoc/gradle-updater/internal/logger"
	"github.com/spf13/cobra"
)

// LoadConfig resolves the run configuration and stores it in the command context.
func LoadConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger.FlagJSON = logger.FlagJSON || cfg.JSONLogs
	logger.ConfigureLoggerFromFlags(cfg.LogLevel)
	logger.Debug("stage=%q endpoint=%s policy=%s dir=%s", cfg.Stage, cfg.Endpoint, cfg.Policy, cfg.Dir)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, CtxKeyConfig, cfg))

	return next(cmd, args)
}

// StageFromArgs lets "fetch <stage>" set the stage positionally.
func StageFromArgs(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	if len(args) > 0 {
		if err := cmd.Flags().Set("stage", args[0]); err != nil {
			return err
		}
	}
	return next(cmd, args)
}
