package middleware

import (
	"github.com/MrSnakeDoc/gradle-updater/internal/config"
	"github.com/MrSnakeDoc/gradle-updater/internal/wrapper"
	"github.com/spf13/cobra"
)

// RequireWrapper fails early when the project has no wrapper script.
func RequireWrapper(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg, err := Get[*config.Config](cmd, CtxKeyConfig)
	if err != nil {
		return err
	}

	if err := wrapper.RequireScript(cfg.Dir, cfg.Gradlew); err != nil {
		return err
	}

	return next(cmd, args)
}
