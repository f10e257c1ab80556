package main

import (
	"errors"
	"os"

	cmd "github.com/MrSnakeDoc/gradle-updater/internal"
	"github.com/MrSnakeDoc/gradle-updater/internal/logger"
	"github.com/MrSnakeDoc/gradle-updater/internal/middleware"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, middleware.ErrLogged) {
			logger.LogError("%v", err)
		}
		os.Exit(1)
	}
}
