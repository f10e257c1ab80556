package reporter

import (
	"fmt"

	"github.com/MrSnakeDoc/gradle-updater/internal/logger"
)

// Console prints through the structured logger for local runs.
type Console struct {
	Outputs map[string]string
}

func NewConsole() *Console {
	return &Console{Outputs: map[string]string{}}
}

func (c *Console) Group(title string) { logger.Section(title) }

func (c *Console) EndGroup() { logger.EndSection() }

func (c *Console) Info(format string, args ...any) { logger.Info("%s", fmt.Sprintf(format, args...)) }

func (c *Console) Warn(format string, args ...any) { logger.Warn("%s", fmt.Sprintf(format, args...)) }

func (c *Console) Error(format string, args ...any) {
	logger.LogError("%s", fmt.Sprintf(format, args...))
}

func (c *Console) SetOutput(key, value string) {
	c.Outputs[key] = value
	logger.Debug("output %s=%s", key, value)
}
