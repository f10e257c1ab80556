package printer

import (
	"github.com/fatih/color"
)

type ColorPrinter struct {
	Success func(format string, a ...interface{}) string
	Error   func(format string, a ...interface{}) string
	Warning func(format string, a ...interface{}) string
	Info    func(format string, a ...interface{}) string
	Debug   func(format string, a ...interface{}) string
	Heading func(format string, a ...interface{}) string
}

// NewColorPrinter returns a printer; with enabled=false every func is a plain Sprintf.
func NewColorPrinter(enabled bool) *ColorPrinter {
	sprint := func(attrs ...color.Attribute) func(string, ...interface{}) string {
		c := color.New(attrs...)
		if !enabled {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}

	return &ColorPrinter{
		Success: sprint(color.FgGreen),
		Error:   sprint(color.FgRed),
		Warning: sprint(color.FgYellow),
		Info:    sprint(color.FgBlue),
		Debug:   sprint(color.FgCyan),
		Heading: sprint(color.Bold, color.FgMagenta),
	}
}
