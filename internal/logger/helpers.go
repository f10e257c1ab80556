package logger

import (
	"io"
	"os"
)

var (
	FlagVerboseCount int  // -V, -VV
	FlagQuiet        bool // --quiet/-q
	FlagJSON         bool // --json, zap JSON encoder
)

// ConfigureLoggerFromFlags maps the persistent CLI flags to logger options.
// level comes from the loaded config and is used when no flag overrides it.
func ConfigureLoggerFromFlags(level string) {
	var w io.Writer = os.Stdout

	switch {
	case FlagQuiet:
		level = "error"
	case FlagVerboseCount > 0:
		level = "debug"
	case level != "":
	default:
		level = "info"
	}

	Configure(Options{
		Level: level,
		JSON:  FlagJSON,
		Color: !FlagJSON,
		Out:   w,
	})
}
