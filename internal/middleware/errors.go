package middleware

import (
	"errors"
)

// ErrLogged marks an error whose message was already reported.
var ErrLogged = errors.New("already logged")
