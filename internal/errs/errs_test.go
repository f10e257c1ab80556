package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesCodeThroughWrapping(t *testing.T) {
	base := New(Network, "fetch", errors.New("connection refused"))
	wrapped := fmt.Errorf("fetch latest version: %w", base)

	assert.True(t, errors.Is(wrapped, Network))
	assert.False(t, errors.Is(wrapped, MalformedResponse))
	assert.Equal(t, Network, CodeOf(wrapped))
	assert.Equal(t, "fetch: connection refused", base.Error())
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("exit status 1")
	err := New(ExternalProcess, "gradlew wrapper", cause)

	assert.ErrorIs(t, err, cause)
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(errors.New("boom")))
}

func TestMsg(t *testing.T) {
	assert.Contains(t, Msg(Configuration, "stage is required"), "stage is required")
	assert.Equal(t, "UNKNOWN: x", Msg(Code("UNKNOWN"), "x"))
}
