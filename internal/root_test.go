package internal

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/gradle-updater/internal/errs"
	"github.com/MrSnakeDoc/gradle-updater/internal/logger"
	"github.com/MrSnakeDoc/gradle-updater/internal/reporter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(logger.UseTestMode)
	t.Setenv("GITHUB_ACTIONS", "")

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRoot_VersionCommand(t *testing.T) {
	out, err := execRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:")
	assert.Contains(t, out, "OS/Arch:")
}

func TestRoot_MissingWrapperScript(t *testing.T) {
	_, err := execRoot(t, "--stage", "current", "--dir", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.Configuration))
}

func TestRoot_InsecureEndpoint(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gradlew"), []byte("#!/bin/sh\n"), 0o755))

	_, err := execRoot(t, "--stage", "current", "--dir", dir, "--endpoint", "http://services.gradle.org/versions")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.Configuration))
}

func TestRoot_FetchRejectsExtraArgs(t *testing.T) {
	_, err := execRoot(t, "fetch", "current", "nightly")
	assert.Error(t, err)
}

func TestReportFailure_SingleLineWithCause(t *testing.T) {
	rec := reporter.NewRecorder()
	cause := errs.New(errs.Network, "fetch https://services.gradle.org/versions/current", errors.New("connection refused"))

	ReportFailure(rec, fmt.Errorf("failed to fetch the latest version: %w", cause))

	lines := rec.Messages(reporter.ErrorLine)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "connection refused")
	assert.Contains(t, lines[0], "Unable to reach the versions endpoint")
}

func TestReportFailure_PlainError(t *testing.T) {
	rec := reporter.NewRecorder()
	ReportFailure(rec, errors.New("boom"))
	assert.Equal(t, []string{"boom"}, rec.Messages(reporter.ErrorLine))
}
