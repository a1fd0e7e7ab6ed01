package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/fsmx/internal/config"
)

const playerYAML = `initial: idle
states:
  idle:
    transitions:
      start: running
  running:
    transitions:
      stop: idle
      pause: paused
  paused:
    transitions:
      resume: running
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "player.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_Script(t *testing.T) {
	config.Reset()
	var stdout, stderr bytes.Buffer

	code := run([]string{"-config", writeConfig(t, playerYAML), "-dot", "trigger:start", "trigger:pause", "undo"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.True(t, strings.HasPrefix(out, "trigger:start: running\ntrigger:pause: paused\nundo: true running\n"), out)
	assert.Contains(t, out, `"running" [label="running" style="rounded,filled" fillcolor=lightgreen];`)
}

func TestRun_MissingConfigFlag(t *testing.T) {
	config.Reset()
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "-config is required")
}

func TestRun_ConfigNotFound(t *testing.T) {
	config.Reset()
	var stdout, stderr bytes.Buffer

	code := run([]string{"-config", filepath.Join(t.TempDir(), "nope.yaml"), "state"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "load config")
}

func TestRun_StrictFromEnv(t *testing.T) {
	config.Reset()
	t.Setenv("FSMCTL_STRICT", "true")
	t.Setenv("FSMCTL_LOG_FORMAT", "json")
	var stdout, stderr bytes.Buffer

	path := writeConfig(t, "initial: ghost\nstates:\n  idle: {}\n")
	code := run([]string{"-config", path, "state"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), `"msg":"create machine"`)
	assert.Empty(t, stdout.String())
}

func TestRun_ResetClearsHistoryFromEnv(t *testing.T) {
	config.Reset()
	t.Setenv("FSMCTL_RESET_CLEARS_HISTORY", "true")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-config", writeConfig(t, playerYAML), "trigger:start", "reset", "undo"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "undo: false idle\n")
}

func TestRun_StopOnError(t *testing.T) {
	config.Reset()
	var stdout, stderr bytes.Buffer

	code := run([]string{"-config", writeConfig(t, playerYAML), "-stop-on-error", "trigger:stop", "state"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.NotContains(t, stdout.String(), "state: idle")
}

func TestRun_BadLogLevel(t *testing.T) {
	config.Reset()
	t.Setenv("FSMCTL_LOG_LEVEL", "shout")
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 1, run([]string{"-config", writeConfig(t, playerYAML)}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "parse log level")
}
