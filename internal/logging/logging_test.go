package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	cleanup, err := Setup(Config{Format: FormatJSON, Writer: &buf})
	require.NoError(t, err)
	defer cleanup()

	L().Info("session.loaded", "units", 3)
	L().Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "session.loaded", line["msg"])
	assert.Equal(t, float64(3), line["units"])
	assert.True(t, strings.HasSuffix(line["time"].(string), "Z"))
	assert.NotContains(t, line, "source")
}

func TestSetupDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	cleanup, err := Setup(Config{Format: FormatText, Debug: true, Writer: &buf})
	require.NoError(t, err)
	defer cleanup()

	L().Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "source=")
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "napctl.log")
	cleanup, err := Setup(Config{File: path})
	require.NoError(t, err)

	L().Info("hello")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
}

func TestSetupUnknownFormat(t *testing.T) {
	_, err := Setup(Config{Format: "xml", Writer: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	assert.NotNil(t, FromContext(context.Background()))
}
