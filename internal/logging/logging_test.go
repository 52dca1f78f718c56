package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New("debug", "json", &buf)

	l.WithField("component", "database").Info("db_migration_check")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "db_migration_check", entry["msg"])
	assert.Equal(t, "database", entry["component"])
	assert.NotEmpty(t, entry["ts"])
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn", "TEXT", &buf)

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "shown"))
}

func TestNew_InvalidLevel(t *testing.T) {
	l := New("loud", "", nil)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
