package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelSetString(t *testing.T) {
	require := require.New(t)

	var l Level
	require.NoError(l.Set("warn"))
	require.Equal(LevelWarn, l)
	require.Equal("WARN", l.String())
	require.Error(l.Set("bogus"))
}

func TestInitializeRejectsUnknownFormat(t *testing.T) {
	require := require.New(t)
	require.Error(Initialize(&bytes.Buffer{}, "xml", LevelInfo))
}

func TestLoggerRespectsLevel(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	// Initialize is one-shot; this is the only test in the package
	// that calls it successfully.
	require.NoError(Initialize(&buf, "logfmt", LevelWarn))

	l := GetLogger("test/logging")
	l.Debug("should not appear")
	l.Warn("should appear", "key", "value")

	require.NotContains(buf.String(), "should not appear")
	require.Contains(buf.String(), "should appear")
}
