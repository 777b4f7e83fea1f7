package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		for _, level := range []string{"none", "debug", "info", "warn", "error"} {
			l, err := NewLogger(format, level)
			require.NoError(t, err, "%s/%s", format, level)
			l.With(zap.String("k", "v")).Debug("hello")
		}
	}
}

func TestNewLoggerRejectsUnknownSettings(t *testing.T) {
	_, err := NewLogger("text", "loud")
	require.Error(t, err)

	_, err = NewLogger("xml", "info")
	require.Error(t, err)
}
