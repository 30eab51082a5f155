package log_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stephanfeb/dactor/log"
)

func TestZapWritesAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewZap(log.WarnLevel, &buf)

	logger.Info("should not appear")
	assert.Empty(t, buf.String())

	logger.Warn("should appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestZapWithTagsSubsequentLines(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewZap(log.DebugLevel, &buf).With("actor-1")
	logger.Info("hello")
	assert.Contains(t, buf.String(), "actor-1")
}

func TestDiscardLoggerIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		log.DiscardLogger.Info("x")
		log.DiscardLogger.With("y").Error("z")
	})
}
