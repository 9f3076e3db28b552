package log_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vireline/mailbox/log"
)

func TestDiscardLoggerNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		log.DiscardLogger.Info("hello")
		log.DiscardLogger.Debugf("x=%d", 1)
		log.DiscardLogger.Warn("careful")
		log.DiscardLogger.Error("bad")
	})
	assert.Equal(t, log.InfoLevel, log.DiscardLogger.LogLevel())
}

func TestZapWritesToConfiguredWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewZap(log.InfoLevel, &buf)

	logger.Info("hello from test")

	assert.Contains(t, buf.String(), "hello from test")
	assert.Equal(t, log.InfoLevel, logger.LogLevel())
}

func TestZapRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewZap(log.WarnLevel, &buf)

	logger.Debug("should not appear")
	logger.Warn("should appear")

	assert.NotContains(t, buf.String(), "should not appear")
	assert.Contains(t, buf.String(), "should appear")
}
