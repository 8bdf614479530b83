package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(&buf, false)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger.Debug("hidden")
	logger.Info("FitNesse already not running.")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "FitNesse already not running.")

	verbose := NewWithWriter(&buf, true)
	assert.Equal(t, logrus.DebugLevel, verbose.GetLevel())
}
