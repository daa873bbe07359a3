/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logging_test.go
Description: Unit tests for the logging setup. Covers config validation, level
selection, and the custom formatter's stable field ordering.
*/

package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/phonolearn/pkg/logging"
)

// TestLoggerConfigValidation tests rejection of bad levels and formats
func TestLoggerConfigValidation(t *testing.T) {
	_, err := logging.NewLogger(&logging.LoggerConfig{Level: "loud", Format: logging.LogFormatText})
	require.Error(t, err)

	_, err = logging.NewLogger(&logging.LoggerConfig{Level: logging.LogLevelInfo, Format: "xml"})
	require.Error(t, err)

	logger, err := logging.NewLogger(nil)
	require.NoError(t, err, "nil config falls back to defaults")
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

// TestLoggerLevelSelection tests that the configured level is applied
func TestLoggerLevelSelection(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.LogLevelWarning,
		Format: logging.LogFormatCustom,
		Output: &buf,
	})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("visible")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

// TestCustomFormatterFieldOrdering tests stable, sorted field rendering
func TestCustomFormatterFieldOrdering(t *testing.T) {
	formatter := &logging.CustomFormatter{Timestamp: false, Colors: false}
	entry := logrus.WithFields(logrus.Fields{
		"segment": "p",
		"new":     1,
		"session": "abc",
	})
	entry.Message = "Learned segment"
	entry.Level = logrus.InfoLevel

	out, err := formatter.Format(entry)
	require.NoError(t, err)
	line := string(out)

	assert.True(t, strings.HasPrefix(line, "INFO Learned segment"))
	assert.Less(t, strings.Index(line, "new="), strings.Index(line, "segment="))
	assert.Less(t, strings.Index(line, "segment="), strings.Index(line, "session="))
}
