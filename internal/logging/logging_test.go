package logging

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevels(t *testing.T) {
	logger := Setup(Options{})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger = Setup(Options{Verbose: true})
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestSetupWithLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "daemon.log")
	logger := Setup(Options{LogFile: logFile})

	logger.Info().Msg("hello")

	assert.FileExists(t, logFile)
}
