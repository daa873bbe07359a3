/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the phonolearn commands. Provides configuration
loading, logging setup, and session construction used across all command
implementations.
*/

package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/kleascm/phonolearn/pkg/journal"
	"github.com/kleascm/phonolearn/pkg/logging"
	"github.com/kleascm/phonolearn/pkg/provider"
	"github.com/kleascm/phonolearn/pkg/session"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	// Set config file if specified
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("PHONOLEARN")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the logging system from viper settings
func SetupLogging() (*logrus.Logger, error) {
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.LogLevel(viper.GetString("log_level")),
		Format: logging.LogFormat(viper.GetString("log_format")),
		Colors: !viper.GetBool("no_colors"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// newSession builds a session over the built-in IPA feature database, with
// an optional journal attached. The returned cleanup closes the journal.
func newSession(logger *logrus.Logger) (*session.Session, func(), error) {
	p, err := provider.NewIPAProvider()
	if err != nil {
		return nil, nil, fmt.Errorf("feature database: %w", err)
	}
	sess := session.New(p, logger)

	cleanup := func() {}
	if path := viper.GetString("journal"); path != "" {
		j, err := journal.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open journal: %w", err)
		}
		sess.SetRecorder(j)
		cleanup = func() { j.Close() }
	}
	return sess, cleanup, nil
}

// learnCorpus feeds a slice of words to the session, honoring per-segment
// atomicity: earlier words stay learned if a later one fails.
func learnCorpus(sess *session.Session, words []string) error {
	for _, w := range words {
		if _, err := sess.LearnWord(w); err != nil {
			return fmt.Errorf("corpus word %q: %w", w, err)
		}
	}
	return nil
}
