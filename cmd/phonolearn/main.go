/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for phonolearn. Provides commands for
incremental grammar learning from segments and words, inventory prediction, word
validation, and grammar table inspection, with configuration management and
structured logging.
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/phonolearn/cmd/phonolearn/commands"
)

var (
	// Configuration
	configFile string
	logLevel   string
	logFormat  string
	noColors   bool

	// Journal configuration
	journalPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "phonolearn",
		Short: "phonolearn - Incremental phonological feature-grammar learner",
		Long: `phonolearn learns a feature-interaction grammar over privative phonological
features from a stream of observed segments. It discovers attract constraints
(features that require each other), prunes them on counter-evidence, derives
reject constraints from accumulated observation history, and uses the learned
grammar to predict a full valid segment inventory and validate novel words.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().BoolVar(&noColors, "no-colors", false, "Disable colored log output")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "SQLite journal path for recording learn sessions")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("no_colors", rootCmd.PersistentFlags().Lookup("no-colors"))
	viper.BindPFlag("journal", rootCmd.PersistentFlags().Lookup("journal"))

	// Learn command
	learnCmd := &cobra.Command{
		Use:   "learn [segments...]",
		Short: "Learn grammar constraints from observed segments or words",
		Long: `Learn feeds a sequence of observations to a fresh grammar session and prints
the per-step traces and the resulting grammar table. With --words, arguments
are tokenized into segments first.`,
		RunE: commands.RunLearn,
	}
	learnCmd.Flags().Bool("words", false, "Treat arguments as words to segment, not single segments")
	learnCmd.Flags().Bool("inventory", false, "Print the predicted inventory after learning")
	learnCmd.Flags().Bool("basic", false, "Restrict inventory to base identifiers (no diacritics)")
	viper.BindPFlag("learn.words", learnCmd.Flags().Lookup("words"))
	viper.BindPFlag("learn.inventory", learnCmd.Flags().Lookup("inventory"))
	viper.BindPFlag("learn.basic", learnCmd.Flags().Lookup("basic"))
	rootCmd.AddCommand(learnCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:   "check --corpus word1,word2 [words...]",
		Short: "Validate words against a grammar learned from a corpus",
		RunE:  commands.RunCheck,
	}
	checkCmd.Flags().StringSlice("corpus", []string{}, "Words to learn from before checking")
	viper.BindPFlag("check.corpus", checkCmd.Flags().Lookup("corpus"))
	rootCmd.AddCommand(checkCmd)

	// Inventory command
	inventoryCmd := &cobra.Command{
		Use:   "inventory --corpus word1,word2",
		Short: "Predict the full valid segment inventory from a corpus",
		RunE:  commands.RunInventory,
	}
	inventoryCmd.Flags().StringSlice("corpus", []string{}, "Words to learn from before predicting")
	inventoryCmd.Flags().Bool("basic", false, "Restrict inventory to base identifiers (no diacritics)")
	viper.BindPFlag("inventory.corpus", inventoryCmd.Flags().Lookup("corpus"))
	viper.BindPFlag("inventory.basic", inventoryCmd.Flags().Lookup("basic"))
	rootCmd.AddCommand(inventoryCmd)

	// Sessions command (journal inspection)
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "List journaled learn sessions",
		RunE:  commands.RunSessions,
	}
	sessionsCmd.Flags().String("replay", "", "Print every recorded step of the given session")
	viper.BindPFlag("sessions.replay", sessionsCmd.Flags().Lookup("replay"))
	rootCmd.AddCommand(sessionsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
