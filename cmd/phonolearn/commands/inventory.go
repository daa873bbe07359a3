/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inventory.go
Description: Inventory command implementation for phonolearn. Learns a grammar
from a corpus of words and prints every feature bundle the grammar deems valid,
resolved to segment identifiers where the feature database has them.
*/

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/phonolearn/pkg/session"
)

// RunInventory executes the inventory command
func RunInventory(cmd *cobra.Command, args []string) error {
	fmt.Println("📦 phonolearn - Predicted Inventory")
	fmt.Println("===================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := SetupLogging()
	if err != nil {
		return err
	}

	sess, cleanup, err := newSession(logger)
	if err != nil {
		return err
	}
	defer cleanup()

	corpus := viper.GetStringSlice("inventory.corpus")
	if len(corpus) == 0 {
		return fmt.Errorf("no corpus given; use --corpus to provide training words")
	}
	if err := learnCorpus(sess, corpus); err != nil {
		return err
	}
	fmt.Printf("Learned from %d corpus words.\n", len(corpus))

	printInventory(sess, viper.GetBool("inventory.basic"))
	return nil
}

// printInventory renders the predicted inventory of a session
func printInventory(sess *session.Session, basicOnly bool) {
	entries := sess.PredictedInventory(basicOnly)
	fmt.Println()
	fmt.Printf("📦 Predicted Inventory (%d valid bundles)\n", len(entries))
	fmt.Println("-----------------------------------------")
	for _, entry := range entries {
		ids := "(no identifier)"
		if !entry.IsEmpty {
			ids = strings.Join(entry.Identifiers, ", ")
		}
		fmt.Printf("  %-16s {%s}\n", ids, strings.Join(entry.Features, ", "))
	}
}
