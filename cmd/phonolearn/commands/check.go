/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: Check command implementation for phonolearn. Learns a grammar from a
corpus of words, then validates further words against it with per-segment detail.
*/

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunCheck executes the check command
func RunCheck(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 phonolearn - Word Validation")
	fmt.Println("===============================")
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

	corpus := viper.GetStringSlice("check.corpus")
	if len(corpus) == 0 {
		return fmt.Errorf("no corpus given; use --corpus to provide training words")
	}
	if err := learnCorpus(sess, corpus); err != nil {
		return err
	}
	fmt.Printf("Learned from %d corpus words.\n\n", len(corpus))

	for _, word := range args {
		report, err := sess.CheckWord(word)
		if err != nil {
			return err
		}
		verdict := "✅ valid"
		if !report.Valid {
			verdict = "❌ invalid"
		}
		fmt.Printf("%s: %s\n", word, verdict)
		for _, seg := range report.Segments {
			mark := "✓"
			if !seg.Valid {
				mark = "✗"
			}
			fmt.Printf("  %s %-4s {%s}\n", mark, seg.Identifier, strings.Join(seg.Features, ", "))
		}
	}
	return nil
}
