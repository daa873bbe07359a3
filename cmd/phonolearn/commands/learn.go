/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: learn.go
Description: Learn command implementation for phonolearn. Feeds observed segments
or words to a fresh grammar session, prints the per-step learning traces, the
resulting grammar table, and optionally the predicted segment inventory.
*/

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/phonolearn/pkg/learner"
)

// RunLearn executes the learn command
func RunLearn(cmd *cobra.Command, args []string) error {
	fmt.Println("🧠 phonolearn - Grammar Learning Session")
	fmt.Println("========================================")
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

	asWords := viper.GetBool("learn.words")
	step := 0
	for _, arg := range args {
		if asWords {
			traces, err := sess.LearnWord(arg)
			for i, trace := range traces {
				step++
				printTrace(step, fmt.Sprintf("%s[%d]", arg, i), trace)
			}
			if err != nil {
				return err
			}
		} else {
			trace, err := sess.LearnSegment(arg)
			if err != nil {
				return err
			}
			step++
			printTrace(step, arg, trace)
		}
	}

	fmt.Println()
	fmt.Println("📋 Grammar Table")
	fmt.Println("----------------")
	for _, entry := range sess.GrammarTable() {
		fmt.Printf("  %-20s attracts {%s}  rejects {%s}\n",
			entry.Feature,
			strings.Join(entry.Attracts, ", "),
			strings.Join(entry.Rejects, ", "))
	}

	if viper.GetBool("learn.inventory") {
		printInventory(sess, viper.GetBool("learn.basic"))
	}

	fmt.Println("\n✨ Learning session completed!")
	return nil
}

// printTrace renders one learn step's trace
func printTrace(step int, label string, trace learner.Trace) {
	fmt.Printf("Step %d: %s\n", step, label)
	if trace.Empty() {
		fmt.Println("  (no grammar change)")
		return
	}
	if len(trace.NewFeatures) > 0 {
		names := make([]string, len(trace.NewFeatures))
		for i, f := range trace.NewFeatures {
			names[i] = string(f)
		}
		fmt.Printf("  new features:     %s\n", strings.Join(names, ", "))
	}
	printConstraints("attracts added", trace.AttractsAdded)
	printConstraints("attracts removed", trace.AttractsRemoved)
	printConstraints("rejects added", trace.RejectsAdded)
	printConstraints("rejects removed", trace.RejectsRemoved)
}

func printConstraints(label string, cs []learner.Constraint) {
	if len(cs) == 0 {
		return
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = fmt.Sprintf("%s→%s", c.From, c.To)
	}
	fmt.Printf("  %-17s %s\n", label+":", strings.Join(parts, ", "))
}
