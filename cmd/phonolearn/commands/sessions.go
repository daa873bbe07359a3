/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sessions.go
Description: Sessions command implementation for phonolearn. Lists journaled learn
sessions and replays the recorded steps of a chosen session from the SQLite
journal.
*/

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/phonolearn/pkg/journal"
)

// RunSessions executes the sessions command
func RunSessions(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	path := viper.GetString("journal")
	if path == "" {
		return fmt.Errorf("no journal given; use --journal to point at a journal database")
	}
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	if replayID := viper.GetString("sessions.replay"); replayID != "" {
		steps, err := j.Steps(replayID)
		if err != nil {
			return err
		}
		if len(steps) == 0 {
			return fmt.Errorf("no steps recorded for session %q", replayID)
		}
		fmt.Printf("📼 Session %s (%d steps)\n", replayID, len(steps))
		for _, step := range steps {
			fmt.Printf("  %3d  %-4s {%s}  +%d features, +%d/-%d attracts, +%d/-%d rejects\n",
				step.Seq, step.Segment, strings.Join(step.Features, ", "),
				len(step.Trace.NewFeatures),
				len(step.Trace.AttractsAdded), len(step.Trace.AttractsRemoved),
				len(step.Trace.RejectsAdded), len(step.Trace.RejectsRemoved))
		}
		return nil
	}

	sessions, err := j.Sessions()
	if err != nil {
		return err
	}
	fmt.Printf("📼 Journaled sessions (%d)\n", len(sessions))
	for _, info := range sessions {
		fmt.Printf("  %s  %3d steps  started %s\n",
			info.ID, info.Steps, info.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
