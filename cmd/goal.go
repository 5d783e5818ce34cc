package cmd

import (
	"errors"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/feelfree/ff/internal/goals"
	"github.com/feelfree/ff/internal/models"
	"github.com/feelfree/ff/internal/output"
	"github.com/feelfree/ff/internal/records"
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals"},
	Short:   "Track recurring goals",
	GroupID: "core",
}

var goalAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		title := ""
		if len(args) > 0 {
			title = args[0]
		}
		freqFlag, _ := cmd.Flags().GetString("frequency")

		// no args and a terminal: offer the form
		if title == "" && isInteractive() {
			freq := models.Frequency(freqFlag)
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Goal title").Value(&title),
				huh.NewSelect[models.Frequency]().
					Title("Frequency").
					Options(
						huh.NewOption("Daily", models.FrequencyDaily),
						huh.NewOption("Weekly", models.FrequencyWeekly),
						huh.NewOption("Monthly", models.FrequencyMonthly),
					).
					Value(&freq),
			))
			if err := form.Run(); err != nil {
				return err
			}
			freqFlag = string(freq)
		}

		tracker := goals.NewTracker(st)
		if err := tracker.Load(); err != nil {
			output.Error("%v", err)
			return err
		}

		goal, err := tracker.Add(title, models.NormalizeFrequency(freqFlag))
		if err != nil {
			var verr *goals.ValidationError
			if errors.As(err, &verr) {
				output.Error("%v", verr)
				return err
			}
			output.Error("%v", err)
			return err
		}
		output.Success("Added %s goal: %s", goal.Frequency, goal.Title)
		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals with their current-period state",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		tracker := goals.NewTracker(st)
		if err := tracker.Load(); err != nil {
			output.Error("%v", err)
			return err
		}

		filter, _ := cmd.Flags().GetString("frequency")
		now := time.Now()
		shown := goals.FilterByFrequency(tracker.All(), filter)
		if len(shown) == 0 {
			output.Info("No goals yet. Add one with 'ff goal add'.")
			return nil
		}
		for _, g := range shown {
			output.Info("%s", output.GoalLine(g, goals.IsDone(g, now)))
		}
		return nil
	},
}

var goalDoneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"toggle"},
	Short:   "Toggle a goal's completion for the current period",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		tracker := goals.NewTracker(st)
		if err := tracker.Load(); err != nil {
			output.Error("%v", err)
			return err
		}

		id, err := resolveGoalID(tracker, args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		now := time.Now()
		goal, err := tracker.Toggle(id, now)
		if err != nil {
			if errors.Is(err, records.ErrNotFound) {
				output.Error("no goal with id %s", args[0])
			} else {
				output.Error("%v", err)
			}
			return err
		}
		if goals.IsDone(goal, now) {
			output.Success("Marked done for this period: %s", goal.Title)
		} else {
			output.Info("Marked not done for this period: %s", goal.Title)
		}
		return nil
	},
}

var goalRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a goal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		tracker := goals.NewTracker(st)
		if err := tracker.Load(); err != nil {
			output.Error("%v", err)
			return err
		}

		id := args[0]
		if resolved, err := resolveGoalID(tracker, id); err == nil {
			id = resolved
		}
		// removal is idempotent: unknown ids are a quiet no-op
		if err := tracker.Remove(id); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Removed")
		return nil
	},
}

// resolveGoalID accepts a full uuid or an unambiguous prefix
func resolveGoalID(tracker *goals.Tracker, id string) (string, error) {
	if _, err := tracker.Get(id); err == nil {
		return id, nil
	}
	match := ""
	for _, g := range tracker.All() {
		if len(id) >= 4 && len(g.ID) >= len(id) && g.ID[:len(id)] == id {
			if match != "" {
				return "", errors.New("ambiguous goal id prefix: " + id)
			}
			match = g.ID
		}
	}
	if match == "" {
		return "", errors.New("no goal with id " + id)
	}
	return match, nil
}

func init() {
	goalAddCmd.Flags().StringP("frequency", "f", "daily", "daily, weekly, or monthly")
	goalListCmd.Flags().StringP("frequency", "f", goals.FilterAll, "filter: all, daily, weekly, or monthly")

	goalCmd.AddCommand(goalAddCmd, goalListCmd, goalDoneCmd, goalRemoveCmd)
	rootCmd.AddCommand(goalCmd)
}
