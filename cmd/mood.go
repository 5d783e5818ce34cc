package cmd

import (
	"errors"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/feelfree/ff/internal/api"
	"github.com/feelfree/ff/internal/mood"
	"github.com/feelfree/ff/internal/output"
)

var moodCmd = &cobra.Command{
	Use:     "mood",
	Aliases: []string{"moods"},
	Short:   "Log and review daily moods",
	GroupID: "core",
}

var moodLogCmd = &cobra.Command{
	Use:     "log <mood> [note]",
	Aliases: []string{"add"},
	Short:   "Log today's mood (or another date with --date)",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := moodService()
		if err != nil {
			return err
		}
		defer closeStore()

		note := ""
		if len(args) > 1 {
			note = args[1]
		}
		now := time.Now()
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = now.Format(mood.DateLayout)
		}

		entry, err := svc.Log(date, args[0], note, now)
		if err != nil {
			return reportAPIErr(err)
		}
		output.Success("Logged %s for %s", entry.Mood, entry.Date)
		return nil
	},
}

var moodListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List logged moods",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := moodService()
		if err != nil {
			return err
		}
		defer closeStore()

		moods, err := svc.List()
		if err != nil {
			if api.IsUnavailable(err) {
				// offline: fall back to the cached copy, flagged as such
				cached, cerr := svc.Cached()
				if cerr == nil && len(cached) > 0 {
					output.Warning("backend unreachable, showing cached moods")
					for _, m := range cached {
						output.Info("%s", output.MoodLine(m))
					}
					return nil
				}
			}
			return reportAPIErr(err)
		}
		if len(moods) == 0 {
			output.Info("No moods logged yet. Log one with 'ff mood log'.")
			return nil
		}
		for _, m := range moods {
			output.Info("%s", output.MoodLine(m))
		}
		return nil
	},
}

var moodShowCmd = &cobra.Command{
	Use:   "show <date>",
	Short: "Show the mood logged for a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := moodService()
		if err != nil {
			return err
		}
		defer closeStore()

		entry, err := svc.ByDate(args[0])
		if err != nil {
			if errors.Is(err, api.ErrNotFound) {
				output.Info("No mood logged for %s", args[0])
				return nil
			}
			return reportAPIErr(err)
		}
		output.Info("%s", output.MoodLine(*entry))
		if entry.Sentiment != 0 {
			output.Info("note sentiment: %+d", entry.Sentiment)
		}
		return nil
	},
}

var moodRemoveCmd = &cobra.Command{
	Use:     "rm <date>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete the mood logged for a date",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := moodService()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := svc.Remove(args[0]); err != nil {
			if errors.Is(err, api.ErrNotFound) {
				output.Info("No mood logged for %s", args[0])
				return nil
			}
			return reportAPIErr(err)
		}
		output.Success("Removed mood for %s", args[0])
		return nil
	},
}

var moodSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show aggregate mood statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := getDataDir()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		creds, err := requireAuth(dir)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		summary, err := newClient(dir).GetMoodSummary(creds.UserID)
		if err != nil {
			return reportAPIErr(err)
		}

		output.Info("Moods logged: %d", summary.Total)
		if summary.Total > 0 {
			output.Info("Average note sentiment: %.2f", summary.AvgScore)
			if summary.FirstDate != "" {
				output.Info("From %s to %s", summary.FirstDate, summary.LastDate)
			}
			names := make([]string, 0, len(summary.ByMood))
			for name := range summary.ByMood {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				output.Info("  %-10s %d", name, summary.ByMood[name])
			}
		}
		return nil
	},
}

func moodService() (*mood.Service, func(), error) {
	st, dir, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	if _, err := requireAuth(dir); err != nil {
		st.Close()
		output.Error("%v", err)
		return nil, nil, err
	}
	return mood.NewService(newClient(dir), st), func() { st.Close() }, nil
}

func reportAPIErr(err error) error {
	switch {
	case api.IsAuthError(err):
		output.Error("session expired: run 'ff login' again")
	case api.IsUnavailable(err):
		output.Error("backend unreachable: %v", err)
	default:
		output.Error("%v", err)
	}
	return err
}

func init() {
	moodLogCmd.Flags().StringP("date", "d", "", "date to log (YYYY-MM-DD, default today)")

	moodCmd.AddCommand(moodLogCmd, moodListCmd, moodShowCmd, moodRemoveCmd, moodSummaryCmd)
	rootCmd.AddCommand(moodCmd)
}
