package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/feelfree/ff/internal/api"
	"github.com/feelfree/ff/internal/chatui"
	"github.com/feelfree/ff/internal/models"
	"github.com/feelfree/ff/internal/output"
	"github.com/feelfree/ff/internal/records"
	"github.com/feelfree/ff/internal/store"
)

var chatCmd = &cobra.Command{
	Use:     "chat",
	Short:   "Talk to the support companion",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, dir, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireAuth(dir); err != nil {
			output.Error("%v", err)
			return err
		}
		client := newClient(dir)

		if list, _ := cmd.Flags().GetBool("list"); list {
			return listSessions(client, st)
		}
		if end, _ := cmd.Flags().GetString("end"); end != "" {
			if err := client.EndSession(end); err != nil {
				return reportAPIErr(err)
			}
			output.Success("Ended session %s", end)
			return nil
		}

		if !isInteractive() {
			output.Error("chat needs a terminal")
			return errNotATerminal
		}

		sessionID, _ := cmd.Flags().GetString("session")
		var history []models.ChatMessage
		if sessionID != "" {
			history, err = client.ChatHistory(sessionID)
			if err != nil {
				return reportAPIErr(err)
			}
		} else {
			sessionID, err = client.StartSession()
			if err != nil {
				return reportAPIErr(err)
			}
		}

		model := chatui.New(client, sessionID, history)
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			output.Error("%v", err)
			return err
		}

		if keep, _ := cmd.Flags().GetBool("keep-open"); !keep {
			if err := client.EndSession(sessionID); err != nil {
				output.Warning("could not end session %s: %v", sessionID, err)
			}
		}
		return nil
	},
}

// listSessions prints the user's chat sessions and refreshes the
// local session cache so 'ff status' can report without the network.
func listSessions(client *api.Client, st *store.Store) error {
	sessions, err := client.ListSessions()
	if err != nil {
		return reportAPIErr(err)
	}
	cache := records.New[models.Session](st, store.KeySessions, "")
	if err := cache.ReplaceAll(sessions); err != nil {
		output.Warning("could not refresh session cache: %v", err)
	}
	if len(sessions) == 0 {
		output.Info("No chat sessions yet. Start one with 'ff chat'.")
		return nil
	}
	for _, s := range sessions {
		output.Info("%s", output.SessionLine(s))
	}
	return nil
}

func init() {
	chatCmd.Flags().Bool("list", false, "list past sessions instead of chatting")
	chatCmd.Flags().String("end", "", "end the given session")
	chatCmd.Flags().String("session", "", "resume an existing session")
	chatCmd.Flags().Bool("keep-open", false, "leave the session open on exit")

	rootCmd.AddCommand(chatCmd)
}
