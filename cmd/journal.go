package cmd

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/feelfree/ff/internal/journal"
	"github.com/feelfree/ff/internal/models"
	"github.com/feelfree/ff/internal/output"
	"github.com/feelfree/ff/internal/records"
)

var journalCmd = &cobra.Command{
	Use:     "journal",
	Aliases: []string{"j"},
	Short:   "Keep a private journal",
	GroupID: "core",
}

var journalAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Write a new entry",
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
		body, _ := cmd.Flags().GetString("body")

		if title == "" && isInteractive() {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Title").Value(&title),
				huh.NewText().Title("Entry").CharLimit(0).Value(&body),
			))
			if err := form.Run(); err != nil {
				return err
			}
		}

		book := journal.NewBook(st)
		if err := book.Load(); err != nil {
			output.Error("%v", err)
			return err
		}

		entry, err := book.Add(title, body)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Saved entry: %s", entry.Title)
		return nil
	},
}

var journalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		book := journal.NewBook(st)
		if err := book.Load(); err != nil {
			output.Error("%v", err)
			return err
		}

		entries := book.All()
		if len(entries) == 0 {
			output.Info("No entries yet. Add one with 'ff journal add'.")
			return nil
		}
		for _, e := range entries {
			output.Info("%s", output.JournalLine(e))
		}
		return nil
	},
}

var journalShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		book := journal.NewBook(st)
		if err := book.Load(); err != nil {
			output.Error("%v", err)
			return err
		}

		entry, err := getEntry(book, args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		output.Info("%s", output.JournalLine(entry))
		if entry.Body != "" {
			rendered, err := output.RenderMarkdown(entry.Body)
			if err != nil {
				rendered = entry.Body
			}
			cmd.Println(rendered)
		}
		return nil
	},
}

var journalEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		book := journal.NewBook(st)
		if err := book.Load(); err != nil {
			output.Error("%v", err)
			return err
		}

		entry, err := getEntry(book, args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		body := entry.Body
		if cmd.Flags().Changed("body") {
			body, _ = cmd.Flags().GetString("body")
		} else if title == "" && isInteractive() {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Title").Value(&entry.Title),
				huh.NewText().Title("Entry").CharLimit(0).Value(&body),
			))
			if err := form.Run(); err != nil {
				return err
			}
			title = entry.Title
		}

		updated, err := book.Edit(entry.ID, title, body)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Updated entry: %s", updated.Title)
		return nil
	},
}

var journalRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete an entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		book := journal.NewBook(st)
		if err := book.Load(); err != nil {
			output.Error("%v", err)
			return err
		}

		id := args[0]
		if entry, err := getEntry(book, id); err == nil {
			id = entry.ID
		}
		if err := book.Remove(id); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Removed")
		return nil
	},
}

// getEntry accepts a full uuid or an unambiguous prefix
func getEntry(book *journal.Book, id string) (models.JournalEntry, error) {
	if entry, err := book.Get(id); err == nil {
		return entry, nil
	}
	var match models.JournalEntry
	found := false
	for _, e := range book.All() {
		if len(id) >= 4 && len(e.ID) >= len(id) && e.ID[:len(id)] == id {
			if found {
				return models.JournalEntry{}, errors.New("ambiguous entry id prefix: " + id)
			}
			match, found = e, true
		}
	}
	if !found {
		return models.JournalEntry{}, records.ErrNotFound
	}
	return match, nil
}

func init() {
	journalAddCmd.Flags().StringP("body", "b", "", "entry body (markdown)")
	journalEditCmd.Flags().StringP("title", "t", "", "new title")
	journalEditCmd.Flags().StringP("body", "b", "", "new body (markdown)")

	journalCmd.AddCommand(journalAddCmd, journalListCmd, journalShowCmd, journalEditCmd, journalRemoveCmd)
	rootCmd.AddCommand(journalCmd)
}
