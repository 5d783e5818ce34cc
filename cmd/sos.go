package cmd

import (
	"github.com/spf13/cobra"

	"github.com/feelfree/ff/internal/output"
	"github.com/feelfree/ff/internal/sos"
)

var sosCmd = &cobra.Command{
	Use:     "sos",
	Short:   "Emergency contacts, always available offline",
	GroupID: "core",
	// bare 'ff sos' shows the contacts immediately
	RunE: func(cmd *cobra.Command, args []string) error {
		return sosListCmd.RunE(cmd, args)
	},
}

var sosListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List helplines and personal contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		book := sos.NewBook(st)
		if err := book.Load(); err != nil {
			output.Error("%v", err)
			return err
		}
		for _, c := range book.All() {
			output.Info("%s", output.ContactLine(c))
		}
		return nil
	},
}

var sosAddCmd = &cobra.Command{
	Use:   "add <name> <phone>",
	Short: "Add a personal emergency contact",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		book := sos.NewBook(st)
		if err := book.Load(); err != nil {
			output.Error("%v", err)
			return err
		}

		contact, err := book.Add(args[0], args[1])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Added contact: %s (%s)", contact.Name, contact.Phone)
		return nil
	},
}

var sosRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a personal contact",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		book := sos.NewBook(st)
		if err := book.Load(); err != nil {
			output.Error("%v", err)
			return err
		}

		if err := book.Remove(args[0]); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Removed")
		return nil
	},
}

func init() {
	sosCmd.AddCommand(sosListCmd, sosAddCmd, sosRemoveCmd)
	rootCmd.AddCommand(sosCmd)
}
