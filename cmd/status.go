package cmd

import (
	"github.com/spf13/cobra"

	"github.com/feelfree/ff/internal/config"
	"github.com/feelfree/ff/internal/output"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show account, data, and sync state",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, dir, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		creds, err := config.LoadAuth(dir)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if creds == nil {
			output.Info("Account:  not logged in")
		} else if creds.Name != "" {
			output.Info("Account:  %s <%s>", creds.Name, creds.Email)
		} else {
			output.Info("Account:  %s", creds.Email)
		}

		output.Info("Backend:  %s", config.APIBaseURL(dir))
		output.Info("Data:     %s", st.Path())

		depth, err := st.OutboxDepth()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if depth == 0 {
			output.Info("Pending:  nothing to sync")
		} else {
			output.Warning("Pending:  %d change(s) waiting, run 'ff sync'", depth)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
