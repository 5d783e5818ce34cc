package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/feelfree/ff/internal/api"
	"github.com/feelfree/ff/internal/output"
	"github.com/feelfree/ff/internal/sync"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Short:   "Push pending local changes to the backend",
	GroupID: "system",
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

		res, err := sync.Flush(st, newClient(dir), time.Now())
		if err != nil {
			if api.IsAuthError(err) {
				output.Error("session expired: run 'ff login' again")
			} else {
				output.Error("%v", err)
			}
			return err
		}

		if res.Delivered > 0 {
			output.Success("Delivered %d change(s)", res.Delivered)
		}
		if res.Deferred > 0 {
			output.Warning("%d change(s) deferred, will retry later", res.Deferred)
		}
		if res.Dropped > 0 {
			output.Warning("%d change(s) rejected by the backend", res.Dropped)
		}
		if res.Delivered == 0 && res.Deferred == 0 && res.Dropped == 0 {
			output.Info("Nothing to sync")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
