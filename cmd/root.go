package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/feelfree/ff/internal/api"
	"github.com/feelfree/ff/internal/config"
	"github.com/feelfree/ff/internal/output"
	"github.com/feelfree/ff/internal/store"
)

var (
	version string
	dataDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "ff",
	Short: "FeelFree companion CLI",
	Long: `ff - command-line companion for the FeelFree mental-wellness service.

Track goals, keep a journal, log moods, talk to the support bot, and
keep emergency contacts at hand. Goals, journal entries, and SOS
contacts live locally and sync to the backend opportunistically;
moods and chat sessions live on the backend.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = "dev"
	cobra.OnInitialize(func() {
		if version != "" {
			rootCmd.Version = version
		}
	})

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.config/feelfree)")

	// accept underscore spellings like --data_dir
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Wellness Commands:"},
		&cobra.Group{ID: "system", Title: "Account & Sync Commands:"},
	)
}

// getDataDir resolves the data directory from the global flag
func getDataDir() (string, error) {
	return config.Dir(dataDir)
}

// openStore opens the local store, reporting failures via output
func openStore() (*store.Store, string, error) {
	dir, err := getDataDir()
	if err != nil {
		output.Error("%v", err)
		return nil, "", err
	}
	st, err := store.Open(dir)
	if err != nil {
		output.Error("%v", err)
		return nil, "", err
	}
	return st, dir, nil
}

// newClient builds the API client for the configured backend
func newClient(dir string) *api.Client {
	return api.New(config.APIBaseURL(dir), api.TokenFunc(config.TokenProvider(dir)))
}

// requireAuth loads stored credentials or fails with a hint
func requireAuth(dir string) (*config.AuthCredentials, error) {
	creds, err := config.LoadAuth(dir)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, fmt.Errorf("not logged in: run 'ff login' first")
	}
	return creds, nil
}

