package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/feelfree/ff/internal/api"
	"github.com/feelfree/ff/internal/config"
	"github.com/feelfree/ff/internal/output"
)

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Log in to the FeelFree backend",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := getDataDir()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			if !isInteractive() {
				err := fmt.Errorf("--email and --password are required in non-interactive mode")
				output.Error("%v", err)
				return err
			}
			if err := promptCredentials(&email, &password, nil); err != nil {
				return err
			}
		}

		client := newClient(dir)
		resp, err := client.Login(email, password)
		if err != nil {
			output.Error("login failed: %v", err)
			return err
		}

		if err := saveCredentials(dir, resp); err != nil {
			output.Error("save credentials: %v", err)
			return err
		}
		output.Success("Logged in as %s", resp.User.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:     "register",
	Short:   "Create a FeelFree account",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := getDataDir()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if name == "" || email == "" || password == "" {
			if !isInteractive() {
				err := fmt.Errorf("--name, --email and --password are required in non-interactive mode")
				output.Error("%v", err)
				return err
			}
			if err := promptCredentials(&email, &password, &name); err != nil {
				return err
			}
		}
		if strings.TrimSpace(name) == "" {
			err := fmt.Errorf("name must not be empty")
			output.Error("%v", err)
			return err
		}

		client := newClient(dir)
		resp, err := client.Register(name, email, password)
		if err != nil {
			output.Error("registration failed: %v", err)
			return err
		}

		// some backend versions omit the token on register
		if resp.Token == "" {
			resp, err = client.Login(email, password)
			if err != nil {
				output.Warning("account created, but automatic login failed: %v", err)
				output.Info("Run 'ff login' to sign in.")
				return nil
			}
		}
		if err := saveCredentials(dir, resp); err != nil {
			output.Error("save credentials: %v", err)
			return err
		}
		output.Success("Welcome, %s", resp.User.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Forget stored credentials",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := getDataDir()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if err := config.ClearAuth(dir); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Logged out")
		return nil
	},
}

func saveCredentials(dir string, resp *api.AuthResponse) error {
	return config.SaveAuth(dir, &config.AuthCredentials{
		Token:  resp.Token,
		UserID: resp.User.ID,
		Name:   resp.User.Name,
		Email:  resp.User.Email,
	})
}

// promptCredentials collects missing fields interactively. A non-nil
// name pointer adds the registration name field.
func promptCredentials(email, password, name *string) error {
	var fields []huh.Field
	if name != nil && *name == "" {
		fields = append(fields, huh.NewInput().Title("Name").Value(name))
	}
	if *email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(email))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

var errNotATerminal = errors.New("standard input is not a terminal")

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")

	registerCmd.Flags().String("name", "", "display name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd)
}
