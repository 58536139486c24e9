// ABOUTME: Login command establishing a backend session
// ABOUTME: Prompts for missing credentials with a huh form

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tbenali/captrack/internal/client"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend",
	Long:  `Authenticate against the CapTrack backend and store the session locally.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
}

// runLogin executes the login flow and returns an exit code
func runLogin(ctx context.Context, w io.Writer) int {
	if loginEmail == "" || loginPassword == "" {
		if err := promptCredentials(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user, err := e.api.Login(ctx, loginEmail, loginPassword)
	if err != nil {
		if errors.Is(err, client.ErrInvalidCredentials) {
			fmt.Fprintln(w, "Error: invalid email or password")
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s (%s)\n", user.FullName, user.Role)
	}
	return 0
}

// promptCredentials fills the missing login flags interactively.
func promptCredentials() error {
	var fields []huh.Field
	if loginEmail == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&loginEmail))
	}
	if loginPassword == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&loginPassword))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase())
	return form.Run()
}
