// ABOUTME: Register command creating a new backend account
// ABOUTME: A created account must log in separately

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tbenali/captrack/internal/client"
)

var (
	registerEmail    string
	registerName     string
	registerPhone    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a new CapTrack account. Registration does not log you in;
run 'captrack login' afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "Phone number")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("password")
}

// runRegister executes the registration and returns an exit code
func runRegister(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	created, err := e.api.Register(ctx, client.RegisterInput{
		Email:    registerEmail,
		FullName: registerName,
		Phone:    registerPhone,
		Password: registerPassword,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(created, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Account created for %s. Run 'captrack login' to sign in.\n", created.Email)
	}
	return 0
}
