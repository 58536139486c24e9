// ABOUTME: Profile command for updating the account's display name
// ABOUTME: Email and role are identity fields and never change here

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

var profileName string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the logged-in profile",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the display name",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runProfileUpdate(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "New display name")
	profileUpdateCmd.MarkFlagRequired("name")
}

// runProfileUpdate pushes the new name and returns an exit code
func runProfileUpdate(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if !e.sess.IsAuthenticated() {
		fmt.Fprintln(w, "Not logged in.")
		return 1
	}

	updated, err := e.api.UpdateProfile(ctx, client.ProfileUpdate{FullName: profileName})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(updated, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Profile updated: %s\n", updated.FullName)
	}
	return 0
}
