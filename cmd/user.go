// ABOUTME: User administration commands: list, get, create, update, delete
// ABOUTME: The backend enforces the admin role; a 403 tears the session down

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tbenali/captrack/internal/client"
)

var (
	userListOpts listFlags
	userInput    client.Account
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts (admin only)",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runUserList(ctx, w)
		})
	},
}

var userGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a user account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runUserGet(ctx, w, args[0])
		})
	},
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runUserCreate(ctx, w)
		})
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runUserUpdate(ctx, w, args[0])
		})
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runUserDelete(ctx, w, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userListCmd, userGetCmd, userCreateCmd, userUpdateCmd, userDeleteCmd)

	userListOpts.register(userListCmd)
	for _, c := range []*cobra.Command{userCreateCmd, userUpdateCmd} {
		c.Flags().StringVar(&userInput.Email, "email", "", "Account email")
		c.Flags().StringVar(&userInput.FullName, "name", "", "Full name")
		c.Flags().StringVar(&userInput.Phone, "phone", "", "Phone number")
		c.Flags().StringVar(&userInput.Role, "role", "USER", "Role (USER or ADMIN)")
	}
	userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.MarkFlagRequired("name")
}

func runUserList(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	page, err := e.api.ListUsers(ctx, userListOpts.query())
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, page)
		return 0
	}

	fmt.Fprintf(w, "%-10s %-28s %-22s %s\n", "ID", "EMAIL", "NAME", "ROLE")
	for _, a := range page.Content {
		fmt.Fprintf(w, "%-10s %-28s %-22s %s\n", a.ID, a.Email, a.FullName, a.Role)
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d users)\n", page.Number+1, page.TotalPages, page.TotalElements)
	return 0
}

func runUserGet(ctx context.Context, w io.Writer, id string) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	account, err := e.api.GetUser(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	printJSON(w, account)
	return 0
}

func runUserCreate(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	created, err := e.api.CreateUser(ctx, userInput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, created)
	} else {
		fmt.Fprintf(w, "User %s created.\n", created.Email)
	}
	return 0
}

func runUserUpdate(ctx context.Context, w io.Writer, id string) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	updated, err := e.api.UpdateUser(ctx, id, userInput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, updated)
	} else {
		fmt.Fprintf(w, "User %s updated.\n", updated.Email)
	}
	return 0
}

func runUserDelete(ctx context.Context, w io.Writer, id string) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := e.api.DeleteUser(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "User %s deleted.\n", id)
	return 0
}
