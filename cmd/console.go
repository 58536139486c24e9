// ABOUTME: Console command launching the interactive TUI
// ABOUTME: Restores the session, wires the alert bus, and runs bubbletea

package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tbenali/captrack/internal/alert"
	"github.com/tbenali/captrack/internal/client"
	"github.com/tbenali/captrack/internal/debuglog"
	"github.com/tbenali/captrack/internal/session"
	"github.com/tbenali/captrack/internal/tui"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Launch the interactive console",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runConsole(); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

// runConsole wires the session and client, then runs the TUI until quit.
func runConsole() int {
	if err := debuglog.Init(ConfigDir()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log unavailable: %v\n", err)
	}
	defer debuglog.Close()

	store := session.NewFileStore(ConfigDir())
	sess := session.New(store)
	if err := sess.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to restore session: %v\n", err)
		return 2
	}

	bus := alert.NewBus()
	api := client.New(GetAPIURL(), sess)

	app := tui.New(api, sess, bus)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}
