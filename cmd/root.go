// ABOUTME: Root command for the captrack console
// ABOUTME: Global flags plus construction of the session/client environment

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbenali/captrack/internal/alert"
	"github.com/tbenali/captrack/internal/client"
	"github.com/tbenali/captrack/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "captrack",
	Short: "Console for the CapTrack monitoring platform",
	Long: `captrack is a command-line and TUI console for the CapTrack industrial
monitoring platform: sensors, machines, bottle-cap defect detection, and
user administration.

Log in first with 'captrack login'; the session is kept in the config
directory until you log out or the token expires.

Environment Variables:
  CAPTRACK_API_URL     Backend API URL (default: http://localhost:8080)
  CAPTRACK_CONFIG_DIR  Session and log directory (default: ~/.config/captrack)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides CAPTRACK_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("CAPTRACK_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// ConfigDir returns the session/log directory, honoring the env override.
func ConfigDir() string {
	if dir := os.Getenv("CAPTRACK_CONFIG_DIR"); dir != "" {
		return dir
	}
	return session.DefaultConfigDir()
}

// env bundles the wired session, alert bus, and API client for a command.
type env struct {
	sess *session.Session
	bus  *alert.Bus
	api  *client.Client
}

// newEnv restores the session from disk and wires the client to it. The
// unauthorized hook tells the user to log in again.
func newEnv(w io.Writer) (*env, error) {
	store := session.NewFileStore(ConfigDir())
	sess := session.New(store)
	if err := sess.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	bus := alert.NewBus()
	api := client.New(GetAPIURL(), sess)
	api.OnUnauthorized(func() {
		fmt.Fprintln(w, "Session expired. Run 'captrack login' to sign in again.")
	})

	return &env{sess: sess, bus: bus, api: api}, nil
}
