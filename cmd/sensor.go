// ABOUTME: Sensor commands: list, get, create, update, delete, summary
// ABOUTME: Thin wrappers over the sensor endpoints with table output

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tbenali/captrack/internal/client"
)

var (
	sensorListOpts listFlags
	sensorInput    client.Sensor
)

var sensorCmd = &cobra.Command{
	Use:   "sensor",
	Short: "Manage sensors",
}

var sensorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sensors",
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runSensorList(ctx, w)
		})
	},
}

var sensorGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a sensor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runSensorGet(ctx, w, args[0])
		})
	},
}

var sensorCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a sensor",
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runSensorCreate(ctx, w)
		})
	},
}

var sensorUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a sensor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runSensorUpdate(ctx, w, args[0])
		})
	},
}

var sensorDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a sensor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runSensorDelete(ctx, w, args[0])
		})
	},
}

var sensorSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show fleet counts",
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runSensorSummary(ctx, w)
		})
	},
}

func init() {
	rootCmd.AddCommand(sensorCmd)
	sensorCmd.AddCommand(sensorListCmd, sensorGetCmd, sensorCreateCmd, sensorUpdateCmd, sensorDeleteCmd, sensorSummaryCmd)

	sensorListOpts.register(sensorListCmd)
	for _, c := range []*cobra.Command{sensorCreateCmd, sensorUpdateCmd} {
		c.Flags().StringVar(&sensorInput.Name, "name", "", "Sensor name")
		c.Flags().StringVar(&sensorInput.Type, "type", "", "Sensor type (TEMPERATURE, HUMIDITY, VIBRATION, LIGHT)")
		c.Flags().StringVar(&sensorInput.Location, "location", "", "Physical location")
		c.Flags().IntVar(&sensorInput.MachineID, "machine-id", 0, "Attached machine ID")
		c.Flags().Float64Var(&sensorInput.Value, "value", 0, "Current reading")
		c.Flags().StringVar(&sensorInput.Unit, "unit", "", "Reading unit")
		c.Flags().StringVar(&sensorInput.Status, "status", "ACTIVE", "Status (ACTIVE, INACTIVE, MAINTENANCE)")
	}
	sensorCreateCmd.MarkFlagRequired("name")
	sensorCreateCmd.MarkFlagRequired("type")
}

// runResource wraps a resource handler with signal handling and exit codes.
func runResource(fn func(ctx context.Context, w io.Writer) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if exitCode := fn(ctx, os.Stdout); exitCode != 0 {
		os.Exit(exitCode)
	}
}

func runSensorList(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	page, err := e.api.ListSensors(ctx, sensorListOpts.query())
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, page)
		return 0
	}

	fmt.Fprintf(w, "%-5s %-18s %-12s %-16s %-12s %s\n", "ID", "NAME", "TYPE", "LOCATION", "STATUS", "VALUE")
	for _, s := range page.Content {
		fmt.Fprintf(w, "%-5d %-18s %-12s %-16s %-12s %.1f %s\n",
			s.ID, s.Name, s.Type, s.Location, s.Status, s.Value, s.Unit)
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d sensors)\n", page.Number+1, page.TotalPages, page.TotalElements)
	return 0
}

func runSensorGet(ctx context.Context, w io.Writer, rawID string) int {
	id, ok := parseIntID(w, rawID)
	if !ok {
		return 2
	}

	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	sensor, err := e.api.GetSensor(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	printJSON(w, sensor)
	return 0
}

func runSensorCreate(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	created, err := e.api.CreateSensor(ctx, sensorInput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, created)
	} else {
		fmt.Fprintf(w, "Sensor %d created.\n", created.ID)
	}
	return 0
}

func runSensorUpdate(ctx context.Context, w io.Writer, rawID string) int {
	id, ok := parseIntID(w, rawID)
	if !ok {
		return 2
	}

	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	updated, err := e.api.UpdateSensor(ctx, id, sensorInput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, updated)
	} else {
		fmt.Fprintf(w, "Sensor %d updated.\n", id)
	}
	return 0
}

func runSensorDelete(ctx context.Context, w io.Writer, rawID string) int {
	id, ok := parseIntID(w, rawID)
	if !ok {
		return 2
	}

	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := e.api.DeleteSensor(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Sensor %d deleted.\n", id)
	return 0
}

func runSensorSummary(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	sum, err := e.api.SensorsSummary(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, sum)
		return 0
	}

	fmt.Fprintf(w, `Total:       %d
Active:      %d
Inactive:    %d
Maintenance: %d
`, sum.Total, sum.Active, sum.Inactive, sum.Maintenance)
	return 0
}

// parseIntID parses a numeric ID argument.
func parseIntID(w io.Writer, raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", raw)
		return 0, false
	}
	return id, true
}

// printJSON writes indented JSON output.
func printJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}
