// ABOUTME: Machine commands: list, get, create, update, delete, summary
// ABOUTME: List is unpaginated because the backend returns a bare array

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tbenali/captrack/internal/client"
)

var (
	machineSort   string
	machineFilter string
	machineInput  client.Machine
)

var machineCmd = &cobra.Command{
	Use:   "machine",
	Short: "Manage machines",
}

var machineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List machines",
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runMachineList(ctx, w)
		})
	},
}

var machineGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a machine",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runMachineGet(ctx, w, args[0])
		})
	},
}

var machineCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a machine",
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runMachineCreate(ctx, w)
		})
	},
}

var machineUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a machine",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runMachineUpdate(ctx, w, args[0])
		})
	},
}

var machineDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a machine",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runMachineDelete(ctx, w, args[0])
		})
	},
}

var machineSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show fleet counts",
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runMachineSummary(ctx, w)
		})
	},
}

func init() {
	rootCmd.AddCommand(machineCmd)
	machineCmd.AddCommand(machineListCmd, machineGetCmd, machineCreateCmd, machineUpdateCmd, machineDeleteCmd, machineSummaryCmd)

	machineListCmd.Flags().StringVar(&machineSort, "sort", "id,desc", "Sort order, e.g. name,asc")
	machineListCmd.Flags().StringVar(&machineFilter, "filter", "", "Filter expression")
	for _, c := range []*cobra.Command{machineCreateCmd, machineUpdateCmd} {
		c.Flags().StringVar(&machineInput.Name, "name", "", "Machine name")
		c.Flags().StringVar(&machineInput.Model, "model", "", "Model designation")
		c.Flags().StringVar(&machineInput.Description, "description", "", "Free-text description")
		c.Flags().StringVar(&machineInput.Status, "status", "RUNNING", "Status (RUNNING, STOPPED, MAINTENANCE)")
		c.Flags().StringVar(&machineInput.SerialNumber, "serial", "", "Serial number")
		c.Flags().StringVar(&machineInput.InstallationDate, "installed", "", "Installation date (YYYY-MM-DD)")
	}
	machineCreateCmd.MarkFlagRequired("name")
}

func runMachineList(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	machines, err := e.api.ListAllMachines(ctx, machineSort, machineFilter)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, machines)
		return 0
	}

	fmt.Fprintf(w, "%-8s %-20s %-14s %-12s %s\n", "ID", "NAME", "MODEL", "STATUS", "SERIAL")
	for _, m := range machines {
		fmt.Fprintf(w, "%-8s %-20s %-14s %-12s %s\n", m.ID, m.Name, m.Model, m.Status, m.SerialNumber)
	}
	fmt.Fprintf(w, "\n%d machines\n", len(machines))
	return 0
}

func runMachineGet(ctx context.Context, w io.Writer, id string) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	machine, err := e.api.GetMachine(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	printJSON(w, machine)
	return 0
}

func runMachineCreate(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	created, err := e.api.CreateMachine(ctx, machineInput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, created)
	} else {
		fmt.Fprintf(w, "Machine %s created.\n", created.ID)
	}
	return 0
}

func runMachineUpdate(ctx context.Context, w io.Writer, id string) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	updated, err := e.api.UpdateMachine(ctx, id, machineInput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, updated)
	} else {
		fmt.Fprintf(w, "Machine %s updated.\n", id)
	}
	return 0
}

func runMachineDelete(ctx context.Context, w io.Writer, id string) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := e.api.DeleteMachine(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Machine %s deleted.\n", id)
	return 0
}

func runMachineSummary(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	sum, err := e.api.MachinesSummary(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, sum)
		return 0
	}

	fmt.Fprintf(w, `Total:       %d
Running:     %d
Stopped:     %d
Maintenance: %d
`, sum.Total, sum.Running, sum.Stopped, sum.Maintenance)
	return 0
}
