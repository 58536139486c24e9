// ABOUTME: Bottle-cap commands: CRUD, summary, detection upload, history
// ABOUTME: Detect streams a local image file to the analysis endpoint

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tbenali/captrack/internal/client"
)

var (
	capListOpts    listFlags
	capInput       client.Cap
	capHistoryPage int
	capHistorySize int
)

var capCmd = &cobra.Command{
	Use:   "cap",
	Short: "Manage bottle caps and defect detection",
}

var capListCmd = &cobra.Command{
	Use:   "list",
	Short: "List inspected caps",
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runCapList(ctx, w)
		})
	},
}

var capGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a cap record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runCapGet(ctx, w, args[0])
		})
	},
}

var capCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Record an inspected cap",
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runCapCreate(ctx, w)
		})
	},
}

var capUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a cap record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runCapUpdate(ctx, w, args[0])
		})
	},
}

var capDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a cap record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runCapDelete(ctx, w, args[0])
		})
	},
}

var capSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show inspection counts and defect rate",
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runCapSummary(ctx, w)
		})
	},
}

var capDetectCmd = &cobra.Command{
	Use:   "detect <image>",
	Short: "Run defect detection on a cap image",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runCapDetect(ctx, w, args[0])
		})
	},
}

var capHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past detection results",
	Run: func(cmd *cobra.Command, args []string) {
		runResource(func(ctx context.Context, w io.Writer) int {
			return runCapHistory(ctx, w)
		})
	},
}

func init() {
	rootCmd.AddCommand(capCmd)
	capCmd.AddCommand(capListCmd, capGetCmd, capCreateCmd, capUpdateCmd, capDeleteCmd, capSummaryCmd, capDetectCmd, capHistoryCmd)

	capListOpts.register(capListCmd)
	for _, c := range []*cobra.Command{capCreateCmd, capUpdateCmd} {
		c.Flags().StringVar(&capInput.BatchNumber, "batch", "", "Batch number")
		c.Flags().StringVar(&capInput.ProductionDate, "produced", "", "Production date (YYYY-MM-DD)")
		c.Flags().IntVar(&capInput.MachineID, "machine-id", 0, "Producing machine ID")
		c.Flags().BoolVar(&capInput.IsDefective, "defective", false, "Mark as defective")
		c.Flags().StringVar(&capInput.DefectType, "defect-type", "", "Defect classification")
	}
	capCreateCmd.MarkFlagRequired("batch")

	capHistoryCmd.Flags().IntVar(&capHistoryPage, "page", 0, "Page number (0-based)")
	capHistoryCmd.Flags().IntVar(&capHistorySize, "size", 10, "Page size")
}

func runCapList(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	page, err := e.api.ListCaps(ctx, capListOpts.query())
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, page)
		return 0
	}

	fmt.Fprintf(w, "%-5s %-14s %-10s %-10s %s\n", "ID", "BATCH", "MACHINE", "DEFECTIVE", "DEFECT")
	for _, cp := range page.Content {
		defective := "no"
		if cp.IsDefective {
			defective = "yes"
		}
		fmt.Fprintf(w, "%-5d %-14s %-10d %-10s %s\n", cp.ID, cp.BatchNumber, cp.MachineID, defective, cp.DefectType)
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d caps)\n", page.Number+1, page.TotalPages, page.TotalElements)
	return 0
}

func runCapGet(ctx context.Context, w io.Writer, rawID string) int {
	id, ok := parseIntID(w, rawID)
	if !ok {
		return 2
	}

	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	record, err := e.api.GetCap(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	printJSON(w, record)
	return 0
}

func runCapCreate(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	created, err := e.api.CreateCap(ctx, capInput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, created)
	} else {
		fmt.Fprintf(w, "Cap %d created.\n", created.ID)
	}
	return 0
}

func runCapUpdate(ctx context.Context, w io.Writer, rawID string) int {
	id, ok := parseIntID(w, rawID)
	if !ok {
		return 2
	}

	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	updated, err := e.api.UpdateCap(ctx, id, capInput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, updated)
	} else {
		fmt.Fprintf(w, "Cap %d updated.\n", id)
	}
	return 0
}

func runCapDelete(ctx context.Context, w io.Writer, rawID string) int {
	id, ok := parseIntID(w, rawID)
	if !ok {
		return 2
	}

	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := e.api.DeleteCap(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Cap %d deleted.\n", id)
	return 0
}

func runCapSummary(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	sum, err := e.api.CapsSummary(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, sum)
		return 0
	}

	fmt.Fprintf(w, `Total:       %d
Defective:   %d
Defect rate: %.1f%%
`, sum.Total, sum.Defective, sum.Rate*100)
	return 0
}

func runCapDetect(ctx context.Context, w io.Writer, path string) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(w, "Error: cannot open image: %v\n", err)
		return 2
	}
	defer f.Close()

	result, err := e.api.DetectCap(ctx, filepath.Base(path), f)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, result)
		return 0
	}

	if result.IsDefective {
		fmt.Fprintf(w, "DEFECTIVE (%s) confidence %.1f%%\n", result.DefectType, result.Confidence*100)
		return 1
	}
	fmt.Fprintf(w, "OK confidence %.1f%%\n", result.Confidence*100)
	return 0
}

func runCapHistory(ctx context.Context, w io.Writer) int {
	e, err := newEnv(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	page, err := e.api.DetectionHistory(ctx, capHistoryPage, capHistorySize)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, page)
		return 0
	}

	fmt.Fprintf(w, "%-5s %-22s %-10s %-12s %s\n", "ID", "DETECTED", "DEFECTIVE", "CONFIDENCE", "DEFECT")
	for _, d := range page.Content {
		defective := "no"
		if d.IsDefective {
			defective = "yes"
		}
		fmt.Fprintf(w, "%-5d %-22s %-10s %-12.1f %s\n", d.ID, d.DetectedAt, defective, d.Confidence*100, d.DefectType)
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d detections)\n", page.Number+1, page.TotalPages, page.TotalElements)
	return 0
}
