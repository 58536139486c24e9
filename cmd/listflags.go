// ABOUTME: Shared pagination flags for resource list commands
// ABOUTME: Mirrors the backend's page/size/sort/filter parameters

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tbenali/captrack/internal/client"
)

// listFlags holds the standard pagination flags.
type listFlags struct {
	page   int
	size   int
	sort   string
	filter string
}

// register adds the pagination flags to a list command.
func (lf *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&lf.page, "page", 0, "Page number (0-based)")
	cmd.Flags().IntVar(&lf.size, "size", 10, "Page size")
	cmd.Flags().StringVar(&lf.sort, "sort", "id,desc", "Sort order, e.g. name,asc")
	cmd.Flags().StringVar(&lf.filter, "filter", "", "Filter expression")
}

// query converts the flags to a client query.
func (lf *listFlags) query() client.ListQuery {
	return client.ListQuery{
		Page:   lf.page,
		Size:   lf.size,
		Sort:   lf.sort,
		Filter: lf.filter,
	}
}
