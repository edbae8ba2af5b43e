package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mockinterview/backend/internal/dashboard"
	"github.com/mockinterview/backend/internal/store"
)

var (
	dashboardSearch    string
	dashboardSort      string
	dashboardCandidate string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the candidate table from the configured store",
	RunE:  runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardSearch, "search", "", "Filter by name, email or phone")
	dashboardCmd.Flags().StringVar(&dashboardSort, "sort", string(dashboard.SortByScore), "Sort by score or date")
	dashboardCmd.Flags().StringVar(&dashboardCandidate, "id", "", "Print one candidate's full detail as JSON")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, logger, kv, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer kv.Close()

	st := store.NewPersister(kv, cfg.StateKey, logger).Load(ctx)

	if dashboardCandidate != "" {
		c, ok := st.Find(dashboardCandidate)
		if !ok {
			return fmt.Errorf("candidate %q not found", dashboardCandidate)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dashboard.DetailOf(*c))
	}

	sortBy := dashboard.SortBy(dashboardSort)
	if sortBy != dashboard.SortByScore && sortBy != dashboard.SortByDate {
		return fmt.Errorf("--sort must be %q or %q", dashboard.SortByScore, dashboard.SortByDate)
	}
	rows := dashboard.List(st, dashboard.Query{Search: dashboardSearch, SortBy: sortBy})
	return dashboard.WriteTable(os.Stdout, rows)
}
