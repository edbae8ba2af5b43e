package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mockinterview/backend/internal/service"
	"github.com/mockinterview/backend/internal/simulation"
	"github.com/mockinterview/backend/internal/store"
)

var simulatePersist bool

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a scripted interview on a simulated clock",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().BoolVar(&simulatePersist, "persist", false, "Save the simulated candidate to the configured store")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, logger, kv, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer kv.Close()

	var st service.StateStore
	if simulatePersist {
		st = store.NewPersister(kv, cfg.StateKey, logger)
	}

	res, err := simulation.Run(ctx, simulation.DefaultScript(), simulation.Options{
		Store:  st,
		Logger: logger,
		Out:    os.Stdout,
	})
	if err != nil {
		return err
	}

	logger.Info("simulation finished",
		zap.String("candidate_id", res.Candidate.ID),
		zap.Int("notices", len(res.Notices)),
	)
	if res.Candidate.FinalScore != nil {
		fmt.Printf("\nFinal score: %d/60\n", *res.Candidate.FinalScore)
	}
	return nil
}
