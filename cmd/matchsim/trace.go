package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/baseball-sim/matchsim/internal/engine"
)

// TraceCmd dumps one seeded game's full GameTraceLog as JSON, for
// debugging and replay.
func TraceCmd() *cobra.Command {
	var seed int64
	var homePath, awayPath string

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Simulate a single seeded game and print its trace log as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			pack, err := loadPack(viper.GetString("content"))
			if err != nil {
				return fmt.Errorf("error: %w", err)
			}

			home, away, err := loadMatchup(homePath, awayPath, pack)
			if err != nil {
				return fmt.Errorf("error: %w", err)
			}
			if err := home.Validate(); err != nil {
				return fmt.Errorf("error: %w", err)
			}
			if err := away.Validate(); err != nil {
				return fmt.Errorf("error: %w", err)
			}

			opts := engine.Options{Pack: &pack, EnableTrace: true, Seed: &seed}
			result, err := engine.Simulate(home, away, opts)
			if err != nil && result.TraceLog == nil {
				return fmt.Errorf("error: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(result.TraceLog); encErr != nil {
				return fmt.Errorf("error: encoding trace log: %w", encErr)
			}
			return err
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 1, "RNG seed for the traced game")
	cmd.Flags().StringVar(&homePath, "home", "", "path to the home team's roster YAML (defaults to the embedded sample)")
	cmd.Flags().StringVar(&awayPath, "away", "", "path to the away team's roster YAML (defaults to the embedded sample)")
	return cmd
}
