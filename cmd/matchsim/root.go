package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd is matchsim's root command.
var RootCmd = &cobra.Command{
	Use:   "matchsim",
	Short: "Deterministic baseball match simulation harness",
	Long:  "matchsim drives the match simulation engine across one or many games and reports the results.",
}

func init() {
	RootCmd.PersistentFlags().String("content", "", "path to an overriding content pack directory (defaults to the embedded pack)")
	viper.BindPFlag("content", RootCmd.PersistentFlags().Lookup("content"))

	RootCmd.AddCommand(SimulateCmd())
	RootCmd.AddCommand(TraceCmd())
}
