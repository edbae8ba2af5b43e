// Package main is the mock-interview server and its operator commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mockinterview",
	Short: "Timed mock-interview backend",
	Long: "Runs a timed Full Stack (React/Node) mock interview: resume upload, " +
		"contact collection, six graded questions and an interviewer dashboard.",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
