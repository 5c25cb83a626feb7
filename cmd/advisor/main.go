// Package main provides the entry point for the college advisor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Engineering college advisor chatbot",
	Long:  "Advisor answers questions about a catalog of engineering colleges (cutoffs, fees, placements, eligibility, recommendations), with a generative fallback for open-ended questions.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
