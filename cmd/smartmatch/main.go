// Package main provides the smartmatch CLI: an HTTP API server and a
// one-shot analysis command for scoring a resume against a job description.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "smartmatch",
	Short: "Resume match analysis service",
	Long:  "SmartMatch scores a resume against a job description using keyword overlap and semantic similarity, and suggests bullet rewrites for the gaps.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
