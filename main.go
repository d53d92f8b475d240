// Command skillmatch extracts skills from a resume and scores them against a
// job description, from the command line, over HTTP or from a RabbitMQ queue.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "skillmatch",
	Short:         "Resume parser and job matcher",
	Long:          "skillmatch reads a PDF or DOCX resume, detects known skills and compares them with the skills found in a job description.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
