package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "canopy",
	Short: "Canopy is an adaptive business-discovery conversation engine",
	Long:  `Canopy walks users through a branching discovery conversation, generating real-time business insights from their answers.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("catalog", "", "Path to a YAML question catalog (default: built-in)")
}
