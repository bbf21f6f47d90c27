package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canopyhq/canopy/pkg/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog.yaml]",
	Short: "Check a question catalog for consistency",
	Long:  `Validates a YAML catalog: duplicate IDs or positions, dangling follow-up references, unreferenced follow-up-only nodes, and malformed questions.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalog is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("catalog")
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no catalog given; pass a path or --catalog")
	}

	if _, err := catalog.LoadFile(path); err != nil {
		return err
	}
	return nil
}
