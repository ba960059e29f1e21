/*
Copyright © 2026 Michael Putera Wardana <michaelputeraw@gmail.com>
*/
package cmd

import (
	"github.com/krobus00/kite-order-cli/internal/bootstrap"
	"github.com/spf13/cobra"
)

// menuCmd represents the menu command
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive order menu",
	Long: `The interactive menu stages orders into the local order file and submits
them to Kite. Choices: create, list, update, delete, execute, exit.`,
	Run: bootstrap.StartMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
