package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "statewalk",
	Short: "Statewalk navigates GUI state graphs",
	Long:  `Statewalk models a GUI application as a graph of states and transitions, and computes and executes navigation paths between them.`,
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
	rootCmd.PersistentFlags().StringP("config", "c", "states.yaml", "Path to the state graph definition")
}
