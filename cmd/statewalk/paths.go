package main

import (
	"fmt"
	"os"

	"github.com/aretw0/statewalk"
	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List candidate paths between states",
	Long:  `Loads the state graph definition and prints every simple path from the start states to the target, sorted by score.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		from, _ := cmd.Flags().GetInt64Slice("from")
		to, _ := cmd.Flags().GetInt64("to")

		eng, err := statewalk.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading definition: %v\n", err)
			os.Exit(1)
		}

		starts := make([]domain.StateID, len(from))
		for i, id := range from {
			starts[i] = domain.StateID(id)
		}

		paths := eng.FindPaths(starts, domain.StateID(to))
		if paths.IsEmpty() {
			fmt.Println("No path found.")
			return
		}
		for _, p := range paths.All() {
			fmt.Println(p.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
	pathsCmd.Flags().Int64Slice("from", nil, "Start state ids")
	pathsCmd.Flags().Int64("to", 0, "Target state id")
	pathsCmd.MarkFlagRequired("from")
	pathsCmd.MarkFlagRequired("to")
}
