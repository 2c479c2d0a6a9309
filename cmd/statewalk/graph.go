package main

import (
	"fmt"
	"os"

	"github.com/aretw0/statewalk"
	"github.com/aretw0/statewalk/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the state graph visualization",
	Long:  `Loads the state graph definition and outputs a Mermaid diagram (graph TD) of its states and transitions.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		eng, err := statewalk.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading definition: %v\n", err)
			os.Exit(1)
		}

		output := graph.GenerateMermaid(eng.States(), eng.Transitions(), nil)
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
