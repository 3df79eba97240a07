package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	globalFlag bool
	localFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "ram",
	Short: "Ragged Memory - semantic memory for LLMs at the command line",
	Long: `Ragged Memory (ram) ingests text files, splits them into retrievable
chunks and stores them with vector embeddings for semantic search.
Memories live either in a project-local store (.ragged_memory/ at the
project root) or in a user-global store (~/.ragged_memory).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ~/.ragged_memory/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlag, "global", "g", false, "use the user-global store")
	rootCmd.PersistentFlags().BoolVarP(&localFlag, "local", "l", false, "use the project-local store")
}
