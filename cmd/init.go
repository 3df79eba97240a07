package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raggedmemory/ram/internal/scope"
	"github.com/raggedmemory/ram/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a project-local memory store in the current directory",
	Long: `Creates a .ragged_memory/ directory in the current working directory and
initializes the vector database for project-local memories. Running it
again is safe. The global store needs no init; it is created automatically
on first use.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if globalFlag {
		fmt.Println("Note: the global store is auto-initialized on first use; --global is not needed with `ram init`.")
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining working directory: %w", err)
	}
	storeDir := filepath.Join(cwd, cfg.Paths.LocalDir)

	if _, err := os.Stat(storeDir); err == nil {
		fmt.Printf("Local store already initialized at %s\n", cfg.Paths.LocalDir)
		fmt.Println("\nUse `ram add <file>` to index files into this project.")
		return nil
	}

	s := store.New(scope.Local, storeDir, cfg.Storage.VectorDimensions)
	if err := s.Initialize(); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", cfg.Paths.LocalDir)
	fmt.Println("Initialized local memory store")
	fmt.Println("\nNext steps:")
	fmt.Println("  ram add notes.md           # Index a file locally")
	fmt.Println("  ram search \"query\"         # Search local memories")
	fmt.Println("  ram add --global notes.md  # Index globally instead")
	return nil
}
