package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active scope and store details",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, projCtx, sc, mgr, err := resolveEnvironment()
	if err != nil {
		return err
	}

	fmt.Printf("Active scope:    %s\n", scopeIndicator(sc, projCtx))
	if projCtx.ProjectRoot != "" {
		fmt.Printf("Project root:    %s\n", projCtx.ProjectRoot)
	} else {
		fmt.Println("Project root:    (no project detected)")
	}
	fmt.Printf("Embedding model: %s (%s, %d dimensions)\n",
		cfg.Storage.EmbeddingModel, cfg.Storage.EmbeddingProvider, cfg.Storage.VectorDimensions)

	s, err := mgr.GetStore(sc)
	if err != nil {
		return err
	}
	fmt.Printf("Store path:      %s\n", s.Path())

	if !s.Exists() {
		fmt.Println("Store:           not initialized (run `ram init`)")
		return nil
	}

	count, err := s.Count()
	if err != nil {
		return err
	}
	fmt.Printf("Chunks stored:   %d\n", count)

	cat, err := openCatalog(s)
	if err != nil {
		return err
	}
	defer cat.Close()

	files, err := cat.CountFiles()
	if err != nil {
		return err
	}
	fmt.Printf("Files indexed:   %d\n", files)
	return nil
}
