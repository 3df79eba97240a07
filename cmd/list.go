package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List files indexed in the resolved store",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	_, projCtx, sc, mgr, err := resolveEnvironment()
	if err != nil {
		return err
	}

	s, err := mgr.GetStore(sc)
	if err != nil {
		return err
	}
	if !s.Exists() {
		fmt.Printf("%s Store not initialized. Run `ram init` first.\n", scopeIndicator(sc, projCtx))
		return nil
	}

	cat, err := openCatalog(s)
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("%s No files indexed yet. Use `ram add <file>`.\n", scopeIndicator(sc, projCtx))
		return nil
	}

	fmt.Printf("%s %d indexed files:\n\n", scopeIndicator(sc, projCtx), len(entries))
	for _, e := range entries {
		fmt.Printf("  %s  (%d chunks, %s, %s)\n",
			e.SourcePath, e.ChunkCount, e.FileHash[:12], e.IndexedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
