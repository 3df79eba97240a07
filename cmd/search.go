package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raggedmemory/ram/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Semantically search stored memories",
	Long: `Embeds the query with the configured model and runs a similarity search
against the resolved store.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 10, "maximum number of results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, projCtx, sc, mgr, err := resolveEnvironment()
	if err != nil {
		return err
	}

	s, err := mgr.GetStore(sc)
	if err != nil {
		return err
	}

	count, err := s.Count()
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Printf("%s Store is empty. Use `ram add <file>` first.\n", scopeIndicator(sc, projCtx))
		return nil
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	vectors, err := embedder.Embed(ctx, []string{query})
	if err != nil {
		return fmt.Errorf("embedding query: %w", err)
	}
	if len(vectors) != 1 {
		return fmt.Errorf("embedder returned %d vectors for the query, expected 1", len(vectors))
	}

	results, err := s.Search(ctx, vectors[0], limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if jsonOutput {
		return printSearchResultsJSON(results)
	}
	printSearchResults(results)
	return nil
}

type searchResultJSON struct {
	Rank       int     `json:"rank"`
	Similarity float64 `json:"similarity"`
	SourcePath string  `json:"source_path"`
	ChunkIndex int     `json:"chunk_index"`
	Text       string  `json:"text"`
}

func printSearchResultsJSON(results []store.SearchResult) error {
	var out []searchResultJSON
	for i, r := range results {
		out = append(out, searchResultJSON{
			Rank:       i + 1,
			Similarity: float64(r.Similarity),
			SourcePath: r.Record.SourcePath,
			ChunkIndex: r.Record.ChunkIndex,
			Text:       r.Record.Text,
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printSearchResults(results []store.SearchResult) {
	fmt.Printf("Found %d results:\n\n", len(results))
	for i, r := range results {
		fmt.Printf("%d. %s (chunk %d, score %.3f)\n", i+1, r.Record.SourcePath, r.Record.ChunkIndex, r.Similarity)
		fmt.Printf("   %s\n\n", truncate(strings.TrimSpace(r.Record.Text), 200))
	}
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
