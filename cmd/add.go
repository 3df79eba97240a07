package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/raggedmemory/ram/internal/catalog"
	"github.com/raggedmemory/ram/internal/config"
	"github.com/raggedmemory/ram/internal/indexer"
	"github.com/raggedmemory/ram/internal/progress"
	"github.com/raggedmemory/ram/internal/scope"
	"github.com/raggedmemory/ram/internal/store"
)

var addCmd = &cobra.Command{
	Use:   "add <file|glob>...",
	Short: "Index text files into the memory store",
	Long: `Reads UTF-8 text files, chunks them, generates embeddings and appends the
chunks to the resolved store. Files whose content is already indexed
(matched by SHA-256) are confirmed before re-indexing.

Arguments may be plain paths or globs, e.g. "docs/**/*.md".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().Bool("force", false, "re-index files that are already indexed without asking")
	addCmd.Flags().Bool("skip-existing", false, "silently skip files that are already indexed")
	rootCmd.AddCommand(addCmd)
}

// ingestItem is one file that passed reading, validation and the duplicate
// policy.
type ingestItem struct {
	path    string
	content string
	hash    string
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	force, _ := cmd.Flags().GetBool("force")
	skipExisting, _ := cmd.Flags().GetBool("skip-existing")
	if force && skipExisting {
		return fmt.Errorf("cannot specify both --force and --skip-existing")
	}

	cfg, projCtx, sc, mgr, err := resolveEnvironment()
	if err != nil {
		return err
	}

	paths, err := expandArgs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files match %s", strings.Join(args, " "))
	}

	s, err := mgr.GetStore(sc)
	if err != nil {
		return err
	}

	if err := ensureLocalStore(cfg, sc, s); err != nil {
		return err
	}

	// Phase one: read, validate and apply the duplicate policy, before any
	// embedding work starts.
	var items []ingestItem
	skipped := 0
	for _, path := range paths {
		item, ok, err := prepareFile(ctx, s, path, force, skipExisting)
		if err != nil {
			return err
		}
		if !ok {
			skipped++
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		fmt.Printf("%s Nothing to index (%d skipped)\n", scopeIndicator(sc, projCtx), skipped)
		return nil
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	chunker := indexer.NewTextChunker(indexer.DefaultChunkSize, indexer.DefaultChunkOverlap)
	pipeline := indexer.NewPipeline(chunker, embedder, cfg.Storage.VectorDimensions)

	cat, err := openCatalog(s)
	if err != nil {
		return err
	}
	defer cat.Close()

	// Phase two: chunk, embed and append per file.
	reporter := progress.NewReporter()
	reporter.Start(len(items))
	totalChunks := 0
	for _, item := range items {
		name := filepath.Base(item.path)
		reporter.FileStart(name)

		records, err := pipeline.Process(ctx, item.content, item.path)
		if err != nil {
			reporter.Finish()
			return err
		}
		if len(records) == 0 {
			reporter.FileDone(name, 0)
			continue
		}
		if err := s.Append(ctx, records); err != nil {
			reporter.Finish()
			return err
		}
		if err := cat.Record(catalog.Entry{
			SourcePath: item.path,
			FileHash:   item.hash,
			ChunkCount: len(records),
			IndexedAt:  time.Now().UTC(),
		}); err != nil {
			reporter.Finish()
			return err
		}
		totalChunks += len(records)
		reporter.FileDone(name, len(records))
	}
	reporter.Finish()

	fmt.Printf("%s Indexed %d chunks from %d files", scopeIndicator(sc, projCtx), totalChunks, len(items))
	if skipped > 0 {
		fmt.Printf(" (%d skipped)", skipped)
	}
	fmt.Println()
	return nil
}

// ensureLocalStore materializes a missing local store ahead of the first
// write when the config allows it; otherwise init must be run explicitly.
// The global store is provisioned by the manager and needs nothing here.
func ensureLocalStore(cfg *config.Config, sc scope.Scope, s *store.MemoryStore) error {
	if sc != scope.Local || s.Exists() {
		return nil
	}
	if !cfg.Scope.AutoInitLocal {
		return fmt.Errorf("local store not initialized at %s: run `ram init` (auto_init_local is disabled)", s.Path())
	}
	return s.Initialize()
}

// maxFileSize caps single-file ingestion at 10 MB.
const maxFileSize = 10 << 20

// prepareFile reads and validates one file and applies the duplicate policy.
// The second return value is false when the file should be skipped.
func prepareFile(ctx context.Context, s *store.MemoryStore, path string, force, skipExisting bool) (ingestItem, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ingestItem{}, false, fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return ingestItem{}, false, fmt.Errorf("file %s not found", path)
	}
	if info.IsDir() {
		return ingestItem{}, false, fmt.Errorf("%s is a directory; pass files or a glob like %s", path, filepath.Join(path, "**", "*.md"))
	}
	if info.Size() > maxFileSize {
		return ingestItem{}, false, fmt.Errorf("file %s is %d bytes, over the %d MB limit", path, info.Size(), maxFileSize>>20)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return ingestItem{}, false, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return ingestItem{}, false, fmt.Errorf("file %s is not UTF-8 encoded text", path)
	}
	content := string(data)
	hash := indexer.HashContent(content)

	indexed, err := s.HasFileHash(ctx, hash)
	if err != nil {
		return ingestItem{}, false, err
	}
	if indexed && !force {
		if skipExisting {
			return ingestItem{}, false, nil
		}
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("%s is already indexed. Re-index", path),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			// Declined.
			return ingestItem{}, false, nil
		}
	}

	return ingestItem{path: abs, content: content, hash: hash}, true, nil
}

// expandArgs resolves plain paths and glob patterns into a sorted, unique
// file list. Patterns that match nothing are simply dropped; a plain path
// that does not exist surfaces later as a read error.
func expandArgs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", arg, err)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && !info.IsDir() {
				add(m)
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}
