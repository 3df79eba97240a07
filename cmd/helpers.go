package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/raggedmemory/ram/internal/catalog"
	"github.com/raggedmemory/ram/internal/config"
	"github.com/raggedmemory/ram/internal/embeddings"
	"github.com/raggedmemory/ram/internal/project"
	"github.com/raggedmemory/ram/internal/scope"
	"github.com/raggedmemory/ram/internal/store"
)

// loadConfig loads and validates the config from --config or the default
// location.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// detectContext builds the project context from the current working
// directory using the configured marker name.
func detectContext(cfg *config.Config) (*project.Context, error) {
	return project.Detect("", cfg.Paths.LocalDir)
}

// resolveEnvironment wires up the pieces every store-touching command needs:
// config, project context, active scope and storage manager.
func resolveEnvironment() (*config.Config, *project.Context, scope.Scope, *store.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, "", nil, err
	}
	ctx, err := detectContext(cfg)
	if err != nil {
		return nil, nil, "", nil, err
	}
	sc, err := scope.Resolve(globalFlag, localFlag, ctx)
	if err != nil {
		return nil, nil, "", nil, err
	}
	return cfg, ctx, sc, store.NewManager(cfg, ctx), nil
}

// newEmbedder creates the configured embedder backend.
func newEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	st := cfg.Storage
	switch st.EmbeddingProvider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, st.EmbeddingModel, st.VectorDimensions), nil
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(st.EmbeddingModel, st.VectorDimensions, ""), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", st.EmbeddingProvider)
	}
}

// openCatalog opens the ingestion catalog inside a store directory.
func openCatalog(s *store.MemoryStore) (*catalog.Catalog, error) {
	return catalog.Open(filepath.Join(s.Path(), catalog.FileName))
}

// scopeIndicator formats the active scope for command output, e.g.
// "[local: my-project]" or "[global]".
func scopeIndicator(sc scope.Scope, ctx *project.Context) string {
	if sc == scope.Local && ctx != nil && ctx.ProjectRoot != "" {
		return fmt.Sprintf("[local: %s]", filepath.Base(ctx.ProjectRoot))
	}
	return fmt.Sprintf("[%s]", sc)
}
