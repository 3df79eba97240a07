package config

// EmbeddingProvider identifies the backend used to generate embeddings.
type EmbeddingProvider string

const (
	ProviderOllama EmbeddingProvider = "ollama"
	ProviderOpenAI EmbeddingProvider = "openai"
)

// Config is the top-level ram configuration, corresponding to
// ~/.ragged_memory/config.toml. It is loaded once per invocation and
// read-only afterwards.
type Config struct {
	Storage StorageConfig `koanf:"storage" toml:"storage"`
	Scope   ScopeConfig   `koanf:"scope" toml:"scope"`
	Paths   PathsConfig   `koanf:"paths" toml:"paths"`
}

// StorageConfig holds embedding settings.
type StorageConfig struct {
	// EmbeddingProvider selects the embedder backend (ollama, openai).
	EmbeddingProvider EmbeddingProvider `koanf:"embedding_provider" toml:"embedding_provider"`
	// EmbeddingModel is an opaque model identifier passed to the provider.
	EmbeddingModel string `koanf:"embedding_model" toml:"embedding_model"`
	// VectorDimensions is the expected length of every embedding vector.
	VectorDimensions int `koanf:"vector_dimensions" toml:"vector_dimensions"`
}

// ScopeConfig holds scope defaulting behavior.
type ScopeConfig struct {
	// DefaultScope is used when an operation is given no scope at all.
	DefaultScope string `koanf:"default_scope" toml:"default_scope"`
	// AutoInitLocal allows a local store directory to be created silently on
	// first write.
	AutoInitLocal bool `koanf:"auto_init_local" toml:"auto_init_local"`
}

// PathsConfig holds store locations.
type PathsConfig struct {
	// GlobalDir is the user-global store directory. A leading ~ is expanded.
	GlobalDir string `koanf:"global_dir" toml:"global_dir"`
	// LocalDir is the directory name that marks a project root and holds the
	// project-local store.
	LocalDir string `koanf:"local_dir" toml:"local_dir"`
}
