package config

// DefaultEmbeddingModel is the model identifier used when no config file
// overrides it.
const DefaultEmbeddingModel = "sentence-transformers/all-MiniLM-L6-v2"

// DefaultVectorDimensions matches the output width of the default model.
const DefaultVectorDimensions = 384

// DefaultConfig returns a Config with built-in defaults for every key.
// Loading overlays the config file on top of this, key by key.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			EmbeddingProvider: ProviderOllama,
			EmbeddingModel:    DefaultEmbeddingModel,
			VectorDimensions:  DefaultVectorDimensions,
		},
		Scope: ScopeConfig{
			DefaultScope:  "local",
			AutoInitLocal: true,
		},
		Paths: PathsConfig{
			GlobalDir: "~/.ragged_memory",
			LocalDir:  ".ragged_memory",
		},
	}
}

// DefaultTOML is the config file seeded into a freshly provisioned global
// store. It spells out the same values DefaultConfig returns.
const DefaultTOML = `[storage]
embedding_provider = "ollama"
embedding_model = "sentence-transformers/all-MiniLM-L6-v2"
vector_dimensions = 384

[scope]
default_scope = "local"
auto_init_local = true

[paths]
global_dir = "~/.ragged_memory"
local_dir = ".ragged_memory"
`
