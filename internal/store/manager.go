package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raggedmemory/ram/internal/config"
	"github.com/raggedmemory/ram/internal/project"
	"github.com/raggedmemory/ram/internal/scope"
)

// ErrNoProject is returned when a local store is requested outside any
// recognized project.
var ErrNoProject = errors.New("no project detected: run `ram init` to create a local store")

// Manager hands out MemoryStores for resolved scopes. The global store is
// auto-provisioned on first use; local stores are only ever created by the
// explicit init command.
type Manager struct {
	cfg *config.Config
	ctx *project.Context
}

// NewManager creates a Manager. Both arguments are required; the manager
// never reads ambient state.
func NewManager(cfg *config.Config, ctx *project.Context) *Manager {
	return &Manager{cfg: cfg, ctx: ctx}
}

// GetStore returns a ready-to-use MemoryStore for the given scope. An empty
// scope falls back to the configured default. Requesting the local scope
// with no project detected fails with ErrNoProject and performs no writes.
func (m *Manager) GetStore(sc scope.Scope) (*MemoryStore, error) {
	if sc == "" {
		parsed, err := scope.Parse(m.cfg.Scope.DefaultScope)
		if err != nil {
			return nil, err
		}
		sc = parsed
	}

	dims := m.cfg.Storage.VectorDimensions

	switch sc {
	case scope.Local:
		if m.ctx == nil || m.ctx.ProjectRoot == "" {
			return nil, ErrNoProject
		}
		return New(scope.Local, m.ctx.StorePath, dims), nil

	case scope.Global:
		dir, err := m.cfg.GlobalDir()
		if err != nil {
			return nil, err
		}
		s := New(scope.Global, dir, dims)
		if !s.Exists() {
			if err := m.provisionGlobalStore(s); err != nil {
				return nil, err
			}
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown scope %q", sc)
	}
}

// provisionGlobalStore initializes the global store directory and seeds a
// default config file. An existing config file is never overwritten.
func (m *Manager) provisionGlobalStore(s *MemoryStore) error {
	if err := s.Initialize(); err != nil {
		return err
	}

	configPath := filepath.Join(s.Path(), config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", configPath, err)
	}

	if err := os.WriteFile(configPath, []byte(config.DefaultTOML), 0o644); err != nil {
		return fmt.Errorf("writing default config %s: %w", configPath, err)
	}
	return nil
}
