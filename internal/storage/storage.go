package storage

import (
	"errors"

	"fitlaunch/internal/config"
	"fitlaunch/internal/domain"
)

// ErrNotFound is returned when no state has been saved yet
var ErrNotFound = errors.New("state not found")

// Storage persists server and symlink state between commands
type Storage interface {
	SaveServer(state domain.ServerState) error
	LoadServer() (*domain.ServerState, error)
	ClearServer() error
	SaveSymLinks(report domain.SymLinkReport) error
	LoadSymLinks() (*domain.SymLinkReport, error)
}

// JSONStorage stores state as JSON files under the configured state dir.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's state paths.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
