package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fitlaunch/internal/config"
	"fitlaunch/internal/domain"
)

// SaveServer writes the forked server description.
func (s *JSONStorage) SaveServer(state domain.ServerState) error {
	return s.write(config.DefaultServerStateFile, state)
}

// LoadServer reads the forked server description.
func (s *JSONStorage) LoadServer() (*domain.ServerState, error) {
	var state domain.ServerState
	if err := s.read(config.DefaultServerStateFile, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// ClearServer removes the server description; a missing file is not an error.
func (s *JSONStorage) ClearServer() error {
	err := os.Remove(s.cfg.GetStatePath(config.DefaultServerStateFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove server state: %w", err)
	}
	return nil
}

// SaveSymLinks writes the last registration report.
func (s *JSONStorage) SaveSymLinks(report domain.SymLinkReport) error {
	return s.write(config.DefaultSymLinkReportFile, report)
}

// LoadSymLinks reads the last registration report.
func (s *JSONStorage) LoadSymLinks() (*domain.SymLinkReport, error) {
	var report domain.SymLinkReport
	if err := s.read(config.DefaultSymLinkReportFile, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *JSONStorage) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	path := s.cfg.GetStatePath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *JSONStorage) read(name string, v any) error {
	path := s.cfg.GetStatePath(name)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
