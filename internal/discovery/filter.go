package discovery

import (
	"path/filepath"
	"strings"

	"fitlaunch/internal/domain"
)

// Filter filters launches by page name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters launches by page name using wildcard matching.
// Supports patterns like "Acceptance*" or "*Smoke*"; a pattern without
// wildcards matches as a substring.
func (f *Filter) FilterByName(launches []domain.Launch, pattern string) []domain.Launch {
	if pattern == "" {
		return launches
	}

	var filtered []domain.Launch
	for _, launch := range launches {
		if matchName(pattern, launch.PageName) {
			filtered = append(filtered, launch)
		}
	}
	return filtered
}

func matchName(pattern, name string) bool {
	// filepath.Match supports * and ? wildcards
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// Flexible fallback for patterns like "*Payment*": every literal part
	// must appear in the name, and at least one part must be non-empty
	if !strings.Contains(pattern, "*") {
		return false
	}
	hasNonEmptyPart := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		hasNonEmptyPart = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasNonEmptyPart
}
