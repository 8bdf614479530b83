package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fitlaunch/internal/domain"
)

// Scanner finds top-level wiki pages in a test resource directory
type Scanner struct {
	skipDirs map[string]bool
	parser   *Parser
}

// NewScanner creates a new Scanner with the given page names to skip
func NewScanner(skipDirs []string, parser *Parser) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, parser: parser}
}

// Scan returns one launch per top-level wiki page under root, sorted by page name
func (s *Scanner) Scan(root string) ([]domain.Launch, error) {
	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test resource path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test resource path is not a directory: %s", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read test resource path: %w", err)
	}

	pages := make(map[string]domain.LaunchKind)
	for _, entry := range entries {
		name := entry.Name()
		// Skip hidden entries (starting with .)
		if strings.HasPrefix(name, ".") {
			continue
		}

		if entry.IsDir() {
			if s.skipDirs[name] || !IsPage(filepath.Join(root, name)) {
				continue
			}
			pages[name] = s.parser.PageKind(filepath.Join(root, name))
			continue
		}

		// Wiki file format: <PageName>.wiki
		if pageName, ok := strings.CutSuffix(name, wikiFileSuffix); ok && !s.skipDirs[pageName] {
			if _, seen := pages[pageName]; !seen {
				pages[pageName] = s.parser.PageKind(filepath.Join(root, name))
			}
		}
	}

	launches := make([]domain.Launch, 0, len(pages))
	for name, kind := range pages {
		launches = append(launches, domain.Launch{Kind: kind, PageName: name})
	}
	sort.Slice(launches, func(i, j int) bool {
		return launches[i].PageName < launches[j].PageName
	})

	return launches, nil
}
