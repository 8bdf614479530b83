package discovery

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fitlaunch/internal/domain"
)

const (
	contentFile    = "content.txt"
	propertiesFile = "properties.xml"
	wikiFileSuffix = ".wiki"
)

// Parser reads wiki page metadata
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// IsPage reports whether dir is a wiki page directory
func IsPage(dir string) bool {
	for _, name := range []string{contentFile, propertiesFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// PageKind returns whether the page at path is a test or a suite.
// path is either a page directory or a .wiki file. Pages without a marker
// are run as suites.
func (p *Parser) PageKind(path string) domain.LaunchKind {
	if strings.HasSuffix(path, wikiFileSuffix) {
		return p.wikiFileKind(path)
	}

	content, err := os.ReadFile(filepath.Join(path, propertiesFile))
	if err != nil {
		return domain.KindSuite
	}
	props := string(content)
	switch {
	case strings.Contains(props, "<Test"):
		return domain.KindTest
	default:
		return domain.KindSuite
	}
}

// wikiFileKind reads the front matter block of a .wiki file:
//
//	---
//	Test
//	---
func (p *Parser) wikiFileKind(path string) domain.LaunchKind {
	f, err := os.Open(path)
	if err != nil {
		return domain.KindSuite
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return domain.KindSuite
	}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "---" {
			break
		}
		if key, _, _ := strings.Cut(line, ":"); strings.TrimSpace(key) == "Test" {
			return domain.KindTest
		}
	}
	return domain.KindSuite
}

// FindTestPages returns the dotted names of every test page below the page
// directory pageDir, prefixed with pageName.
func (p *Parser) FindTestPages(pageDir, pageName string) ([]string, error) {
	found := make(map[string]bool)

	err := filepath.WalkDir(pageDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != pageDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		var rel string
		switch {
		case d.IsDir() && IsPage(path):
			rel, err = filepath.Rel(pageDir, path)
		case !d.IsDir() && strings.HasSuffix(path, wikiFileSuffix):
			rel, err = filepath.Rel(pageDir, strings.TrimSuffix(path, wikiFileSuffix))
		default:
			return nil
		}
		if err != nil {
			return err
		}

		if p.PageKind(path) != domain.KindTest {
			return nil
		}
		name := pageName
		if rel != "." {
			name += "." + strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")
		}
		found[name] = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	pages := make([]string, 0, len(found))
	for name := range found {
		pages = append(pages, name)
	}
	sort.Strings(pages)
	return pages, nil
}
