package fitnesse

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"fitlaunch/internal/domain"
)

var drivePrefix = regexp.MustCompile(`/[A-Z]:`)

// LinkNames returns the unique link names of launches in first-seen order
func LinkNames(launches ...domain.Launch) []string {
	seen := make(map[string]bool)
	var names []string
	for _, launch := range launches {
		name := launch.LinkName()
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// LinkPath builds the file URL a symlink named linkName points at:
// <baseDir as file URL>/<testResourceDir>/<linkName>.
// The URL is left unescaped so FitNesse does not encode it twice.
func LinkPath(linkName, baseDir, testResourceDir string) (string, error) {
	base, err := fileURL(baseDir)
	if err != nil {
		return "", err
	}

	// file:/C:/x -> file:/x, then file:/x -> file:///x
	if loc := drivePrefix.FindStringIndex(base); loc != nil {
		base = base[:loc[0]] + base[loc[1]:]
	}
	base = strings.Replace(base, ":", "://", 1)

	var sb strings.Builder
	sb.WriteString(base)
	ensureSlash(&sb)
	sb.WriteString(strings.TrimPrefix(filepath.ToSlash(testResourceDir), "/"))
	ensureSlash(&sb)
	sb.WriteString(linkName)
	return sb.String(), nil
}

func ensureSlash(sb *strings.Builder) {
	if !strings.HasSuffix(sb.String(), "/") {
		sb.WriteString("/")
	}
}

// fileURL renders dir the way a legacy file URL does: file:/abs/path, with a
// trailing slash when dir is an existing directory.
func fileURL(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve base dir %s: %w", dir, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return "file:" + p, nil
}
