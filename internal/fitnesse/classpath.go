package fitnesse

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
)

// ClasspathFormatter renders classpath entries as wiki !path lines
type ClasspathFormatter struct {
	logger *logrus.Logger
}

// NewClasspathFormatter creates a ClasspathFormatter
func NewClasspathFormatter(logger *logrus.Logger) *ClasspathFormatter {
	return &ClasspathFormatter{logger: logger}
}

// Append writes "!path <path>" to sb. Paths with whitespace are still
// written, with an error logged.
func (f *ClasspathFormatter) Append(sb *strings.Builder, path string) *strings.Builder {
	if HasWhitespace(path) {
		f.logger.Error(WhitespaceWarning(path, "FitNesse classpath may not function correctly in wiki mode"))
	}
	sb.WriteString("!path ")
	sb.WriteString(path)
	sb.WriteString("\n")
	return sb
}

// Format splits classpath on the platform list separator and renders each entry
func (f *ClasspathFormatter) Format(classpath string) string {
	var sb strings.Builder
	for _, entry := range strings.Split(classpath, string(os.PathListSeparator)) {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		f.Append(&sb, entry)
	}
	return sb.String()
}

// HasWhitespace reports whether path contains any whitespace
func HasWhitespace(path string) bool {
	return strings.IndexFunc(path, unicode.IsSpace) >= 0
}

// WhitespaceWarning formats the warning logged for a path with whitespace
func WhitespaceWarning(path, consequence string) string {
	return fmt.Sprintf("THERE IS WHITESPACE IN PATH: '%s'. %s", path, consequence)
}
