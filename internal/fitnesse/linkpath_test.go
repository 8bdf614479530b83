package fitnesse

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"fitlaunch/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkNames(t *testing.T) {
	launches := []domain.Launch{
		domain.NewSuite("Foo.Bar"),
		domain.NewTest("Foo.Baz"),
		domain.NewSuite("Qux.Quux"),
	}

	assert.Equal(t, []string{"Foo", "Qux"}, LinkNames(launches...))
	assert.Empty(t, LinkNames())
}

func TestLinkPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	tests := []struct {
		name            string
		baseDir         string
		testResourceDir string
	}{
		{"no trailing slashes", "/home/user/proj", "resources"},
		{"trailing slash on base dir", "/home/user/proj/", "resources"},
		{"trailing slash on resource dir", "/home/user/proj", "resources/"},
		{"trailing slashes everywhere", "/home/user/proj/", "resources/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LinkPath("Foo", tt.baseDir, tt.testResourceDir)
			require.NoError(t, err)
			assert.Equal(t, "file:///home/user/proj/resources/Foo", got)
			assert.True(t, strings.HasSuffix(got, "/proj/resources/Foo"))
			assert.NotContains(t, strings.TrimPrefix(got, "file://"), "//")
		})
	}
}

func TestLinkPath_ExistingBaseDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "test", "fitnesse"), 0755))

	got, err := LinkPath("MySuite", dir, "src/test/fitnesse")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "file:///"))
	assert.True(t, strings.HasSuffix(got, "/src/test/fitnesse/MySuite"))
	assert.NotContains(t, strings.TrimPrefix(got, "file://"), "//")
}
