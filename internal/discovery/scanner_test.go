package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"fitlaunch/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create file %s: %v", path, err)
	}
}

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	// Create wiki structure
	files := map[string]string{
		"AcceptanceTests/content.txt":           "!contents",
		"AcceptanceTests/properties.xml":        "<properties><Suite/></properties>",
		"SmokeTest/properties.xml":              "<properties><Test/></properties>",
		"LegacyWiki.wiki":                       "---\nTest\n---\n|script|",
		"files/readme/content.txt":              "attachments",
		"ErrorLogs/content.txt":                 "logs",
		".hidden/content.txt":                   "hidden",
		"NotAPage/data.csv":                     "1,2",
		"AcceptanceTests/ChildPage/content.txt": "child",
	}
	for file, content := range files {
		writeFile(t, filepath.Join(tmpDir, file), content)
	}

	scanner := NewScanner([]string{"files", "ErrorLogs"}, NewParser())

	t.Run("scans top level pages", func(t *testing.T) {
		launches, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []domain.Launch{
			{Kind: domain.KindSuite, PageName: "AcceptanceTests"},
			{Kind: domain.KindTest, PageName: "LegacyWiki"},
			{Kind: domain.KindTest, PageName: "SmokeTest"},
		}
		if len(launches) != len(expected) {
			t.Fatalf("expected %d launches, got %d: %v", len(expected), len(launches), launches)
		}
		for i := range expected {
			if launches[i] != expected[i] {
				t.Errorf("launch %d: expected %+v, got %+v", i, expected[i], launches[i])
			}
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "LegacyWiki.wiki"))
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}
