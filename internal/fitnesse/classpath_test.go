package fitnesse

import (
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClasspathFormatter_Append(t *testing.T) {
	logger, hook := test.NewNullLogger()
	formatter := NewClasspathFormatter(logger)

	var sb strings.Builder
	formatter.Append(&sb, "/repo/lib/a.jar")
	formatter.Append(&sb, "/my repo/b.jar")

	assert.Equal(t, "!path /repo/lib/a.jar\n!path /my repo/b.jar\n", sb.String())

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Contains(t, entry.Message, "/my repo/b.jar")
	assert.Contains(t, entry.Message, "FitNesse classpath may not function correctly in wiki mode")
}

func TestClasspathFormatter_Format(t *testing.T) {
	logger, hook := test.NewNullLogger()
	formatter := NewClasspathFormatter(logger)
	sep := string(os.PathListSeparator)

	got := formatter.Format("a.jar" + sep + sep + "b.jar")

	assert.Equal(t, "!path a.jar\n!path b.jar\n", got)
	assert.Empty(t, hook.AllEntries())
}

func TestHasWhitespace(t *testing.T) {
	assert.False(t, HasWhitespace("/opt/lib/x.jar"))
	assert.True(t, HasWhitespace("C:\\Program Files\\x.jar"))
	assert.True(t, HasWhitespace("a\tb"))
}
