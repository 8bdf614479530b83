//go:build !windows

package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fitlaunch/internal/process"
	"fitlaunch/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sleepingJava installs a java under a fake JAVA_HOME that just sleeps
func sleepingJava(t *testing.T, f *fixture) {
	t.Helper()
	javaHome := t.TempDir()
	writeFile(t, filepath.Join(javaHome, "bin", "java"), "#!/bin/sh\nexec sleep 30\n")
	require.NoError(t, os.Chmod(filepath.Join(javaHome, "bin", "java"), 0755))
	f.cfg.JavaHome = javaHome
	f.cfg.WorkingDir = t.TempDir()
}

func TestStartCommand_RecordsServer(t *testing.T) {
	f := newFixture(t)
	sleepingJava(t, f)
	f.cfg.Flags.Port = closedPort(t)

	require.NoError(t, f.cmds.Start.Execute(f.cobraCmd(), nil))

	state, err := f.cmds.Start.storage.LoadServer()
	require.NoError(t, err)
	t.Cleanup(func() { _ = process.TerminateProcess(state.PID) })

	assert.Equal(t, f.cfg.Flags.Port, state.Port)
	assert.True(t, process.ProcessAlive(state.PID))
	assert.Contains(t, f.out.String(), "fitnesseMain.FitNesseMain -p")
}

func TestStartCommand_NotReadyTerminatesServer(t *testing.T) {
	f := newFixture(t)
	sleepingJava(t, f)
	f.cfg.Flags.Port = closedPort(t)
	f.cfg.Flags.Wait = true
	f.cfg.ReadyTimeout = 300 * time.Millisecond

	require.Error(t, f.cmds.Start.Execute(f.cobraCmd(), nil))

	_, err := f.cmds.Start.storage.LoadServer()
	assert.ErrorIs(t, err, storage.ErrNotFound)

	var terminated bool
	for _, msg := range f.messages() {
		if strings.Contains(msg, "did not become ready, terminating") {
			terminated = true
		}
	}
	assert.True(t, terminated, f.messages())
}
