package fitnesse

import (
	"context"
	"net/http"
	"testing"

	"fitlaunch/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProgress struct {
	updates  [][2]int
	finished bool
}

func (p *recordingProgress) Update(accepted, rejected int) {
	p.updates = append(p.updates, [2]int{accepted, rejected})
}

func (p *recordingProgress) Finish() {
	p.finished = true
}

func TestRegistrar_CreateSymLinks(t *testing.T) {
	server := newFakeServer(t, http.StatusOK)
	logger, hook := test.NewNullLogger()
	registrar := NewRegistrar(logger, WithHost("127.0.0.1"))
	progress := &recordingProgress{}
	registrar.SetProgress(progress)

	launches := []domain.Launch{
		domain.NewSuite("Foo.Bar"),
		domain.NewSuite("Foo.Baz"),
		domain.NewTest("Qux.Quux"),
	}

	report, err := registrar.CreateSymLinks(context.Background(), "/home/user/proj", "resources", server.port(t), launches...)
	require.NoError(t, err)

	requests := server.received()
	require.Len(t, requests, 2)
	for i, expected := range []string{"Foo", "Qux"} {
		q := requests[i].URL.Query()
		assert.Equal(t, "/root", requests[i].URL.Path)
		assert.Equal(t, "symlink", q.Get("responder"))
		assert.Equal(t, expected, q.Get("linkName"))
		assert.Equal(t, "Create/Replace", q.Get("submit"))
		assert.Contains(t, q.Get("linkPath"), "/resources/"+expected)
	}

	require.Len(t, report.Results, 2)
	assert.Equal(t, server.port(t), report.Port)
	assert.Equal(t, http.StatusOK, report.Results[0].StatusCode)

	var messages []string
	for _, entry := range hook.AllEntries() {
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		messages = append(messages, entry.Message)
	}
	assert.Len(t, messages, 4)
	assert.Contains(t, messages[0], "Calling http://127.0.0.1:")
	assert.Equal(t, "Response code: 200", messages[1])

	assert.Equal(t, [][2]int{{1, 0}, {2, 0}}, progress.updates)
	assert.True(t, progress.finished)
}

func TestRegistrar_RepeatedRegistrationIsAccepted(t *testing.T) {
	server := newFakeServer(t, http.StatusOK)
	logger, _ := test.NewNullLogger()
	registrar := NewRegistrar(logger, WithHost("127.0.0.1"))
	launch := domain.NewSuite("Foo.Bar")

	first, err := registrar.CreateSymLinks(context.Background(), "/home/user/proj", "resources", server.port(t), launch)
	require.NoError(t, err)
	second, err := registrar.CreateSymLinks(context.Background(), "/home/user/proj", "resources", server.port(t), launch)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, first.Results[0].StatusCode)
	assert.Equal(t, http.StatusOK, second.Results[0].StatusCode)
	assert.Equal(t, first.Results[0].URL, second.Results[0].URL)
	assert.Len(t, server.received(), 2)
}

func TestRegistrar_ErrorStatusIsNotFatal(t *testing.T) {
	server := newFakeServer(t, http.StatusInternalServerError)
	logger, _ := test.NewNullLogger()
	registrar := NewRegistrar(logger, WithHost("127.0.0.1"))
	progress := &recordingProgress{}
	registrar.SetProgress(progress)

	report, err := registrar.CreateSymLinks(context.Background(), "/p", "r", server.port(t), domain.NewSuite("A.B"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, report.Results[0].StatusCode)
	assert.False(t, report.Results[0].Accepted())
	assert.Equal(t, [][2]int{{0, 1}}, progress.updates)
}

func TestRegistrar_ConnectionFailurePropagates(t *testing.T) {
	logger, _ := test.NewNullLogger()
	registrar := NewRegistrar(logger, WithHost("127.0.0.1"))
	progress := &recordingProgress{}
	registrar.SetProgress(progress)

	_, err := registrar.CreateSymLinks(context.Background(), "/p", "r", closedPort(t), domain.NewSuite("A.B"))
	require.Error(t, err)
	assert.True(t, IsConnectionRefused(err))
	assert.True(t, progress.finished)
}

func TestRegistrar_CreateSymLink(t *testing.T) {
	server := newFakeServer(t, http.StatusOK)
	logger, _ := test.NewNullLogger()
	registrar := NewRegistrar(logger, WithHost("127.0.0.1"))

	result, err := registrar.CreateSymLink(context.Background(), "/home/user/proj", "resources", server.port(t), "Foo")
	require.NoError(t, err)

	assert.Equal(t, "Foo", result.LinkName)
	assert.Equal(t, "file:///home/user/proj/resources/Foo", result.LinkPath)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Len(t, server.received(), 1)
}
