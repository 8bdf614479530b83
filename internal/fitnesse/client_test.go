package fitnesse

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SymLinkURL(t *testing.T) {
	client := NewClient(8080)

	got := client.SymLinkURL("Foo", "file:///home/user/proj/resources/Foo")
	assert.Equal(t,
		"http://localhost:8080/root?responder=symlink&linkName=Foo&linkPath=file%3A%2F%2F%2Fhome%2Fuser%2Fproj%2Fresources%2FFoo&submit=Create%2FReplace",
		got)
}

func TestClient_SymLinkURL_EncodesSpaces(t *testing.T) {
	client := NewClient(9123)

	got := client.SymLinkURL("My Suite", "file:///a b/My Suite")
	assert.Contains(t, got, "linkName=My+Suite")
	assert.Contains(t, got, "linkPath=file%3A%2F%2F%2Fa+b%2FMy+Suite")
}

func TestClient_Shutdown(t *testing.T) {
	server := newFakeServer(t, http.StatusOK)
	client := NewClient(server.port(t), WithHost("127.0.0.1"), WithCredentials("admin", "secret"))

	code, err := client.Shutdown(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)

	requests := server.received()
	require.Len(t, requests, 1)
	assert.Equal(t, "shutdown", requests[0].URL.Query().Get("responder"))
	user, pass, ok := requests[0].BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "admin", user)
	assert.Equal(t, "secret", pass)
}

func TestClient_ShutdownWithoutCredentials(t *testing.T) {
	server := newFakeServer(t, http.StatusOK)
	client := NewClient(server.port(t), WithHost("127.0.0.1"))

	_, err := client.Shutdown(context.Background())
	require.NoError(t, err)

	_, _, ok := server.received()[0].BasicAuth()
	assert.False(t, ok)
}

func TestClient_PingReturnsAnyStatus(t *testing.T) {
	server := newFakeServer(t, http.StatusInternalServerError)
	client := NewClient(server.port(t), WithHost("127.0.0.1"))

	code, err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, code)
}

func TestIsConnectionRefused(t *testing.T) {
	client := NewClient(closedPort(t), WithHost("127.0.0.1"))

	_, err := client.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, IsConnectionRefused(err))

	assert.False(t, IsConnectionRefused(nil))
	assert.False(t, IsConnectionRefused(errors.New("tls: handshake failure")))
}

func TestClient_WaitReady(t *testing.T) {
	t.Run("server answering", func(t *testing.T) {
		server := newFakeServer(t, http.StatusOK)
		client := NewClient(server.port(t), WithHost("127.0.0.1"))

		require.NoError(t, client.WaitReady(context.Background(), time.Second))
	})

	t.Run("nothing listening", func(t *testing.T) {
		client := NewClient(closedPort(t), WithHost("127.0.0.1"))

		err := client.WaitReady(context.Background(), 200*time.Millisecond)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrServerNotReady)
	})
}

func TestClient_WaitStopped(t *testing.T) {
	t.Run("nothing listening", func(t *testing.T) {
		client := NewClient(closedPort(t), WithHost("127.0.0.1"))

		require.NoError(t, client.WaitStopped(context.Background(), time.Second))
	})

	t.Run("server keeps answering", func(t *testing.T) {
		server := newFakeServer(t, http.StatusOK)
		client := NewClient(server.port(t), WithHost("127.0.0.1"))

		err := client.WaitStopped(context.Background(), 200*time.Millisecond)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrServerStillRunning)
	})
}
