package fitnesse

import (
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeServer records every request it receives
type fakeServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []*http.Request
	status   int
}

func newFakeServer(t *testing.T, status int) *fakeServer {
	t.Helper()
	fs := &fakeServer{status: status}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.requests = append(fs.requests, r)
		fs.mu.Unlock()
		w.WriteHeader(fs.status)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) port(t *testing.T) int {
	t.Helper()
	return fs.Listener.Addr().(*net.TCPAddr).Port
}

func (fs *fakeServer) received() []*http.Request {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]*http.Request, len(fs.requests))
	copy(out, fs.requests)
	return out
}

// closedPort returns a port nothing listens on
func closedPort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}
