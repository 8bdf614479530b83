// Package fitnesse talks to a running FitNesse server over HTTP: symlink
// registration, shutdown requests and reachability polling.
package fitnesse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultHost is the host every request is sent to
const DefaultHost = "localhost"

var (
	// ErrServerNotReady is returned when a server never answers within the wait timeout
	ErrServerNotReady = errors.New("fitnesse server not ready")
	// ErrServerStillRunning is returned when a server keeps answering after shutdown
	ErrServerStillRunning = errors.New("fitnesse server still running")
)

// Client issues requests against a FitNesse server on one port
type Client struct {
	host       string
	port       int
	httpClient *http.Client
	username   string
	password   string
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHost overrides the host requests are sent to
func WithHost(host string) ClientOption {
	return func(c *Client) {
		c.host = host
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// WithCredentials sets basic auth credentials used for shutdown
func WithCredentials(username, password string) ClientOption {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// NewClient creates a Client for the server listening on port
func NewClient(port int, opts ...ClientOption) *Client {
	c := &Client{
		host:       DefaultHost,
		port:       port,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Port returns the server port
func (c *Client) Port() int {
	return c.port
}

// Address returns host:port
func (c *Client) Address() string {
	return net.JoinHostPort(c.host, strconv.Itoa(c.port))
}

// SymLinkURL returns the URL that creates or replaces linkName in the wiki root
func (c *Client) SymLinkURL(linkName, linkPath string) string {
	return fmt.Sprintf("http://%s/root?responder=symlink&linkName=%s&linkPath=%s&submit=%s",
		c.Address(),
		url.QueryEscape(linkName),
		url.QueryEscape(linkPath),
		url.QueryEscape("Create/Replace"),
	)
}

// ShutdownURL returns the URL of the shutdown responder
func (c *Client) ShutdownURL() string {
	return fmt.Sprintf("http://%s/?responder=shutdown", c.Address())
}

// Get issues a GET to rawURL and returns the response status code
func (c *Client) Get(ctx context.Context, rawURL string, auth bool) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if auth && c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// Ping requests the front page. Any HTTP response means the server is up.
func (c *Client) Ping(ctx context.Context) (int, error) {
	return c.Get(ctx, fmt.Sprintf("http://%s/", c.Address()), false)
}

// Shutdown asks the server to stop
func (c *Client) Shutdown(ctx context.Context) (int, error) {
	return c.Get(ctx, c.ShutdownURL(), true)
}

// WaitReady polls the server until it answers or timeout elapses
func (c *Client) WaitReady(ctx context.Context, timeout time.Duration) error {
	_, err := backoff.RetryWithData(func() (int, error) {
		return c.Ping(ctx)
	}, backoff.WithContext(newBackOff(timeout), ctx))
	if err != nil {
		return fmt.Errorf("%w on port %d: %v", ErrServerNotReady, c.port, err)
	}
	return nil
}

// WaitStopped polls the server until connections are refused or timeout elapses
func (c *Client) WaitStopped(ctx context.Context, timeout time.Duration) error {
	err := backoff.Retry(func() error {
		_, err := c.Ping(ctx)
		if err == nil {
			return ErrServerStillRunning
		}
		if IsConnectionRefused(err) {
			return nil
		}
		return err
	}, backoff.WithContext(newBackOff(timeout), ctx))
	if err != nil {
		return fmt.Errorf("port %d: %w", c.port, err)
	}
	return nil
}

func newBackOff(timeout time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = timeout
	return b
}

// IsConnectionRefused reports whether err means nothing listens on the port
func IsConnectionRefused(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "actively refused")
}
