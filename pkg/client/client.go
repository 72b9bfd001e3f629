package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// Client issues requests against the TaskHub API. It is the single owner of
// the session: the bearer token is attached by the request builder, and any
// unauthorized response clears the session and notifies subscribers. That
// keeps the credential flow in one visible place instead of hidden middleware.
type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore

	mu      sync.RWMutex
	session Session
	subs    []func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithSessionStore replaces the session persistence backend.
func WithSessionStore(store SessionStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// New creates a Client for the given base URL. By default the session lives
// in memory only; pass WithSessionStore(NewFileSessionStore(...)) to persist
// it.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		store:   NewMemorySessionStore(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Subscribe registers a callback invoked whenever the session changes
// (login, logout, profile update, forced expiry).
func (c *Client) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Session returns a copy of the current session.
func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) setSession(session Session) {
	c.mu.Lock()
	c.session = session
	subs := c.subs
	c.mu.Unlock()

	_ = c.store.Save(session)
	for _, fn := range subs {
		fn()
	}
}

func (c *Client) clearSession() {
	c.mu.Lock()
	c.session = Session{}
	subs := c.subs
	c.mu.Unlock()

	_ = c.store.Clear()
	for _, fn := range subs {
		fn()
	}
}

// loadSession pulls the persisted session into memory without notifying;
// callers decide whether the token is still good.
func (c *Client) loadSession() Session {
	session, err := c.store.Load()
	if err != nil {
		return Session{}
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	return session
}

// do builds and executes one request: marshals the body, attaches the bearer
// token when present, and decodes the enveloped response into out. A 401
// clears the session before the error is returned.
func (c *Client) do(method, path string, query url.Values, body any, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if token := c.Session().Token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.clearSession()
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
