package client

import "net/http"

// AuthManager exposes the authentication operations: login, register, logout,
// profile fetch/update, and startup session restoration. It owns session
// mutation through the Client; dependents observe changes via Subscribe.
type AuthManager struct {
	client *Client
}

// NewAuthManager creates an AuthManager over the given client.
func NewAuthManager(client *Client) *AuthManager {
	return &AuthManager{client: client}
}

type authEnvelope struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type userEnvelope struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

// Login exchanges credentials for a session. On failure the held session is
// untouched and the server's message surfaces through the returned error.
func (m *AuthManager) Login(email, password string) error {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var resp authEnvelope
	if err := m.client.do(http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return err
	}

	m.client.setSession(Session{Token: resp.Token, User: &resp.User})
	return nil
}

// Register creates an account and starts a session with the issued token.
func (m *AuthManager) Register(name, email, password string) error {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}

	var resp authEnvelope
	if err := m.client.do(http.MethodPost, "/auth/register", nil, body, &resp); err != nil {
		return err
	}

	m.client.setSession(Session{Token: resp.Token, User: &resp.User})
	return nil
}

// Logout discards the session locally. No server round-trip is needed; the
// token simply stops being presented.
func (m *AuthManager) Logout() {
	m.client.clearSession()
}

// ProfileUpdate holds the optional profile fields. Nil fields are not sent.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// UpdateProfile sends a partial profile update and replaces the held user on
// success.
func (m *AuthManager) UpdateProfile(update ProfileUpdate) error {
	var resp userEnvelope
	if err := m.client.do(http.MethodPut, "/auth/profile", nil, update, &resp); err != nil {
		return err
	}

	session := m.client.Session()
	session.User = &resp.User
	m.client.setSession(session)
	return nil
}

// Restore loads the persisted session and resolves the current user. Any
// failure (invalid or expired token) clears the stored token and leaves the
// session unauthenticated; this is the sole recovery path for stale sessions.
func (m *AuthManager) Restore() error {
	session := m.client.loadSession()
	if session.Token == "" {
		return nil
	}

	var resp userEnvelope
	if err := m.client.do(http.MethodGet, "/auth/me", nil, nil, &resp); err != nil {
		m.client.clearSession()
		return nil
	}

	m.client.setSession(Session{Token: session.Token, User: &resp.User})
	return nil
}

// CurrentUser returns the resolved user, or nil when logged out.
func (m *AuthManager) CurrentUser() *User {
	return m.client.Session().User
}

// Authenticated reports whether a session is held.
func (m *AuthManager) Authenticated() bool {
	return m.client.Session().Token != ""
}
