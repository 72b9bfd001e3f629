package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func authOK(w http.ResponseWriter, token string, user User) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

func TestAuthManager_LoginStoresSession(t *testing.T) {
	user := User{ID: 1, Name: "Tester", Email: "tester@example.com", Role: "user"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "tester@example.com", body["email"])
		authOK(w, "issued-token", user)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewMemorySessionStore()
	c := New(srv.URL, WithSessionStore(store))
	authManager := NewAuthManager(c)

	require.NoError(t, authManager.Login("tester@example.com", "supersecret"))

	require.True(t, authManager.Authenticated())
	require.Equal(t, "issued-token", c.Session().Token)
	require.Equal(t, "Tester", authManager.CurrentUser().Name)

	persisted, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "issued-token", persisted.Token)
}

func TestAuthManager_LoginFailureSurfacesMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "invalid email or password",
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	authManager := NewAuthManager(c)

	err := authManager.Login("tester@example.com", "wrong")
	require.Error(t, err)
	require.EqualError(t, err, "invalid email or password")
	require.False(t, authManager.Authenticated())
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []Task{}})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	c.setSession(Session{Token: "stored-token"})

	require.NoError(t, NewTaskManager(c).Fetch(Filters{}))
	require.Equal(t, "Bearer stored-token", gotAuth)
}

func TestClient_UnauthorizedClearsSessionAndNotifies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid or expired token"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewMemorySessionStore()
	c := New(srv.URL, WithSessionStore(store))
	c.setSession(Session{Token: "expired-token", User: &User{ID: 1}})

	notified := false
	c.Subscribe(func() { notified = true })

	err := NewTaskManager(c).Fetch(Filters{})
	require.Error(t, err)
	require.True(t, IsUnauthorized(err))

	require.Empty(t, c.Session().Token)
	require.Nil(t, c.Session().User)
	require.True(t, notified)

	persisted, loadErr := store.Load()
	require.NoError(t, loadErr)
	require.Empty(t, persisted.Token)
}

func TestAuthManager_RestoreResolvesUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer saved-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    User{ID: 9, Name: "Saved", Email: "saved@example.com"},
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewMemorySessionStore()
	require.NoError(t, store.Save(Session{Token: "saved-token"}))

	c := New(srv.URL, WithSessionStore(store))
	authManager := NewAuthManager(c)

	require.NoError(t, authManager.Restore())
	require.True(t, authManager.Authenticated())
	require.Equal(t, "Saved", authManager.CurrentUser().Name)
}

func TestAuthManager_RestoreClearsStaleToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid or expired token"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewMemorySessionStore()
	require.NoError(t, store.Save(Session{Token: "stale-token"}))

	c := New(srv.URL, WithSessionStore(store))
	authManager := NewAuthManager(c)

	require.NoError(t, authManager.Restore())
	require.False(t, authManager.Authenticated())

	persisted, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, persisted.Token)
}

func TestAuthManager_RestoreWithoutToken(t *testing.T) {
	// No server round-trip should happen when nothing is stored.
	c := New("http://127.0.0.1:0")
	authManager := NewAuthManager(c)

	require.NoError(t, authManager.Restore())
	require.False(t, authManager.Authenticated())
}

func TestAuthManager_Logout(t *testing.T) {
	c := New("http://127.0.0.1:0")
	c.setSession(Session{Token: "token", User: &User{ID: 1}})

	authManager := NewAuthManager(c)
	authManager.Logout()

	require.False(t, authManager.Authenticated())
	require.Nil(t, authManager.CurrentUser())
}

func TestFileSessionStore_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileSessionStore(path)

	// Missing file loads as logged out.
	session, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, session.Token)

	require.NoError(t, store.Save(Session{
		Token: "file-token",
		User:  &User{ID: 3, Email: "file@example.com"},
	}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "file-token", loaded.Token)
	require.Equal(t, "file@example.com", loaded.User.Email)

	require.NoError(t, store.Clear())
	cleared, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, cleared.Token)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}
