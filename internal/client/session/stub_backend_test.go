package session

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vidgen/internal/client/client"
	"github.com/dmitrijs2005/vidgen/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vidgen/internal/client/rest"
)

func newSQLiteTokens(t *testing.T) TokenStore {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewTokenStore(metadata.NewSQLiteRepository(db))
}

func TestTokenStore_SQLite(t *testing.T) {
	ctx := context.Background()
	tokens := newSQLiteTokens(t)

	tok, err := tokens.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, tokens.Save(ctx, "abc"))
	tok, err = tokens.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	require.NoError(t, tokens.Clear(ctx))
	tok, err = tokens.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestTokenStore_WrapsErrors(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())
	tokens := NewTokenStore(metadata.NewSQLiteRepository(db))
	ctx := context.Background()

	_, err = tokens.Token(ctx)
	assert.ErrorContains(t, err, "read token")
	assert.ErrorContains(t, tokens.Save(ctx, "x"), "save token")
	assert.ErrorContains(t, tokens.Clear(ctx), "clear token")
}

// End to end over HTTP: the stored token is what the authenticated requester
// sends on the next call.
func TestStore_AgainstStubBackend(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			_, _ = w.Write([]byte(`{"success":true,"token":"t","user":{"_id":"u1","email":"jane@x.io","firstName":"Jane","lastName":"Doe"}}`))
		case "/auth/me":
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"success":true,"user":{"_id":"u1","email":"jane@x.io","firstName":"Jane","lastName":"Doe","credits":7}}`))
		case "/auth/logout":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	tokens := newSQLiteTokens(t)
	api := client.NewHTTPClient(rest.New(srv.URL, tokens), rest.New(srv.URL, nil))

	s := NewStore(api, tokens, nil)
	sess, err := s.Login(ctx, "jane@x.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", sess.DisplayName)

	tok, err := tokens.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t", tok)

	restarted := NewStore(api, tokens, nil)
	restarted.Bootstrap(ctx)
	assert.Equal(t, "Bearer t", gotAuth)
	cur, ok := restarted.Current()
	require.True(t, ok)
	assert.Equal(t, 7, cur.CreditBalance)

	restarted.Logout(ctx)
	assert.False(t, restarted.IsAuthenticated())
	tok, err = tokens.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}
