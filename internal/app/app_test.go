package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrigest/internal/api"
	"agrigest/internal/config"
	"agrigest/internal/session"
	"agrigest/internal/types"
)

func testUser() types.User {
	return types.User{ID: 1, Username: "moussa"}
}

func newTestApp(t *testing.T, handler http.Handler) *App {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.API.BaseURL = srv.URL

	store := session.NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	a, err := New(cfg, zap.NewNop(), store)
	require.NoError(t, err)
	return a
}

func TestLoginPersistsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-xyz","user":{"id":1,"username":"moussa","first_name":"Moussa"}}`))
	})
	a := newTestApp(t, mux)

	user, err := a.Login(context.Background(), "moussa", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Moussa", user.FirstName)
	assert.True(t, a.Session.Authenticated())
	assert.Equal(t, "tok-xyz", a.Session.Token())
}

func TestExpiredSessionTearsDownOnce(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cultures/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid token."}`))
	})
	a := newTestApp(t, mux)
	require.NoError(t, a.Session.Login("stale", testUser()))

	notified := 0
	a.SetSessionExpiredHook(func() { notified++ })

	_, err := a.API.Cultures().GetAll(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))

	// The 401 must clear the stored credentials and fire the hook.
	assert.False(t, a.Session.Authenticated())
	assert.Equal(t, 1, notified)
}

func TestLogoutClearsEvenWhenRemoteFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/logout/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	a := newTestApp(t, mux)
	require.NoError(t, a.Session.Login("tok", testUser()))

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.Session.Authenticated())
}

func TestLoadDashboardFansOut(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dashboard/stats/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_cultures":3,"benefice_net":23000}`))
	})
	mux.HandleFunc("/dashboard/graphiques/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "6months", r.URL.Query().Get("period"))
		w.Write([]byte(`{"revenus_par_mois":[{"mois":"2025-08","revenus":75000}]}`))
	})
	mux.HandleFunc("/conseils/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "false", r.URL.Query().Get("lu"))
		w.Write([]byte(`[{"id":5,"titre":"Rotation","contenu":"...","priorite":"haute","lu":false}]`))
	})
	a := newTestApp(t, mux)

	view, err := a.LoadDashboard(context.Background(), api.Period6Months)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Stats.TotalCultures)
	require.Len(t, view.Charts.RevenusParMois, 1)
	require.Len(t, view.Conseils, 1)
	assert.Equal(t, "Rotation", view.Conseils[0].Titre)
}

func TestLoadDashboardFailsWhole(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dashboard/stats/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/dashboard/graphiques/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/conseils/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	a := newTestApp(t, mux)

	_, err := a.LoadDashboard(context.Background(), "")
	assert.Error(t, err, "any failed read fails the whole view")
}

func TestLoadHistory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cultures/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"nom":"Maïs"}]`))
	})
	mux.HandleFunc("/recoltes/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"id":2,"culture":1,"culture_nom":"Maïs"}]}`))
	})
	mux.HandleFunc("/depenses/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	a := newTestApp(t, mux)

	data, err := a.LoadHistory(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Cultures, 1)
	assert.Len(t, data.Recoltes, 1)
	assert.Empty(t, data.Depenses)
}
