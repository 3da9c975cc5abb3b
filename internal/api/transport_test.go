package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"agrigest/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// net/http keeps idle connections around between tests.
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
	)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, opts...)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}, WithToken(func() string { return "tok-abc" }))

	_, err := c.Dashboard().Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Token tok-abc", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestAnonymousRequestOmitsAuthorization(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"token":"t","user":{"id":1,"username":"u"}}`))
	})

	_, err := c.Auth().Login(context.Background(), Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetListUnwrapsEnvelope(t *testing.T) {
	t.Run("paginated envelope", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"count":2,"results":[{"id":1,"nom":"Maïs"},{"id":2,"nom":"Riz"}]}`))
		})
		cultures, err := c.Cultures().GetAll(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, cultures, 2)
		assert.Equal(t, "Riz", cultures[1].Nom)
	})

	t.Run("bare array", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id":3,"nom":"Tomate"}]`))
		})
		cultures, err := c.Cultures().GetAll(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, cultures, 1)
		assert.Equal(t, 3, cultures[0].ID)
	})

	t.Run("empty body is an empty collection", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		cultures, err := c.Cultures().GetAll(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, cultures)
	})
}

func TestFiltersForwarded(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})

	_, err := c.Recoltes().GetAll(context.Background(), Filters{"culture": "4", "vide": ""})
	require.NoError(t, err)
	assert.Equal(t, "culture=4", query, "blank filter values are dropped")
}

func TestCreateSendsJSONBody(t *testing.T) {
	var body types.Depense
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":9,"description":"Engrais","categorie":"engrais","montant":8000,"date_depense":"2025-05-02"}`))
	})

	created, err := c.Depenses().Create(context.Background(), types.Depense{
		Description: "Engrais", Categorie: "engrais", Montant: 8000, DateDepense: "2025-05-02",
	})
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)
	assert.Equal(t, 8000.0, body.Montant)
}

func TestUnauthorizedFiresExpiryHookOnce(t *testing.T) {
	expired := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid token."}`))
	}, WithSessionExpiredHook(func() { expired++ }))

	_, err := c.Cultures().GetAll(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, expired)
}

func TestValidationErrorsDecodeToFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"nom":["Ce champ est obligatoire.","Autre message."],"superficie":["Doit être positif."]}`))
	})

	_, err := c.Cultures().Create(context.Background(), types.Culture{})
	require.Error(t, err)

	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Ce champ est obligatoire.", fieldErrs["nom"], "only the first message per field is kept")
	assert.Equal(t, "Doit être positif.", fieldErrs["superficie"])
}

func TestDetailErrorsBecomeAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Pas trouvé."}`))
	})

	_, err := c.Cultures().GetByID(context.Background(), 99)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Pas trouvé.", apiErr.Detail)
	assert.False(t, IsUnauthorized(err))
}

func TestMarkReadHitsCustomAction(t *testing.T) {
	var method, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Write([]byte(`{"id":5,"titre":"Rotation","contenu":"...","priorite":"haute","lu":true}`))
	})

	conseil, err := c.Conseils().MarkRead(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "/conseils/5/marquer-lu/", path)
	assert.True(t, conseil.Lu)
}

func TestDashboardCharts(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"revenus_par_mois":[{"mois":"2025-08","revenus":75000}],"depenses_par_mois":[],"cultures_rendement":[],"depenses_par_categorie":[{"categorie":"engrais","total":12000}]}`))
	})

	data, err := c.Dashboard().Charts(context.Background(), Period6Months)
	require.NoError(t, err)
	assert.Equal(t, "period=6months", query)
	require.Len(t, data.RevenusParMois, 1)
	assert.Equal(t, 75000.0, data.RevenusParMois[0].Revenus)
	assert.Equal(t, "engrais", data.DepensesParCategorie[0].Categorie)
}

func TestDeleteSendsNoBodyExpectsNone(t *testing.T) {
	var method string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Cultures().Delete(context.Background(), 7))
	assert.Equal(t, http.MethodDelete, method)
}
