package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credpanel/credpanel/internal/application"
	"github.com/credpanel/credpanel/internal/domain/model"
	"github.com/credpanel/credpanel/internal/queryparams"
)

// fakeAPI implements driven.CredentialAPI with pluggable behavior.
type fakeAPI struct {
	list    func(ctx context.Context, q model.Query) (*model.CredentialPage, error)
	actions func(ctx context.Context) (model.Actions, error)
	delete  func(ctx context.Context, id string) error
}

func (f *fakeAPI) ListCredentials(ctx context.Context, q model.Query) (*model.CredentialPage, error) {
	return f.list(ctx, q)
}

func (f *fakeAPI) CredentialActions(ctx context.Context) (model.Actions, error) {
	return f.actions(ctx)
}

func (f *fakeAPI) DeleteCredential(ctx context.Context, id string) error {
	return f.delete(ctx, id)
}

type fakePrefs struct {
	prefs *model.ViewPreferences
	err   error
}

func (f *fakePrefs) Get(context.Context) (*model.ViewPreferences, error) { return f.prefs, f.err }
func (f *fakePrefs) Save(_ context.Context, p model.ViewPreferences) error {
	f.prefs = &p
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer wires a full handler stack over the fake API and prefs.
func newTestServer(t *testing.T, api *fakeAPI, prefs *fakePrefs) *httptest.Server {
	t.Helper()

	defaults := application.NewDefaultsProvider(prefs, queryparams.DefaultConfig())
	h := NewHandler(
		application.NewListService(api),
		application.NewDeleteService(api),
		defaults,
		prefs,
		discardLogger(),
	)

	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	server := httptest.NewServer(ApplyMiddleware(mux, discardLogger()))
	t.Cleanup(server.Close)

	return server
}

func listingAPI() *fakeAPI {
	return &fakeAPI{
		list: func(_ context.Context, q model.Query) (*model.CredentialPage, error) {
			return &model.CredentialPage{
				Credentials: []model.Credential{
					{ID: "1", Name: "A", Kind: "ssh"},
					{ID: "2", Name: "B", Kind: "token"},
				},
				Count: 2,
			}, nil
		},
		actions: func(context.Context) (model.Actions, error) {
			return model.Actions{"GET": json.RawMessage(`{}`), "POST": json.RawMessage(`{}`)}, nil
		},
	}
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestListCredentials_DefaultQuery(t *testing.T) {
	var gotQuery model.Query
	api := listingAPI()
	inner := api.list
	api.list = func(ctx context.Context, q model.Query) (*model.CredentialPage, error) {
		gotQuery = q
		return inner(ctx, q)
	}

	server := newTestServer(t, api, &fakePrefs{})

	var view ViewResponse
	status := getJSON(t, server.URL+"/api/v1/credentials", &view)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, model.Query{Page: 1, PageSize: 20, OrderBy: "name"}, gotQuery)
	assert.Equal(t, 2, view.CredentialCount)
	require.Len(t, view.Credentials, 2)
	assert.Equal(t, "A", view.Credentials[0].Name)
	assert.True(t, view.CanAdd)
	assert.Equal(t, []string{"GET", "POST"}, view.Actions)
}

func TestListCredentials_QueryStringForwarded(t *testing.T) {
	var gotQuery model.Query
	api := listingAPI()
	inner := api.list
	api.list = func(ctx context.Context, q model.Query) (*model.CredentialPage, error) {
		gotQuery = q
		return inner(ctx, q)
	}

	server := newTestServer(t, api, &fakePrefs{})

	var view ViewResponse
	status := getJSON(t, server.URL+"/api/v1/credentials?page=4&page_size=10&order_by=kind", &view)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, model.Query{Page: 4, PageSize: 10, OrderBy: "kind"}, gotQuery)
	assert.Equal(t, 4, view.Page)
}

func TestListCredentials_PreferencesSeedDefaults(t *testing.T) {
	var gotQuery model.Query
	api := listingAPI()
	inner := api.list
	api.list = func(ctx context.Context, q model.Query) (*model.CredentialPage, error) {
		gotQuery = q
		return inner(ctx, q)
	}
	prefs := &fakePrefs{prefs: &model.ViewPreferences{PageSize: 50, OrderBy: "-name"}}

	server := newTestServer(t, api, prefs)

	var view ViewResponse
	getJSON(t, server.URL+"/api/v1/credentials", &view)

	assert.Equal(t, model.Query{Page: 1, PageSize: 50, OrderBy: "-name"}, gotQuery)
}

func TestListCredentials_ControllerError(t *testing.T) {
	api := listingAPI()
	api.list = func(context.Context, model.Query) (*model.CredentialPage, error) {
		return nil, errors.New("connection refused")
	}

	server := newTestServer(t, api, &fakePrefs{})

	var body map[string]string
	status := getJSON(t, server.URL+"/api/v1/credentials", &body)

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body["error"], "connection refused")
}

func TestDeleteCredentials_AllSucceed(t *testing.T) {
	api := listingAPI()
	api.delete = func(context.Context, string) error { return nil }

	server := newTestServer(t, api, &fakePrefs{})

	resp, err := http.Post(
		server.URL+"/api/v1/credentials/delete",
		"application/json",
		strings.NewReader(`{"ids":["1","2"]}`),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result DeleteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, result.OK)
	assert.Equal(t, []string{"1", "2"}, result.Deleted)
}

func TestDeleteCredentials_PartialFailure(t *testing.T) {
	api := listingAPI()
	api.delete = func(_ context.Context, id string) error {
		if id == "2" {
			return errors.New("locked")
		}
		return nil
	}

	server := newTestServer(t, api, &fakePrefs{})

	resp, err := http.Post(
		server.URL+"/api/v1/credentials/delete",
		"application/json",
		strings.NewReader(`{"ids":["1","2","3"]}`),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result DeleteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.False(t, result.OK)
	assert.Equal(t, []string{"1", "3"}, result.Deleted)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "2", result.Failed[0].ID)
}

func TestDeleteCredentials_EmptyBody(t *testing.T) {
	server := newTestServer(t, listingAPI(), &fakePrefs{})

	resp, err := http.Post(
		server.URL+"/api/v1/credentials/delete",
		"application/json",
		strings.NewReader(`{"ids":[]}`),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPreferences_RoundTrip(t *testing.T) {
	server := newTestServer(t, listingAPI(), &fakePrefs{})

	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/v1/preferences", strings.NewReader(`{"page_size":100,"order_by":"kind"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var prefs PreferencesResponse
	status := getJSON(t, server.URL+"/api/v1/preferences", &prefs)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 100, prefs.PageSize)
	assert.Equal(t, "kind", prefs.OrderBy)
}

func TestPreferences_RejectsInvalid(t *testing.T) {
	server := newTestServer(t, listingAPI(), &fakePrefs{})

	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/v1/preferences", strings.NewReader(`{"page_size":0,"order_by":""}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, listingAPI(), &fakePrefs{})

	var health HealthResponse
	status := getJSON(t, server.URL+"/api/v1/health", &health)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", health.Status)
	assert.False(t, health.Busy)
}
