package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newWebServer wires a full web handler stack over the fake API. The
// returned client carries cookies and does not follow redirects, so tests
// can assert on Location headers.
func newWebServer(t *testing.T, api *fakeAPI) (*httptest.Server, *http.Client) {
	t.Helper()

	h := NewHandler(
		application.NewListService(api),
		application.NewDeleteService(api),
		application.NewSelectionStore(),
		application.NewDefaultsProvider(nil, queryparams.DefaultConfig()),
		discardLogger(),
	)

	mux := http.NewServeMux()
	RegisterRoutes(mux, h)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, newBrowserClient(t)
}

// newBrowserClient builds a cookie-carrying client, one per simulated
// browser session.
func newBrowserClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// pagedAPI serves `total` credentials named cr-1..cr-N in pages, with
// create permitted and deletes succeeding.
func pagedAPI(total int) *fakeAPI {
	return &fakeAPI{
		list: func(_ context.Context, q model.Query) (*model.CredentialPage, error) {
			start := (q.Page - 1) * q.PageSize
			var creds []model.Credential
			for i := start; i < total && i < start+q.PageSize; i++ {
				creds = append(creds, model.Credential{
					ID:   fmt.Sprintf("cr-%d", i+1),
					Name: fmt.Sprintf("credential %d", i+1),
					Kind: "machine",
				})
			}
			return &model.CredentialPage{Credentials: creds, Count: total}, nil
		},
		actions: func(context.Context) (model.Actions, error) {
			return model.Actions{"GET": nil, "POST": nil}, nil
		},
		delete: func(context.Context, string) error { return nil },
	}
}

func getPage(t *testing.T, client *http.Client, pageURL string) string {
	t.Helper()

	resp, err := client.Get(pageURL)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(body)
}

// csrfFrom extracts the CSRF token the server set on a previous response.
func csrfFrom(t *testing.T, client *http.Client, serverURL string) string {
	t.Helper()

	u, err := url.Parse(serverURL)
	require.NoError(t, err)

	for _, c := range client.Jar.Cookies(u) {
		if c.Name == "csrf_token" {
			return c.Value
		}
	}
	t.Fatal("no csrf_token cookie set")
	return ""
}

func postForm(t *testing.T, client *http.Client, actionURL string, form url.Values) *http.Response {
	t.Helper()

	resp, err := client.PostForm(actionURL, form)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestCredentialList_RendersRows(t *testing.T) {
	server, client := newWebServer(t, pagedAPI(3))

	body := getPage(t, client, server.URL+"/app/credentials")

	assert.Contains(t, body, "credential 1")
	assert.Contains(t, body, "credential 3")
	assert.Contains(t, body, "1&ndash;3 of 3")
	assert.Contains(t, body, "Add credential")
	assert.NotContains(t, body, "content-error")
}

func TestCredentialList_ReadOnlyHidesAdd(t *testing.T) {
	api := pagedAPI(3)
	api.actions = func(context.Context) (model.Actions, error) {
		return model.Actions{"GET": nil}, nil
	}
	server, client := newWebServer(t, api)

	body := getPage(t, client, server.URL+"/app/credentials")

	assert.NotContains(t, body, "Add credential")
}

func TestCredentialList_FetchFailureRendersContentError(t *testing.T) {
	api := pagedAPI(3)
	api.list = func(context.Context, model.Query) (*model.CredentialPage, error) {
		return nil, errors.New("controller unreachable")
	}
	server, client := newWebServer(t, api)

	body := getPage(t, client, server.URL+"/app/credentials")

	assert.Contains(t, body, "Failed to load credentials")
	assert.Contains(t, body, "controller unreachable")
	assert.NotContains(t, body, "<table>")
}

func TestCredentialList_SecondPageLinks(t *testing.T) {
	server, client := newWebServer(t, pagedAPI(45))

	body := getPage(t, client, server.URL+"/app/credentials?page=2")

	assert.Contains(t, body, "21&ndash;40 of 45")
	assert.Contains(t, body, `rel="prev" href="/app/credentials"`)
	assert.Contains(t, body, `rel="next" href="/app/credentials?page=3"`)
}

func TestToggleSelect_MarksRow(t *testing.T) {
	server, client := newWebServer(t, pagedAPI(3))

	getPage(t, client, server.URL+"/app/credentials")
	csrf := csrfFrom(t, client, server.URL)

	resp := postForm(t, client, server.URL+"/app/credentials/select", url.Values{
		"csrf_token": {csrf},
		"id":         {"cr-2"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/app/credentials", resp.Header.Get("Location"))

	body := getPage(t, client, server.URL+"/app/credentials")
	assert.Contains(t, body, `data-credential-id="cr-2" class="selected"`)
	assert.Contains(t, body, "Delete selected (1)")
}

func TestSelectAll_ThenTogglesOff(t *testing.T) {
	server, client := newWebServer(t, pagedAPI(3))

	getPage(t, client, server.URL+"/app/credentials")
	csrf := csrfFrom(t, client, server.URL)

	postForm(t, client, server.URL+"/app/credentials/select-all", url.Values{
		"csrf_token": {csrf},
	})
	body := getPage(t, client, server.URL+"/app/credentials")
	assert.Contains(t, body, "Delete selected (3)")
	assert.Equal(t, 3, strings.Count(body, `class="selected"`))

	// A second select-all with everything selected clears the selection.
	postForm(t, client, server.URL+"/app/credentials/select-all", url.Values{
		"csrf_token": {csrf},
	})
	body = getPage(t, client, server.URL+"/app/credentials")
	assert.Contains(t, body, "Delete selected (0)")
	assert.NotContains(t, body, `class="selected"`)
}

func TestDeleteSelected_FullPageNavigatesToPreviousPage(t *testing.T) {
	server, client := newWebServer(t, pagedAPI(25))

	// Page 2 holds five credentials; select and delete all of them.
	getPage(t, client, server.URL+"/app/credentials?page=2")
	csrf := csrfFrom(t, client, server.URL)

	postForm(t, client, server.URL+"/app/credentials/select-all", url.Values{
		"csrf_token": {csrf},
		"q":          {"page=2"},
	})

	resp := postForm(t, client, server.URL+"/app/credentials/delete", url.Values{
		"csrf_token": {csrf},
		"q":          {"page=2"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/app/credentials", resp.Header.Get("Location"))
}

func TestDeleteSelected_PartialPageStaysOnPage(t *testing.T) {
	server, client := newWebServer(t, pagedAPI(25))

	getPage(t, client, server.URL+"/app/credentials?page=2")
	csrf := csrfFrom(t, client, server.URL)

	postForm(t, client, server.URL+"/app/credentials/select", url.Values{
		"csrf_token": {csrf},
		"id":         {"cr-21"},
		"q":          {"page=2"},
	})

	resp := postForm(t, client, server.URL+"/app/credentials/delete", url.Values{
		"csrf_token": {csrf},
		"q":          {"page=2"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/app/credentials?page=2", resp.Header.Get("Location"))
}

func TestDeleteSelected_FailureOpensModalAndKeepsFailedSelected(t *testing.T) {
	api := pagedAPI(3)
	api.delete = func(_ context.Context, id string) error {
		if id == "cr-2" {
			return errors.New("in use by an active session")
		}
		return nil
	}
	server, client := newWebServer(t, api)

	getPage(t, client, server.URL+"/app/credentials")
	csrf := csrfFrom(t, client, server.URL)

	postForm(t, client, server.URL+"/app/credentials/select", url.Values{
		"csrf_token": {csrf}, "id": {"cr-1"},
	})
	postForm(t, client, server.URL+"/app/credentials/select", url.Values{
		"csrf_token": {csrf}, "id": {"cr-2"},
	})

	resp := postForm(t, client, server.URL+"/app/credentials/delete", url.Values{
		"csrf_token": {csrf},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	body := getPage(t, client, server.URL+"/app/credentials")
	assert.Contains(t, body, "Deletion failed")
	assert.Contains(t, body, "in use by an active session")
	// cr-2 failed and stays selected; cr-1 was deleted and left the selection.
	assert.Contains(t, body, `data-credential-id="cr-2" class="selected"`)
	assert.Contains(t, body, "Delete selected (1)")

	// Dismissing clears the modal for subsequent renders.
	postForm(t, client, server.URL+"/app/credentials/dismiss-error", url.Values{
		"csrf_token": {csrf},
	})
	body = getPage(t, client, server.URL+"/app/credentials")
	assert.NotContains(t, body, "Deletion failed")
}

func TestDeleteSelected_ScopedToOwnSessionsPage(t *testing.T) {
	var mu sync.Mutex
	var deleted []string

	api := pagedAPI(25)
	api.delete = func(_ context.Context, id string) error {
		mu.Lock()
		defer mu.Unlock()
		deleted = append(deleted, id)
		return nil
	}
	server, clientA := newWebServer(t, api)
	clientB := newBrowserClient(t)

	// Session A renders page 1, then session B renders page 2.
	getPage(t, clientA, server.URL+"/app/credentials")
	csrfA := csrfFrom(t, clientA, server.URL)
	getPage(t, clientB, server.URL+"/app/credentials?page=2")

	// A's select-all and delete must act on A's page, not on the page
	// fetched last process-wide.
	postForm(t, clientA, server.URL+"/app/credentials/select-all", url.Values{
		"csrf_token": {csrfA},
	})
	resp := postForm(t, clientA, server.URL+"/app/credentials/delete", url.Values{
		"csrf_token": {csrfA},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, deleted, 20)
	for i := 21; i <= 25; i++ {
		assert.NotContains(t, deleted, fmt.Sprintf("cr-%d", i))
	}
}

func TestMutations_RejectMissingCSRF(t *testing.T) {
	server, client := newWebServer(t, pagedAPI(3))

	getPage(t, client, server.URL+"/app/credentials")

	resp := postForm(t, client, server.URL+"/app/credentials/delete", url.Values{})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRootRedirectsToCredentialList(t *testing.T) {
	server, client := newWebServer(t, pagedAPI(1))

	resp, err := client.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/app/credentials", resp.Header.Get("Location"))
}
