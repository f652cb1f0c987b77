package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equiply/equiply-cli/internal/client/session"
)

func TestClient_Workspaces_QueryParams(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "20", q.Get("skip"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "created_at", q.Get("sort_by"))
		assert.Equal(t, "true", q.Get("sort_desc"))
		assert.Equal(t, "alpha", q.Get("search"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"items":[{"id":"w1","name":"alpha"}],"total":1,"page":3,"size":10}}`))
	})

	client, _, _ := newAPIClient(t, handler, session.ClientDesktop)

	page, err := client.Workspaces(context.Background(), ListWorkspacesParams{
		Skip: 20, Limit: 10, SortBy: "created_at", SortDesc: true, Search: "alpha",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "w1", page.Items[0].ID)
	assert.Equal(t, 1, page.Total)
}

func TestClient_Workspaces_ZeroParamsOmitted(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"items":[],"total":0,"page":1,"size":0}}`))
	})

	client, _, _ := newAPIClient(t, handler, session.ClientDesktop)

	page, err := client.Workspaces(context.Background(), ListWorkspacesParams{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestClient_CreateWorkspace(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"alpha","description":"first","is_public":false}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":"w1","name":"alpha","description":"first"}}`))
	})

	client, _, _ := newAPIClient(t, handler, session.ClientDesktop)

	ws, err := client.CreateWorkspace(context.Background(), CreateWorkspaceRequest{
		Name: "alpha", Description: "first",
	})
	require.NoError(t, err)
	assert.Equal(t, "w1", ws.ID)
}

func TestClient_Completion(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/ai/completion", r.URL.Path)
		assert.Equal(t, "c1", r.URL.Query().Get("chat_id"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "hello", r.FormValue("message"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":{"alternatives":[{"message":{"role":"assistant","text":"hi there"},"status":"final"}],"modelVersion":"1"}}`))
	})

	client, _, _ := newAPIClient(t, handler, session.ClientDesktop)

	result, err := client.Completion(context.Background(), "c1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", result.Text())
}

func TestClient_ChatLifecycle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/ai/chats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			w.Write([]byte(`{"success":true,"data":{"id":"c1","title":"notes"}}`))
		case http.MethodGet:
			w.Write([]byte(`{"success":true,"data":[{"id":"c1","title":"notes"}]}`))
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/ai/chats/c1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"title":"renamed"}`, string(body))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,"data":{"id":"c1","title":"renamed"}}`))
		case http.MethodDelete:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true}`))
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	client, _, _ := newAPIClient(t, mux, session.ClientDesktop)
	ctx := context.Background()

	chat, err := client.CreateChat(ctx, "notes", "")
	require.NoError(t, err)
	assert.Equal(t, "c1", chat.ID)

	chats, err := client.Chats(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 1)

	title := "renamed"
	updated, err := client.UpdateChat(ctx, "c1", ChatUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)

	require.NoError(t, client.DeleteChat(ctx, "c1"))
}

func TestClient_History(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/ai/chats/c1/history", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"success":true,"data":[{"role":"user","text":"hi"},{"role":"assistant","text":"hello"}]}`))
		case http.MethodDelete:
			w.Write([]byte(`{"success":true}`))
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	client, _, _ := newAPIClient(t, mux, session.ClientDesktop)
	ctx := context.Background()

	history, err := client.History(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "assistant", history[1].Role)

	require.NoError(t, client.ClearHistory(ctx, "c1"))
}

func TestClient_EndpointJoinsBasePath(t *testing.T) {
	base, err := url.Parse("https://api.example.com/equiply/")
	require.NoError(t, err)
	c := &Client{base: base}

	got := c.endpoint("/api/v1/workspaces", nil)
	assert.Equal(t, "https://api.example.com/equiply/api/v1/workspaces", got)
}

func TestClient_ContextCancellationPropagates(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL)
	require.NoError(t, err)
	client := NewClient(base, srv.Client(), session.NewTokenStore(&memBackend{}),
		session.NewBus(), session.ClientDesktop, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go cancel()
	_, err = client.Workspaces(ctx, ListWorkspacesParams{})
	require.Error(t, err)
	assert.NotContains(t, strings.ToLower(err.Error()), "unavailable")
}
