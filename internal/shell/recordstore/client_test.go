package recordstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmdo/nmdo/internal/core/domain"
)

func TestNewClient_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	client := NewClient(cfg, nil)

	assert.NotNil(t, client)
	assert.Equal(t, "https://api.notion.com", client.baseURL)
	assert.Equal(t, "2021-05-13", client.version)
	assert.NotNil(t, client.httpClient)
}

func TestClient_GetModule_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/pages/page-1", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2021-05-13", r.Header.Get("Notion-Version"))

		w.Write([]byte(`{
			"id": "page-1",
			"properties": {
				"Reference": {"title": [{"text": {"content": " a.txt "}}]},
				"Path": {"rich_text": [{"text": {"content": "src/utils"}}]}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Token: "test-token", Version: "2021-05-13"}, nil)

	mod, err := client.GetModule(context.Background(), "page-1")
	require.NoError(t, err)

	assert.Equal(t, "page-1", mod.ID)
	assert.Equal(t, "a.txt", mod.Filename)
	assert.Equal(t, "src/utils", mod.SubPath)
}

func TestClient_GetModule_MissingProperties(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "page-2", "properties": {}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, nil)

	// Missing Reference and Path must yield empty fields, not a failure;
	// the required-filename rule is enforced by the deployer.
	mod, err := client.GetModule(context.Background(), "page-2")
	require.NoError(t, err)

	assert.Equal(t, "", mod.Filename)
	assert.Equal(t, "", mod.SubPath)
}

func TestClient_GetModule_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"object": "error", "status": 404}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, nil)

	_, err := client.GetModule(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_GetModule_NetworkError(t *testing.T) {
	client := NewClient(Config{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 1 * time.Second,
	}, nil)

	_, err := client.GetModule(context.Background(), "page-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestClient_GetBlocks_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/blocks/page-1/children", r.URL.Path)

		w.Write([]byte(`{
			"results": [
				{"type": "paragraph"},
				{"type": "code", "code": {"text": []}},
				{"type": "code", "code": {"text": [{"text": {"content": "hello"}}]}}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, nil)

	blocks, err := client.GetBlocks(context.Background(), "page-1")
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	assert.Equal(t, domain.BlockOther, blocks[0].Kind)
	assert.Equal(t, domain.BlockCode, blocks[1].Kind)
	assert.Equal(t, "", blocks[1].Text)
	assert.Equal(t, domain.BlockCode, blocks[2].Kind)
	assert.Equal(t, "hello", blocks[2].Text)
}

func TestClient_QueryDatabase_FilterBody(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/databases/db-1/query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		err := json.NewDecoder(r.Body).Decode(&received)
		require.NoError(t, err)

		w.Write([]byte(`{"results": [], "has_more": false, "next_cursor": null}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, nil)

	_, err := client.QueryDatabase(context.Background(), "db-1", Query{
		Filter: &PropertyFilter{Property: PropertyReference, MatchKind: MatchContains, Value: "demo"},
	})
	require.NoError(t, err)

	filter, ok := received["filter"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Reference", filter["property"])
	title, ok := filter["title"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "demo", title["contains"])
	assert.NotContains(t, received, "start_cursor")
}

func TestClient_QueryDatabase_CursorBody(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.Write([]byte(`{"results": [], "has_more": false, "next_cursor": null}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, nil)

	_, err := client.QueryDatabase(context.Background(), "db-1", Query{StartCursor: "cursor-2"})
	require.NoError(t, err)

	assert.Equal(t, "cursor-2", received["start_cursor"])
	assert.NotContains(t, received, "filter")
}

func TestClient_QueryDatabase_ParsesSeeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"results": [{
				"id": "seed-1",
				"properties": {
					"Reference": {"title": [{"text": {"content": "_SEED, 2026-01-25 [Demo] (Create Folders)"}}]},
					"Modules": {"relation": [{"id": "m1"}, {"id": "m2"}]},
					"Command": {"rich_text": [{"text": {"content": "echo done"}}]}
				}
			}],
			"has_more": true,
			"next_cursor": "cursor-2"
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, nil)

	page, err := client.QueryDatabase(context.Background(), "db-1", Query{})
	require.NoError(t, err)

	assert.True(t, page.HasMore)
	assert.Equal(t, "cursor-2", page.NextCursor)
	require.Len(t, page.Results, 1)

	seed := page.Results[0]
	assert.Equal(t, "seed-1", seed.ID)
	assert.Equal(t, "_SEED, 2026-01-25 [Demo] (Create Folders)", seed.Name)
	assert.Equal(t, []string{"m1", "m2"}, seed.ModuleIDs)
	assert.Equal(t, "echo done", seed.Command)
}

func TestClient_QueryDatabase_NullCursor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [], "has_more": false, "next_cursor": null}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, nil)

	page, err := client.QueryDatabase(context.Background(), "db-1", Query{})
	require.NoError(t, err)

	assert.False(t, page.HasMore)
	assert.Equal(t, "", page.NextCursor)
}
