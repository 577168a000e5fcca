package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIKey:     "secret",
		DatabaseID: "db-1",
		BaseURL:    server.URL,
	})
	require.NoError(t, err)
	return client, server
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{DatabaseID: "db-1"})
	assert.ErrorContains(t, err, "API key")
}

func TestNewClient_RequiresDatabaseID(t *testing.T) {
	_, err := NewClient(Config{APIKey: "secret"})
	assert.ErrorContains(t, err, "database ID")
}

func TestClient_SetsAuthAndVersionHeaders(t *testing.T) {
	var gotAuth, gotVersion string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		_, _ = w.Write([]byte(`{"results": [], "has_more": false}`))
	}))

	_, err := client.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, notionVersion, gotVersion)
}

func TestQueryDatabase_Pagination(t *testing.T) {
	var cursors []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		cursors = append(cursors, req.StartCursor)

		if req.StartCursor == "" {
			_, _ = w.Write([]byte(`{
				"results": [{"id": "aa-11", "created_time": "2024-01-02T00:00:00Z"}],
				"has_more": true,
				"next_cursor": "c2"
			}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"results": [{"id": "bb-22", "created_time": "2024-01-01T00:00:00Z"}],
			"has_more": false
		}`))
	}))

	pages, err := client.FetchAll(context.Background())
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Equal(t, "aa-11", pages[0].ID)
	assert.Equal(t, "bb-22", pages[1].ID)
	assert.Equal(t, []string{"", "c2"}, cursors)
}

func TestFetchAll_PrimarySortSucceeds(t *testing.T) {
	var sortProps []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if len(req.Sorts) > 0 {
			sortProps = append(sortProps, req.Sorts[0].Property)
		}
		_, _ = w.Write([]byte(`{"results": [{"id": "aa-11"}], "has_more": false}`))
	}))

	pages, err := client.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, pages, 1)
	assert.Equal(t, []string{"date"}, sortProps)
}

func TestFetchAll_FallsBackToSecondarySort(t *testing.T) {
	var sortProps []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if len(req.Sorts) > 0 && req.Sorts[0].Property == "date" {
			sortProps = append(sortProps, "date")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"status": 400, "code": "validation_error", "message": "Could not find sort property"}`))
			return
		}
		sortProps = append(sortProps, req.Sorts[0].Property)
		_, _ = w.Write([]byte(`{"results": [{"id": "aa-11"}], "has_more": false}`))
	}))

	pages, err := client.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, pages, 1)
	assert.Equal(t, []string{"date", "createDate"}, sortProps)
}

func TestFetchAll_ExhaustedSortsFallBackToLocalSort(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if len(req.Sorts) > 0 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"status": 400, "code": "validation_error", "message": "Could not find sort property"}`))
			return
		}
		// Unsorted results arrive oldest-first; no documents dropped.
		_, _ = w.Write([]byte(`{
			"results": [
				{"id": "old-1", "created_time": "2023-01-01T00:00:00Z"},
				{"id": "new-2", "created_time": "2024-06-01T00:00:00Z"},
				{"id": "mid-3", "created_time": "2023-09-01T00:00:00Z"}
			],
			"has_more": false
		}`))
	}))

	pages, err := client.FetchAll(context.Background())
	require.NoError(t, err)

	require.Len(t, pages, 3)
	assert.Equal(t, "new-2", pages[0].ID)
	assert.Equal(t, "mid-3", pages[1].ID)
	assert.Equal(t, "old-1", pages[2].ID)
}

func TestFetchAll_AllTiersFailing(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status": 401, "code": "unauthorized", "message": "API token is invalid"}`))
	}))

	_, err := client.FetchAll(context.Background())

	assert.ErrorContains(t, err, "unauthorized")
}

func TestFetchAll_PropertyMapping(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"results": [{
				"id": "abc-123",
				"created_time": "2024-01-01T00:00:00Z",
				"properties": {
					"Title": {"type": "title", "title": [{"plain_text": "Hello"}]},
					"createDate": {"type": "date", "date": {"start": "2024-01-01"}},
					"tag": {"type": "multi_select", "multi_select": [{"name": "go"}]}
				}
			}],
			"has_more": false
		}`))
	}))

	pages, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 1)

	page := pages[0]
	assert.Equal(t, "Hello", page.Properties["Title"].Title[0].PlainText)
	assert.Equal(t, "2024-01-01", page.Properties["createDate"].Date.Start)
	assert.Equal(t, "go", page.Properties["tag"].MultiSelect[0].Name)
}

func TestListBlockChildren_MapsBlockTypes(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"results": [
				{"id": "b1", "type": "paragraph", "paragraph": {"rich_text": [{"plain_text": "Hi"}]}},
				{"id": "b2", "type": "callout", "callout": {"rich_text": [{"plain_text": "Note text"}], "icon": {"type": "emoji", "emoji": "⚠️"}}},
				{"id": "b3", "type": "code", "code": {"rich_text": [{"plain_text": "fmt.Println()"}], "language": "go"}},
				{"id": "b4", "type": "image", "image": {"type": "file", "file": {"url": "https://files.example/img.png"}}},
				{"id": "b5", "type": "to_do", "has_children": false, "to_do": {"rich_text": [{"plain_text": "task"}], "checked": true}}
			],
			"has_more": false
		}`))
	}))

	blocks, err := client.ListBlockChildren(context.Background(), "page-1")
	require.NoError(t, err)
	require.Len(t, blocks, 5)

	assert.Equal(t, "paragraph", blocks[0].Type)
	assert.Equal(t, "Hi", blocks[0].RichText[0].PlainText)
	assert.Equal(t, "⚠️", blocks[1].Icon)
	assert.Equal(t, "go", blocks[2].Language)
	assert.Equal(t, "https://files.example/img.png", blocks[3].URL)
	assert.True(t, blocks[4].Checked)
}

func TestListBlockChildren_Pagination(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("start_cursor") == "" {
			_, _ = w.Write([]byte(`{
				"results": [{"id": "b1", "type": "paragraph", "paragraph": {"rich_text": []}}],
				"has_more": true,
				"next_cursor": "bc2"
			}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"results": [{"id": "b2", "type": "divider"}],
			"has_more": false
		}`))
	}))

	blocks, err := client.ListBlockChildren(context.Background(), "page-1")
	require.NoError(t, err)

	assert.Len(t, blocks, 2)
	assert.Equal(t, 2, calls)
}

func TestValidate_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/databases/db-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"object": "database", "id": "db-1"}`))
	}))

	assert.NoError(t, client.Validate(context.Background()))
}

func TestValidate_BadToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status": 401, "code": "unauthorized", "message": "API token is invalid"}`))
	}))

	assert.ErrorContains(t, client.Validate(context.Background()), "validate database access")
}
