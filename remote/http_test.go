package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientGetLists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/lists", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode([]List{
			{ID: "r1", Name: "groceries", Items: []Item{{ID: "i1", Description: "milk"}}},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret")
	lists, err := c.GetLists(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "groceries", lists[0].Name)
	require.Len(t, lists[0].Items, 1)
}

func TestHTTPClientCreateList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/lists", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateListRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "errands", req.Name)
		assert.Equal(t, "5", req.SourceID)
		require.Len(t, req.Items, 1)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(List{ID: "assigned", SourceID: req.SourceID, Name: req.Name})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret")
	created, err := c.CreateList(context.Background(), CreateListRequest{
		Name:     "errands",
		SourceID: "5",
		Items:    []CreateItemRequest{{Description: "post office", SourceID: "10"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "assigned", created.ID)
}

func TestHTTPClientUpdateItemPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/lists/r1/items/i1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Item{ID: "i1", Description: "renamed"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret")
	item, err := c.UpdateItem(context.Background(), "r1", "i1", UpdateItemRequest{Description: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", item.Description)
}

func TestHTTPClientNotFoundMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such list", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret")

	err := c.DeleteList(context.Background(), "gone")
	assert.True(t, errors.Is(err, ErrNotFound))

	err = c.DeleteItem(context.Background(), "gone", "too")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = c.UpdateList(context.Background(), "gone", UpdateListRequest{Name: "x"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestHTTPClientServerErrorDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database on fire", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret")
	_, err := c.GetLists(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "database on fire")
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestHTTPClientDeleteNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret")
	assert.NoError(t, c.DeleteList(context.Background(), "r1"))
}
