package comments_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usernamenul1/sportline/pkg/apiclient"
	"github.com/usernamenul1/sportline/pkg/comments"
)

func newClient(t *testing.T, handler http.HandlerFunc) *comments.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	return comments.NewClient(api)
}

func TestClient_Create(t *testing.T) {
	t.Run("posts a comment", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/comments/", r.URL.Path)

			var req comments.CreateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, int64(42), req.EventID)
			assert.Equal(t, "see you there", req.Content)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(comments.Comment{ID: 3, EventID: req.EventID, Content: req.Content})
		})

		comment, err := client.Create(context.Background(), comments.CreateRequest{
			EventID: 42,
			Content: "see you there",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), comment.ID)
	})

	t.Run("unknown event surfaces not found", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"Event not found"}`, http.StatusNotFound)
		})

		_, err := client.Create(context.Background(), comments.CreateRequest{EventID: 999, Content: "hi"})
		assert.True(t, apiclient.IsNotFound(err))
	})
}

func TestClient_ForEvent(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comments/events/42", r.URL.Path)
		json.NewEncoder(w).Encode([]comments.Comment{{ID: 1}, {ID: 2}})
	})

	list, err := client.ForEvent(context.Background(), 42)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestClient_Delete(t *testing.T) {
	t.Run("removes an owned comment", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/comments/3", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, client.Delete(context.Background(), 3))
	})

	t.Run("someone else's comment is forbidden", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"Not enough permissions"}`, http.StatusForbidden)
		})

		err := client.Delete(context.Background(), 3)
		apiErr, ok := apiclient.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, apiErr.Status)
	})
}
