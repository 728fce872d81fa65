// ABOUTME: Tests for the HTTP sync client against a stub server.

package sync

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenote/lumenote/internal/models"
)

func TestClientExchangeSendsKeyAndBody(t *testing.T) {
	var gotKey string
	var gotReq Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sync", r.URL.Path)
		gotKey = r.Header.Get(KeyHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(Response{ServerTime: 42})
	}))
	defer srv.Close()

	// Trailing slash on the endpoint must not produce a double-slash path.
	client := NewClient(srv.URL+"/", "s3cret", nil)
	note := models.NewNote("wire me", uuid.Nil, uuid.New())
	resp, err := client.Exchange(context.Background(), &Request{
		LastSyncTime: 7,
		Notes:        []NoteRecord{noteToWire(note)},
	})
	require.NoError(t, err)

	assert.Equal(t, "s3cret", gotKey)
	assert.Equal(t, int64(7), gotReq.LastSyncTime)
	require.Len(t, gotReq.Notes, 1)
	assert.Equal(t, note.ID.String(), gotReq.Notes[0].ID)
	assert.Nil(t, gotReq.Notes[0].FolderID) // root maps to JSON null
	assert.Equal(t, int64(42), resp.ServerTime)
}

func TestClientExchangeSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "wrong", nil)
	_, err := client.Exchange(context.Background(), &Request{})
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, "bad key")
}

func TestWireRoundTripPreservesRoot(t *testing.T) {
	wsID := uuid.New()
	folder := models.NewFolder("top", uuid.Nil, wsID)
	folder.Version = 4

	rec := folderToWire(folder)
	assert.Nil(t, rec.ParentID)

	back, err := rec.ToModel()
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, back.ParentID)
	assert.Equal(t, wsID, back.WorkspaceID)
	assert.Equal(t, int64(4), back.Version)
}
