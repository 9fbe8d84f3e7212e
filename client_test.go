package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLibrary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/library", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"mangas": []map[string]any{
				{"id": "m1", "title": "Alpha", "author": "A", "isPinned": true},
				{"id": "m2", "title": "Beta"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	mangas, err := client.Library(context.Background())
	require.NoError(t, err)
	require.Len(t, mangas, 2)
	assert.Equal(t, "m1", mangas[0].ID)
	assert.Equal(t, "Alpha", mangas[0].Title)
	assert.True(t, mangas[0].IsPinned)
}

func TestClientMangaDetailNormalizesChapters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/manga_detail", r.URL.Path)
		require.Equal(t, "m1", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "m1",
			"title": "Alpha",
			"chapters": []map[string]any{
				{"id": "c10", "title": "Chapter 10", "pages": []map[string]any{}},
				{"id": "c2", "title": "Chapter 2", "pages": []map[string]any{
					{"name": "2.jpg", "url": "/files/2.jpg"},
					{"name": "1.jpg", "url": "/files/1.jpg"},
				}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	manga, err := client.MangaDetail(context.Background(), "m1")
	require.NoError(t, err)

	// Chapters arrive natural-sorted with orders assigned, pages sorted too.
	require.Len(t, manga.Chapters, 2)
	assert.Equal(t, "Chapter 2", manga.Chapters[0].Title)
	assert.Equal(t, 0, manga.Chapters[0].Order)
	assert.Equal(t, "Chapter 10", manga.Chapters[1].Title)
	assert.Equal(t, "1.jpg", manga.Chapters[0].Pages[0].Name)
}

func TestClientMetadataEmptyRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/metadata/m1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	meta, err := client.Metadata(context.Background(), "m1")
	require.NoError(t, err)
	assert.NotNil(t, meta)
	assert.Empty(t, meta)
}

func TestClientUpdateMetadataMergesID(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/update_metadata", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.UpdateMetadata(context.Background(), "m1", map[string]any{"readCount": 3})
	require.NoError(t, err)

	assert.Equal(t, "m1", received["id"])
	assert.Equal(t, float64(3), received["readCount"])
}

func TestClientSettingsDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/settings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"app": map[string]any{
				"enableScrollTurn":  true,
				"longPressDuration": 500,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	settings, err := client.Settings(context.Background())
	require.NoError(t, err)

	assert.True(t, settings.EnableScrollTurn)
	// Long press is clamped to the supported range, omitted fields get
	// their documented defaults.
	assert.Equal(t, 200, settings.LongPressDuration)
	assert.Equal(t, "#0f172a", settings.ReaderBackgroundColor)
	assert.Equal(t, "m", settings.ToggleMenuKey)
}

func TestClientSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "one piece", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"query": "one piece",
			"total": 1,
			"results": []map[string]any{
				{"id": "r1", "title": "One Piece", "author": "Oda", "category": "shounen"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	results, err := client.Search(context.Background(), "one piece")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "One Piece", results[0].Title)
}

func TestClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Library(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
