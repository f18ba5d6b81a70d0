package utils

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/films/", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"count": 6}`))
	}))
	defer server.Close()

	api := NewAPI(server.URL+"/api/", nil)

	var out struct {
		Count int `json:"count"`
	}
	err := api.Get(context.Background(), "films/", url.Values{"page": {"2"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, 6, out.Count)
}

func TestAPIGetStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	api := NewAPI(server.URL, nil)

	var out map[string]any
	err := api.Get(context.Background(), "people/999/", nil, &out)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestAPIPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"query":"{ x }"}`, string(body))
		w.Write([]byte(`{"data": {"x": 1}}`))
	}))
	defer server.Close()

	api := NewAPI(server.URL, nil)

	var out struct {
		Data map[string]int `json:"data"`
	}
	err := api.Post(context.Background(), "", map[string]string{"query": "{ x }"}, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Data["x"])
}

func TestAPIURL(t *testing.T) {
	api := NewAPI("https://swapi.dev/api/", nil)

	assert.Equal(t, "https://swapi.dev/api/films/1/", api.URL("films/1/"))
	assert.Equal(t, "https://swapi.dev/api/films/1/", api.URL("/films/1/"))
	assert.Equal(t, "https://example.com/x", api.URL("https://example.com/x"))
	assert.Equal(t, "https://swapi.dev/api", api.URL(""))
}

func TestAPIGetCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out map[string]any
	err := NewAPI(server.URL, nil).Get(ctx, "films/", nil, &out)
	assert.ErrorIs(t, err, context.Canceled)
}
