package httpjson

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quote":
			if r.Header.Get("Accept") != "application/json" {
				http.Error(w, "json only", http.StatusNotAcceptable)
				return
			}
			w.Write([]byte(`{"code":"VTI.US","close":325.17}`))
		case "/garbage":
			w.Write([]byte(`<html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGet(t *testing.T) {
	srv := newServer(t)

	var q struct {
		Code  string  `json:"code"`
		Close float64 `json:"close"`
	}
	require.NoError(t, Get(context.Background(), srv.Client(), srv.URL+"/quote?api_token=secret", &q))
	assert.Equal(t, "VTI.US", q.Code)
	assert.Equal(t, 325.17, q.Close)
}

func TestGet_Errors(t *testing.T) {
	srv := newServer(t)
	var data any

	err := Get(context.Background(), srv.Client(), srv.URL+"/missing?api_token=secret", &data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "/missing")
	assert.NotContains(t, err.Error(), "secret")

	err = Get(context.Background(), srv.Client(), srv.URL+"/garbage", &data)
	assert.ErrorContains(t, err, "cannot decode response from /garbage")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Get(ctx, srv.Client(), srv.URL+"/quote?api_token=secret", &data)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, err.Error(), "secret")
}
