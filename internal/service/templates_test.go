package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acme/checkout-relay/internal/service"
)

func TestRemoteConfigTemplateLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/parameters/tmpl_7", r.URL.Path)
		assert.Equal(t, "Bearer rc_key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":"<p>custom receipt</p>"}`))
	}))
	defer srv.Close()

	c := service.NewRemoteConfigClient(srv.URL, "rc_key")

	html, err := c.Template(context.Background(), "tmpl_7")
	require.NoError(t, err)
	assert.Equal(t, "<p>custom receipt</p>", html)
}

func TestRemoteConfigTemplateNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"parameter not found"}}`))
	}))
	defer srv.Close()

	c := service.NewRemoteConfigClient(srv.URL, "rc_key")

	_, err := c.Template(context.Background(), "tmpl_missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameter not found")
}

func TestRemoteConfigTemplateEmptyValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"value":""}`))
	}))
	defer srv.Close()

	c := service.NewRemoteConfigClient(srv.URL, "rc_key")

	_, err := c.Template(context.Background(), "tmpl_blank")
	assert.Error(t, err)
}

func TestRemoteConfigUnconfigured(t *testing.T) {
	c := service.NewRemoteConfigClient("", "")

	_, err := c.Template(context.Background(), "tmpl_7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REMOTE_CONFIG_URL")
}
