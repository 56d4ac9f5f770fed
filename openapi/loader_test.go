// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package openapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewbolster/openapi2callables/types"
)

const jsonSpec = `{
	"openapi": "3.1.0",
	"info": {"title": "Test API", "version": "0.1.0"},
	"paths": {
		"/get_pirate": {
			"get": {"operationId": "pirate_get", "summary": "Pirate Endpoint"}
		}
	}
}`

const yamlSpec = `openapi: 3.1.0
info:
  title: Test API
  version: 0.1.0
paths:
  /get_pirate:
    get:
      operationId: pirate_get
      summary: Pirate Endpoint
`

func TestLoader_JSONFromURL(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(jsonSpec))
	}))
	defer server.Close()

	loader := NewLoader(LoaderConfig{}, nil)
	doc, err := loader.Load(context.Background(), server.URL+"/openapi.json")
	require.NoError(t, err)
	assert.Equal(t, "Test API", doc.Info.Title)
	require.Contains(t, doc.Paths, "/get_pirate")
	require.NotNil(t, doc.Paths["/get_pirate"].Get)
	assert.Equal(t, "pirate_get", doc.Paths["/get_pirate"].Get.OperationID)

	// Cached: the second load must not hit the server again.
	again, err := loader.Load(context.Background(), server.URL+"/openapi.json")
	require.NoError(t, err)
	assert.Same(t, doc, again)
	assert.Equal(t, 1, requests)
}

func TestLoader_FormatFromContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write([]byte(yamlSpec))
	}))
	defer server.Close()

	loader := NewLoader(LoaderConfig{}, nil)
	doc, err := loader.Load(context.Background(), server.URL+"/spec")
	require.NoError(t, err)
	assert.Equal(t, "Test API", doc.Info.Title)
}

func TestLoader_YAMLFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlSpec), 0o600))

	loader := NewLoader(LoaderConfig{}, nil)
	doc, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", doc.Info.Version)
	assert.Contains(t, doc.Paths, "/get_pirate")
}

func TestLoader_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.txt")
	require.NoError(t, os.WriteFile(path, []byte(jsonSpec), 0o600))

	loader := NewLoader(LoaderConfig{}, nil)
	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, types.ErrUnsupportedFormat, types.GetErrorCode(err))
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader(LoaderConfig{}, nil)
	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Equal(t, types.ErrFetch, types.GetErrorCode(err))
}

func TestLoader_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	loader := NewLoader(LoaderConfig{}, nil)
	_, err := loader.Load(context.Background(), server.URL+"/openapi.json")
	require.Error(t, err)
	assert.Equal(t, types.ErrFetch, types.GetErrorCode(err))

	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, http.StatusNotFound, typed.HTTPStatus)
}

type countingObserver struct {
	loaded  map[string]int
	parsed  int
	skipped int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{loaded: map[string]int{}}
}

func (o *countingObserver) SpecLoaded(format string) { o.loaded[format]++ }
func (o *countingObserver) OperationParsed()         { o.parsed++ }
func (o *countingObserver) OperationSkipped()        { o.skipped++ }

func TestLoader_ObserverCountsFreshLoadsOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlSpec), 0o600))

	observer := newCountingObserver()
	loader := NewLoader(LoaderConfig{Observer: observer}, nil)

	_, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	_, err = loader.Load(context.Background(), path)
	require.NoError(t, err)

	// The cached second load is not a load.
	assert.Equal(t, map[string]int{"yaml": 1}, observer.loaded)
}

func TestFormatFromExtension(t *testing.T) {
	assert.Equal(t, formatJSON, formatFromExtension("https://example.com/openapi.json?v=2"))
	assert.Equal(t, formatYAML, formatFromExtension("spec.yml"))
	assert.Equal(t, formatYAML, formatFromExtension("spec.yaml#fragment"))
	assert.Equal(t, formatUnknown, formatFromExtension("spec.txt"))
}
