// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package openapi2callables_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	o2c "github.com/andrewbolster/openapi2callables"
	"github.com/andrewbolster/openapi2callables/internal/demoserver"
	"github.com/andrewbolster/openapi2callables/internal/metrics"
	"github.com/andrewbolster/openapi2callables/tool"
)

// End to end: serve the demo API, load its live spec over HTTP, build the
// tool registry and invoke the tools against the same server.
func TestToolsAgainstDemoServer(t *testing.T) {
	server := httptest.NewServer(demoserver.New(nil).Handler())
	defer server.Close()

	registry, err := o2c.Tools(context.Background(), server.URL+"/openapi.json", o2c.Options{
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	for _, id := range []string{"pirate_get", "pirate_greet", "pirate_post", "pirate_search", "ship_create"} {
		assert.True(t, registry.Has(id), id)
	}

	t.Run("pirate_get", func(t *testing.T) {
		pirateGet, _ := registry.Get("pirate_get")
		out, err := pirateGet.Invoke(context.Background(), map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "Arr, matey! Welcome to the pirate endpoint!", out)
	})

	t.Run("pirate_greet", func(t *testing.T) {
		pirateGreet, _ := registry.Get("pirate_greet")
		out, err := pirateGreet.Invoke(context.Background(), map[string]any{"name": "Anne"})
		require.NoError(t, err)
		assert.Equal(t, "Arr, matey! Welcome to the pirate endpoint, Anne!", out)
	})

	t.Run("pirate_post and search", func(t *testing.T) {
		piratePost, _ := registry.Get("pirate_post")
		out, err := piratePost.Invoke(context.Background(), map[string]any{
			"name": "Jack",
			"ship": "Black Pearl",
			"rank": "captain",
		})
		require.NoError(t, err)
		assert.Equal(t, "Arr, matey! Welcome to the pirate endpoint, Jack!", out)

		pirateSearch, _ := registry.Get("pirate_search")
		out, err = pirateSearch.Invoke(context.Background(), map[string]any{"ship": "Black Pearl"})
		require.NoError(t, err)
		matches, ok := out.([]any)
		require.True(t, ok)
		require.Len(t, matches, 1)
		assert.Equal(t, "Jack", matches[0].(map[string]any)["name"])
	})

	t.Run("ship_create with key", func(t *testing.T) {
		shipCreate, _ := registry.Get("ship_create")
		assert.True(t, shipCreate.RequiresAuth())

		out, err := shipCreate.Invoke(context.Background(), map[string]any{
			"X-API-Key": demoserver.APIKey,
			"name":      "Interceptor",
			"type":      "brig",
			"capacity":  40,
		})
		require.NoError(t, err)
		ship, ok := out.(map[string]any)
		require.True(t, ok)
		assert.NotEmpty(t, ship["id"])
		assert.Equal(t, "Interceptor", ship["name"])
	})

	t.Run("ship_create with bad key", func(t *testing.T) {
		shipCreate, _ := registry.Get("ship_create")
		out, err := shipCreate.Invoke(context.Background(), map[string]any{
			"X-API-Key": "wrong",
			"name":      "Interceptor",
			"type":      "brig",
			"capacity":  40,
		})
		require.NoError(t, err)
		descriptor, ok := out.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, true, descriptor["error"])
		assert.Equal(t, 401, descriptor["status_code"])
		assert.Equal(t, "Invalid API key", descriptor["message"])
	})
}

func TestTools_MissingRequiredArgument(t *testing.T) {
	server := httptest.NewServer(demoserver.New(nil).Handler())
	defer server.Close()

	registry, err := o2c.Tools(context.Background(), server.URL+"/openapi.json", o2c.Options{
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	pirateGreet, _ := registry.Get("pirate_greet")
	_, err = pirateGreet.Invoke(context.Background(), map[string]any{})
	require.Error(t, err)
}

func TestToolSpecsExport(t *testing.T) {
	server := httptest.NewServer(demoserver.New(nil).Handler())
	defer server.Close()

	registry, err := o2c.Tools(context.Background(), server.URL+"/openapi.json", o2c.Options{
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	specs := registry.ToolSpecs()
	require.Len(t, specs, 5)
	byName := map[string]bool{}
	for _, spec := range specs {
		assert.Equal(t, "function", spec.Type)
		assert.Equal(t, "object", spec.Function.Parameters.Type)
		byName[spec.Function.Name] = true
	}
	assert.True(t, byName["pirate_post"])
}

// One collector counts the whole pipeline: the load, every parsed
// operation and each invocation outcome.
func TestMetricsCollectorCountsPipeline(t *testing.T) {
	server := httptest.NewServer(demoserver.New(nil).Handler())
	defer server.Close()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	tools, err := o2c.Tools(context.Background(), server.URL+"/openapi.json", o2c.Options{
		BaseURL:       server.URL,
		ParseObserver: collector,
		Defaults:      tool.APIToolConfig{Observer: collector},
	})
	require.NoError(t, err)

	pirateGet, _ := tools.Get("pirate_get")
	_, err = pirateGet.Invoke(context.Background(), map[string]any{})
	require.NoError(t, err)

	counts := counterValues(t, registry)
	assert.Equal(t, float64(1), counts["openapi2callables_specs_loaded_total"])
	assert.Equal(t, float64(5), counts["openapi2callables_operations_parsed_total"])
	assert.Equal(t, float64(1), counts["openapi2callables_tool_invocations_total"])
	assert.Equal(t, float64(0), counts["openapi2callables_operations_skipped_total"])
}

// counterValues sums each gathered counter family across its label sets.
func counterValues(t *testing.T, g prometheus.Gatherer) map[string]float64 {
	t.Helper()
	families, err := g.Gather()
	require.NoError(t, err)
	out := map[string]float64{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if metric.GetCounter() != nil {
				out[family.GetName()] += metric.GetCounter().GetValue()
			}
		}
	}
	return out
}

