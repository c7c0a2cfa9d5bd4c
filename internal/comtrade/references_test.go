// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comtrade

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/comtradectl/internal/cache"
)

// newRefServer stubs the directory plus the reporter/partner/commodity
// endpoints and counts requests per path.
func newRefServer(t *testing.T) (*httptest.Server, map[string]*int) {
	t.Helper()

	hits := map[string]*int{}
	mux := http.NewServeMux()
	count := func(path string) {
		if hits[path] == nil {
			hits[path] = new(int)
		}
		*hits[path]++
	}

	var srv *httptest.Server

	mux.HandleFunc("/files/v1/app/reference/ListofReferences.json", func(w http.ResponseWriter, r *http.Request) {
		count(r.URL.Path)
		fmt.Fprintf(w, `[
			{"id":"reporterAreas","referenceTypeCode":"reporter","uri":"%[1]s/ref/reporters.json"},
			{"id":"partnerAreas","referenceTypeCode":"partner","uri":"%[1]s/ref/partners.json"},
			{"id":"commoditiesHS","referenceTypeCode":"cmd","uri":"%[1]s/ref/hs.json"}
		]`, srv.URL)
	})
	mux.HandleFunc("/ref/reporters.json", func(w http.ResponseWriter, r *http.Request) {
		count(r.URL.Path)
		fmt.Fprint(w, `[{"id":"842","text":"USA"},{"id":"276","text":"Germany"}]`)
	})
	mux.HandleFunc("/ref/partners.json", func(w http.ResponseWriter, r *http.Request) {
		count(r.URL.Path)
		fmt.Fprint(w, `[{"id":"0","text":"World"},{"id":"156","text":"China"}]`)
	})
	mux.HandleFunc("/ref/hs.json", func(w http.ResponseWriter, r *http.Request) {
		count(r.URL.Path)
		fmt.Fprint(w, `[{"id":"TOTAL","text":"All Commodities"},{"id":"85","text":"Electrical machinery"}]`)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, hits
}

func newTestAPI(t *testing.T, baseURL string) *API {
	t.Helper()
	client := NewClient(ClientOptions{BaseURL: baseURL})
	return New(client, cache.New(t.TempDir()))
}

func TestReporters(t *testing.T) {
	srv, hits := newRefServer(t)
	api := newTestAPI(t, srv.URL)
	ctx := context.Background()

	result := api.Reporters(ctx, true)
	require.True(t, result.Found())
	assert.Equal(t, [][]string{{"842", "USA"}, {"276", "Germany"}}, result.Table.Rows)

	// Second call with caching must not hit the network again.
	again := api.Reporters(ctx, true)
	require.True(t, again.Found())
	assert.Equal(t, result.Table.Rows, again.Table.Rows)
	assert.Equal(t, 1, *hits["/ref/reporters.json"])
	assert.Equal(t, 1, *hits["/files/v1/app/reference/ListofReferences.json"])
}

func TestReporters_DiskCacheSurvivesProcess(t *testing.T) {
	srv, hits := newRefServer(t)
	store := cache.New(t.TempDir())
	ctx := context.Background()

	first := New(NewClient(ClientOptions{BaseURL: srv.URL}), store)
	require.True(t, first.Reporters(ctx, true).Found())

	// A fresh API with no memo but the same cache dir reads from disk.
	second := New(NewClient(ClientOptions{BaseURL: srv.URL}), store)
	result := second.Reporters(ctx, true)
	require.True(t, result.Found())
	assert.Equal(t, 1, *hits["/ref/reporters.json"])
}

func TestReporters_CacheBypassIsAuthoritative(t *testing.T) {
	srv, hits := newRefServer(t)
	api := newTestAPI(t, srv.URL)
	ctx := context.Background()

	require.True(t, api.Reporters(ctx, true).Found())
	require.True(t, api.Reporters(ctx, false).Found(), "useCache=false refetches")
	assert.Equal(t, 2, *hits["/ref/reporters.json"],
		"bypass must ignore the in-memory memo, not just the disk cache")
}

func TestCommodities_UnknownClassification(t *testing.T) {
	srv, _ := newRefServer(t)
	api := newTestAPI(t, srv.URL)

	result := api.Commodities(context.Background(), "B4", true)
	assert.Equal(t, StateNotFound, result.State)
	assert.False(t, result.Found())
}

func TestReferences_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	api := newTestAPI(t, srv.URL)
	result := api.References(context.Background(), true)
	assert.Equal(t, StateUpstreamError, result.State)
	assert.Equal(t, http.StatusServiceUnavailable, result.Status)
}

func TestReferences_ConnectionRefused(t *testing.T) {
	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	api := newTestAPI(t, srv.URL)
	result := api.References(context.Background(), true)
	assert.Equal(t, StateUpstreamError, result.State)
	assert.Equal(t, 0, result.Status)
}

func TestResolve(t *testing.T) {
	srv, _ := newRefServer(t)
	api := newTestAPI(t, srv.URL)
	ctx := context.Background()

	uri, ok := api.Resolve(ctx, "partnerAreas", true)
	require.True(t, ok)
	assert.Equal(t, srv.URL+"/ref/partners.json", uri)

	_, ok = api.Resolve(ctx, "noSuchReference", true)
	assert.False(t, ok)
}

func TestCountryName(t *testing.T) {
	srv, _ := newRefServer(t)
	api := newTestAPI(t, srv.URL)
	ctx := context.Background()

	assert.Equal(t, "USA", api.CountryName(ctx, "842", false))
	assert.Equal(t, "China", api.CountryName(ctx, "156", true))
	assert.Equal(t, "999", api.CountryName(ctx, "999", false), "unknown codes fall back verbatim")
}
