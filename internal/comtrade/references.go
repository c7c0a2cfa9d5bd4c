// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comtrade

import (
	"context"
	"fmt"
	"net/http"

	"github.com/apex/log"

	"github.com/staranto/comtradectl/internal/cache"
	"github.com/staranto/comtradectl/internal/table"
)

// Directory keys published by ListofReferences.json.
const (
	refKeyReporters   = "reporterAreas"
	refKeyPartners    = "partnerAreas"
	refKeyCommodities = "commodities" // + classification suffix
)

// Cache filenames for reference tables.
const (
	refFileReferences = "references.csv"
	refFileReporters  = "reporters.csv"
	refFilePartners   = "partners.csv"
)

// API wraps the reference and preview endpoints behind one object holding
// the HTTP client, the injected file cache and an in-memory memo of
// already-loaded reference tables. It is not safe for concurrent use; the
// whole tool is synchronous by design.
type API struct {
	client *Client
	store  *cache.Store

	references  *table.Table
	reporters   *table.Table
	partners    *table.Table
	commodities map[string]*table.Table
}

func New(client *Client, store *cache.Store) *API {
	return &API{
		client:      client,
		store:       store,
		commodities: map[string]*table.Table{},
	}
}

// References returns the directory of reference tables. With useCache the
// in-memory memo is consulted first, then the file cache; useCache=false
// always refetches (the flag is authoritative for both layers).
func (api *API) References(ctx context.Context, useCache bool) Lookup {
	if useCache {
		if api.references != nil {
			return found(api.references)
		}
		if data, ok := api.store.Read(refFileReferences); ok {
			if t, err := table.DecodeCSV(data); err == nil {
				api.references = t
				return found(t)
			}
		}
	}

	url := api.client.BaseURL() + "/files/v1/app/reference/ListofReferences.json"
	status, body, err := api.client.Get(ctx, url)
	if err != nil {
		log.Warnf("failed to get reference tables: %v", err)
		return upstreamError(0)
	}
	if status != http.StatusOK {
		log.Errorf("failed to get reference tables: %d", status)
		return upstreamError(status)
	}

	t, err := table.FromJSONArray(body)
	if err != nil {
		log.Errorf("error parsing reference tables: %v", err)
		return notFound()
	}

	api.references = t
	api.cacheTable(refFileReferences, t)
	return found(t)
}

// Resolve maps a directory key (reporterAreas, partnerAreas,
// commoditiesHS, ...) to its resource URL. The second return is false
// when the directory is unavailable or has no such key.
func (api *API) Resolve(ctx context.Context, name string, useCache bool) (string, bool) {
	refs := api.References(ctx, useCache)
	if !refs.Found() {
		return "", false
	}
	uri, ok := refs.Table.Lookup("id", name, "uri")
	if !ok || uri == "" {
		return "", false
	}
	return uri, true
}

// Reporters returns the reporter country/area reference table.
func (api *API) Reporters(ctx context.Context, useCache bool) Lookup {
	return api.reference(ctx, refKeyReporters, refFileReporters, useCache, &api.reporters)
}

// Partners returns the partner country/area reference table.
func (api *API) Partners(ctx context.Context, useCache bool) Lookup {
	return api.reference(ctx, refKeyPartners, refFilePartners, useCache, &api.partners)
}

// Commodities returns the commodity reference table for a classification
// (HS, S1, S2, ...).
func (api *API) Commodities(ctx context.Context, classification string, useCache bool) Lookup {
	if classification == "" {
		classification = "HS"
	}
	memo := api.commodities[classification]
	result := api.reference(ctx,
		refKeyCommodities+classification,
		fmt.Sprintf("commodities_%s.csv", classification),
		useCache, &memo)
	if result.Found() {
		api.commodities[classification] = memo
	}
	return result
}

// reference implements the two-level lookup shared by all reference
// operations: memo, file cache, then directory resolve + fetch.
func (api *API) reference(ctx context.Context, key, file string, useCache bool, memo **table.Table) Lookup {
	if useCache {
		if *memo != nil {
			return found(*memo)
		}
		if data, ok := api.store.Read(file); ok {
			if t, err := table.DecodeCSV(data); err == nil {
				*memo = t
				return found(t)
			}
		}
	}

	uri, ok := api.Resolve(ctx, key, useCache)
	if !ok {
		log.Errorf("reference %s not found in directory", key)
		return notFound()
	}

	status, body, err := api.client.Get(ctx, uri)
	if err != nil {
		log.Warnf("failed to get reference %s: %v", key, err)
		return upstreamError(0)
	}
	if status != http.StatusOK {
		log.Errorf("failed to get reference %s: %d", key, status)
		return upstreamError(status)
	}

	t, err := table.FromJSONArray(body)
	if err != nil {
		log.Errorf("error parsing reference %s: %v", key, err)
		return notFound()
	}

	*memo = t
	api.cacheTable(file, t)
	return found(t)
}

// CountryName resolves a reporter or partner code to its display name,
// falling back to the raw code. Reference fetch failures fall back too;
// naming is cosmetic and must never fail a command.
func (api *API) CountryName(ctx context.Context, code string, partner bool) string {
	var ref Lookup
	if partner {
		ref = api.Partners(ctx, true)
	} else {
		ref = api.Reporters(ctx, true)
	}
	if !ref.Found() {
		return code
	}
	if name, ok := ref.Table.Lookup("id", code, "text"); ok && name != "" {
		return name
	}
	return code
}

func (api *API) cacheTable(file string, t *table.Table) {
	data, err := t.EncodeCSV()
	if err != nil {
		log.Warnf("failed to encode %s for cache: %v", file, err)
		return
	}
	if err := api.store.Write(file, data); err != nil {
		log.Warnf("failed to write %s to cache: %v", file, err)
	}
}
