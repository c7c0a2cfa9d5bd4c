// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comtrade

import "github.com/staranto/comtradectl/internal/table"

// LookupState classifies the outcome of a best-effort reference fetch.
type LookupState int

const (
	// StateFound means Table holds the requested reference data.
	StateFound LookupState = iota
	// StateNotFound means the upstream answered but the requested
	// reference does not exist (unknown directory key or unparseable
	// payload).
	StateNotFound
	// StateUpstreamError means the upstream could not be asked: a non-200
	// status (carried in Status) or a transport failure (Status 0).
	StateUpstreamError
)

// Lookup is the result of a reference-table operation. Reference fetches
// are best-effort and never return a Go error; the state forces callers
// to check instead of trusting a bare nil.
type Lookup struct {
	State  LookupState
	Status int
	Table  *table.Table
}

func (l Lookup) Found() bool {
	return l.State == StateFound
}

func found(t *table.Table) Lookup {
	return Lookup{State: StateFound, Table: t}
}

func notFound() Lookup {
	return Lookup{State: StateNotFound}
}

func upstreamError(status int) Lookup {
	return Lookup{State: StateUpstreamError, Status: status}
}
