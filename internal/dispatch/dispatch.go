// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dispatch implements the dispatcher to search cores: one handle per
core offering upsert and delete, safe to call from a consumer handler's
goroutine.

Batching, commit policy, and retries against the actual search backend are
delegated to whatever implements [SearchCore] — an external collaborator
referenced only by interface here; its document upload/commit/version-check
lives outside this package.
*/
package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/catalogsync/sir/internal/materialize"
	"github.com/catalogsync/sir/internal/platform/apperr"
)

// SearchCore is one core's handle to the external search backend.
type SearchCore interface {
	Upsert(ctx context.Context, doc materialize.Document) error
	Delete(ctx context.Context, pk any) error
}

// Registry holds one SearchCore per registered core name. Constructed once
// at startup; read-only afterwards, so lookups need no locking beyond what
// sync.Map already gives concurrent handler goroutines.
type Registry struct {
	cores sync.Map // string -> SearchCore
}

// NewRegistry returns an empty registry ready for Register calls.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register binds core to sc. Intended to be called only during startup
// wiring, before any consumer worker begins dispatching.
func (r *Registry) Register(core string, sc SearchCore) {
	r.cores.Store(core, sc)
}

// Get looks up the handle for core.
func (r *Registry) Get(core string) (SearchCore, bool) {
	v, ok := r.cores.Load(core)
	if !ok {
		return nil, false
	}
	return v.(SearchCore), true
}

// Upsert dispatches doc to its core's handle.
func (r *Registry) Upsert(ctx context.Context, doc materialize.Document) error {
	sc, ok := r.Get(doc.Core)
	if !ok {
		return apperr.Structural(fmt.Sprintf("dispatch: no search core registered for %q", doc.Core))
	}
	if err := sc.Upsert(ctx, doc); err != nil {
		return apperr.Transient(err, "dispatch_upsert_"+doc.Core)
	}
	return nil
}

// Delete dispatches a delete for pk to core's handle.
func (r *Registry) Delete(ctx context.Context, core string, pk any) error {
	sc, ok := r.Get(core)
	if !ok {
		return apperr.Structural(fmt.Sprintf("dispatch: no search core registered for %q", core))
	}
	if err := sc.Delete(ctx, pk); err != nil {
		return apperr.Transient(err, "dispatch_delete_"+core)
	}
	return nil
}

// AsSerializer adapts the registry to [materialize.Serializer], so the
// materializer can hand a freshly-built document straight to dispatch
// without either package depending on the other's internals.
func (r *Registry) AsSerializer() materialize.Serializer {
	return serializerFunc(r.Upsert)
}

type serializerFunc func(ctx context.Context, doc materialize.Document) error

func (f serializerFunc) Serialize(ctx context.Context, doc materialize.Document) error {
	return f(ctx, doc)
}
