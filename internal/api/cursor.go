// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/catalogsync/sir/internal/platform/cursor"
	"github.com/catalogsync/sir/internal/platform/respond"
)

// cursorHandler serves GET /admin/cursor.
type cursorHandler struct {
	store *cursor.Store
}

// NewCursorHandler builds the admin cursor-visibility endpoint, reporting
// the highest sequence_id routed per queue.
func NewCursorHandler(store *cursor.Store) http.HandlerFunc {
	h := &cursorHandler{store: store}
	return h.list
}

func (h *cursorHandler) list(writer http.ResponseWriter, request *http.Request) {
	entries, err := h.store.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}
