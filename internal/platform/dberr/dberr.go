// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr bridges low-level Postgres errors into the [apperr.Kind]
// classification used by the router and consumer.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/catalogsync/sir/internal/platform/apperr"
)

// Wrap inspects a database error and classifies it for the caller.
//
//   - pgx.ErrNoRows becomes [apperr.KindData]: the referenced entity is gone,
//     the document is skipped rather than retried.
//   - everything else is treated as [apperr.KindTransient]: connection
//     resets, statement timeouts, and similar faults are expected to clear
//     up on retry.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.DataNotFound(action)
	}

	return apperr.Transient(err, action)
}
