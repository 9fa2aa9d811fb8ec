// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values shared between the
consumer, router, dispatcher, and admin surface.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "catalogsync-sir"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	ShutdownTimeout          = 30 * time.Second

	// GlobalRequestTimeout bounds both the admin HTTP surface's per-request
	// deadline and the per-connection Postgres statement_timeout.
	GlobalRequestTimeout = 10 * time.Second
)

// # Rate Limiting (admin surface only)

const (
	DefaultRateLimitRPS      = 20.0
	DefaultRateLimitBurst    = 40
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Message Broker — Subjects

const (
	SubjectIndex  = "search.index"
	SubjectDelete = "search.delete"
	SubjectRetry  = "search.retry"
	SubjectFailed = "search.failed"
)

// # Message Broker — Headers

const (
	// HeaderMBRetries carries the remaining-retry budget on a message,
	// mirroring the source project's "mb-retries" AMQP header.
	HeaderMBRetries = "Nats-Mb-Retries"

	// DefaultMBRetries is the retry budget assigned to a freshly published
	// change message.
	DefaultMBRetries = 4
)

// # Redis Key Prefixes

const (
	RedisPrefixDedup  = "sir:dedup:"
	RedisPrefixCursor = "sir:cursor:"
)

// # Postgres Bookkeeping

const (
	CursorTableName = "sir_cursor"
)
