// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package consumer implements the message-consumer callback-wrapper contract:
decode a delivery, invoke the change router (or force a delete for the
delete queue), and on failure decrement the mb-retries budget and republish
to the retry or failed subject. Every delivery ends in exactly one of an ack
or a reject-and-republish; none is ever settled twice.
*/
package consumer

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/catalogsync/sir/internal/platform/apperr"
	"github.com/catalogsync/sir/internal/platform/constants"
	"github.com/catalogsync/sir/internal/router"
)

// Queue identifies which of the three logical queues a delivery arrived on.
// The queue, not the message body, is authoritative for whether a delivery
// is an upsert or a delete.
type Queue string

const (
	QueueIndex  Queue = "index"
	QueueDelete Queue = "delete"
	QueueRetry  Queue = "retry"
)

// ChangeRouter is the slice of [router.Router] the handler drives, narrowed
// so tests can substitute a fake.
type ChangeRouter interface {
	Route(ctx context.Context, msg router.Message) error
}

// Delivery is the narrow view of an inbound broker message the handler
// needs: enough to decode the body, read the retry budget, and settle the
// delivery exactly once. A production adapter wraps *nats.Msg; tests use a
// plain struct.
type Delivery interface {
	Data() []byte
	Header(key string) string
	Subject() string
	Ack() error
	// Term settles the delivery without requeueing it for redelivery on
	// its original subject: a reject of the original message, no requeue.
	Term() error
}

// Publisher republishes a message onto the retry or failed subject,
// carrying the original body forward with an updated retry-budget header.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte, header map[string]string) error
}

// Handler implements the per-message consume/ack/retry/dead-letter protocol.
type Handler struct {
	route          ChangeRouter
	publisher      Publisher
	defaultRetries int
	logger         *slog.Logger
}

// NewHandler builds a Handler. defaultRetries <= 0 falls back to
// [constants.DefaultMBRetries].
func NewHandler(route ChangeRouter, publisher Publisher, defaultRetries int, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultRetries <= 0 {
		defaultRetries = constants.DefaultMBRetries
	}
	return &Handler{route: route, publisher: publisher, defaultRetries: defaultRetries, logger: logger}
}

// Handle runs one delivery through the callback-wrapper contract:
//
//  1. Read mb-retries from the header, defaulting when absent.
//  2. Invoke the change router (or force a delete operation for the delete
//     queue), since a root-table delete is itself a direct-delete path
//     inside [router.Router.Route] — no separate code path is needed for
//     the delete queue.
//  3. On success, ack.
//  4. On failure, republish to search.retry (or search.failed if the
//     pre-decrement budget was already zero) before terminating the
//     original delivery — republishing first means a publish failure
//     leaves the original delivery unsettled for JetStream's own
//     redelivery, rather than silently dropping it.
func (h *Handler) Handle(ctx context.Context, d Delivery, queue Queue) error {
	retries := parseRetries(d.Header(constants.HeaderMBRetries), h.defaultRetries)

	err := h.invoke(ctx, d, queue)
	if err == nil {
		return d.Ack()
	}

	h.logger.Warn("consumer_handler_failed",
		slog.String("subject", d.Subject()),
		slog.String("queue", string(queue)),
		slog.Any("error", err),
	)

	nextSubject := constants.SubjectRetry
	remaining := retries - 1
	if retries == 0 {
		nextSubject = constants.SubjectFailed
		remaining = 0
	}

	header := map[string]string{constants.HeaderMBRetries: strconv.Itoa(remaining)}
	if pubErr := h.publisher.Publish(ctx, nextSubject, d.Data(), header); pubErr != nil {
		return apperr.Transient(pubErr, "consumer_republish_failed")
	}

	if termErr := d.Term(); termErr != nil {
		h.logger.Error("consumer_term_failed", slog.Any("error", termErr))
	}

	return err
}

func (h *Handler) invoke(ctx context.Context, d Delivery, queue Queue) error {
	msg, err := decodeEnvelope(d.Data())
	if err != nil {
		return err
	}

	switch queue {
	case QueueDelete:
		msg.Operation = router.OpDelete
	default:
		if msg.Operation == "" {
			msg.Operation = router.OpInsert
		}
	}

	return h.route.Route(ctx, msg)
}
