// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package consumer

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogsync/sir/internal/platform/constants"
	"github.com/catalogsync/sir/internal/router"
)

// fakeDelivery is an in-memory [Delivery] that records how it was settled.
type fakeDelivery struct {
	data    []byte
	headers map[string]string
	subject string

	acked    int
	termed   int
	ackErr   error
	termErr  error
}

func (d *fakeDelivery) Data() []byte { return d.data }
func (d *fakeDelivery) Header(key string) string {
	return d.headers[key]
}
func (d *fakeDelivery) Subject() string { return d.subject }
func (d *fakeDelivery) Ack() error {
	d.acked++
	return d.ackErr
}
func (d *fakeDelivery) Term() error {
	d.termed++
	return d.termErr
}

// publishCall records one republish.
type publishCall struct {
	subject string
	data    []byte
	header  map[string]string
}

// fakePublisher is an in-memory [Publisher] recording every publish.
type fakePublisher struct {
	calls []publishCall
	err   error
}

func (p *fakePublisher) Publish(_ context.Context, subject string, data []byte, header map[string]string) error {
	p.calls = append(p.calls, publishCall{subject: subject, data: data, header: header})
	return p.err
}

// fakeRouter is a [ChangeRouter] that records every routed message and
// returns a scripted error.
type fakeRouter struct {
	calls []router.Message
	err   error
}

func (r *fakeRouter) Route(_ context.Context, msg router.Message) error {
	r.calls = append(r.calls, msg)
	return r.err
}

func newDelivery(body string, retries string) *fakeDelivery {
	d := &fakeDelivery{data: []byte(body), headers: map[string]string{}, subject: constants.SubjectIndex}
	if retries != "" {
		d.headers[constants.HeaderMBRetries] = retries
	}
	return d
}

func TestHandleSuccessAcks(t *testing.T) {
	rt := &fakeRouter{}
	pub := &fakePublisher{}
	h := NewHandler(rt, pub, 4, nil)

	d := newDelivery(`{"_table":"artist","id":7}`, "")
	err := h.Handle(context.Background(), d, QueueIndex)
	require.NoError(t, err)

	assert.Equal(t, 1, d.acked)
	assert.Equal(t, 0, d.termed)
	assert.Empty(t, pub.calls)
	require.Len(t, rt.calls, 1)
	assert.Equal(t, "artist", rt.calls[0].Table)
	assert.Equal(t, router.OpInsert, rt.calls[0].Operation)
}

// TestHandleFailureRetryPath is S4: a failure with the default (absent)
// header republishes to search.retry with mb-retries = default-1, and never
// acks.
func TestHandleFailureRetryPath(t *testing.T) {
	rt := &fakeRouter{err: errors.New("boom")}
	pub := &fakePublisher{}
	h := NewHandler(rt, pub, 4, nil)

	d := newDelivery(`{"_table":"artist","id":7}`, "")
	err := h.Handle(context.Background(), d, QueueIndex)
	require.Error(t, err)

	assert.Equal(t, 0, d.acked)
	assert.Equal(t, 1, d.termed)
	require.Len(t, pub.calls, 1)
	assert.Equal(t, constants.SubjectRetry, pub.calls[0].subject)
	assert.Equal(t, "3", pub.calls[0].header[constants.HeaderMBRetries])
}

// TestHandleFailureDeadLetter is S5: a failure with incoming mb-retries=0
// republishes to search.failed and leaves the header at 0.
func TestHandleFailureDeadLetter(t *testing.T) {
	rt := &fakeRouter{err: errors.New("boom")}
	pub := &fakePublisher{}
	h := NewHandler(rt, pub, 4, nil)

	d := newDelivery(`{"_table":"artist","id":7}`, "0")
	err := h.Handle(context.Background(), d, QueueIndex)
	require.Error(t, err)

	assert.Equal(t, 0, d.acked)
	assert.Equal(t, 1, d.termed)
	require.Len(t, pub.calls, 1)
	assert.Equal(t, constants.SubjectFailed, pub.calls[0].subject)
	assert.Equal(t, "0", pub.calls[0].header[constants.HeaderMBRetries])
}

// TestHandleDeleteQueueForcesDeleteOperation covers the delete queue's
// direct-delete path: the operation is forced regardless of what the body
// says (or omits).
func TestHandleDeleteQueueForcesDeleteOperation(t *testing.T) {
	rt := &fakeRouter{}
	pub := &fakePublisher{}
	h := NewHandler(rt, pub, 4, nil)

	d := newDelivery(`{"_table":"artist","gid":"90d7709d-feba-47e6-a2d1-8770da3c3d9c"}`, "")
	err := h.Handle(context.Background(), d, QueueDelete)
	require.NoError(t, err)

	require.Len(t, rt.calls, 1)
	assert.Equal(t, router.OpDelete, rt.calls[0].Operation)
	assert.Equal(t, "90d7709d-feba-47e6-a2d1-8770da3c3d9c", rt.calls[0].Columns["gid"])
}

// TestHandleRepublishFailureLeavesDeliveryUnsettled: if the republish
// itself fails, the original delivery is never terminated, so it remains
// available for the broker's own redelivery rather than being silently
// dropped.
func TestHandleRepublishFailureLeavesDeliveryUnsettled(t *testing.T) {
	rt := &fakeRouter{err: errors.New("boom")}
	pub := &fakePublisher{err: errors.New("nats down")}
	h := NewHandler(rt, pub, 4, nil)

	d := newDelivery(`{"_table":"artist","id":7}`, "")
	err := h.Handle(context.Background(), d, QueueIndex)
	require.Error(t, err)

	assert.Equal(t, 0, d.acked)
	assert.Equal(t, 0, d.termed, "original delivery must not be terminated when the republish failed")
}

// TestHandleDecodeFailureGoesThroughTheSameFailurePath: a malformed body is
// neither acked nor silently dropped; it is treated like any other handler
// failure.
func TestHandleDecodeFailureGoesThroughTheSameFailurePath(t *testing.T) {
	rt := &fakeRouter{}
	pub := &fakePublisher{}
	h := NewHandler(rt, pub, 4, nil)

	d := newDelivery(`not json`, "")
	err := h.Handle(context.Background(), d, QueueIndex)
	require.Error(t, err)

	assert.Equal(t, 0, d.acked)
	assert.Equal(t, 1, d.termed)
	assert.Empty(t, rt.calls)
	require.Len(t, pub.calls, 1)
	assert.Equal(t, constants.SubjectRetry, pub.calls[0].subject)
}

// TestRetryDecrementSequence is Property 7: simulating the redelivery chain
// by feeding each republish's header back in as the next delivery's header,
// after default+1 total failures the message lands on search.failed with
// the header held at 0.
func TestRetryDecrementSequence(t *testing.T) {
	const defaultRetries = 4
	rt := &fakeRouter{err: errors.New("boom")}
	pub := &fakePublisher{}
	h := NewHandler(rt, pub, defaultRetries, nil)

	header := ""
	for i := 0; i < defaultRetries+1; i++ {
		d := newDelivery(`{"_table":"artist","id":7}`, header)
		err := h.Handle(context.Background(), d, QueueIndex)
		require.Error(t, err)
		last := pub.calls[len(pub.calls)-1]
		header = last.header[constants.HeaderMBRetries]
	}

	require.Len(t, pub.calls, defaultRetries+1)
	for i := 0; i < defaultRetries; i++ {
		assert.Equal(t, constants.SubjectRetry, pub.calls[i].subject)
		assert.Equal(t, strconv.Itoa(defaultRetries-1-i), pub.calls[i].header[constants.HeaderMBRetries])
	}
	last := pub.calls[defaultRetries]
	assert.Equal(t, constants.SubjectFailed, last.subject)
	assert.Equal(t, "0", last.header[constants.HeaderMBRetries])
}
