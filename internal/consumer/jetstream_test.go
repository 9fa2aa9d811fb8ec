// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package consumer_test

import (
	"context"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	"github.com/catalogsync/sir/internal/consumer"
	"github.com/catalogsync/sir/internal/platform/constants"
	"github.com/catalogsync/sir/internal/router"
)

// startEmbeddedJetStream boots an in-memory NATS server with JetStream
// enabled, for exercising [consumer.Connect], [consumer.Subscribe], and
// [consumer.NewJetStreamPublisher] against a real broker without a network
// dependency in tests.
func startEmbeddedJetStream(t *testing.T) (*natsserver.Server, string) {
	t.Helper()

	opts := &natsserver.Options{
		Host:      "127.0.0.1",
		Port:      -1, // random free port
		JetStream: true,
		StoreDir:  t.TempDir(),
		NoLog:     true,
		NoSigs:    true,
	}

	srv, err := natsserver.NewServer(opts)
	require.NoError(t, err)

	go srv.Start()
	require.True(t, srv.ReadyForConnections(5*time.Second))

	t.Cleanup(srv.Shutdown)

	return srv, srv.ClientURL()
}

type recordingRouter struct {
	routed chan router.Message
}

func (r *recordingRouter) Route(_ context.Context, msg router.Message) error {
	r.routed <- msg
	return nil
}

// TestJetStreamRoundTrip exercises the full broker path: a message
// published to search.index is delivered through a durable subscription,
// decoded, routed, and acked.
func TestJetStreamRoundTrip(t *testing.T) {
	_, url := startEmbeddedJetStream(t)

	nc, js, err := consumer.Connect(url)
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     "SEARCH",
		Subjects: []string{"search.>"},
	})
	require.NoError(t, err)

	rr := &recordingRouter{routed: make(chan router.Message, 1)}
	publisher := consumer.NewJetStreamPublisher(js)
	handler := consumer.NewHandler(rr, publisher, constants.DefaultMBRetries, nil)

	sub, err := consumer.Subscribe(js, constants.SubjectIndex, "test-indexer-index", consumer.QueueIndex, handler, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })

	body := []byte(`{"_table":"artist","id":7}`)
	_, err = js.Publish(constants.SubjectIndex, body)
	require.NoError(t, err)

	select {
	case msg := <-rr.routed:
		require.Equal(t, "artist", msg.Table)
		require.Equal(t, int64(7), toInt64(msg.Columns["id"]))
	case <-time.After(5 * time.Second):
		t.Fatal("message was not routed within timeout")
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	default:
		return -1
	}
}
