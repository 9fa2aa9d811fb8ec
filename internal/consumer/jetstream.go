// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package consumer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/catalogsync/sir/internal/platform/constants"
)

// natsDelivery adapts a *nats.Msg to [Delivery].
type natsDelivery struct{ msg *nats.Msg }

func (d natsDelivery) Data() []byte { return d.msg.Data }
func (d natsDelivery) Header(key string) string {
	if d.msg.Header == nil {
		return ""
	}
	return d.msg.Header.Get(key)
}
func (d natsDelivery) Subject() string { return d.msg.Subject }
func (d natsDelivery) Ack() error      { return d.msg.Ack() }
func (d natsDelivery) Term() error     { return d.msg.Term() }

// jetStreamPublisher adapts a nats.JetStreamContext to [Publisher].
type jetStreamPublisher struct{ js nats.JetStreamContext }

func (p jetStreamPublisher) Publish(_ context.Context, subject string, data []byte, header map[string]string) error {
	msg := &nats.Msg{Subject: subject, Data: data, Header: nats.Header{}}
	for k, v := range header {
		msg.Header.Set(k, v)
	}
	_, err := p.js.PublishMsg(msg)
	return err
}

// Subscription bundles a durable JetStream subscription for one logical
// queue together with the handler that settles its deliveries.
type Subscription struct {
	queue Queue
	sub   *nats.Subscription
}

// Close unsubscribes, leaving any in-flight delivery to be redelivered by
// JetStream to whichever consumer picks up the durable name next.
func (s *Subscription) Close() error {
	if s.sub == nil {
		return nil
	}
	return s.sub.Unsubscribe()
}

// Connect opens a JetStream-backed connection, retrying with the
// library's built-in reconnect handling once established. url is typically
// "nats://127.0.0.1:4222" for an embedded server or an external cluster
// address in production.
func Connect(url string, opts ...nats.Option) (*nats.Conn, nats.JetStreamContext, error) {
	base := []nats.Option{
		nats.Name(constants.AppName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
	}
	nc, err := nats.Connect(url, append(base, opts...)...)
	if err != nil {
		return nil, nil, fmt.Errorf("consumer: nats connect: %w", err)
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("consumer: jetstream context: %w", err)
	}
	return nc, js, nil
}

// Subscribe binds handler to a durable JetStream consumer on subject,
// settling every delivery through [Handler.Handle] under the given queue.
// Durable name collisions across process restarts are intentional: the
// same (subject, durable) pair resumes the same consumer rather than
// creating a parallel one.
func Subscribe(js nats.JetStreamContext, subject, durable string, queue Queue, handler *Handler, logger *slog.Logger) (*Subscription, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sub, err := js.Subscribe(subject, func(msg *nats.Msg) {
		if err := handler.Handle(context.Background(), natsDelivery{msg: msg}, queue); err != nil {
			logger.Error("consumer_delivery_failed",
				slog.String("subject", subject),
				slog.String("queue", string(queue)),
				slog.Any("error", err),
			)
		}
	}, nats.Durable(durable), nats.DeliverNew(), nats.AckExplicit(), nats.ManualAck())
	if err != nil {
		return nil, fmt.Errorf("consumer: jetstream subscribe %q: %w", subject, err)
	}

	return &Subscription{queue: queue, sub: sub}, nil
}

// NewJetStreamPublisher wraps js as a [Publisher].
func NewJetStreamPublisher(js nats.JetStreamContext) Publisher {
	return jetStreamPublisher{js: js}
}
