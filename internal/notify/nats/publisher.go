// Package nats implements the notification publisher on NATS JetStream.
package nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/companieshouse/charges-data-api-sub000/internal/notify"
)

// JetStreamNew is a variable to allow mocking in tests.
var JetStreamNew = func(nc *nats.Conn) (jetstream.JetStream, error) {
	return jetstream.New(nc)
}

// Options configures the JetStream publisher.
type Options struct {
	// StreamName, when set, is created or updated on startup so publishes
	// never race stream provisioning.
	StreamName string
	// SubjectPrefix is prepended to every publish subject.
	SubjectPrefix string
	// RetryAttempts configures JetStream publish retries (0 = driver default).
	RetryAttempts int
}

type jetStreamPublisher struct {
	nc   *nats.Conn
	js   jetstream.JetStream
	opts Options
}

// Connect dials NATS and returns a JetStream-backed publisher.
func Connect(url string, opts Options) (notify.Publisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	pub, err := NewPublisher(nc, opts)
	if err != nil {
		nc.Close()
		return nil, err
	}
	return pub, nil
}

// NewPublisher wraps an existing connection as a publisher, ensuring the
// stream exists when one is configured.
func NewPublisher(nc *nats.Conn, opts Options) (notify.Publisher, error) {
	js, err := JetStreamNew(nc)
	if err != nil {
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	if opts.StreamName != "" {
		subjects := []string{opts.StreamName + ".>"}
		if opts.SubjectPrefix != "" && opts.SubjectPrefix != opts.StreamName {
			subjects = []string{opts.SubjectPrefix + ".>"}
		}

		_, err := js.CreateOrUpdateStream(context.Background(), jetstream.StreamConfig{
			Name:     opts.StreamName,
			Subjects: subjects,
			Storage:  jetstream.FileStorage,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to ensure stream: %w", err)
		}
	}

	return &jetStreamPublisher{nc: nc, js: js, opts: opts}, nil
}

// Publish sends a message to the specified subject.
func (p *jetStreamPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	fullSubject := subject
	if p.opts.SubjectPrefix != "" {
		fullSubject = p.opts.SubjectPrefix + "." + subject
	}

	var publishOpts []jetstream.PublishOpt
	if p.opts.RetryAttempts > 0 {
		publishOpts = append(publishOpts, jetstream.WithRetryAttempts(p.opts.RetryAttempts))
	}

	if _, err := p.js.Publish(ctx, fullSubject, data, publishOpts...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", fullSubject, err)
	}
	return nil
}

// Close drains the underlying connection.
func (p *jetStreamPublisher) Close() error {
	if p.nc != nil {
		p.nc.Close()
	}
	return nil
}
