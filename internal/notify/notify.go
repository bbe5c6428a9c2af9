// Package notify publishes resource-changed events after charge mutations.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

// ResourceKindCompanyCharges tags every event published by this service.
const ResourceKindCompanyCharges = "company-charges"

// Event types carried by resource-changed messages.
const (
	EventTypeChanged = "changed"
	EventTypeDeleted = "deleted"
)

// Publisher publishes messages to a stream.
type Publisher interface {
	// Publish sends a message to the specified subject.
	Publish(ctx context.Context, subject string, data []byte) error

	// Close releases resources.
	Close() error
}

// EventDetail describes what happened to the resource.
type EventDetail struct {
	Type        string `json:"type"`
	PublishedAt string `json:"published_at"`
}

// ResourceChangedEvent is the message consumed by downstream systems after a
// charge is written or deleted. DeletedData carries the previously stored
// payload on deletes so consumers can act without a follow-up read.
type ResourceChangedEvent struct {
	ResourceURI  string            `json:"resource_uri"`
	ResourceKind string            `json:"resource_kind"`
	Event        EventDetail       `json:"event"`
	DeletedData  *model.ChargeData `json:"deleted_data,omitempty"`
}

// ChargeEventPublisher is the change notification trigger invoked by the
// charges service after an accepted mutation.
type ChargeEventPublisher interface {
	ChargeChanged(ctx context.Context, companyNumber, chargeID string) error
	ChargeDeleted(ctx context.Context, companyNumber, chargeID string, deleted *model.ChargeData) error
}

// Notifier builds resource-changed events and hands them to a Publisher.
type Notifier struct {
	publisher Publisher
	subject   string
	now       func() time.Time
}

// NewNotifier creates a Notifier publishing on the given subject.
func NewNotifier(publisher Publisher, subject string) *Notifier {
	return &Notifier{
		publisher: publisher,
		subject:   subject,
		now:       time.Now,
	}
}

// ChargeChanged publishes a "changed" event for a charge.
func (n *Notifier) ChargeChanged(ctx context.Context, companyNumber, chargeID string) error {
	return n.publish(ctx, ResourceChangedEvent{
		ResourceURI:  ChargeResourceURI(companyNumber, chargeID),
		ResourceKind: ResourceKindCompanyCharges,
		Event: EventDetail{
			Type:        EventTypeChanged,
			PublishedAt: n.publishedAt(),
		},
	})
}

// ChargeDeleted publishes a "deleted" event carrying the deleted snapshot.
func (n *Notifier) ChargeDeleted(ctx context.Context, companyNumber, chargeID string, deleted *model.ChargeData) error {
	return n.publish(ctx, ResourceChangedEvent{
		ResourceURI:  ChargeResourceURI(companyNumber, chargeID),
		ResourceKind: ResourceKindCompanyCharges,
		Event: EventDetail{
			Type:        EventTypeDeleted,
			PublishedAt: n.publishedAt(),
		},
		DeletedData: deleted,
	})
}

func (n *Notifier) publish(ctx context.Context, event ResourceChangedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", model.ErrNotificationFailed, err)
	}
	if err := n.publisher.Publish(ctx, n.subject, data); err != nil {
		return fmt.Errorf("%w: %v", model.ErrNotificationFailed, err)
	}
	return nil
}

// publishedAt is second-precision UTC per the event contract.
func (n *Notifier) publishedAt() string {
	return n.now().UTC().Truncate(time.Second).Format(time.RFC3339)
}

// ChargeResourceURI renders the canonical resource path for a charge.
func ChargeResourceURI(companyNumber, chargeID string) string {
	return fmt.Sprintf("/company/%s/charges/%s", companyNumber, chargeID)
}
