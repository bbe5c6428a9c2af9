// Package storage defines the charge record store contract consumed by the
// charges service core.
package storage

import (
	"context"
	"time"

	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

// UpdatedMeta records the provenance of the last local write. Distinct from
// the delta timestamp carried by the upstream feed.
type UpdatedMeta struct {
	At   time.Time `bson:"at" json:"at"`
	Type string    `bson:"type" json:"type"`
	By   string    `bson:"by" json:"by"`
}

// ChargeDocument is one stored charge record. The charge id is globally
// unique; company_number is the query partition key.
type ChargeDocument struct {
	ID            string           `bson:"_id" json:"id"`
	CompanyNumber string           `bson:"company_number" json:"company_number"`
	Data          model.ChargeData `bson:"data" json:"data"`

	// DeltaAt is the timestamp of the upstream delta that most recently
	// produced this record. Nil means no ordering information is available.
	DeltaAt *time.Time  `bson:"delta_at,omitempty" json:"delta_at,omitempty"`
	Updated UpdatedMeta `bson:"updated" json:"updated"`

	// Version is incremented by the store on every successful write.
	Version int64 `bson:"version" json:"version"`
}

// EffectiveDate is the date used for sort ordering: created_on when present,
// else delivered_on. Empty when the record carries neither.
func (d *ChargeDocument) EffectiveDate() string {
	if d.Data.CreatedOn != "" {
		return d.Data.CreatedOn
	}
	return d.Data.DeliveredOn
}

// QueryCriteria narrows and pages a company-scoped charge query.
type QueryCriteria struct {
	// IncludeStatuses, when non-empty, restricts results to these statuses.
	IncludeStatuses []model.ChargeStatus
	// ExcludeStatuses, when non-empty, removes these statuses from results.
	// Include and Exclude are mutually exclusive; Include wins if both set.
	ExcludeStatuses []model.ChargeStatus

	StartIndex   int64
	ItemsPerPage int64
}

// ChargesPage is one page of a company's charges plus the count of records
// matching the criteria before pagination.
type ChargesPage struct {
	Items      []ChargeDocument
	TotalCount int64
}

// ChargeStore persists one charge record per charge id.
//
// Implementations must sort FindByCompany results by effective date
// descending, then charge_number ascending, then id ascending. Records with
// no effective date sort after all dated records. This three-key order is
// total, so repeated queries over an unchanged snapshot page identically.
type ChargeStore interface {
	// Get retrieves a record by charge id. Returns model.ErrNotFound when no
	// record exists.
	Get(ctx context.Context, chargeID string) (*ChargeDocument, error)

	// Put inserts or fully replaces the record for doc.ID and increments its
	// version.
	Put(ctx context.Context, doc *ChargeDocument) error

	// Delete removes the record for chargeID. Deleting an absent id is not an
	// error at this layer.
	Delete(ctx context.Context, chargeID string) error

	// FindByCompany returns the page of a company's charges matching the
	// criteria, plus the pre-pagination filtered count.
	FindByCompany(ctx context.Context, companyNumber string, criteria QueryCriteria) (*ChargesPage, error)

	// Ping reports whether the underlying engine is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection to the backend.
	Close(ctx context.Context) error
}
