// Package charges holds the business logic of the charges data service: the
// delta ordering policy, the upsert/delete orchestration and the company
// charge query.
package charges

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/companieshouse/charges-data-api-sub000/internal/metrics"
	"github.com/companieshouse/charges-data-api-sub000/internal/notify"
	"github.com/companieshouse/charges-data-api-sub000/internal/storage"
	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

// UpdateTypeMortgageDelta tags local writes produced by the mortgage delta
// feed in a record's provenance metadata.
const UpdateTypeMortgageDelta = "mortgage_delta"

// FilterOutstanding is the one recognised filter token on the list endpoint.
// It excludes the satisfied family rather than selecting a single status.
const FilterOutstanding = "outstanding"

// Pagination bounds for the list endpoint.
const (
	DefaultItemsPerPage = 25
	MaxItemsPerPage     = 100
)

// Delta is one incoming change message from the upstream system of record.
type Delta struct {
	// DeltaAt is the source's own timestamp for this change. Nil when the
	// message carries no ordering information.
	DeltaAt   *time.Time
	UpdatedBy string
	Data      model.ChargeData
}

// Service exposes the charge operations consumed by the HTTP surface.
type Service interface {
	FindCharges(ctx context.Context, companyNumber, filter string, startIndex, itemsPerPage int64) (*model.ChargesCollectionView, error)
	GetCharge(ctx context.Context, companyNumber, chargeID string) (*model.ChargeData, error)
	UpsertCharge(ctx context.Context, companyNumber, chargeID string, delta Delta) error
	DeleteCharge(ctx context.Context, chargeID string) error
	Healthy(ctx context.Context) error
}

type service struct {
	store    storage.ChargeStore
	notifier notify.ChargeEventPublisher
	metrics  metrics.Provider
	logger   *slog.Logger
	now      func() time.Time
	newEtag  func() string
}

// NewService wires the charges service over its collaborators.
func NewService(store storage.ChargeStore, notifier notify.ChargeEventPublisher, provider metrics.Provider, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		store:    store,
		notifier: notifier,
		metrics:  provider,
		logger:   logger,
		now:      time.Now,
		newEtag:  uuid.NewString,
	}
}

// FindCharges returns one page of a company's charges merged with the
// company's metrics summary. Metrics-provider unavailability is not an error
// for the read: the view degrades to zeroed counts.
func (s *service) FindCharges(ctx context.Context, companyNumber, filter string, startIndex, itemsPerPage int64) (*model.ChargesCollectionView, error) {
	criteria := storage.QueryCriteria{
		StartIndex:   startIndex,
		ItemsPerPage: itemsPerPage,
	}
	if criteria.StartIndex < 0 {
		criteria.StartIndex = 0
	}
	if criteria.ItemsPerPage <= 0 {
		criteria.ItemsPerPage = DefaultItemsPerPage
	}
	if criteria.ItemsPerPage > MaxItemsPerPage {
		criteria.ItemsPerPage = MaxItemsPerPage
	}
	if filter == FilterOutstanding {
		criteria.ExcludeStatuses = model.SatisfiedFamily()
	}

	page, err := s.store.FindByCompany(ctx, companyNumber, criteria)
	if err != nil {
		return nil, err
	}

	summary, err := s.metrics.GetCompanyMetrics(ctx, companyNumber)
	if err != nil {
		s.logger.Warn("Metrics unavailable, serving zeroed counts",
			"company_number", companyNumber,
			"error", err,
		)
		summary = nil
	}

	return BuildCollectionView(page, summary), nil
}

// GetCharge returns a single charge payload scoped to the given company.
func (s *service) GetCharge(ctx context.Context, companyNumber, chargeID string) (*model.ChargeData, error) {
	doc, err := s.store.Get(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	if doc.CompanyNumber != companyNumber {
		return nil, model.ErrNotFound
	}
	return &doc.Data, nil
}

// UpsertCharge applies an incoming delta. A delta older than the stored state
// is skipped and reported as success: the feed redelivers and reorders, and a
// rejected duplicate is not a failure. After a successful write the changed
// event is published; publish failure surfaces as ErrNotificationFailed and
// the write is not rolled back.
func (s *service) UpsertCharge(ctx context.Context, companyNumber, chargeID string, delta Delta) error {
	existing, err := s.store.Get(ctx, chargeID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return err
	}

	if existing != nil && !ShouldApplyDelta(delta.DeltaAt, existing.DeltaAt) {
		s.logger.Info("Stale delta rejected",
			"company_number", companyNumber,
			"charge_id", chargeID,
			"incoming_delta_at", delta.DeltaAt,
			"stored_delta_at", existing.DeltaAt,
		)
		return nil
	}

	doc := s.buildDocument(companyNumber, chargeID, delta)
	if err := s.store.Put(ctx, doc); err != nil {
		return err
	}

	if err := s.notifier.ChargeChanged(ctx, companyNumber, chargeID); err != nil {
		return err
	}
	return nil
}

// DeleteCharge removes a charge. The deleted event is published before the
// store delete so a failed publish leaves the record in place; company
// association is taken from the stored record, never trusted from the caller.
func (s *service) DeleteCharge(ctx context.Context, chargeID string) error {
	existing, err := s.store.Get(ctx, chargeID)
	if err != nil {
		return err
	}
	if existing.CompanyNumber == "" {
		return fmt.Errorf("%w: charge %s has no company association", model.ErrNotFound, chargeID)
	}

	if err := s.notifier.ChargeDeleted(ctx, existing.CompanyNumber, chargeID, &existing.Data); err != nil {
		return err
	}

	return s.store.Delete(ctx, chargeID)
}

// Healthy reports whether the record store is reachable.
func (s *service) Healthy(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// buildDocument transforms a delta into the stored record: fresh etag,
// provenance stamped with current processing time.
func (s *service) buildDocument(companyNumber, chargeID string, delta Delta) *storage.ChargeDocument {
	data := delta.Data
	data.Etag = s.newEtag()

	return &storage.ChargeDocument{
		ID:            chargeID,
		CompanyNumber: companyNumber,
		Data:          data,
		DeltaAt:       delta.DeltaAt,
		Updated: storage.UpdatedMeta{
			At:   s.now(),
			Type: UpdateTypeMortgageDelta,
			By:   delta.UpdatedBy,
		},
	}
}
