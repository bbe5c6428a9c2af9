// Package memory implements the charge record store in process memory. It
// mirrors the MongoDB implementation's filter and sort semantics and backs
// tests and local development.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/companieshouse/charges-data-api-sub000/internal/storage"
	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

type chargeStore struct {
	mu   sync.RWMutex
	docs map[string]storage.ChargeDocument
}

// NewChargeStore creates an empty in-memory charge store.
func NewChargeStore() storage.ChargeStore {
	return &chargeStore{docs: make(map[string]storage.ChargeDocument)}
}

func (s *chargeStore) Get(ctx context.Context, chargeID string) (*storage.ChargeDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[chargeID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &doc, nil
}

func (s *chargeStore) Put(ctx context.Context, doc *storage.ChargeDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *doc
	if prev, ok := s.docs[doc.ID]; ok {
		stored.Version = prev.Version + 1
	} else {
		stored.Version = 1
	}
	s.docs[doc.ID] = stored
	return nil
}

func (s *chargeStore) Delete(ctx context.Context, chargeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, chargeID)
	return nil
}

func (s *chargeStore) FindByCompany(ctx context.Context, companyNumber string, criteria storage.QueryCriteria) (*storage.ChargesPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []storage.ChargeDocument
	for _, doc := range s.docs {
		if doc.CompanyNumber != companyNumber {
			continue
		}
		if !matchesStatus(doc.Data.Status, criteria) {
			continue
		}
		matched = append(matched, doc)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return lessCharge(&matched[i], &matched[j])
	})

	total := int64(len(matched))
	start := criteria.StartIndex
	if start > total {
		start = total
	}
	end := total
	if criteria.ItemsPerPage > 0 && start+criteria.ItemsPerPage < end {
		end = start + criteria.ItemsPerPage
	}

	page := make([]storage.ChargeDocument, 0, end-start)
	page = append(page, matched[start:end]...)
	return &storage.ChargesPage{Items: page, TotalCount: total}, nil
}

func (s *chargeStore) Ping(ctx context.Context) error { return nil }

func (s *chargeStore) Close(ctx context.Context) error { return nil }

func matchesStatus(status model.ChargeStatus, criteria storage.QueryCriteria) bool {
	if len(criteria.IncludeStatuses) > 0 {
		for _, st := range criteria.IncludeStatuses {
			if st == status {
				return true
			}
		}
		return false
	}
	for _, st := range criteria.ExcludeStatuses {
		if st == status {
			return false
		}
	}
	return true
}

// lessCharge orders by effective date descending, charge number ascending,
// then id ascending. Records with no effective date sort after all dated
// records, matching the MongoDB null ordering.
func lessCharge(a, b *storage.ChargeDocument) bool {
	da, db := a.EffectiveDate(), b.EffectiveDate()
	if da != db {
		if da == "" {
			return false
		}
		if db == "" {
			return true
		}
		return da > db
	}
	if a.Data.ChargeNumber != b.Data.ChargeNumber {
		return a.Data.ChargeNumber < b.Data.ChargeNumber
	}
	return a.ID < b.ID
}
