package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/companieshouse/charges-data-api-sub000/internal/storage"
	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

func put(t *testing.T, store storage.ChargeStore, doc storage.ChargeDocument) {
	t.Helper()
	require.NoError(t, store.Put(context.Background(), &doc))
}

func TestChargeStore_PutIncrementsVersion(t *testing.T) {
	store := NewChargeStore()

	put(t, store, storage.ChargeDocument{ID: "c1", CompanyNumber: "X"})
	doc, err := store.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, doc.Version)

	put(t, store, storage.ChargeDocument{ID: "c1", CompanyNumber: "X"})
	doc, err = store.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, doc.Version)
}

func TestChargeStore_GetAbsentIsNotFound(t *testing.T) {
	store := NewChargeStore()
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestChargeStore_DeleteAbsentIsNoOp(t *testing.T) {
	store := NewChargeStore()
	assert.NoError(t, store.Delete(context.Background(), "missing"))
}

func TestChargeStore_FindByCompanyScopesToCompany(t *testing.T) {
	store := NewChargeStore()
	put(t, store, storage.ChargeDocument{ID: "c1", CompanyNumber: "A"})
	put(t, store, storage.ChargeDocument{ID: "c2", CompanyNumber: "B"})

	page, err := store.FindByCompany(context.Background(), "A", storage.QueryCriteria{ItemsPerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "c1", page.Items[0].ID)
	assert.EqualValues(t, 1, page.TotalCount)
}

func TestChargeStore_SortPlacesUndatedRecordsLast(t *testing.T) {
	store := NewChargeStore()
	put(t, store, storage.ChargeDocument{ID: "undated-b", CompanyNumber: "A"})
	put(t, store, storage.ChargeDocument{ID: "undated-a", CompanyNumber: "A"})
	put(t, store, storage.ChargeDocument{ID: "dated", CompanyNumber: "A",
		Data: model.ChargeData{CreatedOn: "2015-01-01"}})

	page, err := store.FindByCompany(context.Background(), "A", storage.QueryCriteria{ItemsPerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	assert.Equal(t, "dated", page.Items[0].ID)
	// Undated records tie on date and charge number; id ascending breaks it.
	assert.Equal(t, "undated-a", page.Items[1].ID)
	assert.Equal(t, "undated-b", page.Items[2].ID)
}

func TestChargeStore_IncludeStatusesWinsOverExclude(t *testing.T) {
	store := NewChargeStore()
	put(t, store, storage.ChargeDocument{ID: "c1", CompanyNumber: "A",
		Data: model.ChargeData{Status: model.StatusSatisfied}})
	put(t, store, storage.ChargeDocument{ID: "c2", CompanyNumber: "A",
		Data: model.ChargeData{Status: model.StatusOutstanding}})

	page, err := store.FindByCompany(context.Background(), "A", storage.QueryCriteria{
		IncludeStatuses: []model.ChargeStatus{model.StatusSatisfied},
		ExcludeStatuses: []model.ChargeStatus{model.StatusSatisfied},
		ItemsPerPage:    10,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "c1", page.Items[0].ID)
}

func TestChargeStore_StartIndexBeyondMatches(t *testing.T) {
	store := NewChargeStore()
	put(t, store, storage.ChargeDocument{ID: "c1", CompanyNumber: "A"})

	page, err := store.FindByCompany(context.Background(), "A", storage.QueryCriteria{
		StartIndex: 5, ItemsPerPage: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 1, page.TotalCount)
}
