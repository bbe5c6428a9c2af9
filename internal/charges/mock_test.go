package charges

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/companieshouse/charges-data-api-sub000/internal/storage"
	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

// MockChargeStore is a mock implementation of storage.ChargeStore.
type MockChargeStore struct {
	mock.Mock
}

func (m *MockChargeStore) Get(ctx context.Context, chargeID string) (*storage.ChargeDocument, error) {
	args := m.Called(ctx, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.ChargeDocument), args.Error(1)
}

func (m *MockChargeStore) Put(ctx context.Context, doc *storage.ChargeDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockChargeStore) Delete(ctx context.Context, chargeID string) error {
	args := m.Called(ctx, chargeID)
	return args.Error(0)
}

func (m *MockChargeStore) FindByCompany(ctx context.Context, companyNumber string, criteria storage.QueryCriteria) (*storage.ChargesPage, error) {
	args := m.Called(ctx, companyNumber, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.ChargesPage), args.Error(1)
}

func (m *MockChargeStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockChargeStore) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockNotifier is a mock implementation of notify.ChargeEventPublisher.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ChargeChanged(ctx context.Context, companyNumber, chargeID string) error {
	args := m.Called(ctx, companyNumber, chargeID)
	return args.Error(0)
}

func (m *MockNotifier) ChargeDeleted(ctx context.Context, companyNumber, chargeID string, deleted *model.ChargeData) error {
	args := m.Called(ctx, companyNumber, chargeID, deleted)
	return args.Error(0)
}

// MockMetricsProvider is a mock implementation of metrics.Provider.
type MockMetricsProvider struct {
	mock.Mock
}

func (m *MockMetricsProvider) GetCompanyMetrics(ctx context.Context, companyNumber string) (*model.CompanyMetricsSummary, error) {
	args := m.Called(ctx, companyNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanyMetricsSummary), args.Error(1)
}
