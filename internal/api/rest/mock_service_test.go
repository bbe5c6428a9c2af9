package rest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/companieshouse/charges-data-api-sub000/internal/charges"
	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

// MockService mocks charges.Service for handler tests.
type MockService struct {
	mock.Mock
}

func (m *MockService) FindCharges(ctx context.Context, companyNumber, filter string, startIndex, itemsPerPage int64) (*model.ChargesCollectionView, error) {
	args := m.Called(ctx, companyNumber, filter, startIndex, itemsPerPage)
	if view := args.Get(0); view != nil {
		return view.(*model.ChargesCollectionView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) GetCharge(ctx context.Context, companyNumber, chargeID string) (*model.ChargeData, error) {
	args := m.Called(ctx, companyNumber, chargeID)
	if data := args.Get(0); data != nil {
		return data.(*model.ChargeData), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) UpsertCharge(ctx context.Context, companyNumber, chargeID string, delta charges.Delta) error {
	args := m.Called(ctx, companyNumber, chargeID, delta)
	return args.Error(0)
}

func (m *MockService) DeleteCharge(ctx context.Context, chargeID string) error {
	args := m.Called(ctx, chargeID)
	return args.Error(0)
}

func (m *MockService) Healthy(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
