package usecase_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/event"
	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/shop-wallet/internal/domain/repository"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) customer(args mock.Arguments) (*model.Customer, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return m.customer(m.Called(ctx, id))
}

func (m *MockCustomerRepository) GetByReferralCode(ctx context.Context, referralCode string) (*model.Customer, error) {
	return m.customer(m.Called(ctx, referralCode))
}

func (m *MockCustomerRepository) GetByContactNumber(ctx context.Context, contactNumber string) (*model.Customer, error) {
	return m.customer(m.Called(ctx, contactNumber))
}

func (m *MockCustomerRepository) LockByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return m.customer(m.Called(ctx, id))
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return m.Called(ctx, id, balance).Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) SumBalances(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockPublisher records published events
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evt event.Event) error {
	return m.Called(ctx, evt).Error(0)
}

// inlineUnitOfWork runs the callback directly against the given store
type inlineUnitOfWork struct {
	store domainRepo.Store
}

func (u inlineUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, store domainRepo.Store) error) error {
	return fn(ctx, u.store)
}
