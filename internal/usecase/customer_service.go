package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/shop-wallet/internal/domain/errors"
	"github.com/wekeepgrowing/shop-wallet/internal/domain/event"
	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/shop-wallet/internal/domain/repository"
)

// CustomerService handles customer registration, lookup and wallet adjustments
type CustomerService struct {
	customerRepo domainRepo.CustomerRepository
	uow          domainRepo.UnitOfWork
	publisher    event.Publisher
	recorder     WalletRecorder
	logger       *zap.Logger
	now          Clock
}

// NewCustomerService creates a new customer service instance
func NewCustomerService(
	customerRepo domainRepo.CustomerRepository,
	uow domainRepo.UnitOfWork,
	publisher event.Publisher,
	recorder WalletRecorder,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		uow:          uow,
		publisher:    publisher,
		recorder:     recorder,
		logger:       logger,
		now:          utcNow,
	}
}

// WithClock replaces the time source
func (s *CustomerService) WithClock(now Clock) *CustomerService {
	s.now = now
	return s
}

// CreateCustomer registers a customer with a derived referral code and a zero balance
func (s *CustomerService) CreateCustomer(ctx context.Context, fullName, contactNumber string) (*model.Customer, error) {
	customer, err := model.NewCustomer(fullName, contactNumber, s.now())
	if err != nil {
		return nil, err
	}

	existing, err := s.customerRepo.GetByContactNumber(ctx, customer.ContactNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check contact number: %w", err)
	}
	if existing != nil {
		s.logger.Info("Rejected duplicate contact number",
			zap.String("contact_number", customer.ContactNumber))
		return nil, domainErrors.NewDuplicateContactError(customer.ContactNumber)
	}

	existing, err = s.customerRepo.GetByReferralCode(ctx, customer.ReferralCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check referral code: %w", err)
	}
	if existing != nil {
		s.logger.Info("Rejected duplicate referral code",
			zap.String("referral_code", customer.ReferralCode),
			zap.String("existing_customer_id", existing.ID.String()))
		return nil, domainErrors.NewDuplicateReferralCodeError(customer.ReferralCode, nil)
	}

	// The store's unique indexes still catch a concurrent registration.
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("referral_code", customer.ReferralCode))

	s.recorder.CustomerCreated()
	publishEvent(ctx, s.publisher, s.logger, event.Event{
		Type:       event.TypeCustomerCreated,
		OccurredAt: s.now(),
		Payload:    customerPayload(customer),
	})

	return customer, nil
}

// GetByReferralCode finds a customer by referral code, ignoring case and surrounding spaces
func (s *CustomerService) GetByReferralCode(ctx context.Context, referralCode string) (*model.Customer, error) {
	code := model.NormalizeReferralCode(referralCode)
	if code == "" {
		return nil, domainErrors.NewCustomerNotFoundError("referral code", referralCode)
	}

	customer, err := s.customerRepo.GetByReferralCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domainErrors.NewCustomerNotFoundError("referral code", code)
	}
	return customer, nil
}

// GetByContactNumber finds a customer by exact contact number
func (s *CustomerService) GetByContactNumber(ctx context.Context, contactNumber string) (*model.Customer, error) {
	contact := strings.TrimSpace(contactNumber)
	if contact == "" {
		return nil, domainErrors.NewCustomerNotFoundError("contact number", contactNumber)
	}

	customer, err := s.customerRepo.GetByContactNumber(ctx, contact)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domainErrors.NewCustomerNotFoundError("contact number", contact)
	}
	return customer, nil
}

// GetByID returns the customer with the given id
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domainErrors.NewCustomerNotFoundError("id", id.String())
	}
	return customer, nil
}

// ListCustomers returns every customer, newest first
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []*model.Customer{}
	}
	return customers, nil
}

// DeleteCustomer removes the customer only. Their purchases stay in the log
// and list without a customer snapshot.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.customerRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domainErrors.NewCustomerNotFoundError("id", id.String())
	}

	s.logger.Info("Customer deleted", zap.String("customer_id", id.String()))
	publishEvent(ctx, s.publisher, s.logger, event.Event{
		Type:       event.TypeCustomerDeleted,
		OccurredAt: s.now(),
		Payload:    event.CustomerPayload{CustomerID: id},
	})
	return nil
}

// AdjustWallet adds delta to the balance. It is an administrative override:
// the result is not clamped and may go negative.
func (s *CustomerService) AdjustWallet(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*model.Customer, error) {
	var updated *model.Customer
	err := s.uow.Do(ctx, func(ctx context.Context, store domainRepo.Store) error {
		customer, err := store.Customers.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return domainErrors.NewCustomerNotFoundError("id", id.String())
		}

		customer.WalletBalance = customer.WalletBalance.Add(delta)
		if err := store.Customers.UpdateBalance(ctx, customer.ID, customer.WalletBalance); err != nil {
			return err
		}
		updated = customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Wallet adjusted",
		zap.String("customer_id", id.String()),
		zap.String("delta", delta.String()),
		zap.String("wallet_balance", updated.WalletBalance.String()))

	publishEvent(ctx, s.publisher, s.logger, event.Event{
		Type:       event.TypeWalletAdjusted,
		OccurredAt: s.now(),
		Payload:    customerPayload(updated),
	})
	return updated, nil
}

func customerPayload(c *model.Customer) event.CustomerPayload {
	return event.CustomerPayload{
		CustomerID:    c.ID,
		ReferID:       c.ReferralCode,
		WalletBalance: c.WalletBalance,
	}
}
