package usecase

import (
	"bytes"
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/shop-wallet/internal/domain/errors"
	"github.com/wekeepgrowing/shop-wallet/internal/domain/event"
	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/shop-wallet/internal/domain/repository"
)

// PurchaseService settles purchases against customer wallets and manages the purchase log
type PurchaseService struct {
	customers    *CustomerService
	purchaseRepo domainRepo.PurchaseRepository
	uow          domainRepo.UnitOfWork
	rewardRate   decimal.Decimal
	publisher    event.Publisher
	recorder     WalletRecorder
	logger       *zap.Logger
	now          Clock
}

// NewPurchaseService creates a new purchase service instance
func NewPurchaseService(
	customers *CustomerService,
	purchaseRepo domainRepo.PurchaseRepository,
	uow domainRepo.UnitOfWork,
	rewardRate decimal.Decimal,
	publisher event.Publisher,
	recorder WalletRecorder,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		customers:    customers,
		purchaseRepo: purchaseRepo,
		uow:          uow,
		rewardRate:   rewardRate,
		publisher:    publisher,
		recorder:     recorder,
		logger:       logger,
		now:          utcNow,
	}
}

// WithClock replaces the time source
func (s *PurchaseService) WithClock(now Clock) *PurchaseService {
	s.now = now
	return s
}

// CreatePurchase settles a purchase for the customer with the given referral code.
// The balance is re-read under lock and written together with the purchase
// record in one unit of work. The returned purchase carries the updated customer.
func (s *PurchaseService) CreatePurchase(ctx context.Context, referralCode string, amount, walletUse decimal.Decimal) (*model.Purchase, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.NewInvalidAmountError(amount)
	}

	customer, err := s.customers.GetByReferralCode(ctx, referralCode)
	if err != nil {
		return nil, err
	}

	var (
		purchase   *model.Purchase
		settlement entity.Settlement
	)
	err = s.uow.Do(ctx, func(ctx context.Context, store domainRepo.Store) error {
		locked, err := store.Customers.LockByID(ctx, customer.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domainErrors.NewCustomerNotFoundError("referral code", customer.ReferralCode)
		}

		settlement, err = entity.Settle(locked.WalletBalance, amount, walletUse, s.rewardRate)
		if err != nil {
			return err
		}

		if err := store.Customers.UpdateBalance(ctx, locked.ID, settlement.FinalBalance); err != nil {
			return err
		}

		purchase = settlement.NewPurchase(locked, s.now())
		if err := store.Purchases.Create(ctx, purchase); err != nil {
			return err
		}

		locked.WalletBalance = settlement.FinalBalance
		purchase.Customer = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Purchase settled",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("referral_code", purchase.ReferralCode),
		zap.String("amount", settlement.Amount.String()),
		zap.String("wallet_used", settlement.WalletUsed.String()),
		zap.String("wallet_credit", settlement.WalletCredit.String()),
		zap.String("balance_before", settlement.BalanceBefore.String()),
		zap.String("balance_after", settlement.FinalBalance.String()))

	s.recorder.PurchaseSettled(settlement.Amount, settlement.WalletUsed, settlement.WalletCredit)
	publishEvent(ctx, s.publisher, s.logger, event.Event{
		Type:       event.TypePurchaseSettled,
		OccurredAt: purchase.PurchaseDate,
		Payload: event.PurchasePayload{
			PurchaseID:    purchase.ID,
			CustomerID:    purchase.CustomerID,
			ReferID:       purchase.ReferralCode,
			Amount:        purchase.Amount,
			WalletUsed:    purchase.WalletUsed,
			WalletCredit:  purchase.WalletCredit,
			WalletBalance: settlement.FinalBalance,
		},
	})

	return purchase, nil
}

// CreateSimplePurchase settles a purchase that redeems no wallet value
func (s *PurchaseService) CreateSimplePurchase(ctx context.Context, referralCode string, amount decimal.Decimal) (*model.Purchase, error) {
	return s.CreatePurchase(ctx, referralCode, amount, decimal.Zero)
}

// ListPurchases returns every purchase newest first. Purchases of deleted
// customers have a nil Customer.
func (s *PurchaseService) ListPurchases(ctx context.Context) ([]*model.Purchase, error) {
	purchases, err := s.purchaseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if purchases == nil {
		purchases = []*model.Purchase{}
	}
	return purchases, nil
}

// ListPurchasesByCustomer returns the customer's purchases newest first.
// An existing customer without purchases yields an empty list.
func (s *PurchaseService) ListPurchasesByCustomer(ctx context.Context, referralCode string) ([]*model.Purchase, error) {
	customer, err := s.customers.GetByReferralCode(ctx, referralCode)
	if err != nil {
		return nil, err
	}

	purchases, err := s.purchaseRepo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if purchases == nil {
		purchases = []*model.Purchase{}
	}
	for _, p := range purchases {
		p.Customer = customer
	}
	return purchases, nil
}

// ClearAllPurchases deletes every purchase. Without reverse, wallet balances
// keep the credits and debits of the deleted purchases. With reverse, each
// surviving customer's balance is first reduced by the net effect of their
// purchases, in the same unit of work as the delete.
func (s *PurchaseService) ClearAllPurchases(ctx context.Context, reverse bool) (int64, error) {
	var deleted int64

	if !reverse {
		n, err := s.purchaseRepo.DeleteAll(ctx)
		if err != nil {
			return 0, err
		}
		deleted = n
	} else {
		err := s.uow.Do(ctx, func(ctx context.Context, store domainRepo.Store) error {
			purchases, err := store.Purchases.List(ctx)
			if err != nil {
				return err
			}

			if err := reverseWalletEffects(ctx, store.Customers, purchases); err != nil {
				return err
			}

			n, err := store.Purchases.DeleteAll(ctx)
			if err != nil {
				return err
			}
			deleted = n
			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	s.logger.Info("Purchase log cleared",
		zap.Int64("deleted", deleted),
		zap.Bool("reversed", reverse))

	s.recorder.PurchasesCleared(deleted, reverse)
	publishEvent(ctx, s.publisher, s.logger, event.Event{
		Type:       event.TypePurchasesCleared,
		OccurredAt: s.now(),
		Payload:    event.ClearPayload{Deleted: deleted, Reversed: reverse},
	})
	return deleted, nil
}

// reverseWalletEffects subtracts each purchase's net wallet effect from its
// customer. Customers are locked in id order; deleted customers are skipped.
func reverseWalletEffects(ctx context.Context, customers domainRepo.CustomerRepository, purchases []*model.Purchase) error {
	net := make(map[uuid.UUID]decimal.Decimal)
	for _, p := range purchases {
		if p.Customer == nil {
			continue
		}
		net[p.CustomerID] = net[p.CustomerID].Add(p.NetWalletEffect())
	}

	ids := make([]uuid.UUID, 0, len(net))
	for id := range net {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})

	for _, id := range ids {
		customer, err := customers.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			continue
		}
		if err := customers.UpdateBalance(ctx, id, customer.WalletBalance.Sub(net[id])); err != nil {
			return err
		}
	}
	return nil
}
