package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/shop-wallet/internal/adapter/repository"
	"github.com/wekeepgrowing/shop-wallet/internal/config"
	domainErrors "github.com/wekeepgrowing/shop-wallet/internal/domain/errors"
	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/shop-wallet/internal/domain/repository"
	"github.com/wekeepgrowing/shop-wallet/internal/infrastructure/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.NewConnection(&config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}, logger)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, logger))

	t.Cleanup(func() {
		_ = database.Close(db, logger)
	})
	return db
}

func newCustomer(t *testing.T, name, contact string, createdAt time.Time) *model.Customer {
	t.Helper()
	c, err := model.NewCustomer(name, contact, createdAt)
	require.NoError(t, err)
	return c
}

func newPurchase(c *model.Customer, amount string, at time.Time) *model.Purchase {
	a := decimal.RequireFromString(amount)
	return &model.Purchase{
		ID:           uuid.New(),
		CustomerID:   c.ID,
		ReferralCode: c.ReferralCode,
		Amount:       a,
		WalletCredit: a.Mul(decimal.RequireFromString("0.02")).Round(2),
		WalletUsed:   decimal.Zero,
		PurchaseDate: at,
	}
}

var base = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func TestCustomerRepository_CreateAndLookups(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCustomerRepository(newTestDB(t), zap.NewNop())

	c := newCustomer(t, "Asha Rao", "9998887770", base)
	require.NoError(t, repo.Create(ctx, c))

	byID, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Asha Rao", byID.Name)
	assert.True(t, byID.WalletBalance.IsZero())

	byCode, err := repo.GetByReferralCode(ctx, "SSAR770")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, c.ID, byCode.ID)

	byContact, err := repo.GetByContactNumber(ctx, "9998887770")
	require.NoError(t, err)
	require.NotNil(t, byContact)
	assert.Equal(t, c.ID, byContact.ID)

	missing, err := repo.GetByReferralCode(ctx, "SSXX000")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCustomerRepository_CreateDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCustomerRepository(newTestDB(t), zap.NewNop())

	require.NoError(t, repo.Create(ctx, newCustomer(t, "Asha Rao", "9998887770", base)))

	t.Run("same contact number", func(t *testing.T) {
		err := repo.Create(ctx, newCustomer(t, "Bina Shah", "9998887770", base))
		assert.True(t, errors.Is(err, domainErrors.ErrDuplicateContact), "got %v", err)
	})

	t.Run("same referral code", func(t *testing.T) {
		// Same initials and last three digits, different number
		err := repo.Create(ctx, newCustomer(t, "Arjun Roy", "1112223770", base))
		assert.True(t, errors.Is(err, domainErrors.ErrDuplicateReferralCode), "got %v", err)
	})

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCustomerRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCustomerRepository(newTestDB(t), zap.NewNop())

	older := newCustomer(t, "Asha Rao", "9998887770", base)
	newer := newCustomer(t, "Mary van Dyke", "5550001234", base.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestCustomerRepository_BalanceAndTotals(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCustomerRepository(newTestDB(t), zap.NewNop())

	total, err := repo.SumBalances(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	a := newCustomer(t, "Asha Rao", "9998887770", base)
	b := newCustomer(t, "Mary van Dyke", "5550001234", base)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.UpdateBalance(ctx, a.ID, decimal.RequireFromString("20.50")))
	require.NoError(t, repo.UpdateBalance(ctx, b.ID, decimal.RequireFromString("1.25")))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "20.50", got.WalletBalance.StringFixed(2))

	total, err = repo.SumBalances(ctx)
	require.NoError(t, err)
	assert.Equal(t, "21.75", total.StringFixed(2))

	// Sub-cent balances are stored and summed exactly
	require.NoError(t, repo.UpdateBalance(ctx, b.ID, decimal.RequireFromString("1.254")))
	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.WalletBalance.Equal(decimal.RequireFromString("1.254")), "balance %s", got.WalletBalance)

	total, err = repo.SumBalances(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("21.754")), "total %s", total)

	err = repo.UpdateBalance(ctx, uuid.New(), decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, domainErrors.ErrNotFound))
}

func TestCustomerRepository_DeleteLeavesPurchases(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	customers := repository.NewCustomerRepository(db, zap.NewNop())
	purchases := repository.NewPurchaseRepository(db, zap.NewNop())

	c := newCustomer(t, "Asha Rao", "9998887770", base)
	require.NoError(t, customers.Create(ctx, c))
	require.NoError(t, purchases.Create(ctx, newPurchase(c, "100", base)))

	deleted, err := customers.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = customers.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	list, err := purchases.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].CustomerID)
	assert.Nil(t, list[0].Customer)
}

func TestPurchaseRepository_ListAndClear(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	customers := repository.NewCustomerRepository(db, zap.NewNop())
	purchases := repository.NewPurchaseRepository(db, zap.NewNop())

	a := newCustomer(t, "Asha Rao", "9998887770", base)
	b := newCustomer(t, "Mary van Dyke", "5550001234", base)
	require.NoError(t, customers.Create(ctx, a))
	require.NoError(t, customers.Create(ctx, b))

	first := newPurchase(a, "100", base)
	second := newPurchase(b, "50", base.Add(time.Minute))
	third := newPurchase(a, "10", base.Add(2*time.Minute))
	for _, p := range []*model.Purchase{first, second, third} {
		require.NoError(t, purchases.Create(ctx, p))
	}

	all, err := purchases.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, first.ID, all[2].ID)
	require.NotNil(t, all[1].Customer)
	assert.Equal(t, "SSMV234", all[1].Customer.ReferralCode)

	mine, err := purchases.ListByCustomer(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, third.ID, mine[0].ID)

	none, err := purchases.ListByCustomer(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)

	deleted, err := purchases.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	count, err := purchases.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUnitOfWork_CommitsBothWrites(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	customers := repository.NewCustomerRepository(db, zap.NewNop())
	purchases := repository.NewPurchaseRepository(db, zap.NewNop())
	uow := repository.NewUnitOfWork(db, zap.NewNop())

	c := newCustomer(t, "Asha Rao", "9998887770", base)
	require.NoError(t, customers.Create(ctx, c))

	err := uow.Do(ctx, func(ctx context.Context, store domainRepo.Store) error {
		locked, err := store.Customers.LockByID(ctx, c.ID)
		if err != nil {
			return err
		}
		if err := store.Customers.UpdateBalance(ctx, locked.ID, decimal.RequireFromString("2.00")); err != nil {
			return err
		}
		return store.Purchases.Create(ctx, newPurchase(c, "100", base))
	})
	require.NoError(t, err)

	got, err := customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "2.00", got.WalletBalance.StringFixed(2))

	count, err := purchases.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	customers := repository.NewCustomerRepository(db, zap.NewNop())
	purchases := repository.NewPurchaseRepository(db, zap.NewNop())
	uow := repository.NewUnitOfWork(db, zap.NewNop())

	c := newCustomer(t, "Asha Rao", "9998887770", base)
	require.NoError(t, customers.Create(ctx, c))

	existing := newPurchase(c, "10", base)
	require.NoError(t, purchases.Create(ctx, existing))

	err := uow.Do(ctx, func(ctx context.Context, store domainRepo.Store) error {
		if err := store.Customers.UpdateBalance(ctx, c.ID, decimal.RequireFromString("99.00")); err != nil {
			return err
		}
		// Reusing the primary key makes the purchase insert fail
		dup := newPurchase(c, "100", base)
		dup.ID = existing.ID
		return store.Purchases.Create(ctx, dup)
	})
	require.Error(t, err)

	got, err := customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.WalletBalance.IsZero(), "balance must be unchanged, got %s", got.WalletBalance)

	count, err := purchases.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
