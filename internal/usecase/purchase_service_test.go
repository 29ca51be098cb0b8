package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/shop-wallet/internal/config"
	"github.com/wekeepgrowing/shop-wallet/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/shop-wallet/internal/domain/errors"
	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/shop-wallet/internal/domain/repository"
	"github.com/wekeepgrowing/shop-wallet/internal/infrastructure/database"
	"github.com/wekeepgrowing/shop-wallet/internal/usecase"
)

type testEnv struct {
	repos     *database.Repositories
	customers *usecase.CustomerService
	purchases *usecase.PurchaseService
	stats     *usecase.StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithUoW(t, nil)
}

// newTestEnvWithUoW builds services on an in-memory sqlite database. wrap may
// replace the unit of work used for settlements.
func newTestEnvWithUoW(t *testing.T, wrap func(domainRepo.UnitOfWork) domainRepo.UnitOfWork) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.NewConnection(&config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}, logger)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, logger))
	t.Cleanup(func() { _ = database.Close(db, logger) })

	repos := database.NewRepositories(db, logger)
	uow := repos.UnitOfWork
	if wrap != nil {
		uow = wrap(uow)
	}

	tick := fixedNow
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick = tick.Add(time.Second)
		return tick
	}

	customers := usecase.NewCustomerService(repos.Customers, repos.UnitOfWork, usecase.NopEventPublisher{}, usecase.NopRecorder{}, logger).
		WithClock(clock)
	purchases := usecase.NewPurchaseService(customers, repos.Purchases, uow, entity.DefaultRewardRate,
		usecase.NopEventPublisher{}, usecase.NopRecorder{}, logger).
		WithClock(clock)

	return &testEnv{
		repos:     repos,
		customers: customers,
		purchases: purchases,
		stats:     usecase.NewStatsService(repos.Customers, repos.Purchases),
	}
}

func (e *testEnv) createCustomer(t *testing.T, name, contact string, balance string) *model.Customer {
	t.Helper()
	ctx := context.Background()
	c, err := e.customers.CreateCustomer(ctx, name, contact)
	require.NoError(t, err)
	if balance != "" {
		c, err = e.customers.AdjustWallet(ctx, c.ID, decimal.RequireFromString(balance))
		require.NoError(t, err)
	}
	return c
}

func (e *testEnv) balance(t *testing.T, id uuid.UUID) string {
	t.Helper()
	c, err := e.customers.GetByID(context.Background(), id)
	require.NoError(t, err)
	return c.WalletBalance.StringFixed(2)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPurchaseService_CreatePurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("wallet use clamped to balance", func(t *testing.T) {
		env := newTestEnv(t)
		c := env.createCustomer(t, "Asha Rao", "9998887770", "100.00")

		p, err := env.purchases.CreatePurchase(ctx, "ssar770", money("1000"), money("150"))
		require.NoError(t, err)

		assert.Equal(t, "100.00", p.WalletUsed.StringFixed(2))
		assert.Equal(t, "20.00", p.WalletCredit.StringFixed(2))
		assert.Equal(t, "SSAR770", p.ReferralCode)
		require.NotNil(t, p.Customer)
		assert.Equal(t, "20.00", p.Customer.WalletBalance.StringFixed(2))
		assert.Equal(t, "20.00", env.balance(t, c.ID))
	})

	t.Run("simple purchase credits two percent", func(t *testing.T) {
		env := newTestEnv(t)
		c := env.createCustomer(t, "Asha Rao", "9998887770", "")

		p, err := env.purchases.CreateSimplePurchase(ctx, "SSAR770", money("50"))
		require.NoError(t, err)

		assert.True(t, p.WalletUsed.IsZero())
		assert.Equal(t, "1.00", p.WalletCredit.StringFixed(2))
		assert.Equal(t, "1.00", env.balance(t, c.ID))
	})

	t.Run("non-positive amount", func(t *testing.T) {
		env := newTestEnv(t)
		c := env.createCustomer(t, "Asha Rao", "9998887770", "10")

		for _, amount := range []string{"0", "-5", "-0.001"} {
			_, err := env.purchases.CreatePurchase(ctx, "SSAR770", money(amount), decimal.Zero)
			require.True(t, errors.Is(err, domainErrors.ErrInvalidAmount), "amount %s", amount)
			assert.Contains(t, err.Error(), "got "+amount)
		}
		assert.Equal(t, "10.00", env.balance(t, c.ID))
	})

	t.Run("sub-cent amounts are settled as requested", func(t *testing.T) {
		env := newTestEnv(t)
		c := env.createCustomer(t, "Asha Rao", "9998887770", "10")

		tiny, err := env.purchases.CreateSimplePurchase(ctx, "SSAR770", money("0.004"))
		require.NoError(t, err)
		assert.True(t, tiny.Amount.Equal(money("0.004")), "amount %s", tiny.Amount)
		assert.True(t, tiny.WalletCredit.IsZero())

		p, err := env.purchases.CreateSimplePurchase(ctx, "SSAR770", money("0.2496"))
		require.NoError(t, err)
		assert.True(t, p.Amount.Equal(money("0.2496")), "amount %s", p.Amount)
		assert.True(t, p.WalletCredit.IsZero(), "walletCredit %s", p.WalletCredit)

		stored, err := env.purchases.ListPurchasesByCustomer(ctx, "SSAR770")
		require.NoError(t, err)
		require.Len(t, stored, 2)
		assert.True(t, stored[0].Amount.Equal(money("0.2496")), "stored amount %s", stored[0].Amount)

		reloaded, err := env.customers.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.WalletBalance.Equal(money("10")), "balance %s", reloaded.WalletBalance)
	})

	t.Run("sub-cent wallet use below balance", func(t *testing.T) {
		env := newTestEnv(t)
		c := env.createCustomer(t, "Asha Rao", "9998887770", "10")

		p, err := env.purchases.CreatePurchase(ctx, "SSAR770", money("100"), money("0.004"))
		require.NoError(t, err)

		assert.True(t, p.WalletUsed.Equal(money("0.004")), "walletUsed %s", p.WalletUsed)
		assert.True(t, p.WalletCredit.Equal(money("2")), "walletCredit %s", p.WalletCredit)
		require.NotNil(t, p.Customer)
		assert.True(t, p.Customer.WalletBalance.Equal(money("11.996")), "returned balance %s", p.Customer.WalletBalance)

		reloaded, err := env.customers.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.WalletBalance.Equal(money("11.996")), "stored balance %s", reloaded.WalletBalance)
	})

	t.Run("unknown customer", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.purchases.CreatePurchase(ctx, "SSXX000", money("10"), decimal.Zero)
		assert.True(t, errors.Is(err, domainErrors.ErrNotFound))
	})
}

// failingPurchases fails every purchase insert
type failingPurchases struct {
	domainRepo.PurchaseRepository
}

func (failingPurchases) Create(ctx context.Context, purchase *model.Purchase) error {
	return errors.New("disk full")
}

type failingUnitOfWork struct {
	inner domainRepo.UnitOfWork
}

func (u failingUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, store domainRepo.Store) error) error {
	return u.inner.Do(ctx, func(ctx context.Context, store domainRepo.Store) error {
		store.Purchases = failingPurchases{store.Purchases}
		return fn(ctx, store)
	})
}

func TestPurchaseService_FailedPurchaseWriteKeepsBalance(t *testing.T) {
	env := newTestEnvWithUoW(t, func(inner domainRepo.UnitOfWork) domainRepo.UnitOfWork {
		return failingUnitOfWork{inner: inner}
	})
	c := env.createCustomer(t, "Asha Rao", "9998887770", "100.00")

	_, err := env.purchases.CreatePurchase(context.Background(), "SSAR770", money("1000"), money("150"))
	require.Error(t, err)

	assert.Equal(t, "100.00", env.balance(t, c.ID))
	count, err := env.repos.Purchases.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPurchaseService_ConcurrentSettlementsDoNotLoseUpdates(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCustomer(t, "Asha Rao", "9998887770", "")

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.purchases.CreateSimplePurchase(context.Background(), "SSAR770", money("100"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, "20.00", env.balance(t, c.ID))
}

func TestPurchaseService_ListPurchasesByCustomer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.createCustomer(t, "Asha Rao", "9998887770", "")
	env.createCustomer(t, "Mary van Dyke", "5550001234", "")

	empty, err := env.purchases.ListPurchasesByCustomer(ctx, "SSMV234")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = env.purchases.ListPurchasesByCustomer(ctx, "SSZZ999")
	assert.True(t, errors.Is(err, domainErrors.ErrNotFound))

	first, err := env.purchases.CreateSimplePurchase(ctx, "SSAR770", money("10"))
	require.NoError(t, err)
	second, err := env.purchases.CreateSimplePurchase(ctx, "SSAR770", money("20"))
	require.NoError(t, err)

	list, err := env.purchases.ListPurchasesByCustomer(ctx, "ssar770")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestPurchaseService_ListPurchasesAfterCustomerDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	gone := env.createCustomer(t, "Asha Rao", "9998887770", "")
	env.createCustomer(t, "Mary van Dyke", "5550001234", "")

	_, err := env.purchases.CreateSimplePurchase(ctx, "SSAR770", money("10"))
	require.NoError(t, err)
	_, err = env.purchases.CreateSimplePurchase(ctx, "SSMV234", money("20"))
	require.NoError(t, err)

	require.NoError(t, env.customers.DeleteCustomer(ctx, gone.ID))

	list, err := env.purchases.ListPurchases(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].Customer)
	assert.Equal(t, "SSMV234", list[0].Customer.ReferralCode)
	assert.Nil(t, list[1].Customer)
	assert.Equal(t, "SSAR770", list[1].ReferralCode)
}

func TestPurchaseService_ClearAllPurchases(t *testing.T) {
	ctx := context.Background()

	t.Run("balances keep their credits", func(t *testing.T) {
		env := newTestEnv(t)
		c := env.createCustomer(t, "Asha Rao", "9998887770", "")
		_, err := env.purchases.CreateSimplePurchase(ctx, "SSAR770", money("50"))
		require.NoError(t, err)

		deleted, err := env.purchases.ClearAllPurchases(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		list, err := env.purchases.ListPurchases(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
		assert.Equal(t, "1.00", env.balance(t, c.ID))
	})

	t.Run("reverse restores balances", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.createCustomer(t, "Asha Rao", "9998887770", "100.00")
		b := env.createCustomer(t, "Mary van Dyke", "5550001234", "")
		gone := env.createCustomer(t, "Ravi Kumar", "7776665554", "")

		_, err := env.purchases.CreatePurchase(ctx, "SSAR770", money("1000"), money("150"))
		require.NoError(t, err)
		_, err = env.purchases.CreatePurchase(ctx, "SSAR770", money("10"), money("5"))
		require.NoError(t, err)
		_, err = env.purchases.CreateSimplePurchase(ctx, "SSMV234", money("50"))
		require.NoError(t, err)
		_, err = env.purchases.CreateSimplePurchase(ctx, "SSRK554", money("50"))
		require.NoError(t, err)
		require.NoError(t, env.customers.DeleteCustomer(ctx, gone.ID))

		deleted, err := env.purchases.ClearAllPurchases(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, int64(4), deleted)

		assert.Equal(t, "100.00", env.balance(t, a.ID))
		assert.Equal(t, "0.00", env.balance(t, b.ID))
	})
}

func TestStatsService_GetStats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	stats, err := env.stats.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCustomers)
	assert.True(t, stats.TotalWalletBalance.IsZero())

	env.createCustomer(t, "Asha Rao", "9998887770", "100.00")
	env.createCustomer(t, "Mary van Dyke", "5550001234", "")
	_, err = env.purchases.CreatePurchase(ctx, "SSAR770", money("1000"), money("150"))
	require.NoError(t, err)
	_, err = env.purchases.CreateSimplePurchase(ctx, "SSMV234", money("50"))
	require.NoError(t, err)

	stats, err = env.stats.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalCustomers)
	assert.Equal(t, int64(2), stats.TotalPurchases)
	assert.Equal(t, "21.00", stats.TotalWalletBalance.StringFixed(2))
}
