package repository

import "context"

// Store groups the repositories bound to one unit of work.
type Store struct {
	Customers CustomerRepository
	Purchases PurchaseRepository
}

// UnitOfWork runs fn against transactional repositories. Everything fn writes
// is committed when it returns nil and rolled back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}
