package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/shop-wallet/internal/adapter/repository"
	"github.com/wekeepgrowing/shop-wallet/internal/adapter/repository/mongodb"
	domainRepo "github.com/wekeepgrowing/shop-wallet/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Customers  domainRepo.CustomerRepository
	Purchases  domainRepo.PurchaseRepository
	UnitOfWork domainRepo.UnitOfWork
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Customers:  repository.NewCustomerRepository(db, logger),
		Purchases:  repository.NewPurchaseRepository(db, logger),
		UnitOfWork: repository.NewUnitOfWork(db, logger),
	}
}

// NewMongoRepositories creates the document-store repositories and ensures their indexes
func NewMongoRepositories(ctx context.Context, client *mongo.Client, database string, timeout time.Duration, logger *zap.Logger) (*Repositories, error) {
	db := client.Database(database)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}

	return &Repositories{
		Customers:  mongodb.NewCustomerRepository(db, timeout, logger),
		Purchases:  mongodb.NewPurchaseRepository(db, timeout, logger),
		UnitOfWork: mongodb.NewUnitOfWork(client, db, timeout, logger),
	}, nil
}
