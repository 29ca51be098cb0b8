package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/shop-wallet/internal/domain/repository"
)

type purchaseRepository struct {
	collection *mongo.Collection
	customers  *mongo.Collection
	timeout    time.Duration
	logger     *zap.Logger
}

// NewPurchaseRepository creates a purchase repository on the purchases collection
func NewPurchaseRepository(db *mongo.Database, timeout time.Duration, logger *zap.Logger) domainRepo.PurchaseRepository {
	return &purchaseRepository{
		collection: db.Collection(purchasesCollection),
		customers:  db.Collection(customersCollection),
		timeout:    timeout,
		logger:     logger,
	}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *model.Purchase) error {
	doc, err := newPurchaseDocument(purchase)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

// List loads purchases newest first and attaches the customers that still exist
func (r *purchaseRepository) List(ctx context.Context) ([]*model.Purchase, error) {
	purchases, err := r.find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	if len(purchases) == 0 {
		return purchases, nil
	}

	ids := make([]string, 0, len(purchases))
	seen := make(map[uuid.UUID]struct{}, len(purchases))
	for _, p := range purchases {
		if _, ok := seen[p.CustomerID]; ok {
			continue
		}
		seen[p.CustomerID] = struct{}{}
		ids = append(ids, p.CustomerID.String())
	}

	customers, err := r.loadCustomers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range purchases {
		p.Customer = customers[p.CustomerID]
	}
	return purchases, nil
}

func (r *purchaseRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*model.Purchase, error) {
	return r.find(ctx, bson.M{"customerId": customerID.String()})
}

func (r *purchaseRepository) find(ctx context.Context, filter bson.M) ([]*model.Purchase, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "purchaseDate", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	var docs []purchaseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode purchases: %w", err)
	}

	purchases := make([]*model.Purchase, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toModel()
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}

func (r *purchaseRepository) loadCustomers(ctx context.Context, ids []string) (map[uuid.UUID]*model.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.customers.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase customers: %w", err)
	}

	var docs []customerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode purchase customers: %w", err)
	}

	out := make(map[uuid.UUID]*model.Customer, len(docs))
	for i := range docs {
		c, err := docs[i].toModel()
		if err != nil {
			return nil, err
		}
		out[c.ID] = c
	}
	return out, nil
}

func (r *purchaseRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete purchases: %w", err)
	}

	r.logger.Info("Purchases cleared", zap.Int64("deleted", result.DeletedCount))
	return result.DeletedCount, nil
}

func (r *purchaseRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count purchases: %w", err)
	}
	return count, nil
}
