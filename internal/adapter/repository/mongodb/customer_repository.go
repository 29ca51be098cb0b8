package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/shop-wallet/internal/domain/errors"
	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/shop-wallet/internal/domain/repository"
)

type customerRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
	logger     *zap.Logger
}

// NewCustomerRepository creates a customer repository on the customers collection
func NewCustomerRepository(db *mongo.Database, timeout time.Duration, logger *zap.Logger) domainRepo.CustomerRepository {
	return &customerRepository{
		collection: db.Collection(customersCollection),
		timeout:    timeout,
		logger:     logger,
	}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	doc, err := newCustomerDocument(customer)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to create customer: %w", err)
		}
		existing, lookupErr := r.GetByContactNumber(ctx, customer.ContactNumber)
		if lookupErr == nil && existing != nil {
			return domainErrors.NewDuplicateContactError(customer.ContactNumber)
		}
		return domainErrors.NewDuplicateReferralCodeError(customer.ReferralCode, err)
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *customerRepository) GetByReferralCode(ctx context.Context, referralCode string) (*model.Customer, error) {
	return r.findOne(ctx, bson.M{"referId": referralCode})
}

func (r *customerRepository) GetByContactNumber(ctx context.Context, contactNumber string) (*model.Customer, error) {
	return r.findOne(ctx, bson.M{"contactNumber": contactNumber})
}

// LockByID reads the customer. Inside a session transaction a concurrent
// write to the same document aborts one of the transactions.
func (r *customerRepository) LockByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *customerRepository) findOne(ctx context.Context, filter bson.M) (*model.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc customerDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return doc.toModel()
}

func (r *customerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	var docs []customerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}

	customers := make([]*model.Customer, 0, len(docs))
	for i := range docs {
		c, err := docs[i].toModel()
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, fmt.Errorf("failed to delete customer: %w", err)
	}
	return result.DeletedCount > 0, nil
}

func (r *customerRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	value, err := toDecimal128(balance)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"walletBalance": value}},
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainErrors.NewCustomerNotFoundError("id", id.String())
	}
	return nil
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

func (r *customerRepository) SumBalances(ctx context.Context) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$walletBalance"}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum wallet balances: %w", err)
	}

	var rows []struct {
		Total primitive.Decimal128 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode wallet balance sum: %w", err)
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	return fromDecimal128(rows[0].Total)
}
