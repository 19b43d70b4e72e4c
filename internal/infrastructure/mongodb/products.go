package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/labelwise/backend/internal/domain"
)

// Collection name predates this service
const productCollection = "product"

// ProductRepository persists extracted product records in MongoDB
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a product repository on the given client
func NewProductRepository(client *Client) *ProductRepository {
	return &ProductRepository{
		collection: client.Database().Collection(productCollection),
	}
}

// Exists checks for an exact match on the product name and brand name pair.
// The stored documents use display-form keys, so the filter does too.
func (r *ProductRepository) Exists(ctx context.Context, productName, brandName string) (bool, error) {
	filter := bson.M{
		"Product Name": productName,
		"Brand Name":   brandName,
	}

	err := r.collection.FindOne(ctx, filter).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to query products: %w", err)
	}
	return true, nil
}

// Insert stores a new product record
func (r *ProductRepository) Insert(ctx context.Context, record *domain.ProductRecord) error {
	_, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	log.Printf("[MONGO] Inserted product %q (%s)", record.ProductName, record.BrandName)
	return nil
}

// FindByKey retrieves a product record by its exact name and brand pair
func (r *ProductRepository) FindByKey(ctx context.Context, productName, brandName string) (*domain.ProductRecord, error) {
	filter := bson.M{
		"Product Name": productName,
		"Brand Name":   brandName,
	}

	var record domain.ProductRecord
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return &record, nil
}
