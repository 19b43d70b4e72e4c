package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/labelwise/backend/internal/domain"
)

const userCollection = "customer"

// UserRepository persists user accounts in MongoDB
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a user repository on the given client
func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{
		collection: client.Database().Collection(userCollection),
	}
}

// FindByEmail retrieves an account by email address
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return &user, nil
}

// Insert stores a new account
func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UpdateProfile overwrites the mutable profile fields of an account
func (r *UserRepository) UpdateProfile(ctx context.Context, email string, update domain.ProfileUpdate) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": update},
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
