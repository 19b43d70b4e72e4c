package domain

import (
	"context"
	"time"
)

// Document is one context unit supplied alongside a model query.
type Document struct {
	Text string
}

// ModelClient defines the interface for the generative-model collaborator.
// Implementations make exactly one network call per Query.
type ModelClient interface {
	Query(ctx context.Context, instruction string, contextDocs []Document) (string, error)
}

// TextReader defines the interface for the OCR collaborator.
type TextReader interface {
	ReadText(ctx context.Context, image []byte) ([]Fragment, error)
}

// ProductRepository defines persistence for extracted product records.
type ProductRepository interface {
	// Exists performs the duplicate check: an exact match on the
	// (ProductName, BrandName) pair, with no normalization applied.
	Exists(ctx context.Context, productName, brandName string) (bool, error)
	Insert(ctx context.Context, record *ProductRecord) error
	FindByKey(ctx context.Context, productName, brandName string) (*ProductRecord, error)
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, user *User) error
	UpdateProfile(ctx context.Context, email string, update ProfileUpdate) error
}

// ProfileUpdate carries the mutable profile fields for an account update.
type ProfileUpdate struct {
	Name               string   `json:"name" bson:"name"`
	Age                int      `json:"age" bson:"age"`
	HeightCM           float64  `json:"height" bson:"height"`
	WeightKG           float64  `json:"weight" bson:"weight"`
	BMI                float64  `json:"bmi" bson:"bmi"`
	Allergies          []string `json:"allergies" bson:"allergies"`
	HealthConditions   string   `json:"health_conditions" bson:"health_conditions"`
	ActivityLevel      string   `json:"activity_level" bson:"activity_level"`
	DietaryPreferences []string `json:"dietary_preferences" bson:"dietary_preferences"`
	HealthGoals        string   `json:"health_goals" bson:"health_goals"`
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Translator defines the interface for the translation collaborator.
// Implementations translate a single chunk of text at a time.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}
