package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/labelwise/backend/internal/domain"
)

// MockModelClient is a mock implementation of domain.ModelClient
type MockModelClient struct {
	response        string
	err             error
	calls           int
	lastInstruction string
	lastContextDocs []domain.Document
}

func (m *MockModelClient) Query(ctx context.Context, instruction string, contextDocs []domain.Document) (string, error) {
	m.calls++
	m.lastInstruction = instruction
	m.lastContextDocs = contextDocs
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

// MockProductRepository is a mock implementation of domain.ProductRepository
type MockProductRepository struct {
	records   []*domain.ProductRecord
	existsErr error
	insertErr error
}

func (m *MockProductRepository) Exists(ctx context.Context, productName, brandName string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, r := range m.records {
		if r.ProductName == productName && r.BrandName == brandName {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockProductRepository) Insert(ctx context.Context, record *domain.ProductRecord) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *MockProductRepository) FindByKey(ctx context.Context, productName, brandName string) (*domain.ProductRecord, error) {
	for _, r := range m.records {
		if r.ProductName == productName && r.BrandName == brandName {
			return r, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

const oatBarResponse = `Here is the data: {"Product Name": "Oat Bar", "Brand Name": "HealthyBrands", "Weight": "40g", "Nutritional information": {"per 40g": {"Energy": "180kcal"}}, "Ingredients": "oats, honey", "Product Category": "Snack", "Proprietary Claims": ""}`

func TestExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("returns error for empty OCR text", func(t *testing.T) {
		e := NewLabelExtractor(&MockModelClient{}, &MockProductRepository{}, ExtractorConfig{})
		_, err := e.Extract(ctx, "")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("parses a well-formed response into a record", func(t *testing.T) {
		model := &MockModelClient{response: oatBarResponse}
		e := NewLabelExtractor(model, &MockProductRepository{}, ExtractorConfig{})

		record, err := e.Extract(ctx, "oat bar label text")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.ProductName != "Oat Bar" {
			t.Errorf("ProductName = %q, want %q", record.ProductName, "Oat Bar")
		}
		if record.BrandName != "HealthyBrands" {
			t.Errorf("BrandName = %q, want %q", record.BrandName, "HealthyBrands")
		}
		if record.Weight != "40g" {
			t.Errorf("Weight = %q, want %q", record.Weight, "40g")
		}
		if record.Claims != "" {
			t.Errorf("Claims = %q, want empty", record.Claims)
		}
		serving, ok := record.NutritionInfo["per 40g"]
		if !ok {
			t.Fatalf("NutritionInfo missing serving key, got %v", record.NutritionInfo)
		}
		if serving["Energy"] != "180kcal" {
			t.Errorf("Energy = %q, want %q", serving["Energy"], "180kcal")
		}
	})

	t.Run("makes exactly one model call", func(t *testing.T) {
		model := &MockModelClient{response: oatBarResponse}
		e := NewLabelExtractor(model, &MockProductRepository{}, ExtractorConfig{})

		if _, err := e.Extract(ctx, "label"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if model.calls != 1 {
			t.Errorf("model calls = %d, want 1", model.calls)
		}
	})

	t.Run("passes raw OCR text to the model unnormalized", func(t *testing.T) {
		model := &MockModelClient{response: oatBarResponse}
		e := NewLabelExtractor(model, &MockProductRepository{}, ExtractorConfig{})

		// the extraction prompt does its own correction; misspellings must
		// survive into the context document
		if _, err := e.Extract(ctx, "calorjes 180"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(model.lastContextDocs) != 1 {
			t.Fatalf("context docs = %d, want 1", len(model.lastContextDocs))
		}
		if model.lastContextDocs[0].Text != "OCR text from food label: calorjes 180" {
			t.Errorf("context doc = %q", model.lastContextDocs[0].Text)
		}
	})

	t.Run("returns ErrNoStructure when response has no braces", func(t *testing.T) {
		model := &MockModelClient{response: "I could not read this label, sorry."}
		e := NewLabelExtractor(model, &MockProductRepository{}, ExtractorConfig{})

		_, err := e.Extract(ctx, "label")
		if !errors.Is(err, domain.ErrNoStructure) {
			t.Errorf("error = %v, want ErrNoStructure", err)
		}
	})

	t.Run("returns ErrMalformedResponse for trailing comma", func(t *testing.T) {
		model := &MockModelClient{response: `{"Product Name": "Oat Bar",}`}
		e := NewLabelExtractor(model, &MockProductRepository{}, ExtractorConfig{})

		_, err := e.Extract(ctx, "label")
		if !errors.Is(err, domain.ErrMalformedResponse) {
			t.Errorf("error = %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("returns ErrMalformedResponse for truncated structure", func(t *testing.T) {
		// the greedy span is {"Product Name": "Oat"} but the inner content
		// following it makes the literal invalid
		model := &MockModelClient{response: `{"Product Name": "Oat Bar" "Brand Name"}`}
		e := NewLabelExtractor(model, &MockProductRepository{}, ExtractorConfig{})

		_, err := e.Extract(ctx, "label")
		if !errors.Is(err, domain.ErrMalformedResponse) {
			t.Errorf("error = %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("accepts python-style single quotes and None", func(t *testing.T) {
		model := &MockModelClient{response: `{'Product Name': 'Choco Crunch', 'Brand Name': None}`}
		e := NewLabelExtractor(model, &MockProductRepository{}, ExtractorConfig{})

		record, err := e.Extract(ctx, "label")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.ProductName != "Choco Crunch" {
			t.Errorf("ProductName = %q, want %q", record.ProductName, "Choco Crunch")
		}
		if record.BrandName != domain.NotSpecified {
			t.Errorf("BrandName = %q, want %q", record.BrandName, domain.NotSpecified)
		}
	})

	t.Run("degrades missing keys to sentinels", func(t *testing.T) {
		model := &MockModelClient{response: `{"Product Name": "Bare"}`}
		e := NewLabelExtractor(model, &MockProductRepository{}, ExtractorConfig{})

		record, err := e.Extract(ctx, "label")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.BrandName != domain.NotSpecified {
			t.Errorf("BrandName = %q, want sentinel", record.BrandName)
		}
		if record.Weight != domain.NotSpecified {
			t.Errorf("Weight = %q, want sentinel", record.Weight)
		}
		if record.Claims != "" {
			t.Errorf("Claims = %q, want empty", record.Claims)
		}
		if len(record.NutritionInfo) != 0 {
			t.Errorf("NutritionInfo = %v, want empty", record.NutritionInfo)
		}
	})

	t.Run("stringifies bare numeric nutrition values", func(t *testing.T) {
		model := &MockModelClient{response: `{"Product Name": "Juice", "Nutritional information": {"per 100ml": {"Energy": 42, "Sugar": 9.5}}}`}
		e := NewLabelExtractor(model, &MockProductRepository{}, ExtractorConfig{})

		record, err := e.Extract(ctx, "label")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		serving := record.NutritionInfo["per 100ml"]
		if serving["Energy"] != "42" {
			t.Errorf("Energy = %q, want %q", serving["Energy"], "42")
		}
		if serving["Sugar"] != "9.5" {
			t.Errorf("Sugar = %q, want %q", serving["Sugar"], "9.5")
		}
	})

	t.Run("wraps model failures as ErrModelUnavailable", func(t *testing.T) {
		model := &MockModelClient{err: errors.New("connection refused")}
		e := NewLabelExtractor(model, &MockProductRepository{}, ExtractorConfig{})

		_, err := e.Extract(ctx, "label")
		if !errors.Is(err, domain.ErrModelUnavailable) {
			t.Errorf("error = %v, want ErrModelUnavailable", err)
		}
	})
}

func TestAttachMetadata(t *testing.T) {
	e := NewLabelExtractor(&MockModelClient{}, &MockProductRepository{}, ExtractorConfig{})

	t.Run("attaches both when both supplied", func(t *testing.T) {
		record := &domain.ProductRecord{ProductName: "Oat Bar"}
		e.AttachMetadata(record, domain.ProductTypeNutritional, domain.FrequencyWeekly)
		if record.ProductType != domain.ProductTypeNutritional {
			t.Errorf("ProductType = %q, want %q", record.ProductType, domain.ProductTypeNutritional)
		}
		if record.ConsumptionFrequency != domain.FrequencyWeekly {
			t.Errorf("ConsumptionFrequency = %q, want %q", record.ConsumptionFrequency, domain.FrequencyWeekly)
		}
	})

	t.Run("attaches neither when only product type supplied", func(t *testing.T) {
		record := &domain.ProductRecord{ProductName: "Oat Bar"}
		e.AttachMetadata(record, domain.ProductTypeNutritional, "")
		if record.ProductType != "" || record.ConsumptionFrequency != "" {
			t.Errorf("metadata attached, want all-or-nothing: type=%q freq=%q",
				record.ProductType, record.ConsumptionFrequency)
		}
	})

	t.Run("attaches neither when only frequency supplied", func(t *testing.T) {
		record := &domain.ProductRecord{ProductName: "Oat Bar"}
		e.AttachMetadata(record, "", domain.FrequencyDaily)
		if record.ProductType != "" || record.ConsumptionFrequency != "" {
			t.Errorf("metadata attached, want all-or-nothing: type=%q freq=%q",
				record.ProductType, record.ConsumptionFrequency)
		}
	})
}

func TestIsDuplicate(t *testing.T) {
	ctx := context.Background()

	t.Run("false before insertion, true after", func(t *testing.T) {
		repo := &MockProductRepository{}
		e := NewLabelExtractor(&MockModelClient{}, repo, ExtractorConfig{})

		dup, err := e.IsDuplicate(ctx, "oat bar", "HealthyBrands")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dup {
			t.Error("IsDuplicate = true before insertion, want false")
		}

		repo.Insert(ctx, &domain.ProductRecord{ProductName: "oat bar", BrandName: "HealthyBrands"})

		dup, err = e.IsDuplicate(ctx, "oat bar", "HealthyBrands")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dup {
			t.Error("IsDuplicate = false after insertion, want true")
		}
	})

	t.Run("lookup is case-sensitive", func(t *testing.T) {
		repo := &MockProductRepository{records: []*domain.ProductRecord{
			{ProductName: "oat bar", BrandName: "HealthyBrands"},
		}}
		e := NewLabelExtractor(&MockModelClient{}, repo, ExtractorConfig{})

		dup, err := e.IsDuplicate(ctx, "Oat Bar", "HealthyBrands")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dup {
			t.Error("IsDuplicate = true for different case, want exact-match false")
		}
	})

	t.Run("wraps store failures", func(t *testing.T) {
		repo := &MockProductRepository{existsErr: errors.New("network down")}
		e := NewLabelExtractor(&MockModelClient{}, repo, ExtractorConfig{})

		_, err := e.IsDuplicate(ctx, "oat bar", "HealthyBrands")
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Errorf("error = %v, want ErrStoreUnavailable", err)
		}
	})
}
