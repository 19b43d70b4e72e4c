package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"

	"github.com/labelwise/backend/internal/domain"
)

// extractionPrompt is the fixed instruction template for the structuring
// call. It asks the model to do its own spelling correction, so the
// extractor deliberately receives the raw OCR text, not the normalized form.
const extractionPrompt = `You are tasked with correcting and structuring the OCR text from a food label. Please:
1. Correct any spelling mistakes or grammatical errors in the OCR text.
2. Extract and structure the following information:
   - Product Name
   - Brand Name (look for company names following phrases such as "manufactured by", "owned by" or "produced by")
   - Weight in Grams/ML
   - Nutritional information: Include the serving size (e.g., "per 100g", "per 200ml") as specified on the label. If multiple serving sizes are given, use the one that provides the most comprehensive nutritional breakdown.
   - Ingredients
   - Product Category
   - Proprietary Claims: Include any claims such as "sugar-free", "low-fat", etc. If no such claims are present, leave this field empty.
3. Present the information as a single literal dictionary. The "Nutritional information" value must be a nested dictionary with the serving size as the key and the nutritional details as the value. Do not include any additional text, markdown formatting, or code blocks. Just return the dictionary.

Example format:
{
    "Product Name": "Example Cereal",
    "Brand Name": "HealthyBrands",
    "Weight": "500g",
    "Nutritional information": {
        "per 100g": {
            "Energy": "370kcal",
            "Protein": "8g",
            "Carbohydrates": "80g",
            "Fat": "2g"
        }
    },
    "Ingredients": "Whole grain wheat, sugar, salt",
    "Product Category": "Breakfast Cereal",
    "Proprietary Claims": "High in fiber, Low in fat"
}

If certain information is not available in the OCR text, use "Not specified" as the value for that key.`

// braceSpanRegex locates the first-to-last brace-delimited span in a model
// response, newlines included.
var braceSpanRegex = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractorConfig holds configuration for the label extractor
type ExtractorConfig struct {
	EnableDebugLogging bool
}

// LabelExtractor turns raw OCR label text into a validated ProductRecord via
// one generative-model call, and checks records for duplication against the
// product store. It holds no cross-call state.
type LabelExtractor struct {
	model              domain.ModelClient
	products           domain.ProductRepository
	enableDebugLogging bool
}

// NewLabelExtractor creates an extractor with its collaborators injected
func NewLabelExtractor(
	model domain.ModelClient,
	products domain.ProductRepository,
	config ExtractorConfig,
) *LabelExtractor {
	return &LabelExtractor{
		model:              model,
		products:           products,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Extract issues one model query over the raw OCR text and parses the
// response into a ProductRecord. Failures are terminal for the call: there
// is no retry here, the caller decides whether to re-invoke.
func (e *LabelExtractor) Extract(ctx context.Context, ocrText string) (*domain.ProductRecord, error) {
	if ocrText == "" {
		return nil, domain.ErrInvalidRequest
	}

	contextDocs := []domain.Document{
		{Text: "OCR text from food label: " + ocrText},
	}

	response, err := e.model.Query(ctx, extractionPrompt, contextDocs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}

	if e.enableDebugLogging {
		log.Printf("[EXTRACT] Model response (%d bytes)", len(response))
	}

	span := braceSpanRegex.FindString(response)
	if span == "" {
		return nil, domain.ErrNoStructure
	}

	parsed, err := parseLiteral(span)
	if err != nil {
		if e.enableDebugLogging {
			log.Printf("[EXTRACT] Parse error: %v", err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	mapping, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is not a mapping", domain.ErrMalformedResponse)
	}

	return recordFromMapping(mapping), nil
}

// AttachMetadata attaches the caller-supplied classification to a record.
// Attachment is all-or-nothing: when either value is missing, neither is
// attached.
func (e *LabelExtractor) AttachMetadata(
	record *domain.ProductRecord,
	productType domain.ProductType,
	frequency domain.ConsumptionFrequency,
) {
	if productType == "" || frequency == "" {
		return
	}
	record.ProductType = productType
	record.ConsumptionFrequency = frequency
}

// IsDuplicate reports whether a record with exactly this product and brand
// name pair is already persisted. No normalization is applied before the
// lookup; matching is whatever the store's comparison does.
func (e *LabelExtractor) IsDuplicate(ctx context.Context, productName, brandName string) (bool, error) {
	exists, err := e.products.Exists(ctx, productName, brandName)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return exists, nil
}

// recordFromMapping coerces the parsed literal mapping into a ProductRecord.
// The prompt contract promises "Not specified" for absent fields; missing or
// mistyped keys still degrade to the sentinel rather than failing.
func recordFromMapping(mapping map[string]interface{}) *domain.ProductRecord {
	record := &domain.ProductRecord{
		ProductName:   stringField(mapping, "Product Name", domain.NotSpecified),
		BrandName:     stringField(mapping, "Brand Name", domain.NotSpecified),
		Weight:        stringField(mapping, "Weight", domain.NotSpecified),
		Ingredients:   stringField(mapping, "Ingredients", domain.NotSpecified),
		Category:      stringField(mapping, "Product Category", domain.NotSpecified),
		Claims:        stringField(mapping, "Proprietary Claims", ""),
		NutritionInfo: nutritionField(mapping, "Nutritional information"),
	}
	return record
}

func stringField(mapping map[string]interface{}, key, fallback string) string {
	value, ok := mapping[key]
	if !ok || value == nil {
		return fallback
	}
	s, ok := value.(string)
	if !ok {
		return scalarString(value)
	}
	return s
}

// nutritionField coerces the nested serving-size mapping, stringifying any
// numeric values the model left bare.
func nutritionField(mapping map[string]interface{}, key string) domain.NutritionTable {
	table := make(domain.NutritionTable)
	outer, ok := mapping[key].(map[string]interface{})
	if !ok {
		return table
	}
	for serving, nutrients := range outer {
		inner, ok := nutrients.(map[string]interface{})
		if !ok {
			continue
		}
		values := make(map[string]string, len(inner))
		for name, value := range inner {
			if s, ok := value.(string); ok {
				values[name] = s
			} else {
				values[name] = scalarString(value)
			}
		}
		table[serving] = values
	}
	return table
}

func scalarString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
