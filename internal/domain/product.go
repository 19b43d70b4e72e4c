package domain

// NotSpecified is the sentinel the extraction prompt promises for fields
// that are absent from the label text.
const NotSpecified = "Not specified"

// ProductType is the caller-supplied classification attached after extraction.
type ProductType string

const (
	ProductTypeNutritional  ProductType = "Nutritional"
	ProductTypeRegular      ProductType = "Regular"
	ProductTypeRecreational ProductType = "Recreational"
)

// Valid reports whether the product type is one of the known values.
func (p ProductType) Valid() bool {
	switch p {
	case ProductTypeNutritional, ProductTypeRegular, ProductTypeRecreational:
		return true
	}
	return false
}

// ConsumptionFrequency is how often the contributing user consumes the product.
type ConsumptionFrequency string

const (
	FrequencyDaily   ConsumptionFrequency = "Daily"
	FrequencyWeekly  ConsumptionFrequency = "Weekly"
	FrequencyMonthly ConsumptionFrequency = "Monthly"
)

// Valid reports whether the frequency is one of the known values.
func (f ConsumptionFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// NutritionTable maps a serving-size label (e.g. "per 100g") to the
// nutrient name -> value-with-unit pairs stated for that serving.
// The extractor keeps exactly one serving-size key.
type NutritionTable map[string]map[string]string

// ProductRecord is the structured output of label extraction. The bson keys
// mirror the document shape of the product collection, which predates this
// service and uses the display-form field names.
type ProductRecord struct {
	ProductName          string               `json:"product_name" bson:"Product Name"`
	BrandName            string               `json:"brand_name" bson:"Brand Name"`
	Weight               string               `json:"weight" bson:"Weight"`
	NutritionInfo        NutritionTable       `json:"nutrition_info" bson:"Nutritional information"`
	Ingredients          string               `json:"ingredients" bson:"Ingredients"`
	Category             string               `json:"category" bson:"Product Category"`
	Claims               string               `json:"claims" bson:"Proprietary Claims"`
	ProductType          ProductType          `json:"product_type,omitempty" bson:"product_type,omitempty"`
	ConsumptionFrequency ConsumptionFrequency `json:"consumption_frequency,omitempty" bson:"consumption_frequency,omitempty"`
}
