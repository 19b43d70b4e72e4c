package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/labelwise/backend/internal/domain"
)

// ratingPrompt is the fixed instruction for the health evaluation call.
const ratingPrompt = `You are tasked with analyzing the contents of a food label and evaluating its healthiness for a specific user.

1. Health Rating:
   - Based on the corrected food label and the user's profile, assign a health rating on a scale from 1 to 10 (where 10 is the healthiest).
   - Consider the user's dietary preferences, health goals, allergies, and activity level in your rating.
   - If the food contains any ingredient to which the user is allergic, double-check that it really does, then assign a health rating of 0/10 and include a clear warning.
   - If the user should avoid the food altogether, assign a rating from 1 to 4.
   - If the user should consume the food in moderation, assign a rating from 5 to 7.
   - If the user can consume the food frequently, assign a rating from 8 to 10.

2. Health Analysis:
   - Detailed Breakdown: Present a statistical breakdown of the food's nutritional content. Ensure all terms and values are correctly spelled and reflect the accurate content of the food item.
   - Personalized Evaluation: Explain why the food item is either good or bad for the user based on their specific health profile, and identify any ingredients or nutritional aspects that align well or poorly with their dietary needs. If the food contains an allergen, emphasize the risk.
   - Advice: State whether the user should consume this food frequently, in moderation, or avoid it altogether. If the food contains an allergen, recommend avoiding it entirely and issue a warning in the conclusion.

Ensure the output is free from spelling mistakes and that important points or warnings are clearly communicated.`

// AnalyzerConfig holds configuration for the label analyzer
type AnalyzerConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// LabelAnalyzer rates a food label against a user's health profile with one
// generative-model call per analysis. Results are cached by content hash so
// re-uploads of the same label by the same profile skip the model.
type LabelAnalyzer struct {
	model              domain.ModelClient
	normalizer         *TermNormalizer
	cache              domain.CacheRepository
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewLabelAnalyzer creates an analyzer with its collaborators injected
func NewLabelAnalyzer(
	model domain.ModelClient,
	normalizer *TermNormalizer,
	cache domain.CacheRepository,
	config AnalyzerConfig,
) *LabelAnalyzer {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	return &LabelAnalyzer{
		model:              model,
		normalizer:         normalizer,
		cache:              cache,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Analyze normalizes the OCR text against the nutrition vocabulary, inlines
// the user profile, and asks the model for a rating and breakdown.
// Flow: check cache -> query model -> cache -> return.
func (a *LabelAnalyzer) Analyze(
	ctx context.Context,
	ocrText string,
	profile domain.UserProfile,
) (string, error) {
	if ocrText == "" {
		return "", domain.ErrInvalidRequest
	}

	corrected := a.normalizer.Normalize(ocrText)
	summary := profile.PromptSummary()
	cacheKey := analysisCacheKey(corrected, summary)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		if text, ok := cached.(string); ok {
			if a.enableDebugLogging {
				log.Printf("[ANALYZE] Cache hit for key %s", cacheKey)
			}
			return text, nil
		}
	}

	contextDocs := []domain.Document{
		{Text: "OCR corrected text from food label: " + corrected},
		{Text: "User Profile: " + summary},
	}

	response, err := a.model.Query(ctx, ratingPrompt, contextDocs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}

	if err := a.cache.Set(ctx, cacheKey, response, a.cacheTTL); err != nil && a.enableDebugLogging {
		log.Printf("[ANALYZE] Cache set failed: %v", err)
	}

	return response, nil
}

// analysisCacheKey hashes the corrected label text and the profile summary.
// Format: "analysis:{sha256-hex}"
func analysisCacheKey(correctedText, profileSummary string) string {
	digest := sha256.Sum256([]byte(correctedText + "\x00" + profileSummary))
	return "analysis:" + hex.EncodeToString(digest[:])
}
