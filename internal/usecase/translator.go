package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/labelwise/backend/internal/domain"
)

// maxChunkRunes is the largest chunk the translation collaborator accepts
const maxChunkRunes = 500

// TranslationService translates analysis text chunk by chunk through the
// external translator, concatenating the results.
type TranslationService struct {
	translator domain.Translator
}

// NewTranslationService creates a translation service
func NewTranslationService(translator domain.Translator) *TranslationService {
	return &TranslationService{translator: translator}
}

// Translate splits the text into chunks of at most 500 characters, translates
// each one, and joins the translations. Any chunk failure fails the call.
func (s *TranslationService) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if text == "" {
		return "", nil
	}
	if targetLang == "" {
		return "", domain.ErrInvalidRequest
	}

	var out strings.Builder
	for _, chunk := range splitChunks(text, maxChunkRunes) {
		translated, err := s.translator.Translate(ctx, chunk, targetLang)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrTranslateUnavailable, err)
		}
		out.WriteString(translated)
	}
	return out.String(), nil
}

// splitChunks slices the text into rune-safe pieces of at most size runes
func splitChunks(text string, size int) []string {
	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
