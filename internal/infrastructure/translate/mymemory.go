package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/labelwise/backend/internal/domain"
)

// DefaultBaseURL is the public MyMemory endpoint
const DefaultBaseURL = "https://api.mymemory.translated.net"

// MyMemoryClient translates text chunks through the MyMemory API
type MyMemoryClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewMyMemoryClient creates a translation client. baseURL falls back to the
// public endpoint when empty.
func NewMyMemoryClient(baseURL string) *MyMemoryClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &MyMemoryClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus json.Number `json:"responseStatus"`
}

// Translate translates a single chunk of English text into targetLang
func (c *MyMemoryClient) Translate(ctx context.Context, text, targetLang string) (string, error) {
	params := url.Values{}
	params.Add("q", text)
	params.Add("langpair", fmt.Sprintf("en|%s", targetLang))

	reqURL := fmt.Sprintf("%s/get?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "LabelWise/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranslateUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[TRANSLATE] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: status %d", domain.ErrTranslateUnavailable, resp.StatusCode)
	}

	var parsed myMemoryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	// MyMemory reports quota and pair errors inside a 200 body
	if status, err := parsed.ResponseStatus.Int64(); err == nil && status != 200 {
		return "", fmt.Errorf("%w: response status %d", domain.ErrTranslateUnavailable, status)
	}

	return parsed.ResponseData.TranslatedText, nil
}
