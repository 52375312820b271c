// Package ocr extracts structured expense fields from receipt images
// by way of a vision-capable language model. Extraction is best
// effort: an unparseable model reply degrades to empty fields instead
// of failing the request.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/chat/completions"
	model           = "gpt-4o-mini"
)

// ErrMissingAPIKey is returned when a scan is attempted without
// OPENAI_API_KEY configured.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY not configured")

// Result holds the model's best-effort guess at the receipt fields.
// Any of them may be empty.
type Result struct {
	Merchant    string `json:"merchant"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
}

// Service talks to the OpenAI chat-completions API.
type Service struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewService(apiKey string) *Service {
	return &Service{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// NewServiceWithEndpoint is used by tests to point the service at a
// fake upstream.
func NewServiceWithEndpoint(apiKey, endpoint string) *Service {
	s := NewService(apiKey)
	s.endpoint = endpoint
	return s
}

// ScanReceipt downloads the image, base64-encodes it, and asks the
// model to return the receipt fields as JSON. Replies that are not
// valid JSON produce an all-empty Result, not an error; only network
// and upstream failures error out.
func (s *Service) ScanReceipt(ctx context.Context, imageURL string) (Result, error) {
	if s.apiKey == "" {
		return Result{}, ErrMissingAPIKey
	}

	// 1. --- Download the image ---
	imgReq, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build image request: %w", err)
	}
	imgResp, err := s.client.Do(imgReq)
	if err != nil {
		return Result{}, fmt.Errorf("download image: %w", err)
	}
	defer imgResp.Body.Close()

	imgData, err := io.ReadAll(imgResp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read image: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(imgData)

	// 2. --- Ask the model for the fields ---
	prompt := fmt.Sprintf(`You are an AI for extracting information from expense receipts.
Extract and return a JSON with fields: merchant, amount, category, description, currency.
The image is base64 encoded below: [BEGIN_IMAGE]%s[END_IMAGE]
If data is missing, leave fields empty or null.
Return only the JSON object, nothing else.`, encoded)

	reqBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a helpful assistant that extracts structured data from receipts."},
			{"role": "user", "content": prompt},
		},
		"max_tokens":  512,
		"temperature": 0.1,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read openai response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("openai api error: %d", resp.StatusCode)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Choices) == 0 {
		// Same degrade as an unparseable reply: empty fields.
		return Result{}, nil
	}

	return ParseReply(parsed.Choices[0].Message.Content), nil
}

// ParseReply turns the raw model reply into a Result. Code fences are
// tolerated; anything that still fails to parse yields empty fields.
func ParseReply(content string) Result {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Decode into a loose map first: the model sometimes returns the
	// amount as a bare number instead of a string.
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return Result{}
	}

	return Result{
		Merchant:    stringField(raw, "merchant"),
		Amount:      stringField(raw, "amount"),
		Category:    stringField(raw, "category"),
		Description: stringField(raw, "description"),
		Currency:    stringField(raw, "currency"),
	}
}

func stringField(raw map[string]interface{}, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		// Trim the trailing zeros json gives whole numbers.
		s := fmt.Sprintf("%v", v)
		return s
	default:
		return ""
	}
}
