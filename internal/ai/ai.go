package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vivek91319165/nebula-financial-verse/internal/models"
)

const (
	defaultEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	model           = "llama-3.1-8b-instant"
)

// ErrMissingAPIKey is returned when insight generation is attempted
// without GROQ_API_KEY configured. A configuration problem, not a
// transient one, so handlers map it to a 500.
var ErrMissingAPIKey = errors.New("GROQ_API_KEY not configured")

// ErrUnexpectedFormat is returned when the model reply does not carry
// the choices/message shape we expect.
var ErrUnexpectedFormat = errors.New("unexpected response format from Groq API")

const advisorPrompt = `You are a financial advisor analyzing user data. Provide 3 specific, actionable insights based on their financial data. Focus on spending patterns, savings opportunities, and investment suggestions. Be concise and specific.`

// Snapshot bundles everything the model sees about a user's finances.
// Assembled fresh on every request; never persisted.
type Snapshot struct {
	TotalBalance float64          `json:"total_balance"`
	Expenses     []models.Expense `json:"expenses"`
	Wallets      []models.Wallet  `json:"wallets"`
}

// Service talks to the Groq chat-completions API.
type Service struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewService builds the insight service. An empty apiKey is allowed
// here; calls will fail with ErrMissingAPIKey when actually used.
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

// GenerateInsights asks the model for three actionable insights based
// on the snapshot and returns the reply text verbatim. Persisting the
// text is the caller's job.
func (s *Service) GenerateInsights(ctx context.Context, snap Snapshot) (string, error) {
	systemPrompt := fmt.Sprintf("%s\nFinancial data: %s", advisorPrompt, mustJSON(snap))
	return s.chatCompletion(ctx, systemPrompt, "Analyze this financial data and provide 3 key insights")
}

// Chat answers a free-text question with the snapshot as context.
// Nothing is persisted.
func (s *Service) Chat(ctx context.Context, snap Snapshot, message string) (string, error) {
	systemPrompt := fmt.Sprintf(
		"You are a helpful financial assistant. Use this financial data to provide specific, personalized advice: %s. Be concise and practical in your responses.",
		mustJSON(snap),
	)
	return s.chatCompletion(ctx, systemPrompt, message)
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *Service) chatCompletion(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if s.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read groq response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq api error: %d - %s", resp.StatusCode, truncate(string(body), 100))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
	}

	// The reply must carry at least one choice with a message.
	if len(result.Choices) == 0 || result.Choices[0].Message == nil {
		return "", ErrUnexpectedFormat
	}

	return result.Choices[0].Message.Content, nil
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
