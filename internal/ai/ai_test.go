package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vivek91319165/nebula-financial-verse/internal/models"
)

func testSnapshot() Snapshot {
	return Snapshot{
		TotalBalance: 500,
		Expenses: []models.Expense{
			{UserID: 1, Amount: 30, Category: "food", Currency: "USD", TransactionType: "fiat"},
		},
		Wallets: []models.Wallet{
			{UserID: 1, WalletAddress: "0xABC123", WalletType: "metamask", IsActive: true},
		},
	}
}

func fakeUpstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing or wrong Authorization header: %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestGenerateInsights_Success(t *testing.T) {
	srv := fakeUpstream(t, http.StatusOK,
		`{"choices":[{"message":{"content":"1. Cook at home.\n2. Save more.\n3. Diversify."}}]}`)
	defer srv.Close()

	svc := NewServiceWithEndpoint("test-key", srv.URL)

	content, err := svc.GenerateInsights(context.Background(), testSnapshot())
	if err != nil {
		t.Fatalf("GenerateInsights returned error: %v", err)
	}
	if !strings.Contains(content, "Cook at home") {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestGenerateInsights_MissingChoices(t *testing.T) {
	srv := fakeUpstream(t, http.StatusOK, `{"id":"cmpl-1","object":"chat.completion"}`)
	defer srv.Close()

	svc := NewServiceWithEndpoint("test-key", srv.URL)

	_, err := svc.GenerateInsights(context.Background(), testSnapshot())
	if !errors.Is(err, ErrUnexpectedFormat) {
		t.Fatalf("expected ErrUnexpectedFormat, got: %v", err)
	}
}

func TestGenerateInsights_EmptyChoices(t *testing.T) {
	srv := fakeUpstream(t, http.StatusOK, `{"choices":[]}`)
	defer srv.Close()

	svc := NewServiceWithEndpoint("test-key", srv.URL)

	_, err := svc.GenerateInsights(context.Background(), testSnapshot())
	if !errors.Is(err, ErrUnexpectedFormat) {
		t.Fatalf("expected ErrUnexpectedFormat, got: %v", err)
	}
}

func TestGenerateInsights_UpstreamError(t *testing.T) {
	srv := fakeUpstream(t, http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`)
	defer srv.Close()

	svc := NewServiceWithEndpoint("test-key", srv.URL)

	_, err := svc.GenerateInsights(context.Background(), testSnapshot())
	if err == nil {
		t.Fatal("expected an error on non-200 upstream status")
	}
	if errors.Is(err, ErrUnexpectedFormat) {
		t.Errorf("a non-200 status is not a format error: %v", err)
	}
}

func TestGenerateInsights_MissingAPIKey(t *testing.T) {
	svc := NewService("")

	_, err := svc.GenerateInsights(context.Background(), testSnapshot())
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got: %v", err)
	}
}

func TestChat_SendsSnapshotAsSystemContext(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"Spend less on food."}}]}`))
	}))
	defer srv.Close()

	svc := NewServiceWithEndpoint("test-key", srv.URL)

	reply, err := svc.Chat(context.Background(), testSnapshot(), "How can I save money?")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if reply != "Spend less on food." {
		t.Errorf("unexpected reply: %q", reply)
	}

	if len(captured.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" || !strings.Contains(captured.Messages[0].Content, "total_balance") {
		t.Errorf("system message should embed the snapshot, got: %q", captured.Messages[0].Content)
	}
	if captured.Messages[1].Role != "user" || captured.Messages[1].Content != "How can I save money?" {
		t.Errorf("user message wrong: %+v", captured.Messages[1])
	}
}
