package ocr

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseReply_ValidJSON(t *testing.T) {
	result := ParseReply(`{"merchant":"Walmart","amount":"42.50","category":"shopping","description":"groceries","currency":"USD"}`)

	if result.Merchant != "Walmart" {
		t.Errorf("Merchant = %q, want Walmart", result.Merchant)
	}
	if result.Amount != "42.50" {
		t.Errorf("Amount = %q, want 42.50", result.Amount)
	}
	if result.Category != "shopping" {
		t.Errorf("Category = %q, want shopping", result.Category)
	}
}

func TestParseReply_CodeFenced(t *testing.T) {
	result := ParseReply("```json\n{\"merchant\":\"Cafe\",\"amount\":\"3.20\"}\n```")

	if result.Merchant != "Cafe" || result.Amount != "3.20" {
		t.Errorf("fenced JSON not parsed: %+v", result)
	}
}

func TestParseReply_NumericAmount(t *testing.T) {
	result := ParseReply(`{"merchant":"Shop","amount":12.5,"currency":"EUR"}`)

	if result.Amount != "12.5" {
		t.Errorf("Amount = %q, want 12.5", result.Amount)
	}
}

func TestParseReply_NotJSON(t *testing.T) {
	result := ParseReply("Sorry, I could not read this receipt.")

	empty := Result{}
	if result != empty {
		t.Errorf("non-JSON reply should degrade to empty fields, got %+v", result)
	}
}

func TestParseReply_NullFields(t *testing.T) {
	result := ParseReply(`{"merchant":null,"amount":null,"category":"food"}`)

	if result.Merchant != "" || result.Amount != "" {
		t.Errorf("null fields should become empty strings, got %+v", result)
	}
	if result.Category != "food" {
		t.Errorf("Category = %q, want food", result.Category)
	}
}

func TestScanReceipt_NonJSONReplyDegrades(t *testing.T) {
	// One server plays both the image host and the model endpoint.
	mux := http.NewServeMux()
	mux.HandleFunc("/receipt.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake image bytes"))
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"I see a blurry receipt."}}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := NewServiceWithEndpoint("test-key", srv.URL+"/v1/chat/completions")

	result, err := svc.ScanReceipt(context.Background(), srv.URL+"/receipt.jpg")
	if err != nil {
		t.Fatalf("ScanReceipt returned error: %v", err)
	}
	if (result != Result{}) {
		t.Errorf("unparseable reply should yield empty fields, got %+v", result)
	}
}

func TestScanReceipt_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/receipt.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake image bytes"))
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"merchant\":\"Deli\",\"amount\":\"9.99\",\"category\":\"food\",\"description\":\"lunch\",\"currency\":\"USD\"}"}}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := NewServiceWithEndpoint("test-key", srv.URL+"/v1/chat/completions")

	result, err := svc.ScanReceipt(context.Background(), srv.URL+"/receipt.jpg")
	if err != nil {
		t.Fatalf("ScanReceipt returned error: %v", err)
	}
	if result.Merchant != "Deli" || result.Amount != "9.99" || result.Category != "food" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestScanReceipt_MissingAPIKey(t *testing.T) {
	svc := NewService("")

	_, err := svc.ScanReceipt(context.Background(), "http://example.com/r.jpg")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got: %v", err)
	}
}
