package wallet

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestMultiplier(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    float64
	}{
		{"digit 3", "0xABC123", 3.8},       // 3 % 5 = 3
		{"digit 0", "0xDEAD00", 0.8},       // 0 % 5 = 0
		{"hex letter f", "0xF00F", 0.8},    // 15 % 5 = 0
		{"hex letter a", "0xBEEFA", 0.8},   // 10 % 5 = 0
		{"digit 9", "0x99", 4.8},           // 9 % 5 = 4
		{"non-hex trailing char", "0xZ", 0.8},
		{"empty address", "", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Multiplier(tt.address); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Multiplier(%q) = %v, want %v", tt.address, got, tt.want)
			}
		})
	}
}

func TestMockSource_Deterministic(t *testing.T) {
	src := NewMockSource()

	first, err := src.FetchAssets(context.Background(), "0xABC123")
	if err != nil {
		t.Fatalf("FetchAssets returned error: %v", err)
	}
	second, err := src.FetchAssets(context.Background(), "0xABC123")
	if err != nil {
		t.Fatalf("FetchAssets returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("same address should always produce the same assets")
	}
}

func TestMockSource_ScalesWithAddress(t *testing.T) {
	src := NewMockSource()

	assets, err := src.FetchAssets(context.Background(), "0xABC123")
	if err != nil {
		t.Fatalf("FetchAssets returned error: %v", err)
	}

	if len(assets) != 3 {
		t.Fatalf("got %d assets, want 3", len(assets))
	}

	// Multiplier for trailing '3' is 3.8.
	if assets[0].Symbol != "BTC" || assets[0].Balance != "0.285" {
		t.Errorf("BTC = %+v, want balance 0.285", assets[0])
	}
	if assets[1].Symbol != "ETH" || assets[1].Balance != "9.5" {
		t.Errorf("ETH = %+v, want balance 9.5", assets[1])
	}
	if assets[2].Symbol != "XLM" || assets[2].Balance != "589" {
		t.Errorf("XLM = %+v, want balance 589", assets[2])
	}

	for _, a := range assets {
		if a.Value <= 0 {
			t.Errorf("%s value should be positive, got %v", a.Symbol, a.Value)
		}
	}
}

func TestChainSource_FetchAssets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode rpc request: %v", err)
		}
		if req.Method != "eth_getBalance" {
			t.Errorf("method = %s, want eth_getBalance", req.Method)
		}
		// 2 ETH in wei.
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x1bc16d674ec80000"}`))
	}))
	defer srv.Close()

	src := NewChainSource(srv.URL)

	assets, err := src.FetchAssets(context.Background(), "0xABC123")
	if err != nil {
		t.Fatalf("FetchAssets returned error: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("got %d assets, want 1", len(assets))
	}

	eth := assets[0]
	if eth.Symbol != "ETH" {
		t.Errorf("symbol = %s, want ETH", eth.Symbol)
	}
	if eth.Balance != "2.0000" {
		t.Errorf("balance = %s, want 2.0000", eth.Balance)
	}
	if math.Abs(eth.Value-2*ethPriceUSD) > 0.01 {
		t.Errorf("value = %v, want %v", eth.Value, 2*ethPriceUSD)
	}
}

func TestChainSource_RPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"invalid address"}}`))
	}))
	defer srv.Close()

	src := NewChainSource(srv.URL)

	if _, err := src.FetchAssets(context.Background(), "nonsense"); err == nil {
		t.Fatal("expected an error for an RPC error response")
	}
}

func TestParseWeiHex(t *testing.T) {
	eth, err := parseWeiHex("0xde0b6b3a7640000") // 1 ETH
	if err != nil {
		t.Fatalf("parseWeiHex returned error: %v", err)
	}
	f, _ := eth.Float64()
	if math.Abs(f-1.0) > 1e-9 {
		t.Errorf("parsed %v ETH, want 1.0", f)
	}

	if _, err := parseWeiHex("0x"); err == nil {
		t.Error("expected error for empty hex quantity")
	}
	if _, err := parseWeiHex("0xNOPE"); err == nil {
		t.Error("expected error for invalid hex quantity")
	}
}
