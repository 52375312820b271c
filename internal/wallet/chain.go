package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// ethPriceUSD is a deliberate approximation for display purposes.
// Wiring a real price feed is out of scope; the wallet page shows
// ballpark values only.
const ethPriceUSD = 2450.0

var weiPerEth = new(big.Float).SetFloat64(1e18)

// ChainSource looks up the native coin balance of an address over
// JSON-RPC and converts it with the hardcoded price constant.
type ChainSource struct {
	rpcURL string
	client *http.Client
}

func NewChainSource(rpcURL string) *ChainSource {
	return &ChainSource{
		rpcURL: rpcURL,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcResponse struct {
	Result string `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// FetchAssets returns a single-asset list holding the address's ETH
// balance. Change is always 0: a point-in-time lookup has no history
// to diff against.
func (c *ChainSource) FetchAssets(ctx context.Context, address string) ([]Asset, error) {
	reqBody := rpcRequest{
		JSONRPC: "2.0",
		Method:  "eth_getBalance",
		Params:  []interface{}{address, "latest"},
		ID:      1,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpc request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read rpc response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("parse rpc response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	eth, err := parseWeiHex(rpcResp.Result)
	if err != nil {
		return nil, err
	}

	value, _ := new(big.Float).Mul(eth, big.NewFloat(ethPriceUSD)).Float64()
	balance, _ := eth.Float64()

	return []Asset{
		{
			Name:    "Ethereum",
			Symbol:  "ETH",
			Balance: fmt.Sprintf("%.4f", balance),
			Value:   value,
			Change:  0,
		},
	}, nil
}

// parseWeiHex converts an 0x-prefixed wei quantity into ETH.
func parseWeiHex(result string) (*big.Float, error) {
	hexStr := strings.TrimPrefix(result, "0x")
	if hexStr == "" {
		return nil, fmt.Errorf("empty balance result %q", result)
	}

	wei, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		return nil, fmt.Errorf("invalid balance result %q", result)
	}

	return new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEth), nil
}
