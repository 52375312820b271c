package wallet

import (
	"context"
	"math"
	"strconv"
	"strings"
)

// MockSource derives plausible-looking holdings from the wallet
// address itself, so the same address always shows the same numbers.
type MockSource struct{}

func NewMockSource() *MockSource {
	return &MockSource{}
}

type baseAsset struct {
	name     string
	symbol   string
	balance  float64
	value    float64
	change   float64
	decimals int
}

var baseAssets = []baseAsset{
	{name: "Bitcoin", symbol: "BTC", balance: 0.075, value: 1950, change: 5.2, decimals: 3},
	{name: "Ethereum", symbol: "ETH", balance: 2.5, value: 320.75, change: 10.4, decimals: 1},
	{name: "Stellar", symbol: "XLM", balance: 155, value: 70, change: -2.1, decimals: 0},
}

// FetchAssets scales the base holdings by a multiplier derived from
// the address's trailing hex digit: (digit mod 5) + 0.8, so between
// 0.8 and 4.8.
func (m *MockSource) FetchAssets(_ context.Context, address string) ([]Asset, error) {
	mult := Multiplier(address)

	assets := make([]Asset, 0, len(baseAssets))
	for _, b := range baseAssets {
		assets = append(assets, Asset{
			Name:    b.name,
			Symbol:  b.symbol,
			Balance: strconv.FormatFloat(b.balance*mult, 'f', b.decimals, 64),
			Value:   math.Round(b.value*mult*100) / 100,
			Change:  math.Round(b.change*(mult*0.8)*10) / 10,
		})
	}
	return assets, nil
}

// Multiplier maps an address to its deterministic scaling factor.
// A trailing character that is not a hex digit counts as 0.
func Multiplier(address string) float64 {
	if address == "" {
		return 0.8
	}
	last := strings.ToLower(address[len(address)-1:])
	digit, err := strconv.ParseInt(last, 16, 64)
	if err != nil {
		digit = 0
	}
	return float64(digit%5) + 0.8
}
