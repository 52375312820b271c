// Package wallet fetches asset snapshots for a connected wallet
// address. Two interchangeable sources exist behind one interface:
// a deterministic mock and a live chain RPC lookup. Which one runs is
// a config decision made once at startup, not a flag checked at call
// sites.
package wallet

import "context"

// Asset is one line of a wallet's holdings as shown on the wallet
// page. Values are display approximations, not a price feed.
type Asset struct {
	Name    string  `json:"name"`
	Symbol  string  `json:"symbol"`
	Balance string  `json:"balance"`
	Value   float64 `json:"value"`
	Change  float64 `json:"change"`
}

// AssetSource produces the asset list for a wallet address.
type AssetSource interface {
	FetchAssets(ctx context.Context, address string) ([]Asset, error)
}
