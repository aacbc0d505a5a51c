package sources

import (
	"context"
	"fmt"
	"strings"

	"solana-dex-dashboard/internal/domain"
	"solana-dex-dashboard/internal/httpclient"
)

// DefaultCoinGeckoBaseURL is the public CoinGecko API base.
const DefaultCoinGeckoBaseURL = "https://api.coingecko.com"

// coingeckoIDs maps CoinGecko asset identifiers to the symbols the
// rest of the system keys prices by.
var coingeckoIDs = map[string]string{
	"solana":   "SOL",
	"usd-coin": "USDC",
	"tether":   "USDT",
	"raydium":  "RAY",
	"orca":     "ORCA",
	"serum":    "SRM",
	"ethereum": "ETH",
	"bitcoin":  "BTC",
}

// CoinGeckoSource fetches reference USD prices from CoinGecko.
type CoinGeckoSource struct {
	baseURL string
	client  *httpclient.Client
}

// NewCoinGeckoSource creates a CoinGecko price source.
func NewCoinGeckoSource(baseURL string, client *httpclient.Client) *CoinGeckoSource {
	return &CoinGeckoSource{baseURL: baseURL, client: client}
}

// FetchPrices implements PriceSource. The request is keyed by a
// comma-separated identifier list; the response maps identifier to
// per-currency prices.
func (s *CoinGeckoSource) FetchPrices(ctx context.Context) (domain.PriceMap, error) {
	ids := make([]string, 0, len(coingeckoIDs))
	for id := range coingeckoIDs {
		ids = append(ids, id)
	}

	url := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=usd",
		s.baseURL, strings.Join(ids, ","))

	var resp map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := s.client.GetJSON(ctx, url, nil, &resp); err != nil {
		return nil, fmt.Errorf("coingecko simple price: %w", err)
	}

	prices := make(domain.PriceMap, len(resp))
	for id, entry := range resp {
		symbol, ok := coingeckoIDs[id]
		if !ok {
			continue
		}
		prices[symbol] = entry.USD
	}
	return prices, nil
}
