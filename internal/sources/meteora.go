package sources

import (
	"context"

	"solana-dex-dashboard/internal/domain"
)

// MeteoraSource serves a simulated pool set modeled on well-known
// Meteora pairs. The Meteora API is not reliably available, so the
// listing is static; every figure is tagged estimated and live prices
// are attached downstream by the aggregator. The source never fails,
// which also makes it the backbone of the total-failure fallback.
type MeteoraSource struct{}

// NewMeteoraSource creates the simulated Meteora source.
func NewMeteoraSource() *MeteoraSource { return &MeteoraSource{} }

// Name implements PoolSource.
func (s *MeteoraSource) Name() string { return "Meteora" }

// FetchPools implements PoolSource.
func (s *MeteoraSource) FetchPools(_ context.Context) ([]domain.Pool, error) {
	return meteoraPools(), nil
}

func meteoraPools() []domain.Pool {
	return []domain.Pool{
		{
			ID:        "meteora-usdc-usdt-stable",
			Protocol:  "Meteora",
			TokenA:    domain.Token{Symbol: "USDC", Mint: domain.MintUSDC, Decimals: 6},
			TokenB:    domain.Token{Symbol: "USDT", Mint: domain.MintUSDT, Decimals: 6},
			APY:       4.3,
			TVL:       41796489906,
			Volume24h: 2307896.55,
			Fee:       0.05,
			Price:     1.0,
			NativeURL: "https://app.meteora.ag/pool/8Z5c5A2Q1yLkfy2AoVYJ8K3vK5G8p5Xj6vZ6Qk5Q5Q5Q6",
			Estimated: true,
		},
		{
			ID:        "meteora-sol-msol-dynamic",
			Protocol:  "Meteora",
			TokenA:    domain.Token{Symbol: "SOL", Mint: domain.MintSOL, Decimals: 9},
			TokenB:    domain.Token{Symbol: "mSOL", Mint: domain.MintMSOL, Decimals: 9},
			APY:       7.4,
			TVL:       33200000,
			Volume24h: 1300000,
			Fee:       0.1,
			NativeURL: "https://app.meteora.ag/pool/7Z5c5A2Q1yLkfy2AoVYJ8K3vK5G8p5Xj6vZ6Qk5Q5Q5Q5",
			Estimated: true,
		},
		{
			ID:        "meteora-eth-sol",
			Protocol:  "Meteora",
			TokenA:    domain.Token{Symbol: "ETH", Mint: domain.MintETH, Decimals: 8},
			TokenB:    domain.Token{Symbol: "SOL", Mint: domain.MintSOL, Decimals: 9},
			APY:       8.2,
			TVL:       18000000,
			Volume24h: 1200000,
			Fee:       0.3,
			NativeURL: "https://app.meteora.ag/pool/8Z5c5A2Q1yLkfy2AoVYJ8K3vK5G8p5Xj6vZ6Qk5Q5Q5Q7",
			Estimated: true,
		},
		{
			ID:        "meteora-btc-sol",
			Protocol:  "Meteora",
			TokenA:    domain.Token{Symbol: "BTC", Mint: domain.MintBTC, Decimals: 6},
			TokenB:    domain.Token{Symbol: "SOL", Mint: domain.MintSOL, Decimals: 9},
			APY:       7.8,
			TVL:       22000000,
			Volume24h: 950000,
			Fee:       0.3,
			NativeURL: "https://app.meteora.ag/pool/8Z5c5A2Q1yLkfy2AoVYJ8K3vK5G8p5Xj6vZ6Qk5Q5Q5Q8",
			Estimated: true,
		},
		{
			ID:        "meteora-ray-sol",
			Protocol:  "Meteora",
			TokenA:    domain.Token{Symbol: "RAY", Mint: domain.MintRAY, Decimals: 6},
			TokenB:    domain.Token{Symbol: "SOL", Mint: domain.MintSOL, Decimals: 9},
			APY:       9.1,
			TVL:       15000000,
			Volume24h: 680000,
			Fee:       0.3,
			NativeURL: "https://app.meteora.ag/pool/8Z5c5A2Q1yLkfy2AoVYJ8K3vK5G8p5Xj6vZ6Qk5Q5Q5Q9",
			Estimated: true,
		},
	}
}
