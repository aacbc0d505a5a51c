package aggregator

import "solana-dex-dashboard/internal/domain"

// fallbackPools is the static last-resort pool list served when every
// source fails. Figures mirror well-known mainnet pools and are tagged
// estimated; the dashboard must always have something to render.
func fallbackPools() []domain.Pool {
	return []domain.Pool{
		{
			ID:        "orca-sol-usdc-fallback",
			Protocol:  "Orca",
			TokenA:    domain.Token{Symbol: "SOL", Mint: domain.MintSOL, Decimals: 9},
			TokenB:    domain.Token{Symbol: "USDC", Mint: domain.MintUSDC, Decimals: 6},
			APY:       12.5,
			TVL:       45600000,
			Volume24h: 2300000,
			Fee:       0.3,
			Estimated: true,
		},
		{
			ID:        "raydium-sol-usdt-fallback",
			Protocol:  "Raydium",
			TokenA:    domain.Token{Symbol: "SOL", Mint: domain.MintSOL, Decimals: 9},
			TokenB:    domain.Token{Symbol: "USDT", Mint: domain.MintUSDT, Decimals: 6},
			APY:       15.2,
			TVL:       32100000,
			Volume24h: 1800000,
			Fee:       0.25,
			Estimated: true,
		},
		{
			ID:        "orca-ray-usdc-fallback",
			Protocol:  "Orca",
			TokenA:    domain.Token{Symbol: "RAY", Mint: domain.MintRAY, Decimals: 6},
			TokenB:    domain.Token{Symbol: "USDC", Mint: domain.MintUSDC, Decimals: 6},
			APY:       18.7,
			TVL:       12800000,
			Volume24h: 950000,
			Fee:       0.3,
			Estimated: true,
		},
	}
}
