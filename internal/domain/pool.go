package domain

import "errors"

// Pool is a normalized liquidity pool record merged from one of the
// upstream DEX listing APIs. ID is stable across repeated fetches of
// the same underlying pool within one source.
type Pool struct {
	ID        string  `json:"id"`       // globally unique: "<source>-<address>"
	Protocol  string  `json:"protocol"` // originating protocol name
	TokenA    Token   `json:"tokenA"`
	TokenB    Token   `json:"tokenB"`
	APY       float64 `json:"apy"`      // annualized yield estimate, percent
	TVL       float64 `json:"tvl"`      // total value locked, USD
	Volume24h float64 `json:"volume24h"`
	Fee       float64 `json:"fee"` // fee rate, percent
	Price     float64 `json:"price,omitempty"`
	Address   string  `json:"address,omitempty"`
	NativeURL string  `json:"nativeUrl,omitempty"`

	// Estimated marks pools whose analytics figures (APY, and possibly
	// TVL/volume) were synthesized because the upstream lacks them.
	// Estimated figures must never be presented as authoritative.
	Estimated bool `json:"estimated,omitempty"`
}

// Pool validation errors.
var (
	ErrSameTokens       = errors.New("tokenA and tokenB must be distinct")
	ErrNegativeAnalytic = errors.New("tvl, volume and fee must be non-negative")
)

// Validate checks the Pool invariants.
func (p *Pool) Validate() error {
	if p.TokenA.Mint == p.TokenB.Mint && p.TokenA.Symbol == p.TokenB.Symbol {
		return ErrSameTokens
	}
	if p.TVL < 0 || p.Volume24h < 0 || p.Fee < 0 {
		return ErrNegativeAnalytic
	}
	return nil
}

// IsSafe reports whether both sides of the pair belong to the
// well-known symbol allow-list.
func (p *Pool) IsSafe() bool {
	return SafeSymbols[p.TokenA.Symbol] && SafeSymbols[p.TokenB.Symbol]
}
