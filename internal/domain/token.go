package domain

// Token identifies a tradable asset within a pool.
// Immutable once constructed.
type Token struct {
	Symbol   string `json:"symbol"`   // short ticker, e.g. "SOL"
	Mint     string `json:"mint"`     // mint address (opaque)
	Decimals int    `json:"decimals"` // decimal precision, >= 0
}

// Well-known mainnet mint addresses.
const (
	MintSOL  = "So11111111111111111111111111111111111111112"
	MintUSDC = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	MintUSDT = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
	MintMSOL = "mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So"
	MintETH  = "7vfCXTUXx5WJV5JADk17DUJ4ksgau7utNKj4b963voxs"
	MintBTC  = "9n4nbM75f5Ui33ZbPYXn59EwSgE8CGsHtAeTH5YFeJ9E"
	MintRAY  = "4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R"
)

// UnknownSymbol is the sentinel for upstream records that omit a token symbol.
const UnknownSymbol = "UNKNOWN"

// DefaultDecimals is used when an upstream record omits token decimals.
const DefaultDecimals = 9

// SafeSymbols is the allow-list of well-known symbols used by the
// safe-pools derivation: the major asset plus major stablecoins and
// liquid staking / bridged assets.
var SafeSymbols = map[string]bool{
	"SOL":  true,
	"USDC": true,
	"USDT": true,
	"mSOL": true,
	"ETH":  true,
	"BTC":  true,
	"RAY":  true,
}
