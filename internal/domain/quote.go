package domain

import "errors"

// Quote is a priced estimate for swapping InAmount of InputMint into
// OutputMint, from the swap-routing service. Constructed per request,
// not persisted. Amounts are strings of atomic units, as the routing
// service returns them.
type Quote struct {
	InputMint   string  `json:"inputMint"`
	OutputMint  string  `json:"outputMint"`
	InAmount    string  `json:"inAmount"`
	OutAmount   string  `json:"outAmount"`
	SlippageBps int     `json:"slippageBps"`
	PriceImpact float64 `json:"priceImpactPct,string"`

	// Raw preserves the untouched routing-service payload; the
	// transaction-build endpoint requires it echoed back verbatim.
	Raw map[string]any `json:"-"`
}

// ErrInvalidQuote is returned when a routing-service response is
// missing one of the mandatory quote fields.
var ErrInvalidQuote = errors.New("quote response missing required fields")

// Validate checks that all mandatory fields are present. A quote
// failing this must never be handed to a caller as valid.
func (q *Quote) Validate() error {
	if q.InputMint == "" || q.OutputMint == "" || q.InAmount == "" || q.OutAmount == "" {
		return ErrInvalidQuote
	}
	return nil
}

// SwapTransaction is an opaque, not-yet-signed transaction payload
// decoded from the routing service's base64 envelope. Signing and
// submitting belong to the external wallet collaborator.
type SwapTransaction struct {
	Payload []byte // serialized unsigned transaction
}
