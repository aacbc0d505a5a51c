// Package jupiter is the client for the Jupiter swap-routing service:
// price quotes and unsigned swap transaction builds. Signing and
// submitting belong to the external wallet collaborator.
package jupiter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"solana-dex-dashboard/internal/domain"
	"solana-dex-dashboard/internal/httpclient"
	"solana-dex-dashboard/internal/observability"
)

// DefaultBaseURL is the Jupiter v6 quote API base.
const DefaultBaseURL = "https://quote-api.jup.ag"

// Default client configuration.
const (
	DefaultSlippageBps  = 50
	DefaultQuoteTimeout = 8 * time.Second
)

// ErrTimeout marks a quote request that exceeded its deadline,
// distinguishable from an upstream error.
var ErrTimeout = errors.New("quote request timed out")

// Client queries the Jupiter routing service.
type Client struct {
	baseURL     string
	http        *httpclient.Client
	slippageBps int
	timeout     time.Duration
}

// Option configures Client.
type Option func(*Client)

// WithSlippageBps sets the slippage tolerance in basis points.
func WithSlippageBps(bps int) Option {
	return func(c *Client) {
		c.slippageBps = bps
	}
}

// WithQuoteTimeout sets the per-request quote timeout.
func WithQuoteTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a Jupiter client.
func New(baseURL string, http *httpclient.Client, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		http:        http,
		slippageBps: DefaultSlippageBps,
		timeout:     DefaultQuoteTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// quoteResponse is the typed slice of the Jupiter quote payload.
type quoteResponse struct {
	InputMint      string `json:"inputMint"`
	OutputMint     string `json:"outputMint"`
	InAmount       string `json:"inAmount"`
	OutAmount      string `json:"outAmount"`
	SlippageBps    int    `json:"slippageBps"`
	PriceImpactPct string `json:"priceImpactPct"`
}

// errorBody is the structured error payload some upstream failures carry.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// GetQuote fetches a swap quote for amount atomic units of inputMint
// into outputMint. A quote missing mandatory fields is never returned
// as valid.
func (c *Client) GetQuote(ctx context.Context, inputMint, outputMint string, amount uint64) (*domain.Quote, error) {
	start := time.Now()
	quote, err := c.getQuote(ctx, inputMint, outputMint, amount)
	outcome := "success"
	switch {
	case errors.Is(err, ErrTimeout):
		outcome = "timeout"
	case errors.Is(err, domain.ErrInvalidQuote):
		outcome = "invalid"
	case err != nil:
		outcome = "error"
	}
	observability.RecordQuote(outcome, time.Since(start).Seconds())
	return quote, err
}

func (c *Client) getQuote(ctx context.Context, inputMint, outputMint string, amount uint64) (*domain.Quote, error) {
	params := url.Values{}
	params.Set("inputMint", inputMint)
	params.Set("outputMint", outputMint)
	params.Set("amount", strconv.FormatUint(amount, 10))
	params.Set("slippageBps", strconv.Itoa(c.slippageBps))
	params.Set("onlyDirectRoutes", "false")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.http.Do(ctx, "GET", c.baseURL+"/v6/quote?"+params.Encode(), nil, nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %v", ErrTimeout, c.timeout)
		}
		return nil, fmt.Errorf("jupiter quote: %w", upstreamError(err))
	}

	var typed quoteResponse
	if err := json.Unmarshal(body, &typed); err != nil {
		return nil, fmt.Errorf("jupiter quote: unmarshal response: %w", err)
	}

	quote := &domain.Quote{
		InputMint:   typed.InputMint,
		OutputMint:  typed.OutputMint,
		InAmount:    typed.InAmount,
		OutAmount:   typed.OutAmount,
		SlippageBps: typed.SlippageBps,
	}
	if typed.PriceImpactPct != "" {
		quote.PriceImpact, _ = strconv.ParseFloat(typed.PriceImpactPct, 64)
	}
	if err := quote.Validate(); err != nil {
		return nil, fmt.Errorf("jupiter quote: %w", err)
	}

	// Keep the untouched payload: the swap build endpoint requires
	// the quote echoed back verbatim.
	if err := json.Unmarshal(body, &quote.Raw); err != nil {
		return nil, fmt.Errorf("jupiter quote: unmarshal raw payload: %w", err)
	}

	return quote, nil
}

// swapRequest is the transaction-build request body.
type swapRequest struct {
	QuoteResponse map[string]any `json:"quoteResponse"`
	UserPublicKey string         `json:"userPublicKey"`
	WrapUnwrapSOL bool           `json:"wrapAndUnwrapSol"`
}

type swapResponse struct {
	SwapTransaction string `json:"swapTransaction"`
}

// BuildSwapTransaction posts an accepted quote plus the payer address
// to the routing service and returns the decoded, not-yet-signed
// transaction payload. It never signs or submits.
func (c *Client) BuildSwapTransaction(ctx context.Context, quote *domain.Quote, payer string) (*domain.SwapTransaction, error) {
	if err := ValidatePayer(payer); err != nil {
		observability.RecordSwapBuild("invalid_payer")
		return nil, fmt.Errorf("payer address: %w", err)
	}
	if quote == nil || quote.Raw == nil {
		observability.RecordSwapBuild("invalid_quote")
		return nil, domain.ErrInvalidQuote
	}

	req := swapRequest{
		QuoteResponse: quote.Raw,
		UserPublicKey: payer,
		WrapUnwrapSOL: true,
	}

	var resp swapResponse
	if err := c.http.PostJSON(ctx, c.baseURL+"/v6/swap", req, &resp); err != nil {
		observability.RecordSwapBuild("error")
		return nil, fmt.Errorf("build swap transaction: %w", upstreamError(err))
	}

	payload, err := base64.StdEncoding.DecodeString(resp.SwapTransaction)
	if err != nil {
		observability.RecordSwapBuild("decode_error")
		return nil, fmt.Errorf("build swap transaction: decode envelope: %w", err)
	}
	if len(payload) == 0 {
		observability.RecordSwapBuild("empty")
		return nil, errors.New("build swap transaction: empty transaction envelope")
	}

	observability.RecordSwapBuild("success")
	return &domain.SwapTransaction{Payload: payload}, nil
}

// upstreamError extracts a human-readable message from a structured
// error body when one is present, falling back to the raw status text.
func upstreamError(err error) error {
	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) || len(statusErr.Body) == 0 {
		return err
	}

	var parsed errorBody
	if jsonErr := json.Unmarshal(statusErr.Body, &parsed); jsonErr != nil {
		return err
	}
	switch {
	case parsed.Error != "":
		return fmt.Errorf("%s (HTTP %d)", parsed.Error, statusErr.Code)
	case parsed.Message != "":
		return fmt.Errorf("%s (HTTP %d)", parsed.Message, statusErr.Code)
	}
	return err
}
