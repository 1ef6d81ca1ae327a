package dexscreener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/navid-fn/dexscout/internal/fanout"
)

const (
	DefaultTrendingLimit   = 10
	DefaultNewPairsLimit   = 10
	DefaultChainPairsLimit = 20

	// NewPairLabel marks pairs surfaced by NewPairs. It is appended when
	// the upstream payload does not already carry it.
	NewPairLabel = "new"

	// lookupConcurrency bounds the per-token fan-out in Trending and
	// NewPairs. The limiter still serializes the actual requests.
	lookupConcurrency = 5
)

// Sort keys accepted by PairsByChain.
const (
	SortByVolume      = "volume"
	SortByLiquidity   = "liquidity"
	SortByPriceChange = "priceChange"
	SortByTxns        = "txns"
)

// These messages reach end users verbatim, hence the capitalization.
var (
	ErrPairNotFound     = errors.New("Pair not found")
	ErrProfileNotFound  = errors.New("Token profile not found")
	ErrTooManyAddresses = fmt.Errorf("Maximum %d token addresses allowed", MaxBatchAddresses)
)

// Search runs a free-text pair search. An empty result is a valid outcome
// and comes back as an empty slice, never nil.
func (c *Client) Search(ctx context.Context, query string) ([]TradingPair, error) {
	var resp pairsResponse
	q := url.Values{"q": {query}}
	if err := c.getJSON(ctx, "/latest/dex/search", q, "Failed to search pairs", &resp); err != nil {
		return nil, err
	}
	if resp.Pairs == nil {
		return []TradingPair{}, nil
	}
	return resp.Pairs, nil
}

// TokenPairs returns every pair referencing the token address, across all
// chains the upstream indexes it on.
func (c *Client) TokenPairs(ctx context.Context, address string) ([]TradingPair, error) {
	var resp pairsResponse
	path := "/latest/dex/tokens/" + url.PathEscape(address)
	if err := c.getJSON(ctx, path, nil, "Failed to fetch token pairs", &resp); err != nil {
		return nil, err
	}
	if resp.Pairs == nil {
		return []TradingPair{}, nil
	}
	return resp.Pairs, nil
}

// Pair looks up exactly one pair by its pair address.
func (c *Client) Pair(ctx context.Context, pairAddress string) (*TradingPair, error) {
	var resp pairsResponse
	path := "/latest/dex/pairs/" + url.PathEscape(pairAddress)
	if err := c.getJSON(ctx, path, nil, "Failed to fetch pair", &resp); err != nil {
		return nil, err
	}
	if len(resp.Pairs) > 0 {
		return &resp.Pairs[0], nil
	}
	if resp.Pair != nil {
		return resp.Pair, nil
	}
	return nil, ErrPairNotFound
}

// MultipleTokens fetches pair data for up to MaxBatchAddresses tokens on one
// chain in a single call. Oversized batches fail before any request goes out.
func (c *Client) MultipleTokens(ctx context.Context, chain string, addresses []string) ([]TradingPair, error) {
	if len(addresses) > MaxBatchAddresses {
		return nil, ErrTooManyAddresses
	}

	escaped := make([]string, len(addresses))
	for i, addr := range addresses {
		escaped[i] = url.PathEscape(addr)
	}

	var pairs []TradingPair
	path := fmt.Sprintf("/tokens/v1/%s/%s", url.PathEscape(chain), strings.Join(escaped, ","))
	if err := c.getJSON(ctx, path, nil, "Failed to fetch token data", &pairs); err != nil {
		return nil, err
	}
	if pairs == nil {
		pairs = []TradingPair{}
	}
	return pairs, nil
}

// LatestTokenProfiles returns the most recent token profile listings.
func (c *Client) LatestTokenProfiles(ctx context.Context) ([]TokenProfile, error) {
	body, err := c.get(ctx, "/token-profiles/latest/v1", nil, "Failed to fetch token profiles")
	if err != nil {
		return nil, err
	}
	profiles, err := decodeList[TokenProfile](body)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch token profiles: %w", err)
	}
	return profiles, nil
}

// LatestBoostedTokens returns the most recently boosted tokens.
func (c *Client) LatestBoostedTokens(ctx context.Context) ([]BoostedToken, error) {
	body, err := c.get(ctx, "/token-boosts/latest/v1", nil, "Failed to fetch boosted tokens")
	if err != nil {
		return nil, err
	}
	boosts, err := decodeList[BoostedToken](body)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch boosted tokens: %w", err)
	}
	return boosts, nil
}

// TopBoostedTokens returns the tokens with the largest cumulative boosts.
func (c *Client) TopBoostedTokens(ctx context.Context) ([]BoostedToken, error) {
	body, err := c.get(ctx, "/token-boosts/top/v1", nil, "Failed to fetch top boosted tokens")
	if err != nil {
		return nil, err
	}
	boosts, err := decodeList[BoostedToken](body)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch top boosted tokens: %w", err)
	}
	return boosts, nil
}

// OrderStatus returns the purchase-order records for a token.
func (c *Client) OrderStatus(ctx context.Context, chain, address string) ([]Order, error) {
	var orders []Order
	path := fmt.Sprintf("/orders/v1/%s/%s", url.PathEscape(chain), url.PathEscape(address))
	if err := c.getJSON(ctx, path, nil, "Failed to check order status", &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

// TokenPairsByChain is the chain-scoped pair lookup for one token.
func (c *Client) TokenPairsByChain(ctx context.Context, chain, address string) ([]TradingPair, error) {
	var pairs []TradingPair
	path := fmt.Sprintf("/token-pairs/v1/%s/%s", url.PathEscape(chain), url.PathEscape(address))
	if err := c.getJSON(ctx, path, nil, "Failed to fetch token pairs", &pairs); err != nil {
		return nil, err
	}
	if pairs == nil {
		pairs = []TradingPair{}
	}
	return pairs, nil
}

// TokenProfile finds one token's profile by address. The upstream has no
// per-token profile endpoint, so this scans the latest-profiles listing and
// cannot see profiles that have aged out of that window.
func (c *Client) TokenProfile(ctx context.Context, address string) (*TokenProfile, error) {
	profiles, err := c.LatestTokenProfiles(ctx)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if strings.EqualFold(profiles[i].TokenAddress, address) {
			return &profiles[i], nil
		}
	}
	return nil, ErrProfileNotFound
}

// TrendingOpts tunes Trending. Timeframe is a display hint carried through
// to callers; the upstream has no trending-by-window data to apply it to.
type TrendingOpts struct {
	Timeframe string
	Limit     int
}

// Trending synthesizes a trending list: DexScreener has no native trending
// endpoint, so the currently-boosted tokens stand in for it and each one is
// resolved to its first pair. The order is the boost listing's order, not a
// volume or price ranking, and tokens whose pair lookup fails are dropped.
func (c *Client) Trending(ctx context.Context, opts TrendingOpts) ([]TradingPair, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	boosted, err := c.LatestBoostedTokens(ctx)
	if err != nil {
		return nil, err
	}
	if len(boosted) > limit {
		boosted = boosted[:limit]
	}

	addresses := make([]string, len(boosted))
	for i, b := range boosted {
		addresses[i] = b.TokenAddress
	}

	return c.firstPairEach(ctx, addresses, false)
}

// NewPairsOpts tunes NewPairs.
type NewPairsOpts struct {
	Chain string
	Limit int
}

// NewPairs synthesizes a new-pairs list from the latest token profiles,
// which act as a proxy signal for recently registered tokens. Every returned
// pair carries the "new" label, but the upstream gives no guarantee the pair
// was actually created recently.
func (c *Client) NewPairs(ctx context.Context, opts NewPairsOpts) ([]TradingPair, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultNewPairsLimit
	}

	profiles, err := c.LatestTokenProfiles(ctx)
	if err != nil {
		return nil, err
	}

	if opts.Chain != "" {
		filtered := profiles[:0]
		for _, p := range profiles {
			if strings.EqualFold(p.ChainID, opts.Chain) {
				filtered = append(filtered, p)
			}
		}
		profiles = filtered
	}
	if len(profiles) > limit {
		profiles = profiles[:limit]
	}

	addresses := make([]string, len(profiles))
	for i, p := range profiles {
		addresses[i] = p.TokenAddress
	}

	return c.firstPairEach(ctx, addresses, true)
}

// firstPairEach resolves each token address to its first pair concurrently,
// keeping the input order and dropping addresses whose lookup failed or
// returned nothing. markNew appends the "new" label where it is missing.
func (c *Client) firstPairEach(ctx context.Context, addresses []string, markNew bool) ([]TradingPair, error) {
	if len(addresses) == 0 {
		return []TradingPair{}, nil
	}

	runner := fanout.NewRunner[*TradingPair]().SetMaxConcurrent(lookupConcurrency)
	for _, addr := range addresses {
		runner.AddJob(func(int) (*TradingPair, error) {
			pairs, err := c.TokenPairs(ctx, addr)
			if err != nil {
				return nil, err
			}
			if len(pairs) == 0 {
				return nil, ErrPairNotFound
			}
			return &pairs[0], nil
		})
	}

	results, errs, err := runner.Run(ctx)
	if err != nil {
		return nil, err
	}

	pairs := make([]TradingPair, 0, len(results))
	for i, p := range results {
		if errs[i] != nil {
			c.logger.Debugf("[dexscreener] dropping %s: %v", addresses[i], errs[i])
			continue
		}
		if markNew && !p.HasLabel(NewPairLabel) {
			p.Labels = append(p.Labels, NewPairLabel)
		}
		pairs = append(pairs, *p)
	}
	return pairs, nil
}

// ChainPairsOpts tunes PairsByChain.
type ChainPairsOpts struct {
	SortBy string
	Limit  int
}

// PairsByChain lists pairs on one chain, sorted descending by the requested
// metric. The upstream has no chain-listing endpoint, so this searches with
// the chain name as the query and keeps only exact chain matches.
func (c *Client) PairsByChain(ctx context.Context, chain string, opts ChainPairsOpts) ([]TradingPair, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultChainPairsLimit
	}

	results, err := c.Search(ctx, chain)
	if err != nil {
		return nil, err
	}

	pairs := make([]TradingPair, 0, len(results))
	for _, p := range results {
		if strings.EqualFold(p.ChainID, chain) {
			pairs = append(pairs, p)
		}
	}

	metric := chainSortMetric(opts.SortBy)
	sort.SliceStable(pairs, func(i, j int) bool {
		return metric(&pairs[i]) > metric(&pairs[j])
	})

	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs, nil
}

// chainSortMetric maps a sort key to the pair metric it ranks by.
// Unknown keys fall back to 24h volume.
func chainSortMetric(sortBy string) func(*TradingPair) float64 {
	switch sortBy {
	case SortByLiquidity:
		return func(p *TradingPair) float64 {
			if p.Liquidity == nil {
				return 0
			}
			return p.Liquidity.USD
		}
	case SortByPriceChange:
		return func(p *TradingPair) float64 { return p.PriceChange.H24 }
	case SortByTxns:
		return func(p *TradingPair) float64 { return float64(p.Txns.H24.Total()) }
	default:
		return func(p *TradingPair) float64 { return p.Volume.H24 }
	}
}
