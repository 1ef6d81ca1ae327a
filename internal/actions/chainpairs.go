package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/navid-fn/dexscout/internal/dexscreener"
)

const (
	chainPairsFetchLimit   = 10
	chainPairsDisplayLimit = 5
)

func (s *set) chainPairs() Action {
	return Action{
		Name:        "chain-pairs",
		Description: "List top pairs on a specific chain, sorted by a chosen metric",
		Examples: []string{
			"top pairs on ethereum",
			"most liquid pairs on bsc",
			"best gainers on solana",
		},
		Match:  matchChainPairs,
		Handle: s.handleChainPairs,
	}
}

// matchChainPairs needs a supported chain name plus listing vocabulary, so
// that "search for PEPE on solana" stays with the search action.
func matchChainPairs(lowered string) bool {
	if extractChain(lowered) == "" {
		return false
	}
	return containsAny(lowered, "pair", "token", "market", "top", "best", "gainer")
}

// sortKeyFromText derives the client sort key from keyword presence.
func sortKeyFromText(lowered string) string {
	switch {
	case strings.Contains(lowered, "liquid"):
		return dexscreener.SortByLiquidity
	case containsAny(lowered, "gain", "change"):
		return dexscreener.SortByPriceChange
	case containsAny(lowered, "active", "trades"):
		return dexscreener.SortByTxns
	default:
		return dexscreener.SortByVolume
	}
}

func (s *set) handleChainPairs(ctx context.Context, text string) Reply {
	lowered := strings.ToLower(text)

	chain := extractChain(lowered)
	if chain == "" {
		return Reply{Text: "Which chain? Try something like \"top pairs on ethereum\"."}
	}
	sortBy := sortKeyFromText(lowered)

	pairs, err := s.dex.PairsByChain(ctx, chain, dexscreener.ChainPairsOpts{
		SortBy: sortBy,
		Limit:  chainPairsFetchLimit,
	})
	if err != nil {
		return Reply{Text: fmt.Sprintf("Failed to fetch pairs on %s: %v", chain, err)}
	}
	if len(pairs) == 0 {
		return Reply{Text: fmt.Sprintf("No pairs found on %s.", chain)}
	}

	shown := pairs
	if len(shown) > chainPairsDisplayLimit {
		shown = shown[:chainPairsDisplayLimit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Top Pairs on %s (by %s)\n\n", chain, sortBy))
	for i, p := range shown {
		sb.WriteString(fmt.Sprintf("%d. %s/%s on %s\n", i+1, p.BaseToken.Symbol, p.QuoteToken.Symbol, p.DexID))
		sb.WriteString(fmt.Sprintf("   Price: $%s (%s)\n", formatPairPrice(&p), formatChange(p.PriceChange.H24)))
		sb.WriteString(fmt.Sprintf("   24h Volume: %s\n", formatUSD(p.Volume.H24)))
		if p.Liquidity != nil {
			sb.WriteString(fmt.Sprintf("   Liquidity: %s\n", formatUSD(p.Liquidity.USD)))
		}
		sb.WriteString(fmt.Sprintf("   24h Txns: %d\n", p.Txns.H24.Total()))
		sb.WriteString("\n")
	}

	return Reply{Text: strings.TrimRight(sb.String(), "\n"), Data: pairs}
}
