package actions

import (
	"context"
	"fmt"
	"strings"
)

const searchDisplayLimit = 5

func (s *set) search() Action {
	return Action{
		Name:        "search",
		Description: "Search DexScreener pairs by token name or symbol",
		Examples: []string{
			"Search for PEPE",
			"find WETH/USDC on dexscreener",
			"look up dogwifhat",
		},
		Match:  matchSearch,
		Handle: s.handleSearch,
	}
}

func matchSearch(lowered string) bool {
	return containsAny(lowered, "search", "find", "look for", "look up")
}

func (s *set) handleSearch(ctx context.Context, text string) Reply {
	query := extractSearchQuery(text)
	if query == "" {
		return Reply{Text: `What would you like to search for? Try something like "search for PEPE".`}
	}

	pairs, err := s.dex.Search(ctx, query)
	if err != nil {
		return Reply{Text: fmt.Sprintf("Search failed: %v", err)}
	}
	if len(pairs) == 0 {
		return Reply{Text: fmt.Sprintf("No pairs found for %q.", query)}
	}

	shown := pairs
	if len(shown) > searchDisplayLimit {
		shown = shown[:searchDisplayLimit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Search Results for %q\n\n", query))
	for i, p := range shown {
		sb.WriteString(fmt.Sprintf("%d. %s/%s (%s)\n", i+1, p.BaseToken.Symbol, p.QuoteToken.Symbol, p.ChainID))
		sb.WriteString(fmt.Sprintf("   Price: $%s\n", formatPairPrice(&p)))
		sb.WriteString(fmt.Sprintf("   24h Volume: %s\n", formatUSD(p.Volume.H24)))
		if p.Liquidity != nil {
			sb.WriteString(fmt.Sprintf("   Liquidity: %s\n", formatUSD(p.Liquidity.USD)))
		}
		sb.WriteString("\n")
	}

	return Reply{Text: strings.TrimRight(sb.String(), "\n"), Data: pairs}
}
