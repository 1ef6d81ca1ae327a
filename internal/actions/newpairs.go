package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/navid-fn/dexscout/internal/dexscreener"
	"github.com/navid-fn/dexscout/utils"
)

func (s *set) newPairs() Action {
	return Action{
		Name:        "new-pairs",
		Description: "List newly surfaced pairs, approximated from fresh token profiles",
		Examples: []string{
			"show me new pairs",
			"5 latest pairs on solana",
			"any new tokens today?",
		},
		Match:  matchNewPairs,
		Handle: s.handleNewPairs,
	}
}

func matchNewPairs(lowered string) bool {
	return containsAny(lowered,
		"new pair", "newest pair", "latest pair", "recent pair",
		"new token", "new listing", "newly listed",
	)
}

func (s *set) handleNewPairs(ctx context.Context, text string) Reply {
	lowered := strings.ToLower(text)

	chain := chainFromText(lowered)
	limit := extractCount(lowered)
	if limit <= 0 {
		limit = dexscreener.DefaultNewPairsLimit
	}
	s.log.Debugf("new-pairs action: chain=%q limit=%d", chain, limit)

	pairs, err := s.dex.NewPairs(ctx, dexscreener.NewPairsOpts{Chain: chain, Limit: limit})
	if err != nil {
		return Reply{Text: fmt.Sprintf("Failed to fetch new pairs: %v", err)}
	}
	if len(pairs) == 0 {
		if chain != "" {
			return Reply{Text: fmt.Sprintf("No new pairs found on %s right now.", chain)}
		}
		return Reply{Text: "No new pairs found right now."}
	}

	var sb strings.Builder
	if chain != "" {
		sb.WriteString(fmt.Sprintf("New Trading Pairs on %s\n\n", chain))
	} else {
		sb.WriteString("New Trading Pairs\n\n")
	}
	for i, p := range pairs {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, pairTitle(&p)))
		sb.WriteString(fmt.Sprintf("   Price: $%s\n", formatPairPrice(&p)))
		if p.Liquidity != nil {
			sb.WriteString(fmt.Sprintf("   Liquidity: %s\n", formatUSD(p.Liquidity.USD)))
		}
		if p.PairCreatedAt > 0 {
			sb.WriteString(fmt.Sprintf("   Created: %s\n", utils.TimeAgo(p.PairCreatedAt)))
		}
		sb.WriteString("\n")
	}

	return Reply{Text: strings.TrimRight(sb.String(), "\n"), Data: pairs}
}
