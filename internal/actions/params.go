package actions

import (
	"regexp"
	"strconv"
	"strings"
)

// Chains the chain-pairs action recognizes. Matching is word-bounded so
// "base" does not fire on "database".
var supportedChains = []string{
	"ethereum", "bsc", "polygon", "arbitrum",
	"optimism", "base", "avalanche", "solana",
}

var (
	reAddress       = regexp.MustCompile(`0x[a-fA-F0-9]{40}`)
	reSearchQuery   = regexp.MustCompile(`(?i)(?:search|find|look\s+(?:for|up))(?:\s+for)?\s+(.+)`)
	reOnDexscreener = regexp.MustCompile(`(?i)\s+on\s+dexscreener[?.!]*\s*$`)
	reTimeframe     = regexp.MustCompile(`\b(1h|6h|24h)\b`)
	reTopCount      = regexp.MustCompile(`\btop\s+(\d+)\b`)
	reCountBefore   = regexp.MustCompile(`\b(\d+)\s+(?:new|newest|latest|recent|trending|hot)\b`)
	reOnChain       = regexp.MustCompile(`\bon\s+([a-z0-9]+)\b`)
	reKnownChain    = regexp.MustCompile(`\b(` + strings.Join(supportedChains, "|") + `)\b`)
)

func containsAny(text string, fragments ...string) bool {
	for _, f := range fragments {
		if strings.Contains(text, f) {
			return true
		}
	}
	return false
}

// extractAddress returns the first 0x-prefixed 40-hex-digit address in the
// text, or "" when there is none.
func extractAddress(text string) string {
	return reAddress.FindString(text)
}

// extractSearchQuery pulls the query out of phrasings like "search for X",
// "find X" or "look up X", dropping a trailing "on dexscreener" clause.
func extractSearchQuery(text string) string {
	m := reSearchQuery.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	query := strings.TrimSpace(m[1])
	query = reOnDexscreener.ReplaceAllString(query, "")
	query = strings.Trim(query, ` "'?.!`)
	return strings.TrimSpace(query)
}

// extractTimeframe returns "1h", "6h" or "24h" when the text names one.
func extractTimeframe(lowered string) string {
	m := reTimeframe.FindStringSubmatch(lowered)
	if m == nil {
		return ""
	}
	return m[1]
}

// extractCount reads "top N" or "N new/latest/hot/trending" phrasings.
// Zero means no count was given.
func extractCount(lowered string) int {
	m := reTopCount.FindStringSubmatch(lowered)
	if m == nil {
		m = reCountBefore.FindStringSubmatch(lowered)
	}
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// extractChain finds a supported chain name anywhere in the text.
func extractChain(lowered string) string {
	m := reKnownChain.FindStringSubmatch(lowered)
	if m == nil {
		return ""
	}
	return m[1]
}

// Words an "on <word>" clause can grab that are never chain names.
var notChains = map[string]bool{
	"dexscreener": true,
	"dex":         true,
	"the":         true,
	"a":           true,
	"an":          true,
}

// chainFromText is extractChain plus a looser "on <word>" fallback for the
// new-pairs action, where any chain string the upstream knows is acceptable.
func chainFromText(lowered string) string {
	if chain := extractChain(lowered); chain != "" {
		return chain
	}
	m := reOnChain.FindStringSubmatch(lowered)
	if m == nil || notChains[m[1]] {
		return ""
	}
	return m[1]
}
