package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/navid-fn/dexscout/internal/dexscreener"
)

// apiStub fakes the DexScreener API and records every request path.
type apiStub struct {
	*httptest.Server

	mu    sync.Mutex
	paths []string
}

func newAPIStub(handler http.HandlerFunc) *apiStub {
	stub := &apiStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.paths = append(stub.paths, r.URL.Path)
		stub.mu.Unlock()
		handler(w, r)
	}))
	return stub
}

func (a *apiStub) requestCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.paths)
}

func (a *apiStub) countPathsWithPrefix(prefix string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	count := 0
	for _, p := range a.paths {
		if strings.HasPrefix(p, prefix) {
			count++
		}
	}
	return count
}

func (a *apiStub) sawPathSuffix(suffix string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range a.paths {
		if strings.HasSuffix(p, suffix) {
			return true
		}
	}
	return false
}

func newTestSet(stub *apiStub) *set {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	client := dexscreener.New(dexscreener.Config{
		BaseURL:            stub.URL,
		MinRequestInterval: time.Millisecond,
		HTTPClient:         stub.Client(),
	}, logger)
	return &set{dex: client, log: logger}
}

func stubPair(chain, base, quote string) dexscreener.TradingPair {
	return dexscreener.TradingPair{
		ChainID:     chain,
		DexID:       "uniswap",
		PairAddress: "0x" + strings.Repeat("1", 40),
		BaseToken:   dexscreener.Token{Address: "0x" + strings.Repeat("a", 40), Name: base, Symbol: base},
		QuoteToken:  dexscreener.Token{Symbol: quote},
		PriceUSD:    "0.00001234",
	}
}

func servePairs(w http.ResponseWriter, pairs ...dexscreener.TradingPair) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"schemaVersion": "1.0.0", "pairs": pairs})
}

func serveJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func hexAddress(digit byte) string {
	return "0x" + strings.Repeat(string(digit), 40)
}

func TestHandleSearch(t *testing.T) {
	stub := newAPIStub(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "PEPE" {
			t.Errorf("Expected query 'PEPE' with its case kept, got %q", q)
		}
		servePairs(w, stubPair("ethereum", "PEPE", "WETH"))
	})
	defer stub.Close()
	s := newTestSet(stub)

	reply := s.handleSearch(context.Background(), "Search for PEPE")

	if !strings.Contains(reply.Text, `Search Results for "PEPE"`) {
		t.Errorf("Expected the search headline, got:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "PEPE/WETH") {
		t.Errorf("Expected the pair line, got:\n%s", reply.Text)
	}
	if reply.Data == nil {
		t.Error("Expected the raw pairs in Data")
	}
}

func TestHandleSearchWithoutQuery(t *testing.T) {
	stub := newAPIStub(func(w http.ResponseWriter, r *http.Request) {
		servePairs(w)
	})
	defer stub.Close()
	s := newTestSet(stub)

	reply := s.handleSearch(context.Background(), "search")

	if !strings.Contains(reply.Text, "What would you like to search for?") {
		t.Errorf("Expected guidance, got %q", reply.Text)
	}
	if stub.requestCount() != 0 {
		t.Errorf("Expected no network calls, got %d", stub.requestCount())
	}
}

func TestHandleSearchNoResults(t *testing.T) {
	stub := newAPIStub(func(w http.ResponseWriter, r *http.Request) {
		servePairs(w)
	})
	defer stub.Close()
	s := newTestSet(stub)

	reply := s.handleSearch(context.Background(), "search for NOPE")

	if reply.Text != `No pairs found for "NOPE".` {
		t.Errorf("Expected the empty-result message, got %q", reply.Text)
	}
}

func TestHandleTrending(t *testing.T) {
	stub := newAPIStub(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/token-boosts/latest/v1":
			boosts := make([]dexscreener.BoostedToken, 6)
			for i := range boosts {
				boosts[i] = dexscreener.BoostedToken{
					ChainID:      "ethereum",
					TokenAddress: hexAddress(byte('1' + i)),
					Amount:       float64(60 - i),
				}
			}
			serveJSON(w, boosts)
		case strings.HasPrefix(r.URL.Path, "/latest/dex/tokens/"):
			p := stubPair("ethereum", "TOK", "WETH")
			p.Volume.H6 = 250_000
			p.PriceChange.H6 = 12.5
			servePairs(w, p)
		default:
			http.NotFound(w, r)
		}
	})
	defer stub.Close()
	s := newTestSet(stub)

	reply := s.handleTrending(context.Background(), "top 5 hot tokens in the last 6h")

	if !strings.Contains(reply.Text, "Trending Tokens (6h)") {
		t.Errorf("Expected the 6h trending headline, got:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "6h Volume: $250.00K") {
		t.Errorf("Expected the 6h volume line, got:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "+12.50%") {
		t.Errorf("Expected the 6h change, got:\n%s", reply.Text)
	}
	if got := stub.countPathsWithPrefix("/latest/dex/tokens/"); got != 5 {
		t.Errorf("Expected 5 token lookups for a top-5 request, got %d", got)
	}
}

func TestHandleTrendingErrorBecomesReplyText(t *testing.T) {
	stub := newAPIStub(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer stub.Close()
	s := newTestSet(stub)

	reply := s.handleTrending(context.Background(), "show me trending tokens")

	if !strings.HasPrefix(reply.Text, "Failed to fetch trending tokens:") {
		t.Errorf("Expected the failure text, got %q", reply.Text)
	}
}

func TestHandleTokenInfoPicksDeepestLiquidity(t *testing.T) {
	address := "0x6982508145454Ce325dDbE47a25d4ec3d2311933"

	shallow := stubPair("ethereum", "Pepe", "WETH")
	shallow.BaseToken.Symbol = "PEPE"
	shallow.DexID = "sushiswap"
	shallow.Liquidity = &dexscreener.Liquidity{USD: 100_000}

	deep := stubPair("ethereum", "Pepe", "WETH")
	deep.BaseToken.Symbol = "PEPE"
	deep.DexID = "uniswap"
	deep.Liquidity = &dexscreener.Liquidity{USD: 900_000}
	deep.Volume.H24 = 5_000_000
	deep.PriceChange.H24 = -4.2
	deep.FDV = 420_000_000

	mid := stubPair("bsc", "Pepe", "WBNB")
	mid.BaseToken.Symbol = "PEPE"
	mid.DexID = "pancakeswap"
	mid.Liquidity = &dexscreener.Liquidity{USD: 500_000}

	stub := newAPIStub(func(w http.ResponseWriter, r *http.Request) {
		servePairs(w, shallow, deep, mid)
	})
	defer stub.Close()
	s := newTestSet(stub)

	reply := s.handleTokenInfo(context.Background(), "token info for "+address)

	if !strings.Contains(reply.Text, "Token Info: Pepe (PEPE)") {
		t.Errorf("Expected the token headline, got:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "24h Volume: $5.00M") {
		t.Errorf("Expected the deepest pair's volume in the header, got:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "24h Change: -4.20%") {
		t.Errorf("Expected the deepest pair's change, got:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "FDV: $420.00M") {
		t.Errorf("Expected the FDV line, got:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "Pairs:") {
		t.Errorf("Expected the pair list, got:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "pancakeswap") {
		t.Errorf("Expected all pairs listed, got:\n%s", reply.Text)
	}
}

func TestHandleTokenInfoNoPairs(t *testing.T) {
	address := "0x6982508145454Ce325dDbE47a25d4ec3d2311933"

	stub := newAPIStub(func(w http.ResponseWriter, r *http.Request) {
		servePairs(w)
	})
	defer stub.Close()
	s := newTestSet(stub)

	reply := s.handleTokenInfo(context.Background(), "price of "+address)

	if reply.Text != "No pairs found for token 0x6982...1933." {
		t.Errorf("Expected the shortened-address message, got %q", reply.Text)
	}
}

func TestHandleNewPairsScopedToChain(t *testing.T) {
	ethAddress := hexAddress('e')

	stub := newAPIStub(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/token-profiles/latest/v1":
			serveJSON(w, []dexscreener.TokenProfile{
				{ChainID: "solana", TokenAddress: hexAddress('1')},
				{ChainID: "ethereum", TokenAddress: ethAddress},
				{ChainID: "solana", TokenAddress: hexAddress('2')},
				{ChainID: "solana", TokenAddress: hexAddress('3')},
				{ChainID: "solana", TokenAddress: hexAddress('4')},
			})
		case strings.HasPrefix(r.URL.Path, "/latest/dex/tokens/"):
			p := stubPair("solana", "WIF", "USDC")
			p.PairCreatedAt = time.Now().Add(-2 * time.Hour).UnixMilli()
			servePairs(w, p)
		default:
			http.NotFound(w, r)
		}
	})
	defer stub.Close()
	s := newTestSet(stub)

	reply := s.handleNewPairs(context.Background(), "show me 3 new pairs on solana")

	if !strings.Contains(reply.Text, "New Trading Pairs on solana") {
		t.Errorf("Expected the chain-scoped headline, got:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "Created: 2h ago") {
		t.Errorf("Expected the pair age, got:\n%s", reply.Text)
	}
	if got := stub.countPathsWithPrefix("/latest/dex/tokens/"); got != 3 {
		t.Errorf("Expected 3 token lookups for a count of 3, got %d", got)
	}
	if stub.sawPathSuffix(ethAddress) {
		t.Error("Expected the ethereum profile to be filtered out before any lookup")
	}
}

func TestHandleChainPairsSortsAndTruncates(t *testing.T) {
	stub := newAPIStub(func(w http.ResponseWriter, r *http.Request) {
		pairs := make([]dexscreener.TradingPair, 0, 8)
		for i := 1; i <= 7; i++ {
			p := stubPair("bsc", fmt.Sprintf("S%d", i), "WBNB")
			p.PairAddress = fmt.Sprintf("p%d", i)
			p.Liquidity = &dexscreener.Liquidity{USD: float64(1_000_000 - i*100_000)}
			pairs = append(pairs, p)
		}
		distractor := stubPair("ethereum", "UNI", "WETH")
		distractor.Liquidity = &dexscreener.Liquidity{USD: 9_000_000}
		pairs = append(pairs, distractor)
		servePairs(w, pairs...)
	})
	defer stub.Close()
	s := newTestSet(stub)

	reply := s.handleChainPairs(context.Background(), "most liquid pairs on bsc")

	if !strings.Contains(reply.Text, "Top Pairs on bsc (by liquidity)") {
		t.Errorf("Expected the liquidity-sorted headline, got:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "1. S1/WBNB") {
		t.Errorf("Expected the deepest pair first, got:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "S5/WBNB") {
		t.Errorf("Expected five pairs shown, got:\n%s", reply.Text)
	}
	if strings.Contains(reply.Text, "S6/WBNB") {
		t.Errorf("Expected the display cut at five pairs, got:\n%s", reply.Text)
	}
	if strings.Contains(reply.Text, "UNI/WETH") {
		t.Errorf("Expected the ethereum pair to be filtered out, got:\n%s", reply.Text)
	}
}

func TestSortKeyFromText(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"most liquid pairs on bsc", dexscreener.SortByLiquidity},
		{"top gainers on solana", dexscreener.SortByPriceChange},
		{"biggest price change on base", dexscreener.SortByPriceChange},
		{"most active pairs on ethereum", dexscreener.SortByTxns},
		{"top pairs on ethereum", dexscreener.SortByVolume},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			if got := sortKeyFromText(tc.text); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestHandleBoosted(t *testing.T) {
	boosts := []dexscreener.BoostedToken{
		{ChainID: "solana", TokenAddress: hexAddress('a'), Amount: 50, TotalAmount: 120, Description: "A token"},
		{ChainID: "base", TokenAddress: hexAddress('b'), Amount: 30, TotalAmount: 30},
	}

	stub := newAPIStub(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token-boosts/top/v1", "/token-boosts/latest/v1":
			serveJSON(w, boosts)
		default:
			http.NotFound(w, r)
		}
	})
	defer stub.Close()
	s := newTestSet(stub)

	t.Run("Top phrasing hits the top listing", func(t *testing.T) {
		reply := s.handleBoosted(context.Background(), "top boosted tokens")
		if !strings.Contains(reply.Text, "Top Boosted Tokens") {
			t.Errorf("Expected the top headline, got:\n%s", reply.Text)
		}
		if stub.countPathsWithPrefix("/token-boosts/top/v1") != 1 {
			t.Error("Expected the top boosts endpoint to be called")
		}
		if !strings.Contains(reply.Text, "Boost: 50 (total 120)") {
			t.Errorf("Expected the boost amounts, got:\n%s", reply.Text)
		}
	})

	t.Run("Plain phrasing hits the latest listing", func(t *testing.T) {
		reply := s.handleBoosted(context.Background(), "show me boosted tokens")
		if !strings.Contains(reply.Text, "Latest Boosted Tokens") {
			t.Errorf("Expected the latest headline, got:\n%s", reply.Text)
		}
		if stub.countPathsWithPrefix("/token-boosts/latest/v1") != 1 {
			t.Error("Expected the latest boosts endpoint to be called")
		}
	})
}

func TestHandleProfiles(t *testing.T) {
	stub := newAPIStub(func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, []dexscreener.TokenProfile{
			{
				ChainID:      "ethereum",
				TokenAddress: "0x6982508145454Ce325dDbE47a25d4ec3d2311933",
				Description:  "The most memeable memecoin in existence.",
				Links:        []dexscreener.Link{{Type: "twitter"}, {URL: "https://example.com"}},
			},
		})
	})
	defer stub.Close()
	s := newTestSet(stub)

	reply := s.handleProfiles(context.Background(), "show me the latest token profiles")

	if !strings.Contains(reply.Text, "Latest Token Profiles") {
		t.Errorf("Expected the profiles headline, got:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "0x6982...1933 on ethereum") {
		t.Errorf("Expected the shortened address, got:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "Links: 2") {
		t.Errorf("Expected the link count, got:\n%s", reply.Text)
	}
}

func TestActionRouting(t *testing.T) {
	address := "0x6982508145454ce325ddbe47a25d4ec3d2311933"
	all := All(nil, logrus.New())

	tests := []struct {
		text string
		want string
	}{
		{"Search for PEPE", "search"},
		{"search for PEPE on solana", "search"},
		{"look up dogwifhat", "search"},
		{"token info for " + address, "token-info"},
		{"what's the price of " + address + "?", "token-info"},
		{"show me trending tokens", "trending"},
		{"top 5 hot tokens in the last 6h", "trending"},
		{"what's popular right now?", "trending"},
		{"show me new pairs", "new-pairs"},
		{"find new pairs on solana", "new-pairs"},
		{"any new tokens today?", "new-pairs"},
		{"top pairs on ethereum", "chain-pairs"},
		{"most liquid pairs on bsc", "chain-pairs"},
		{"show me boosted tokens", "boosted-tokens"},
		{"latest token profiles", "token-profiles"},
		{"hello there", ""},
		{"what time is it?", ""},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			lowered := strings.ToLower(tc.text)
			got := ""
			for _, action := range all {
				if action.Match(lowered) {
					got = action.Name
					break
				}
			}
			if got != tc.want {
				t.Errorf("Expected %q to route to %q, got %q", tc.text, tc.want, got)
			}
		})
	}
}
