package dexscreener

// TradingPair is a snapshot of one DEX trading pair as reported by the API.
// The four stat windows (m5/h1/h6/h24) are value structs, so a window the
// upstream omits decodes to zeros instead of going missing.
type TradingPair struct {
	ChainID       string     `json:"chainId"`
	DexID         string     `json:"dexId"`
	URL           string     `json:"url"`
	PairAddress   string     `json:"pairAddress"`
	Labels        []string   `json:"labels,omitempty"`
	BaseToken     Token      `json:"baseToken"`
	QuoteToken    Token      `json:"quoteToken"`
	PriceNative   string     `json:"priceNative"`
	PriceUSD      string     `json:"priceUsd"`
	Txns          PairTxns   `json:"txns"`
	Volume        Windows    `json:"volume"`
	PriceChange   Windows    `json:"priceChange"`
	Liquidity     *Liquidity `json:"liquidity,omitempty"`
	FDV           float64    `json:"fdv,omitempty"`
	MarketCap     float64    `json:"marketCap,omitempty"`
	PairCreatedAt int64      `json:"pairCreatedAt,omitempty"`
	Info          *PairInfo  `json:"info,omitempty"`
}

// Token describes one side of a pair.
type Token struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals,omitempty"`
}

// PairTxns holds buy/sell counts per stat window.
type PairTxns struct {
	M5  TxnWindow `json:"m5"`
	H1  TxnWindow `json:"h1"`
	H6  TxnWindow `json:"h6"`
	H24 TxnWindow `json:"h24"`
}

// TxnWindow is the buy and sell count inside one window.
type TxnWindow struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

// Total returns buys plus sells.
func (w TxnWindow) Total() int { return w.Buys + w.Sells }

// Windows holds a float metric (volume or price change) per stat window.
type Windows struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// Liquidity is the value locked in a pair's pool.
type Liquidity struct {
	USD   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

// PairInfo is the optional descriptive metadata attached to a pair.
type PairInfo struct {
	ImageURL string    `json:"imageUrl,omitempty"`
	Header   string    `json:"header,omitempty"`
	Websites []Website `json:"websites,omitempty"`
	Socials  []Social  `json:"socials,omitempty"`
}

type Website struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Social struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// TokenProfile is token-level metadata independent of any pair.
type TokenProfile struct {
	URL          string `json:"url"`
	ChainID      string `json:"chainId"`
	TokenAddress string `json:"tokenAddress"`
	Icon         string `json:"icon,omitempty"`
	Header       string `json:"header,omitempty"`
	Description  string `json:"description,omitempty"`
	Links        []Link `json:"links,omitempty"`
}

// BoostedToken is a token that purchased promoted visibility.
type BoostedToken struct {
	URL          string  `json:"url"`
	ChainID      string  `json:"chainId"`
	TokenAddress string  `json:"tokenAddress"`
	Amount       float64 `json:"amount"`
	TotalAmount  float64 `json:"totalAmount"`
	Icon         string  `json:"icon,omitempty"`
	Header       string  `json:"header,omitempty"`
	Description  string  `json:"description,omitempty"`
	Links        []Link  `json:"links,omitempty"`
}

// Link is a labelled reference URL on a profile or boost entry.
type Link struct {
	Type  string `json:"type,omitempty"`
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

// Order is one purchase-order record for a profile/boost product.
type Order struct {
	Type             string `json:"type"`
	Status           string `json:"status"`
	PaymentTimestamp int64  `json:"paymentTimestamp"`
}

// HasLabel reports whether the pair carries the given label.
func (p *TradingPair) HasLabel(label string) bool {
	for _, l := range p.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// pairsResponse is the envelope the /latest/dex endpoints wrap pairs in.
// Single-pair lookups fill Pair, the rest fill Pairs.
type pairsResponse struct {
	SchemaVersion string        `json:"schemaVersion"`
	Pair          *TradingPair  `json:"pair"`
	Pairs         []TradingPair `json:"pairs"`
}
