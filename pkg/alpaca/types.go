package alpaca

import (
	"fmt"
	"strconv"
	"time"
)

// OrderSide is the direction of an order
type OrderSide string

const (
	SideBuy  OrderSide = "buy"
	SideSell OrderSide = "sell"
)

// OrderType is the execution style of an order
type OrderType string

const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
)

// Quote is a real-time quote for a symbol
type Quote struct {
	Symbol    string    `json:"symbol"`
	BidPrice  float64   `json:"bidPrice"`
	BidSize   int       `json:"bidSize"`
	AskPrice  float64   `json:"askPrice"`
	AskSize   int       `json:"askSize"`
	LastPrice float64   `json:"lastPrice"`
	LastSize  int       `json:"lastSize"`
	Timestamp time.Time `json:"timestamp"`
}

// Spread returns the bid-ask spread
func (q *Quote) Spread() float64 {
	return q.AskPrice - q.BidPrice
}

// MidPrice returns the mid-point between bid and ask
func (q *Quote) MidPrice() float64 {
	return (q.BidPrice + q.AskPrice) / 2
}

// Order is a placed order and its current state
type Order struct {
	ID             string    `json:"id"`
	Symbol         string    `json:"symbol"`
	Side           OrderSide `json:"side"`
	Notional       float64   `json:"notional"`
	Type           OrderType `json:"type"`
	Status         string    `json:"status"`
	FilledQty      float64   `json:"filledQty,omitempty"`
	FilledAvgPrice float64   `json:"filledAvgPrice,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// IsFilled reports whether the order fully filled
func (o *Order) IsFilled() bool {
	return o.Status == "filled"
}

// IsTerminal reports whether the order can make no further progress
func (o *Order) IsTerminal() bool {
	switch o.Status {
	case "filled", "canceled", "expired", "rejected", "done_for_day":
		return true
	}
	return false
}

// Summary returns a human-readable order summary
func (o *Order) Summary() string {
	s := fmt.Sprintf("ORDER %s\n\nOrder ID: %s\nSymbol: %s\nSide: %s\nNotional: $%.2f\nType: %s\n",
		o.Status, o.ID, o.Symbol, o.Side, o.Notional, o.Type)
	if o.FilledQty > 0 && o.FilledAvgPrice > 0 {
		s += fmt.Sprintf("\nFilled: %.4f shares @ $%.2f\nTotal: $%.2f\n",
			o.FilledQty, o.FilledAvgPrice, o.FilledQty*o.FilledAvgPrice)
	}
	return s
}

// PlaceOrderParams describes an order to place. Notional is the USD amount;
// Alpaca handles the fractional shares.
type PlaceOrderParams struct {
	Symbol     string
	Side       OrderSide
	Notional   float64
	Type       OrderType // defaults to market
	LimitPrice float64   // required for limit orders
}

// Account is the trading account state, amounts in dollars
type Account struct {
	ID             string  `json:"id"`
	Status         string  `json:"status"`
	Currency       string  `json:"currency"`
	Cash           float64 `json:"cash"`
	BuyingPower    float64 `json:"buyingPower"`
	PortfolioValue float64 `json:"portfolioValue"`
}

// TradeProposal is a proposed trade awaiting user confirmation
type TradeProposal struct {
	Symbol          string    `json:"symbol"`
	Side            OrderSide `json:"side"`
	USDAmount       float64   `json:"usdAmount"`
	OrderType       OrderType `json:"orderType"`
	LimitPrice      float64   `json:"limitPrice,omitempty"`
	CurrentPrice    float64   `json:"currentPrice"`
	EstimatedShares float64   `json:"estimatedShares"`
	Rationale       string    `json:"rationale,omitempty"`
	AvailableFunds  float64   `json:"availableFunds"`
}

// Summary returns a human-readable trade summary for confirmation
func (p *TradeProposal) Summary() string {
	orderDesc := fmt.Sprintf("%s order", p.OrderType)
	if p.OrderType == OrderTypeLimit {
		orderDesc += fmt.Sprintf(" at $%.2f", p.LimitPrice)
	}

	return fmt.Sprintf(`TRADE PROPOSAL

Symbol: %s
Action: %s
Amount: $%.2f
Order Type: %s
Current Price: $%.2f
Estimated Shares: %.4f

Available Funds: $%.2f
After Trade: $%.2f

Rationale: %s
`, p.Symbol, p.Side, p.USDAmount, orderDesc, p.CurrentPrice, p.EstimatedShares,
		p.AvailableFunds, p.AvailableFunds-p.USDAmount, p.Rationale)
}

// Wire types. Alpaca returns monetary fields as JSON strings.

type apiQuoteEnvelope struct {
	Symbol string   `json:"symbol"`
	Quote  apiQuote `json:"quote"`
}

type apiQuote struct {
	BidPrice  float64   `json:"bp"`
	BidSize   int       `json:"bs"`
	AskPrice  float64   `json:"ap"`
	AskSize   int       `json:"as"`
	LastPrice float64   `json:"p"`
	LastSize  int       `json:"s"`
	Timestamp time.Time `json:"t"`
}

type apiOrder struct {
	ID             string    `json:"id"`
	Symbol         string    `json:"symbol"`
	Side           string    `json:"side"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	Notional       string    `json:"notional"`
	FilledQty      string    `json:"filled_qty"`
	FilledAvgPrice string    `json:"filled_avg_price"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type apiAccount struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	Currency       string `json:"currency"`
	Cash           string `json:"cash"`
	BuyingPower    string `json:"buying_power"`
	PortfolioValue string `json:"portfolio_value"`
}

// parseAmount parses Alpaca's string-encoded numbers, treating empty and
// null-ish values as zero.
func parseAmount(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
