package alpaca

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// ProposalParams describes the trade to propose
type ProposalParams struct {
	Symbol         string
	Side           OrderSide
	USDAmount      float64
	OrderType      OrderType // defaults to market
	LimitPrice     float64
	Rationale      string
	AvailableFunds float64
}

// NewTradeProposal builds a trade proposal for user confirmation from a live
// quote, estimating the share count at the current price.
func (c *Client) NewTradeProposal(ctx context.Context, params *ProposalParams) (*TradeProposal, error) {
	if params == nil {
		return nil, &Error{Code: "missing_params", Message: "proposal parameters are required"}
	}
	if params.USDAmount <= 0 {
		return nil, &Error{Code: "invalid_amount", Message: "USD amount must be greater than zero"}
	}

	orderType := params.OrderType
	if orderType == "" {
		orderType = OrderTypeMarket
	}

	side := OrderSide(strings.ToLower(string(params.Side)))
	if side != SideBuy && side != SideSell {
		return nil, &Error{Code: "invalid_side", Message: "side must be buy or sell"}
	}

	quote, err := c.MarketData.GetLatestQuote(ctx, params.Symbol)
	if err != nil {
		return nil, errors.Wrap(err, "failed to quote proposal symbol")
	}

	// Buys execute near the ask, sells near the bid. Limit orders use the
	// limit price when given.
	var estimatedPrice float64
	if orderType == OrderTypeMarket {
		if side == SideBuy {
			estimatedPrice = quote.AskPrice
		} else {
			estimatedPrice = quote.BidPrice
		}
	} else {
		estimatedPrice = params.LimitPrice
		if estimatedPrice == 0 {
			estimatedPrice = quote.MidPrice()
		}
	}

	if estimatedPrice <= 0 {
		return nil, &Error{
			Code:    "no_price",
			Message: "no usable price to estimate shares",
		}
	}

	return &TradeProposal{
		Symbol:          quote.Symbol,
		Side:            side,
		USDAmount:       params.USDAmount,
		OrderType:       orderType,
		LimitPrice:      params.LimitPrice,
		CurrentPrice:    quote.LastPrice,
		EstimatedShares: params.USDAmount / estimatedPrice,
		Rationale:       params.Rationale,
		AvailableFunds:  params.AvailableFunds,
	}, nil
}
