package alpaca

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
)

const (
	ordersPath = "/v2/orders"

	// defaultFillPollInterval is how often WaitForFill checks order status
	defaultFillPollInterval = 2 * time.Second

	// defaultFillTimeout bounds WaitForFill when the caller passes none
	defaultFillTimeout = 30 * time.Second
)

// orderService implements the OrderService interface
type orderService struct {
	client *Client
}

// Place places a fractional order by USD notional amount
func (s *orderService) Place(ctx context.Context, params *PlaceOrderParams) (*Order, error) {
	if params == nil {
		return nil, &Error{Code: "missing_params", Message: "order parameters are required"}
	}

	symbol := strings.ToUpper(strings.TrimSpace(params.Symbol))
	if symbol == "" {
		return nil, &Error{Code: "missing_symbol", Message: "a stock symbol is required"}
	}

	side := OrderSide(strings.ToLower(string(params.Side)))
	if side != SideBuy && side != SideSell {
		return nil, &Error{Code: "invalid_side", Message: "side must be buy or sell"}
	}

	if params.Notional <= 0 {
		return nil, &Error{Code: "invalid_notional", Message: "notional amount must be greater than zero"}
	}

	orderType := params.Type
	if orderType == "" {
		orderType = OrderTypeMarket
	}
	if orderType == OrderTypeLimit && params.LimitPrice <= 0 {
		return nil, &Error{Code: "missing_limit_price", Message: "limit_price required for limit orders"}
	}

	body := map[string]interface{}{
		"symbol":        symbol,
		"side":          string(side),
		"type":          string(orderType),
		"time_in_force": "day",
		"notional":      strconv.FormatFloat(params.Notional, 'f', -1, 64),
	}
	if orderType == OrderTypeLimit {
		body["limit_price"] = strconv.FormatFloat(params.LimitPrice, 'f', -1, 64)
	}

	if l := s.client.logger(); l != nil {
		l.Info("Placing order", "symbol", symbol, "side", side, "notional", params.Notional, "type", orderType)
	}

	var raw apiOrder
	if err := s.client.do(ctx, s.client.trading, http.MethodPost, ordersPath, nil, body, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to place order")
	}

	order := convertOrder(&raw)
	if order.Notional == 0 {
		order.Notional = params.Notional
	}
	return order, nil
}

// Get retrieves an order by ID
func (s *orderService) Get(ctx context.Context, orderID string) (*Order, error) {
	var raw apiOrder
	if err := s.client.do(ctx, s.client.trading, http.MethodGet, ordersPath+"/"+orderID, nil, nil, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to get order")
	}
	return convertOrder(&raw), nil
}

// WaitForFill polls an order until it fills. It returns the order's final
// state along with ErrOrderNotFilled when the order lands in a different
// terminal state or the timeout passes first.
func (s *orderService) WaitForFill(ctx context.Context, orderID string, timeout time.Duration) (*Order, error) {
	if timeout <= 0 {
		timeout = defaultFillTimeout
	}

	interval := s.client.fillPollInterval
	attempts := uint(timeout / interval)
	if attempts < 1 {
		attempts = 1
	}

	var order *Order
	err := retry.Do(
		func() error {
			var getErr error
			order, getErr = s.Get(ctx, orderID)
			if getErr != nil {
				return retry.Unrecoverable(getErr)
			}
			if order.IsFilled() {
				return nil
			}
			notFilled := errors.Wrapf(ErrOrderNotFilled, "order %s is %s", orderID, order.Status)
			if order.IsTerminal() {
				return retry.Unrecoverable(notFilled)
			}
			return notFilled
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(interval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return order, err
	}

	if l := s.client.logger(); l != nil {
		l.Info("Order filled", "order", orderID, "qty", order.FilledQty, "avg_price", order.FilledAvgPrice)
	}
	return order, nil
}

func convertOrder(raw *apiOrder) *Order {
	return &Order{
		ID:             raw.ID,
		Symbol:         raw.Symbol,
		Side:           OrderSide(raw.Side),
		Notional:       parseAmount(raw.Notional),
		Type:           OrderType(raw.Type),
		Status:         raw.Status,
		FilledQty:      parseAmount(raw.FilledQty),
		FilledAvgPrice: parseAmount(raw.FilledAvgPrice),
		CreatedAt:      raw.CreatedAt,
		UpdatedAt:      raw.UpdatedAt,
	}
}
