package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func validMarketOrder() Order {
	return Order{
		OrderID:         1,
		Exchange:        ExchangeNSE,
		TradingSymbol:   "INFY",
		TransactionType: TransactionBuy,
		OrderType:       OrderTypeMarket,
		Quantity:        10,
		Product:         ProductCNC,
	}
}

func TestValidate(t *testing.T) {
	price := decimal.RequireFromString("3500.50")
	negative := decimal.NewFromInt(-5)

	tests := []struct {
		name    string
		mutate  func(o *Order)
		wantErr error
	}{
		{"valid market", func(o *Order) {}, nil},
		{"valid limit", func(o *Order) { o.OrderType = OrderTypeLimit; o.Price = &price }, nil},
		{"bad exchange", func(o *Order) { o.Exchange = "NYSE" }, ErrInvalidExchange},
		{"bad transaction type", func(o *Order) { o.TransactionType = "HOLD" }, ErrInvalidTransactionType},
		{"bad order type", func(o *Order) { o.OrderType = "STOP" }, ErrInvalidOrderType},
		{"bad product", func(o *Order) { o.Product = "NRML" }, ErrInvalidProduct},
		{"zero quantity", func(o *Order) { o.Quantity = 0 }, ErrInvalidQuantity},
		{"negative quantity", func(o *Order) { o.Quantity = -1 }, ErrInvalidQuantity},
		{"limit without price", func(o *Order) { o.OrderType = OrderTypeLimit }, ErrPriceRequired},
		{"limit with negative price", func(o *Order) { o.OrderType = OrderTypeLimit; o.Price = &negative }, ErrInvalidPrice},
		{"market with price", func(o *Order) { o.Price = &price }, ErrPriceNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validMarketOrder()
			tt.mutate(&order)

			err := order.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubmissionFormExcludesOrderID(t *testing.T) {
	order := validMarketOrder()
	form := order.SubmissionForm("regular", "AB1234")

	if form.Has("order_id") {
		t.Error("submission form carries order_id")
	}
	if got := form.Get("variety"); got != "regular" {
		t.Errorf("variety = %q, want regular", got)
	}
	if got := form.Get("user_id"); got != "AB1234" {
		t.Errorf("user_id = %q, want AB1234", got)
	}
	if got := form.Get("tradingsymbol"); got != "INFY" {
		t.Errorf("tradingsymbol = %q, want INFY", got)
	}
	if got := form.Get("quantity"); got != "10" {
		t.Errorf("quantity = %q, want 10", got)
	}
	if form.Has("price") {
		t.Error("market order form carries price")
	}
}

func TestSubmissionFormLimitPrice(t *testing.T) {
	price := decimal.RequireFromString("3500.50")
	order := validMarketOrder()
	order.OrderType = OrderTypeLimit
	order.Price = &price

	form := order.SubmissionForm("regular", "AB1234")
	if got := form.Get("price"); got != "3500.50" {
		t.Errorf("price = %q, want 3500.50", got)
	}
}

func TestJSONPricePresence(t *testing.T) {
	data, err := json.Marshal(validMarketOrder())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), `"price"`) {
		t.Errorf("market order JSON carries price: %s", data)
	}

	price := decimal.RequireFromString("3500.50")
	limit := validMarketOrder()
	limit.OrderType = OrderTypeLimit
	limit.Price = &price

	data, err = json.Marshal(limit)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"price":3500.50`) {
		t.Errorf("limit order JSON missing price: %s", data)
	}
}
