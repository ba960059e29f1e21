package entity

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

type Exchange string
type TransactionType string
type OrderType string
type Product string

const (
	ExchangeNSE Exchange = "NSE"
	ExchangeBSE Exchange = "BSE"

	TransactionBuy  TransactionType = "BUY"
	TransactionSell TransactionType = "SELL"

	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"

	ProductMIS Product = "MIS"
	ProductCNC Product = "CNC"
)

func init() {
	// The order file stores price as a bare JSON number, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	ErrInvalidExchange        = errors.New("invalid exchange")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidOrderType       = errors.New("invalid order type")
	ErrInvalidProduct         = errors.New("invalid product")
	ErrInvalidQuantity        = errors.New("quantity must be a positive integer")
	ErrInvalidPrice           = errors.New("price must be a positive number")
	ErrPriceRequired          = errors.New("limit orders require a price")
	ErrPriceNotAllowed        = errors.New("market orders must not carry a price")
)

// Order is the unit of persistence in the order file. Field names and presence
// follow the Kite order payload: price is present iff the order is a limit order.
type Order struct {
	OrderID         int64            `json:"order_id"`
	Exchange        Exchange         `json:"exchange"`
	TradingSymbol   string           `json:"tradingsymbol"`
	TransactionType TransactionType  `json:"transaction_type"`
	OrderType       OrderType        `json:"order_type"`
	Quantity        int64            `json:"quantity"`
	Product         Product          `json:"product"`
	Price           *decimal.Decimal `json:"price,omitempty"`
}

// Validate checks an order against the domain invariants. It expects already
// canonicalized enum values; input canonicalization happens at the menu boundary.
func (o *Order) Validate() error {
	switch o.Exchange {
	case ExchangeNSE, ExchangeBSE:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidExchange, o.Exchange)
	}

	switch o.TransactionType {
	case TransactionBuy, TransactionSell:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, o.TransactionType)
	}

	switch o.OrderType {
	case OrderTypeMarket, OrderTypeLimit:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrderType, o.OrderType)
	}

	switch o.Product {
	case ProductMIS, ProductCNC:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProduct, o.Product)
	}

	if o.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	if o.OrderType == OrderTypeLimit {
		if o.Price == nil {
			return ErrPriceRequired
		}
		if !o.Price.IsPositive() {
			return ErrInvalidPrice
		}
	} else if o.Price != nil {
		return ErrPriceNotAllowed
	}

	return nil
}

// SubmissionForm builds the form-encoded payload Kite expects for a regular
// order: every stored field except order_id, plus the variety tag and the
// account's user id.
func (o *Order) SubmissionForm(variety, userID string) url.Values {
	form := url.Values{}
	form.Set("variety", variety)
	form.Set("exchange", string(o.Exchange))
	form.Set("tradingsymbol", o.TradingSymbol)
	form.Set("transaction_type", string(o.TransactionType))
	form.Set("order_type", string(o.OrderType))
	form.Set("quantity", strconv.FormatInt(o.Quantity, 10))
	form.Set("product", string(o.Product))
	if o.Price != nil {
		form.Set("price", o.Price.String())
	}
	form.Set("user_id", userID)

	return form
}
