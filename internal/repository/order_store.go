package repository

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/krobus00/kite-order-cli/internal/entity"
	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = errors.New("order not found")

type orderFile struct {
	Orders []entity.Order `json:"orders"`
}

// OrderStore keeps the staged orders in memory and rewrites the whole backing
// file on every mutation. A missing or corrupt file is an empty store, never an
// error. Single process, single user: no locking.
type OrderStore struct {
	path   string
	orders []entity.Order
	nextID int64
}

// NewOrderStore loads the backing file at path.
func NewOrderStore(path string) *OrderStore {
	store := &OrderStore{
		path:   path,
		nextID: 1,
	}
	store.load()

	return store
}

func (s *OrderStore) load() {
	s.orders = nil
	s.nextID = 1

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var file orderFile
	if err := json.Unmarshal(data, &file); err != nil {
		return
	}

	s.orders = file.Orders
	for _, order := range s.orders {
		if order.OrderID >= s.nextID {
			s.nextID = order.OrderID + 1
		}
	}
}

func (s *OrderStore) persist() error {
	payload, err := json.MarshalIndent(orderFile{Orders: s.orders}, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}

	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}

	return nil
}

// List returns all staged orders in insertion order. The returned slice is a
// copy; mutating it does not touch the store.
func (s *OrderStore) List() []entity.Order {
	orders := make([]entity.Order, len(s.orders))
	copy(orders, s.orders)

	return orders
}

// Create validates the draft, assigns the next order id, appends it and
// persists the store. The draft's OrderID field is ignored.
func (s *OrderStore) Create(draft entity.Order) (entity.Order, error) {
	draft.OrderID = s.nextID
	if err := draft.Validate(); err != nil {
		return entity.Order{}, err
	}

	s.orders = append(s.orders, draft)
	s.nextID++

	if err := s.persist(); err != nil {
		return entity.Order{}, err
	}

	return draft, nil
}

// Update applies a new quantity and, for limit orders only, a new price to the
// order with the given id. Nil arguments keep the current value. Returns
// ErrOrderNotFound without touching the file when the id is absent.
func (s *OrderStore) Update(orderID int64, quantity *int64, price *decimal.Decimal) (entity.Order, error) {
	for idx := range s.orders {
		if s.orders[idx].OrderID != orderID {
			continue
		}

		updated := s.orders[idx]
		if quantity != nil {
			updated.Quantity = *quantity
		}
		if price != nil && updated.OrderType == entity.OrderTypeLimit {
			value := *price
			updated.Price = &value
		}

		if err := updated.Validate(); err != nil {
			return entity.Order{}, err
		}

		s.orders[idx] = updated
		if err := s.persist(); err != nil {
			return entity.Order{}, err
		}

		return updated, nil
	}

	return entity.Order{}, ErrOrderNotFound
}

// Delete removes the order with the given id and persists the remainder.
// Returns ErrOrderNotFound without touching the file when the id is absent.
func (s *OrderStore) Delete(orderID int64) error {
	for idx := range s.orders {
		if s.orders[idx].OrderID != orderID {
			continue
		}

		s.orders = append(s.orders[:idx], s.orders[idx+1:]...)

		return s.persist()
	}

	return ErrOrderNotFound
}
