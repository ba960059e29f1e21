package submitter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/krobus00/kite-order-cli/internal/config"
	"github.com/krobus00/kite-order-cli/internal/entity"
	"github.com/krobus00/kite-order-cli/internal/infrastructure"
	"github.com/krobus00/kite-order-cli/internal/repository"
	"github.com/shopspring/decimal"
)

const testTOTPKey = "JBSWY3DPEHPK3PXP"

type kiteStub struct {
	t           *testing.T
	twoFAStatus string
	orderCalls  int
	symbols     []string
	auth        []string
	failOrderAt int // 1-based index of the order call whose connection is dropped; 0 disables
}

func (s *kiteStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"request_id":"req-1","user_id":"AB1234"}}`))
	})
	mux.HandleFunc("/api/twofa", func(w http.ResponseWriter, r *http.Request) {
		if s.twoFAStatus == "success" {
			http.SetCookie(w, &http.Cookie{Name: "enctoken", Value: "tok-123", Path: "/"})
		}
		w.Write([]byte(`{"status":"` + s.twoFAStatus + `"}`))
	})
	mux.HandleFunc("/oms/orders/regular", func(w http.ResponseWriter, r *http.Request) {
		s.orderCalls++

		if s.failOrderAt > 0 && s.orderCalls == s.failOrderAt {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err != nil {
				s.t.Fatalf("hijack: %v", err)
			}
			conn.Close()
			return
		}

		if err := r.ParseForm(); err != nil {
			s.t.Fatalf("parse order form: %v", err)
		}
		s.symbols = append(s.symbols, r.PostFormValue("tradingsymbol"))
		s.auth = append(s.auth, r.Header.Get("Authorization"))

		if got := r.PostFormValue("variety"); got != "regular" {
			s.t.Errorf("variety = %q, want regular", got)
		}
		if r.PostFormValue("order_id") != "" {
			s.t.Error("order payload carries order_id")
		}

		w.Write([]byte(`{"status":"success","data":{"order_id":"240808001"}}`))
	})

	return mux
}

func stagedStore(t *testing.T, symbols ...string) *repository.OrderStore {
	t.Helper()
	store := repository.NewOrderStore(filepath.Join(t.TempDir(), "orders.json"))

	price := decimal.RequireFromString("3500.50")
	for idx, symbol := range symbols {
		order := entity.Order{
			Exchange:        entity.ExchangeNSE,
			TradingSymbol:   symbol,
			TransactionType: entity.TransactionBuy,
			OrderType:       entity.OrderTypeMarket,
			Quantity:        10,
			Product:         entity.ProductCNC,
		}
		if idx%2 == 1 {
			order.OrderType = entity.OrderTypeLimit
			order.Price = &price
		}
		if _, err := store.Create(order); err != nil {
			t.Fatalf("stage order: %v", err)
		}
	}

	return store
}

func newSubmitter(server *httptest.Server, store *repository.OrderStore) *OrderSubmitter {
	cfg := config.KiteConfig{
		UserID:   "AB1234",
		Password: "secret",
		TOTPKey:  testTOTPKey,
		BaseURL:  server.URL,
	}

	return NewOrderSubmitter(cfg, infrastructure.NewKiteHTTPClient(0), store, nil)
}

func TestExecuteSubmitsAllOrdersInStoreOrder(t *testing.T) {
	stub := &kiteStub{t: t, twoFAStatus: "success"}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	store := stagedStore(t, "INFY", "TCS", "SBIN")

	results, err := newSubmitter(server, store).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	wantSymbols := []string{"INFY", "TCS", "SBIN"}
	for idx, result := range results {
		if result.Failed() {
			t.Errorf("result %d failed: %s", idx, result.Err)
		}
		if result.TradingSymbol != wantSymbols[idx] {
			t.Errorf("result %d symbol = %q, want %q", idx, result.TradingSymbol, wantSymbols[idx])
		}
		if !strings.Contains(string(result.Response), "240808001") {
			t.Errorf("result %d response = %s", idx, result.Response)
		}
	}

	if len(stub.symbols) != 3 || stub.symbols[0] != "INFY" || stub.symbols[1] != "TCS" || stub.symbols[2] != "SBIN" {
		t.Errorf("submission order = %v", stub.symbols)
	}
	for _, header := range stub.auth {
		if header != "enctoken tok-123" {
			t.Errorf("Authorization = %q, want \"enctoken tok-123\"", header)
		}
	}
}

func TestExecuteIsolatesPerOrderFailures(t *testing.T) {
	stub := &kiteStub{t: t, twoFAStatus: "success", failOrderAt: 2}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	store := stagedStore(t, "INFY", "TCS", "SBIN")

	results, err := newSubmitter(server, store).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Failed() {
		t.Errorf("first result failed: %s", results[0].Err)
	}
	if !results[1].Failed() {
		t.Error("second result should have failed")
	}
	if results[2].Failed() {
		t.Errorf("third result failed: %s", results[2].Err)
	}
	if stub.orderCalls != 3 {
		t.Errorf("order endpoint called %d times, want 3", stub.orderCalls)
	}
}

func TestExecuteEmptyStoreMakesNoCalls(t *testing.T) {
	stub := &kiteStub{t: t, twoFAStatus: "success"}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	store := repository.NewOrderStore(filepath.Join(t.TempDir(), "orders.json"))

	results, err := newSubmitter(server, store).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if results != nil {
		t.Errorf("results = %v, want nil", results)
	}
	if stub.orderCalls != 0 {
		t.Errorf("order endpoint called %d times for an empty store", stub.orderCalls)
	}
}

func TestExecuteAuthFailureSendsNoOrders(t *testing.T) {
	stub := &kiteStub{t: t, twoFAStatus: "failed"}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	store := stagedStore(t, "INFY")

	results, err := newSubmitter(server, store).Execute(context.Background())
	if err == nil {
		t.Fatal("Execute succeeded, want auth failure")
	}
	if results != nil {
		t.Errorf("results = %v, want nil", results)
	}
	if stub.orderCalls != 0 {
		t.Errorf("order endpoint called %d times after auth failure", stub.orderCalls)
	}
}
