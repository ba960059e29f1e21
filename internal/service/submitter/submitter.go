package submitter

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/krobus00/kite-order-cli/internal/config"
	"github.com/krobus00/kite-order-cli/internal/constant"
	"github.com/krobus00/kite-order-cli/internal/entity"
	"github.com/krobus00/kite-order-cli/internal/repository"
	"github.com/krobus00/kite-order-cli/internal/service/auth"
	"github.com/sirupsen/logrus"
)

// OrderSubmitter logs in to Kite and posts every staged order, one request per
// order, in store order. Submission never mutates the store: re-running execute
// resubmits every staged order.
type OrderSubmitter struct {
	cfg         config.KiteConfig
	client      *http.Client
	store       *repository.OrderStore
	historyRepo *repository.SubmissionHistoryRepository
}

func NewOrderSubmitter(cfg config.KiteConfig, client *http.Client, store *repository.OrderStore, historyRepo *repository.SubmissionHistoryRepository) *OrderSubmitter {
	return &OrderSubmitter{
		cfg:         cfg,
		client:      client,
		store:       store,
		historyRepo: historyRepo,
	}
}

// Execute authenticates with a fresh login and submits all staged orders.
// Authentication failure is fatal and no order is attempted. Per-order failures
// are isolated: each order gets exactly one attempt and its own result entry.
func (s *OrderSubmitter) Execute(ctx context.Context) ([]entity.SubmissionResult, error) {
	authenticator := auth.NewKiteAuthenticator(s.cfg, s.client)
	enctoken, err := authenticator.Login(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	logrus.Info("login successful, enctoken retrieved")

	orders := s.store.List()
	if len(orders) == 0 {
		logrus.Info("no orders found")
		return nil, nil
	}

	batchID := uuid.NewString()
	results := make([]entity.SubmissionResult, 0, len(orders))

	for _, order := range orders {
		result := s.submitOne(ctx, enctoken, order)
		results = append(results, result)

		logrus.WithFields(logrus.Fields{
			"batch_id":      batchID,
			"order_id":      order.OrderID,
			"tradingsymbol": order.TradingSymbol,
			"failed":        result.Failed(),
		}).Info("order submitted")

		s.recordHistory(ctx, batchID, order, result)
	}

	return results, nil
}

func (s *OrderSubmitter) submitOne(ctx context.Context, enctoken string, order entity.Order) entity.SubmissionResult {
	result := entity.SubmissionResult{
		OrderID:       order.OrderID,
		TradingSymbol: order.TradingSymbol,
	}

	form := order.SubmissionForm(constant.OrderVariety, s.cfg.UserID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+constant.KiteRegularOrderPath, strings.NewReader(form.Encode()))
	if err != nil {
		result.Err = err.Error()
		return result
	}

	req.Header.Set("User-Agent", constant.KiteUserAgent)
	req.Header.Set("Referer", s.cfg.BaseURL+constant.KiteDashboardPath)
	req.Header.Set("Accept-Language", "en-US,en;q=0.6")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Authorization", fmt.Sprintf("%s %s", constant.EnctokenCookieName, enctoken))

	res, err := s.client.Do(req)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	// The broker response is captured verbatim, whatever its shape.
	result.Response = body

	return result
}

// recordHistory writes one audit row when the history database is configured.
// Best effort only: an insert failure never aborts the run.
func (s *OrderSubmitter) recordHistory(ctx context.Context, batchID string, order entity.Order, result entity.SubmissionResult) {
	if s.historyRepo == nil {
		return
	}

	history := &entity.SubmissionHistory{
		BatchID:         batchID,
		OrderID:         order.OrderID,
		TradingSymbol:   order.TradingSymbol,
		TransactionType: order.TransactionType,
		OrderType:       order.OrderType,
		Quantity:        order.Quantity,
		Product:         order.Product,
		Price:           order.Price,
		Response:        sql.NullString{String: string(result.Response), Valid: len(result.Response) > 0},
		ErrorMessage:    sql.NullString{String: result.Err, Valid: result.Err != ""},
		SubmittedAt:     time.Now().UTC(),
	}

	if err := s.historyRepo.Create(ctx, history); err != nil {
		logrus.Errorf("failed to record submission history: %v", err)
	}
}
