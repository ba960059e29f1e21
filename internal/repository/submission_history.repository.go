package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/krobus00/kite-order-cli/internal/entity"
)

type SubmissionHistoryRepository struct {
	db *sqlx.DB
}

func NewSubmissionHistoryRepository(db *sqlx.DB) *SubmissionHistoryRepository {
	return &SubmissionHistoryRepository{db: db}
}

func (r *SubmissionHistoryRepository) Create(ctx context.Context, history *entity.SubmissionHistory) error {
	queryBuilder := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Insert(history.TableName()).
		Columns(
			"batch_id",
			"order_id",
			"tradingsymbol",
			"transaction_type",
			"order_type",
			"quantity",
			"product",
			"price",
			"response",
			"error_message",
			"submitted_at",
		).
		Values(
			history.BatchID,
			history.OrderID,
			history.TradingSymbol,
			history.TransactionType,
			history.OrderType,
			history.Quantity,
			history.Product,
			history.Price,
			history.Response,
			history.ErrorMessage,
			history.SubmittedAt,
		).
		Suffix("RETURNING id")

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	var id string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if err != nil {
		return err
	}

	history.ID = id

	return nil
}

func (r *SubmissionHistoryRepository) GetByBatchID(ctx context.Context, batchID string) ([]entity.SubmissionHistory, error) {
	queryBuilder := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select("*").
		From("submission_histories").
		Where(sq.Eq{"batch_id": batchID}).
		OrderBy("submitted_at asc")

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var histories []entity.SubmissionHistory
	err = r.db.SelectContext(ctx, &histories, query, args...)
	if err != nil {
		return nil, err
	}

	return histories, nil
}
