package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// SubmissionHistory is one audit row per submitted order per execute run.
// Persisted only when the optional history database is configured.
type SubmissionHistory struct {
	ID              string           `db:"id" json:"id"`
	BatchID         string           `db:"batch_id" json:"batch_id"`
	OrderID         int64            `db:"order_id" json:"order_id"`
	TradingSymbol   string           `db:"tradingsymbol" json:"tradingsymbol"`
	TransactionType TransactionType  `db:"transaction_type" json:"transaction_type"`
	OrderType       OrderType        `db:"order_type" json:"order_type"`
	Quantity        int64            `db:"quantity" json:"quantity"`
	Product         Product          `db:"product" json:"product"`
	Price           *decimal.Decimal `db:"price" json:"price"`
	Response        sql.NullString   `db:"response" json:"response"`
	ErrorMessage    sql.NullString   `db:"error_message" json:"error_message"`
	SubmittedAt     time.Time        `db:"submitted_at" json:"submitted_at"`
}

func (SubmissionHistory) TableName() string {
	return "submission_histories"
}
