package entity

import "github.com/goccy/go-json"

// LoginResponse is the relevant subset of the Kite /api/login response.
type LoginResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		RequestID string `json:"request_id"`
		UserID    string `json:"user_id"`
	} `json:"data"`
}

// TwoFAResponse is the relevant subset of the Kite /api/twofa response.
type TwoFAResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SubmissionResult captures the outcome of one order submission. Exactly one of
// Response or Err is meaningful: Response holds the broker's JSON verbatim when
// the HTTP exchange completed, Err holds the transport error otherwise.
type SubmissionResult struct {
	OrderID       int64
	TradingSymbol string
	Response      json.RawMessage
	Err           string
}

func (r SubmissionResult) Failed() bool {
	return r.Err != ""
}
