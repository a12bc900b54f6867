package model

import (
	"fmt"
	"time"

	"github.com/stacksline/stacks-wallet/internal/common"
)

// TransactionType transaction type
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// Transaction represents one STX transfer as seen from the queried address
type Transaction struct {
	Type        TransactionType `json:"type"`
	TxID        string          `json:"txId"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Amount      string          `json:"amount"` // STX
	FeeSTX      string          `json:"feeSTX"`
	Timestamp   time.Time       `json:"timestamp"`
	BlockHeight int64           `json:"blockHeight"`
	Status      string          `json:"status"`
}

// HistoryResponse represents response for GET /wallet/transactions
type HistoryResponse struct {
	Address      string        `json:"address"`
	Network      Network       `json:"network"`
	TotalIncome  string        `json:"total_income_STX"`
	TotalSpent   string        `json:"total_spent_STX"`
	Transactions []Transaction `json:"transactions"`
}

// HistoryRequest represents filter parameters for GET /wallet/transactions
type HistoryRequest struct {
	Type      *TransactionType `form:"type"`
	TxID      *string          `form:"txId"`
	From      *time.Time       `form:"from"`
	To        *time.Time       `form:"to"`
	MinAmount *string          `form:"minAmount"`
	MaxAmount *string          `form:"maxAmount"`
}

// Validate validates HistoryRequest filter parameters.
func (r *HistoryRequest) Validate() error {
	if r.Type != nil && *r.Type != TransactionTypeDebit && *r.Type != TransactionTypeCredit {
		return fmt.Errorf("type must be DEBIT or CREDIT")
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return fmt.Errorf("to date must be after or equal to from date")
	}
	if r.MinAmount != nil && r.MaxAmount != nil {
		cmp, err := common.CompareSTXAmounts(*r.MinAmount, *r.MaxAmount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		if cmp == 1 {
			return fmt.Errorf("minAmount must be less than or equal to maxAmount")
		}
	}
	return nil
}
