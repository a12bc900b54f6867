package stacks

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/stacksline/stacks-wallet/internal/address"
	"github.com/stacksline/stacks-wallet/internal/client"
	"github.com/stacksline/stacks-wallet/internal/common"
	"github.com/stacksline/stacks-wallet/internal/model"
)

// GetTransactions gets an address's STX transfers with filtering. Like
// GetBalance, the backend is chosen by detecting the address's network.
func (s *Service) GetTransactions(addr string, req *model.HistoryRequest) (*model.HistoryResponse, error) {
	addr, err := s.resolveAddress(addr)
	if err != nil {
		return nil, err
	}

	network := address.DetectNetwork(addr, s.network)
	hiroClient := client.NewHiroClient(network)

	txs, err := hiroClient.GetTransactions(addr, 50)
	if err != nil {
		return nil, err
	}

	result := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		// Filter by type
		if req.Type != nil && *req.Type != tx.Type {
			continue
		}

		// Filter by txId
		if req.TxID != nil && *req.TxID != tx.TxID {
			continue
		}

		// Filter by dates
		if req.From != nil && tx.Timestamp.Before(*req.From) {
			continue
		}
		if req.To != nil && tx.Timestamp.After(*req.To) {
			continue
		}

		// Filter by amount (using integer comparison to avoid float precision issues)
		if req.MinAmount != nil {
			cmp, err := common.CompareSTXAmounts(tx.Amount, *req.MinAmount)
			if err != nil {
				return nil, fmt.Errorf("failed to compare min amount: %w", err)
			}
			if cmp < 0 {
				continue
			}
		}
		if req.MaxAmount != nil {
			cmp, err := common.CompareSTXAmounts(tx.Amount, *req.MaxAmount)
			if err != nil {
				return nil, fmt.Errorf("failed to compare max amount: %w", err)
			}
			if cmp > 0 {
				continue
			}
		}

		result = append(result, tx)
	}

	// Sort by time DESC (newest first)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	// Totals from the queried address's point of view
	var totalIncome, totalSpent float64
	for _, tx := range result {
		amount, err := strconv.ParseFloat(tx.Amount, 64)
		if err != nil {
			continue
		}
		switch tx.Type {
		case model.TransactionTypeCredit:
			totalIncome += amount
		case model.TransactionTypeDebit:
			totalSpent += amount
		}
	}

	return &model.HistoryResponse{
		Address:      addr,
		Network:      network,
		TotalIncome:  fmt.Sprintf("%.6f", totalIncome),
		TotalSpent:   fmt.Sprintf("%.6f", totalSpent),
		Transactions: result,
	}, nil
}
