package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/stacksline/stacks-wallet/internal/common"
	"github.com/stacksline/stacks-wallet/internal/config"
	"github.com/stacksline/stacks-wallet/internal/model"
)

// HiroClient is a read-only client for the Hiro extended API. The base URL
// is chosen per network, so callers must run the queried address through
// the network detector first.
type HiroClient struct {
	baseURL string
	network model.Network
	client  *http.Client
}

// NewHiroClient creates a client for the given network's Hiro endpoint.
func NewHiroClient(network model.Network) *HiroClient {
	return &HiroClient{
		baseURL: config.GetHiroURL(network),
		network: network,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// stxBalanceResponse is the subset of GET /extended/v1/address/{addr}/stx
type stxBalanceResponse struct {
	Balance string `json:"balance"`
	Locked  string `json:"locked"`
}

// GetSTXBalance gets the STX balance (micro-STX) for an address.
func (c *HiroClient) GetSTXBalance(address string) (balanceMicro, lockedMicro uint64, err error) {
	reqURL := fmt.Sprintf("%s/extended/v1/address/%s/stx", c.baseURL, url.PathEscape(address))

	resp, err := c.client.Get(reqURL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get balance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("failed to get balance: status %d", resp.StatusCode)
	}

	var balResp stxBalanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&balResp); err != nil {
		return 0, 0, fmt.Errorf("failed to decode balance: %w", err)
	}

	balanceMicro, err = strconv.ParseUint(balResp.Balance, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse balance %q: %w", balResp.Balance, err)
	}
	if balResp.Locked != "" {
		lockedMicro, err = strconv.ParseUint(balResp.Locked, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to parse locked balance %q: %w", balResp.Locked, err)
		}
	}
	return balanceMicro, lockedMicro, nil
}

// transactionsResponse is the subset of
// GET /extended/v1/address/{addr}/transactions we consume.
type transactionsResponse struct {
	Results []struct {
		TxID             string `json:"tx_id"`
		TxType           string `json:"tx_type"`
		TxStatus         string `json:"tx_status"`
		SenderAddress    string `json:"sender_address"`
		FeeRate          string `json:"fee_rate"`
		BlockHeight      int64  `json:"block_height"`
		BurnBlockTimeISO string `json:"burn_block_time_iso"`
		TokenTransfer    struct {
			RecipientAddress string `json:"recipient_address"`
			Amount           string `json:"amount"`
		} `json:"token_transfer"`
	} `json:"results"`
}

// GetTransactions gets the address's recent STX transfers, newest first.
// Non-transfer transaction types (contract calls, deploys) are skipped.
func (c *HiroClient) GetTransactions(address string, limit int) ([]model.Transaction, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	reqURL := fmt.Sprintf("%s/extended/v1/address/%s/transactions?limit=%d", c.baseURL, url.PathEscape(address), limit)

	resp, err := c.client.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get transactions: status %d", resp.StatusCode)
	}

	var txResp transactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&txResp); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	txs := make([]model.Transaction, 0, len(txResp.Results))
	for _, r := range txResp.Results {
		if r.TxType != "token_transfer" {
			continue
		}

		txType := model.TransactionTypeCredit
		if r.SenderAddress == address {
			txType = model.TransactionTypeDebit
		}

		amountMicro, err := strconv.ParseUint(r.TokenTransfer.Amount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount %q: %w", r.TokenTransfer.Amount, err)
		}
		feeMicro, err := strconv.ParseUint(r.FeeRate, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fee %q: %w", r.FeeRate, err)
		}

		var ts time.Time
		if r.BurnBlockTimeISO != "" {
			ts, err = time.Parse(time.RFC3339, r.BurnBlockTimeISO)
			if err != nil {
				return nil, fmt.Errorf("failed to parse timestamp %q: %w", r.BurnBlockTimeISO, err)
			}
		}

		txs = append(txs, model.Transaction{
			Type:        txType,
			TxID:        r.TxID,
			From:        r.SenderAddress,
			To:          r.TokenTransfer.RecipientAddress,
			Amount:      common.MicroToSTX(amountMicro),
			FeeSTX:      common.MicroToSTX(feeMicro),
			Timestamp:   ts,
			BlockHeight: r.BlockHeight,
			Status:      r.TxStatus,
		})
	}
	return txs, nil
}
