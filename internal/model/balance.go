package model

// BalanceResponse represents response for GET /wallet/balance
type BalanceResponse struct {
	Address string  `json:"address"`
	Network Network `json:"network"`
	STX     string  `json:"stx"`
	Locked  string  `json:"locked"`
	Rate    string  `json:"rate"`
	USD     string  `json:"stx_amount_in_usd"`
}
