package model

// CreateWalletResponse represents response for POST /wallet/create.
// Mnemonic is returned exactly once, at creation time, and never again.
type CreateWalletResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	WalletID string `json:"walletId,omitempty"`
	Address  string `json:"address,omitempty"`
	Mnemonic string `json:"mnemonic,omitempty"`
}

// ReceiveResponse represents response for GET /wallet/receive
type ReceiveResponse struct {
	Address string `json:"address"`
	QR      string `json:"QR"` // base64 PNG
}
