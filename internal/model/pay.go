package model

// CreateWalletRequest represents request for POST /wallet/create
type CreateWalletRequest struct {
	Password string `json:"password" binding:"required"`
	Label    string `json:"label"`
}

// ImportWalletRequest represents request for POST /wallet/import.
// Secret is a BIP39 mnemonic or a raw hex private key.
type ImportWalletRequest struct {
	Secret   string `json:"secret" binding:"required"`
	Password string `json:"password" binding:"required"`
	Label    string `json:"label"`
}

// UnlockRequest represents request for POST /wallet/unlock
type UnlockRequest struct {
	Password string `json:"password" binding:"required"`
	WalletID string `json:"walletId"`
}

// SwitchWalletRequest represents request for POST /wallet/switch
type SwitchWalletRequest struct {
	WalletID     string `json:"walletId" binding:"required"`
	AccountIndex *int   `json:"accountIndex"`
}

// DeleteWalletRequest represents request for DELETE /wallet
type DeleteWalletRequest struct {
	WalletID string `json:"walletId" binding:"required"`
	Confirm  bool   `json:"confirm" binding:"required"`
}

// ChangePasswordRequest represents request for POST /wallet/change-password
type ChangePasswordRequest struct {
	WalletID    string `json:"walletId"`
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ExportWalletRequest represents request for POST /wallet/export
type ExportWalletRequest struct {
	WalletID string `json:"walletId"`
	Password string `json:"password" binding:"required"`
}

// ExportWalletResponse represents response for POST /wallet/export
type ExportWalletResponse struct {
	WalletID string     `json:"walletId"`
	Kind     SecretKind `json:"kind"`
	Secret   string     `json:"secret"`
}

// CreateAccountRequest represents request for POST /account/create
type CreateAccountRequest struct {
	Label string `json:"label"`
}

// SwitchAccountRequest represents request for POST /account/switch
type SwitchAccountRequest struct {
	Index int `json:"index"`
}

// StatusResponse is the generic success envelope for state-changing calls.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
