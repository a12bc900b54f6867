package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/stacksline/stacks-wallet/internal/model"
	"github.com/stacksline/stacks-wallet/stacks"
)

// WalletHandler adapts the wallet service to HTTP.
type WalletHandler struct {
	svc *stacks.Service
	log zerolog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc *stacks.Service, log zerolog.Logger) *WalletHandler {
	return &WalletHandler{svc: svc, log: log}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the core error taxonomy onto HTTP statuses. Crypto
// errors and state errors keep their exact messages; presentation is the
// only thing decided here.
func (h *WalletHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	code := "VALIDATION"
	switch {
	case model.IsCryptoError(err):
		status = http.StatusUnauthorized
		code = "CRYPTO"
	case model.IsLockedError(err):
		status = http.StatusForbidden
		code = "LOCKED"
	case model.IsNotFoundError(err):
		status = http.StatusNotFound
		code = "NOT_FOUND"
	}
	h.log.Warn().Err(err).Str("code", code).Msg("request failed")
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

// Create handles POST /wallet/create
// @Summary      Create new wallet
// @Description  Generates a 24-word wallet encrypted under the password; the mnemonic is returned once
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateWalletRequest  true  "Creation data"
// @Success      200      {object}  model.CreateWalletResponse
// @Router       /wallet/create [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.svc.CreateWallet(req.Password, req.Label)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Import handles POST /wallet/import
// @Summary      Import wallet
// @Description  Imports a BIP39 mnemonic or raw hex private key
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportWalletRequest  true  "Import data"
// @Success      200      {object}  model.CreateWalletResponse
// @Router       /wallet/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.svc.ImportWallet(req.Secret, req.Password, req.Label)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Unlock handles POST /wallet/unlock
// @Summary      Unlock wallet
// @Description  Decrypts the target wallet into the session; arms the auto-lock deadline
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.UnlockRequest  true  "Unlock data"
// @Success      200      {object}  model.Account
// @Router       /wallet/unlock [post]
func (h *WalletHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	account, err := h.svc.UnlockWallet(req.Password, req.WalletID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// Lock handles POST /wallet/lock
// @Summary      Lock wallet
// @Description  Clears the session's key material immediately
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Router       /wallet/lock [post]
func (h *WalletHandler) Lock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	h.svc.LockWallet()
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Wallet locked"})
}

// List handles GET /wallet/list
// @Summary      List wallets
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletIndex
// @Router       /wallet/list [get]
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	idx, err := h.svc.ListWallets()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idx)
}

// Switch handles POST /wallet/switch
// @Summary      Switch active wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SwitchWalletRequest  true  "Switch data"
// @Success      200      {object}  model.StatusResponse
// @Router       /wallet/switch [post]
func (h *WalletHandler) Switch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SwitchWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.SwitchWallet(req.WalletID, req.AccountIndex); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Active wallet switched"})
}

// Delete handles DELETE /wallet
// @Summary      Delete wallet
// @Description  Removes the wallet and its keystore file; requires confirm=true
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.DeleteWalletRequest  true  "Deletion data"
// @Success      200      {object}  model.StatusResponse
// @Router       /wallet [delete]
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed. Should be DELETE", http.StatusMethodNotAllowed)
		return
	}

	var req model.DeleteWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.DeleteWallet(req.WalletID, req.Confirm); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Wallet deleted"})
}

// Export handles POST /wallet/export
// @Summary      Export wallet secret
// @Description  Re-authenticates with the password and returns the mnemonic or raw key
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ExportWalletRequest  true  "Export data"
// @Success      200      {object}  model.ExportWalletResponse
// @Router       /wallet/export [post]
func (h *WalletHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ExportWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.svc.ExportWallet(req.WalletID, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ChangePassword handles POST /wallet/change-password
// @Summary      Change wallet password
// @Description  Re-encrypts the keystore under the new password; the secret is unchanged
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ChangePasswordRequest  true  "Password change data"
// @Success      200      {object}  model.StatusResponse
// @Router       /wallet/change-password [post]
func (h *WalletHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.ChangePassword(req.WalletID, req.OldPassword, req.NewPassword); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Password changed"})
}

// CreateAccount handles POST /account/create
// @Summary      Create account
// @Description  Derives the next account of the unlocked wallet
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateAccountRequest  true  "Account data"
// @Success      200      {object}  model.Account
// @Router       /account/create [post]
func (h *WalletHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	account, err := h.svc.CreateAccount(req.Label)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// ListAccounts handles GET /account/list
// @Summary      List accounts
// @Tags         account
// @Produce      json
// @Param        walletId  query     string  false  "Wallet id (defaults to active wallet)"
// @Success      200       {array}   model.Account
// @Router       /account/list [get]
func (h *WalletHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	accounts, err := h.svc.ListAccounts(r.URL.Query().Get("walletId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// SwitchAccount handles POST /account/switch
// @Summary      Switch active account
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request  body      model.SwitchAccountRequest  true  "Switch data"
// @Success      200      {object}  model.StatusResponse
// @Router       /account/switch [post]
func (h *WalletHandler) SwitchAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SwitchAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.SwitchAccount(req.Index); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Active account switched"})
}

// Balance handles GET /wallet/balance
// @Summary      Get STX balance
// @Description  Balance for an explicit address (network detected from its prefix) or the active account
// @Tags         wallet
// @Produce      json
// @Param        address  query     string  false  "Address (defaults to active account)"
// @Success      200      {object}  model.BalanceResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.svc.GetBalance(r.URL.Query().Get("address"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Receive handles GET /wallet/receive
// @Summary      Get receive address with QR code
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ReceiveResponse
// @Router       /wallet/receive [get]
func (h *WalletHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.svc.Receive()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Transactions handles GET /wallet/transactions
// @Summary      Get STX transfer history
// @Tags         wallet
// @Produce      json
// @Param        address    query     string  false  "Address (defaults to active account)"
// @Param        type       query     string  false  "Transaction type: DEBIT or CREDIT"
// @Param        txId       query     string  false  "Transaction ID"
// @Param        from       query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to         query     string  false  "End date (YYYY-MM-DD)"
// @Param        minAmount  query     string  false  "Minimum amount"
// @Param        maxAmount  query     string  false  "Maximum amount"
// @Success      200  {object}  model.HistoryResponse
// @Router       /wallet/transactions [get]
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	var req model.HistoryRequest

	// Parse date parameters (YYYY-MM-DD)
	const dateLayout = "2006-01-02"
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid from date: use YYYY-MM-DD (e.g. 2006-01-02)"})
			return
		}
		req.From = &t
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid to date: use YYYY-MM-DD (e.g. 2006-01-02)"})
			return
		}
		// End of day so filter is inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		req.To = &t
	}

	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		txType := model.TransactionType(typeStr)
		req.Type = &txType
	}
	if txID := r.URL.Query().Get("txId"); txID != "" {
		req.TxID = &txID
	}
	if minAmount := r.URL.Query().Get("minAmount"); minAmount != "" {
		req.MinAmount = &minAmount
	}
	if maxAmount := r.URL.Query().Get("maxAmount"); maxAmount != "" {
		req.MaxAmount = &maxAmount
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.svc.GetTransactions(r.URL.Query().Get("address"), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Status handles GET /wallet/status
// @Summary      Get session status
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /wallet/status [get]
func (h *WalletHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	unlocked, walletID, accountIndex := h.svc.Session().Status()
	writeJSON(w, http.StatusOK, map[string]any{
		"unlocked":     unlocked,
		"walletId":     walletID,
		"accountIndex": accountIndex,
		"network":      h.svc.Session().Network(),
	})
}
