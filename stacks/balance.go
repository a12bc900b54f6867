package stacks

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/skip2/go-qrcode"

	"github.com/stacksline/stacks-wallet/internal/address"
	"github.com/stacksline/stacks-wallet/internal/client"
	"github.com/stacksline/stacks-wallet/internal/common"
	"github.com/stacksline/stacks-wallet/internal/model"
)

// GetBalance gets the STX balance for an address. With an empty address
// the unlocked session's active address is used. The queried network is
// detected from the address prefix, not the configured default, so a
// testnet address resolves against the testnet backend even on a mainnet
// configuration.
func (s *Service) GetBalance(addr string) (*model.BalanceResponse, error) {
	addr, err := s.resolveAddress(addr)
	if err != nil {
		return nil, err
	}

	network := address.DetectNetwork(addr, s.network)
	hiroClient := client.NewHiroClient(network)
	coingeckoClient := client.NewCoinGeckoClient()

	balanceMicro, lockedMicro, err := hiroClient.GetSTXBalance(addr)
	if err != nil {
		return nil, err
	}

	// Convert to display strings (no float precision loss)
	stx := common.MicroToSTX(balanceMicro)
	locked := common.MicroToSTX(lockedMicro)

	rate, err := coingeckoClient.GetSTXtoUSDrate()
	if err != nil {
		return nil, fmt.Errorf("failed to get rate: %w", err)
	}

	// Calculate USD (use float only for display, not for critical operations)
	stxFloat, _ := strconv.ParseFloat(stx, 64)
	rateFloat, _ := strconv.ParseFloat(rate, 64)
	usd := fmt.Sprintf("%.2f", stxFloat*rateFloat)

	return &model.BalanceResponse{
		Address: addr,
		Network: network,
		STX:     stx,
		Locked:  locked,
		Rate:    rate,
		USD:     usd,
	}, nil
}

// Receive returns the active account's address with a QR code for it.
// Requires an unlocked session.
func (s *Service) Receive() (*model.ReceiveResponse, error) {
	addr, err := s.session.GetAddress()
	if err != nil {
		return nil, err
	}

	qr, err := generateQRCode(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	return &model.ReceiveResponse{Address: addr, QR: qr}, nil
}

// resolveAddress validates an explicit address or falls back to the
// session's active one.
func (s *Service) resolveAddress(addr string) (string, error) {
	if addr == "" {
		return s.session.GetAddress()
	}
	if !address.IsValid(addr) {
		return "", fmt.Errorf("invalid Stacks address")
	}
	return addr, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(addr string) (string, error) {
	qr, err := qrcode.New(addr, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	// Encode to base64
	return base64.StdEncoding.EncodeToString(png), nil
}
