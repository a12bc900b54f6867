package model

import "errors"

// The error taxonomy for the wallet core. Crypto failures deliberately
// collapse into one message so a caller cannot distinguish a wrong
// password from a corrupted keystore.
var (
	ErrInvalidPassword = errors.New("invalid password or corrupted keystore")
	ErrWalletLocked    = errors.New("wallet is locked")
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateWallet = errors.New("wallet id already exists")
	ErrNoWallets       = errors.New("no wallets exist")
)

// IsCryptoError reports whether err is the generic decrypt failure.
func IsCryptoError(err error) bool {
	return errors.Is(err, ErrInvalidPassword)
}

// IsLockedError reports whether err is the locked-session state error.
func IsLockedError(err error) bool {
	return errors.Is(err, ErrWalletLocked)
}

// IsNotFoundError reports whether err is a wallet/account lookup miss.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrWalletNotFound) || errors.Is(err, ErrAccountNotFound)
}
