package stacks

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	bip39 "github.com/tyler-smith/go-bip39"

	"github.com/stacksline/stacks-wallet/internal/crypto"
	"github.com/stacksline/stacks-wallet/internal/derive"
	"github.com/stacksline/stacks-wallet/internal/model"
	"github.com/stacksline/stacks-wallet/internal/store"
)

const minPasswordLen = 8

// CreateWallet generates a fresh 24-word wallet, encrypts it under the
// password and registers it. The mnemonic is returned exactly once.
func (s *Service) CreateWallet(password, label string) (*model.CreateWalletResponse, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	// 256 bits of entropy => 24 words
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mnemonic: %w", err)
	}

	secret := model.ImportSecret{Kind: model.SecretMnemonic, Value: mnemonic}
	wallet, account, err := s.storeNewWallet(secret, password, label)
	if err != nil {
		return nil, err
	}

	addr := account.MainnetAddress
	if s.network == model.NetworkTestnet {
		addr = account.TestnetAddress
	}

	return &model.CreateWalletResponse{
		Success:  true,
		Message:  "Wallet created successfully. Write down the mnemonic: it is shown only once.",
		WalletID: wallet.ID,
		Address:  addr,
		Mnemonic: mnemonic,
	}, nil
}

// ImportWallet registers an existing secret - a BIP39 mnemonic or a raw
// hex private key, classified once here at the boundary.
func (s *Service) ImportWallet(rawSecret, password, label string) (*model.CreateWalletResponse, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	secret, err := model.ParseImportSecret(rawSecret)
	if err != nil {
		return nil, err
	}

	wallet, account, err := s.storeNewWallet(secret, password, label)
	if err != nil {
		return nil, err
	}

	addr := account.MainnetAddress
	if s.network == model.NetworkTestnet {
		addr = account.TestnetAddress
	}

	return &model.CreateWalletResponse{
		Success:  true,
		Message:  "Wallet imported successfully",
		WalletID: wallet.ID,
		Address:  addr,
	}, nil
}

// storeNewWallet derives account 0, writes the keystore and registers the
// wallet in the index. The keystore write happens first; if registration
// fails the orphaned file is removed.
func (s *Service) storeNewWallet(secret model.ImportSecret, password, label string) (*model.Wallet, *model.Account, error) {
	derived, err := deriveAccountZero(secret)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().Format(time.RFC3339)
	id := uuid.NewString()

	if label == "" {
		idx, err := s.index.Load()
		if err != nil {
			return nil, nil, err
		}
		label = fmt.Sprintf("Wallet %d", len(idx.Wallets)+1)
	}

	account := model.Account{
		Index:          0,
		Label:          "Account 1",
		MainnetAddress: derived.MainnetAddress,
		TestnetAddress: derived.TestnetAddress,
		CreatedAt:      now,
		DerivationPath: derived.DerivationPath,
	}

	envelope, err := crypto.EncryptSecret(secret.Value, password, s.params)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	ks := &model.KeystoreFile{
		Version:  model.KeystoreVersion,
		WalletID: id,
		Crypto:   envelope,
		Accounts: []model.Account{account},
	}
	if err := s.keystores.Save(ks); err != nil {
		return nil, nil, err
	}

	wallet := model.Wallet{
		ID:                  id,
		Label:               label,
		CreatedAt:           now,
		LastUsed:            now,
		AccountCount:        1,
		DefaultAccountIndex: 0,
		KeystoreFileName:    store.FileName(id),
	}
	if err := s.index.AddWallet(wallet); err != nil {
		s.keystores.Delete(id)
		return nil, nil, err
	}

	return &wallet, &account, nil
}

// UnlockWallet unlocks the explicit wallet, or the active one when
// walletID is empty.
func (s *Service) UnlockWallet(password, walletID string) (*model.Account, error) {
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}
	return s.session.Unlock(password, walletID)
}

// LockWallet locks the session immediately.
func (s *Service) LockWallet() {
	s.session.Lock()
}

// ListWallets returns all wallet metadata plus the active wallet id.
func (s *Service) ListWallets() (*model.WalletIndex, error) {
	return s.index.Load()
}

// SwitchWallet changes the active wallet for the next unlock.
func (s *Service) SwitchWallet(id string, accountIndex *int) error {
	if id == "" {
		return fmt.Errorf("wallet id cannot be empty")
	}
	return s.session.SwitchWallet(id, accountIndex)
}

// DeleteWallet removes a wallet's index entry and keystore file. confirm
// must be true; a deleted wallet is unrecoverable without its mnemonic.
func (s *Service) DeleteWallet(id string, confirm bool) error {
	if id == "" {
		return fmt.Errorf("wallet id cannot be empty")
	}
	if !confirm {
		return fmt.Errorf("deletion requires confirm=true; the keystore cannot be recovered")
	}

	// relock first if the doomed wallet is the unlocked one
	if unlocked, activeID, _ := s.session.Status(); unlocked && activeID == id {
		s.session.Lock()
	}

	if err := s.index.RemoveWallet(id); err != nil {
		return err
	}
	if err := s.keystores.Delete(id); err != nil {
		return err
	}
	return nil
}

// ExportWallet re-authenticates with the password and returns the wallet's
// secret. walletID empty means the active wallet.
func (s *Service) ExportWallet(walletID, password string) (*model.ExportWalletResponse, error) {
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	target := walletID
	if target == "" {
		idx, err := s.index.Load()
		if err != nil {
			return nil, err
		}
		if idx.ActiveWalletID == "" {
			return nil, model.ErrNoWallets
		}
		target = idx.ActiveWalletID
	}

	ks, err := s.keystores.Load(target)
	if err != nil {
		return nil, err
	}

	plaintext, err := crypto.DecryptSecret(ks.Crypto, password)
	if err != nil {
		return nil, err
	}

	secret, err := model.ParseImportSecret(plaintext)
	if err != nil {
		return nil, fmt.Errorf("keystore holds unrecognized secret: %w", err)
	}

	return &model.ExportWalletResponse{
		WalletID: target,
		Kind:     secret.Kind,
		Secret:   secret.Value,
	}, nil
}

// ChangePassword re-encrypts a wallet's keystore under a new password. The
// secret and accounts are untouched; only the envelope is rewritten, with a
// fresh salt and IV. walletID empty means the active wallet.
func (s *Service) ChangePassword(walletID, oldPassword, newPassword string) error {
	if oldPassword == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	target := walletID
	if target == "" {
		idx, err := s.index.Load()
		if err != nil {
			return err
		}
		if idx.ActiveWalletID == "" {
			return model.ErrNoWallets
		}
		target = idx.ActiveWalletID
	}

	ks, err := s.keystores.Load(target)
	if err != nil {
		return err
	}

	plaintext, err := crypto.DecryptSecret(ks.Crypto, oldPassword)
	if err != nil {
		return err
	}

	envelope, err := crypto.EncryptSecret(plaintext, newPassword, s.params)
	if err != nil {
		return fmt.Errorf("failed to re-encrypt wallet: %w", err)
	}

	ks.Crypto = envelope
	return s.keystores.Save(ks)
}

// RenameWallet updates a wallet's label.
func (s *Service) RenameWallet(id, label string) error {
	if id == "" {
		return fmt.Errorf("wallet id cannot be empty")
	}
	if label == "" {
		return fmt.Errorf("label cannot be empty")
	}
	return s.index.UpdateWallet(id, func(w *model.Wallet) {
		w.Label = label
	})
}

func validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

func deriveAccountZero(secret model.ImportSecret) (*derive.Derived, error) {
	switch secret.Kind {
	case model.SecretRawKey:
		return derive.FromRawKey(secret.Value)
	default:
		return derive.Account(secret.Value, 0)
	}
}
