package stacks

import (
	"fmt"
	"time"

	"github.com/stacksline/stacks-wallet/internal/derive"
	"github.com/stacksline/stacks-wallet/internal/model"
)

// CreateAccount derives the next account of the unlocked wallet and
// persists its public metadata. Raw-key wallets cannot grow beyond their
// single account.
func (s *Service) CreateAccount(label string) (*model.Account, error) {
	secret, err := s.session.Secret()
	if err != nil {
		return nil, err
	}
	if secret.Kind == model.SecretRawKey {
		return nil, fmt.Errorf("cannot create accounts on a wallet imported from a raw key")
	}

	_, walletID, _ := s.session.Status()

	ks, err := s.keystores.Load(walletID)
	if err != nil {
		return nil, err
	}

	next := 0
	for _, a := range ks.Accounts {
		if a.Index >= next {
			next = a.Index + 1
		}
	}

	derived, err := derive.Account(secret.Value, uint32(next))
	if err != nil {
		return nil, err
	}

	if label == "" {
		label = fmt.Sprintf("Account %d", next+1)
	}

	account := model.Account{
		Index:          next,
		Label:          label,
		MainnetAddress: derived.MainnetAddress,
		TestnetAddress: derived.TestnetAddress,
		CreatedAt:      time.Now().Format(time.RFC3339),
		DerivationPath: derived.DerivationPath,
	}

	ks.Accounts = append(ks.Accounts, account)
	if err := s.keystores.Save(ks); err != nil {
		return nil, err
	}

	if err := s.index.UpdateWallet(walletID, func(w *model.Wallet) {
		w.AccountCount = len(ks.Accounts)
	}); err != nil {
		return nil, err
	}

	return &account, nil
}

// ListAccounts returns the public account metadata of a wallet. walletID
// empty means the active wallet. No password is needed: account metadata
// lives outside the encrypted envelope.
func (s *Service) ListAccounts(walletID string) ([]model.Account, error) {
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
	return ks.Accounts, nil
}

// SwitchAccount changes the active account index; see session.SwitchAccount
// for the locked-state behavior.
func (s *Service) SwitchAccount(index int) error {
	return s.session.SwitchAccount(index)
}
