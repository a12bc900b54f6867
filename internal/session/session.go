// Package session holds the only in-memory copy of decrypted wallet
// secrets. A session starts locked, is unlocked by password, and relocks
// either explicitly or when its auto-lock deadline passes. The deadline is
// enforced lazily: every state-reading operation compares the injected
// clock against the deadline before answering, so no background timer is
// needed and tests can drive time deterministically.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/stacksline/stacks-wallet/internal/crypto"
	"github.com/stacksline/stacks-wallet/internal/derive"
	"github.com/stacksline/stacks-wallet/internal/model"
	"github.com/stacksline/stacks-wallet/internal/store"
)

// Clock supplies the current time. Production uses time.Now.
type Clock func() time.Time

// Session is the wallet session state machine. One instance exists per
// process and is passed to every consumer; all methods are safe for
// concurrent use through a single mutex, so unlock/lock/switch never
// interleave mid-operation.
type Session struct {
	mu        sync.Mutex
	index     *store.IndexStore
	keystores *store.KeystoreStore
	clock     Clock
	autoLock  time.Duration
	network   model.Network

	// which wallet/account the next unlock targets; survives lock but
	// never a process restart
	activeWalletID string
	activeAccount  int

	// unlocked state only
	unlocked bool
	secret   model.ImportSecret
	derived  *derive.Derived
	deadline time.Time
}

// New creates a locked session. autoLock is the idle duration before the
// session relocks itself; the duration in effect at unlock time is the one
// that arms the deadline.
func New(index *store.IndexStore, keystores *store.KeystoreStore, network model.Network, autoLock time.Duration, clock Clock) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		index:     index,
		keystores: keystores,
		clock:     clock,
		autoLock:  autoLock,
		network:   network,
	}
}

// checkAutoLock forces the transition to locked once the deadline is in
// the past. Callers must hold mu.
func (s *Session) checkAutoLock() {
	if s.unlocked && s.clock().After(s.deadline) {
		s.clearLocked()
	}
}

// clearLocked wipes unlocked state. Callers must hold mu.
func (s *Session) clearLocked() {
	s.unlocked = false
	s.secret = model.ImportSecret{}
	s.derived = nil
	s.deadline = time.Time{}
}

// Unlock decrypts the target wallet's keystore with the password and loads
// the active account's key material. The target is the explicit walletID
// or, when empty, the currently active wallet. On any failure the session
// stays locked with no partial state change.
func (s *Session) Unlock(password, walletID string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.index.Load()
	if err != nil {
		return nil, err
	}

	target := walletID
	if target == "" {
		target = idx.ActiveWalletID
	}
	if target == "" {
		return nil, model.ErrNoWallets
	}

	var wallet *model.Wallet
	for i := range idx.Wallets {
		if idx.Wallets[i].ID == target {
			wallet = &idx.Wallets[i]
			break
		}
	}
	if wallet == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrWalletNotFound, target)
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

	accountIndex := wallet.DefaultAccountIndex
	if s.activeWalletID == target {
		// a switchAccount made while locked takes effect now
		accountIndex = s.activeAccount
	}

	account := findAccount(ks, accountIndex)
	if account == nil {
		return nil, fmt.Errorf("%w: index %d", model.ErrAccountNotFound, accountIndex)
	}

	derived, err := deriveFor(secret, uint32(accountIndex))
	if err != nil {
		return nil, err
	}

	s.unlocked = true
	s.secret = secret
	s.derived = derived
	s.activeWalletID = target
	s.activeAccount = accountIndex
	s.deadline = s.clock().Add(s.autoLock)

	// touch lastUsed; the unlock itself already succeeded
	if err := s.index.SetActiveWallet(target); err != nil {
		s.clearLocked()
		return nil, err
	}

	out := *account
	return &out, nil
}

// Lock clears all decrypted material immediately. Safe to call when
// already locked.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// IsUnlocked reports the session state after applying the lazy auto-lock
// check, so it can never report a stale true past the deadline.
func (s *Session) IsUnlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkAutoLock()
	return s.unlocked
}

// GetPrivateKey returns the active account's private key hex. Errors with
// the state error whenever the session is not unlocked.
func (s *Session) GetPrivateKey() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkAutoLock()
	if !s.unlocked {
		return "", model.ErrWalletLocked
	}
	return s.derived.PrivateKey, nil
}

// GetAddress returns the active account's address on the session network.
func (s *Session) GetAddress() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkAutoLock()
	if !s.unlocked {
		return "", model.ErrWalletLocked
	}
	if s.network == model.NetworkTestnet {
		return s.derived.TestnetAddress, nil
	}
	return s.derived.MainnetAddress, nil
}

// Secret returns the decrypted wallet secret while unlocked. Consumed by
// account creation and by external signing collaborators.
func (s *Session) Secret() (model.ImportSecret, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkAutoLock()
	if !s.unlocked {
		return model.ImportSecret{}, model.ErrWalletLocked
	}
	return s.secret, nil
}

// SwitchAccount changes the active account index. Permitted while locked:
// it then only selects which account the next unlock loads. While
// unlocked, the key material is re-derived for the new index.
func (s *Session) SwitchAccount(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkAutoLock()

	if index < 0 {
		return fmt.Errorf("account index must be non-negative")
	}
	if s.activeWalletID == "" {
		return model.ErrNoWallets
	}

	ks, err := s.keystores.Load(s.activeWalletID)
	if err != nil {
		return err
	}
	if findAccount(ks, index) == nil {
		return fmt.Errorf("%w: index %d", model.ErrAccountNotFound, index)
	}

	if s.unlocked {
		derived, err := deriveFor(s.secret, uint32(index))
		if err != nil {
			return err
		}
		s.derived = derived
	}
	s.activeAccount = index
	return nil
}

// SwitchWallet changes the active wallet (and optionally account index)
// for the next unlock. Also permitted while locked; switching away from an
// unlocked wallet relocks the session since the new wallet's password has
// not been presented.
func (s *Session) SwitchWallet(id string, accountIndex *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkAutoLock()

	wallet, err := s.index.GetWallet(id)
	if err != nil {
		return err
	}
	if wallet == nil {
		return fmt.Errorf("%w: %s", model.ErrWalletNotFound, id)
	}

	next := wallet.DefaultAccountIndex
	if accountIndex != nil {
		if *accountIndex < 0 {
			return fmt.Errorf("account index must be non-negative")
		}
		ks, err := s.keystores.Load(id)
		if err != nil {
			return err
		}
		if findAccount(ks, *accountIndex) == nil {
			return fmt.Errorf("%w: index %d", model.ErrAccountNotFound, *accountIndex)
		}
		next = *accountIndex
	}

	if s.unlocked && s.activeWalletID != id {
		s.clearLocked()
	}
	if s.unlocked && s.activeAccount != next {
		derived, err := deriveFor(s.secret, uint32(next))
		if err != nil {
			return err
		}
		s.derived = derived
	}

	s.activeWalletID = id
	s.activeAccount = next

	return s.index.SetActiveWallet(id)
}

// Status reports the session state for listings and diagnostics.
func (s *Session) Status() (unlocked bool, walletID string, accountIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkAutoLock()
	return s.unlocked, s.activeWalletID, s.activeAccount
}

// Network is the session's configured network.
func (s *Session) Network() model.Network {
	return s.network
}

func findAccount(ks *model.KeystoreFile, index int) *model.Account {
	for i := range ks.Accounts {
		if ks.Accounts[i].Index == index {
			return &ks.Accounts[i]
		}
	}
	return nil
}

// deriveFor resolves key material for either secret shape. Raw-key wallets
// only ever have account 0.
func deriveFor(secret model.ImportSecret, index uint32) (*derive.Derived, error) {
	switch secret.Kind {
	case model.SecretMnemonic:
		return derive.Account(secret.Value, index)
	case model.SecretRawKey:
		if index != 0 {
			return nil, fmt.Errorf("%w: raw-key wallets have a single account", model.ErrAccountNotFound)
		}
		return derive.FromRawKey(secret.Value)
	default:
		return nil, fmt.Errorf("unknown secret kind %q", secret.Kind)
	}
}
