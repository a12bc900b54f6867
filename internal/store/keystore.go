package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stacksline/stacks-wallet/internal/model"
)

// KeystoreStore reads and writes the per-wallet encrypted keystore files.
type KeystoreStore struct {
	dir string
}

// NewKeystoreStore creates a store rooted at the given directory.
func NewKeystoreStore(dir string) *KeystoreStore {
	return &KeystoreStore{dir: dir}
}

// FileName is the keystore file name for a wallet id.
func FileName(walletID string) string {
	return walletID + ".json"
}

func (s *KeystoreStore) path(walletID string) string {
	return filepath.Join(s.dir, FileName(walletID))
}

// Save writes the keystore file, replacing any previous version whole.
func (s *KeystoreStore) Save(ks *model.KeystoreFile) error {
	if ks.WalletID == "" {
		return fmt.Errorf("keystore wallet id cannot be empty")
	}
	data, err := marshalIndent(ks)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path(ks.WalletID), data)
}

// Load reads and parses the keystore for a wallet id.
func (s *KeystoreStore) Load(walletID string) (*model.KeystoreFile, error) {
	data, err := os.ReadFile(s.path(walletID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", model.ErrWalletNotFound, walletID)
		}
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}

	var ks model.KeystoreFile
	if err := json.Unmarshal(data, &ks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keystore: %w", err)
	}
	if ks.WalletID != walletID {
		return nil, fmt.Errorf("keystore wallet id mismatch: file holds %q", ks.WalletID)
	}
	return &ks, nil
}

// Delete removes the keystore file for a wallet id.
func (s *KeystoreStore) Delete(walletID string) error {
	if err := os.Remove(s.path(walletID)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", model.ErrWalletNotFound, walletID)
		}
		return fmt.Errorf("failed to delete keystore: %w", err)
	}
	return nil
}
