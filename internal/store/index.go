package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/stacksline/stacks-wallet/internal/model"
)

// IndexStore is the registry of wallet metadata, independent of any secret
// material. All operations load the full index, mutate in memory and write
// the whole file back.
type IndexStore struct {
	path string
}

// NewIndexStore creates a store backed by the given index file path.
func NewIndexStore(path string) *IndexStore {
	return &IndexStore{path: path}
}

// Load reads the index, returning an empty well-formed one on first run.
func (s *IndexStore) Load() (*model.WalletIndex, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.WalletIndex{Version: model.IndexVersion, Wallets: []model.Wallet{}, Migrated: true}, nil
		}
		return nil, fmt.Errorf("failed to read wallet index: %w", err)
	}

	var idx model.WalletIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet index: %w", err)
	}
	if idx.Wallets == nil {
		idx.Wallets = []model.Wallet{}
	}
	return &idx, nil
}

func (s *IndexStore) save(idx *model.WalletIndex) error {
	data, err := marshalIndent(idx)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, data)
}

// AddWallet registers a new wallet. The first wallet in a previously empty
// index becomes active automatically.
func (s *IndexStore) AddWallet(w model.Wallet) error {
	idx, err := s.Load()
	if err != nil {
		return err
	}

	for _, existing := range idx.Wallets {
		if existing.ID == w.ID {
			return fmt.Errorf("%w: %s", model.ErrDuplicateWallet, w.ID)
		}
	}

	wasEmpty := len(idx.Wallets) == 0
	idx.Wallets = append(idx.Wallets, w)
	if wasEmpty {
		idx.ActiveWalletID = w.ID
	}
	return s.save(idx)
}

// RemoveWallet drops a wallet. If it was active, the active pointer moves
// to a remaining wallet, or clears if none remain.
func (s *IndexStore) RemoveWallet(id string) error {
	idx, err := s.Load()
	if err != nil {
		return err
	}

	pos := -1
	for i, w := range idx.Wallets {
		if w.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return fmt.Errorf("%w: %s", model.ErrWalletNotFound, id)
	}

	idx.Wallets = append(idx.Wallets[:pos], idx.Wallets[pos+1:]...)
	if idx.ActiveWalletID == id {
		if len(idx.Wallets) > 0 {
			idx.ActiveWalletID = idx.Wallets[0].ID
		} else {
			idx.ActiveWalletID = ""
		}
	}
	return s.save(idx)
}

// UpdateWallet applies a mutation to one wallet. The id is immutable: any
// change the mutator makes to it is discarded.
func (s *IndexStore) UpdateWallet(id string, mutate func(*model.Wallet)) error {
	idx, err := s.Load()
	if err != nil {
		return err
	}

	for i := range idx.Wallets {
		if idx.Wallets[i].ID == id {
			mutate(&idx.Wallets[i])
			idx.Wallets[i].ID = id
			return s.save(idx)
		}
	}
	return fmt.Errorf("%w: %s", model.ErrWalletNotFound, id)
}

// SetActiveWallet marks a wallet active and stamps its lastUsed time.
func (s *IndexStore) SetActiveWallet(id string) error {
	idx, err := s.Load()
	if err != nil {
		return err
	}

	for i := range idx.Wallets {
		if idx.Wallets[i].ID == id {
			idx.Wallets[i].LastUsed = time.Now().Format(time.RFC3339)
			idx.ActiveWalletID = id
			return s.save(idx)
		}
	}
	return fmt.Errorf("%w: %s", model.ErrWalletNotFound, id)
}

// GetWallet returns the wallet with the given id, or nil when absent.
func (s *IndexStore) GetWallet(id string) (*model.Wallet, error) {
	idx, err := s.Load()
	if err != nil {
		return nil, err
	}

	for i := range idx.Wallets {
		if idx.Wallets[i].ID == id {
			w := idx.Wallets[i]
			return &w, nil
		}
	}
	return nil, nil
}

// GetWalletByLabel returns the first wallet whose label matches
// case-insensitively, or nil when absent.
func (s *IndexStore) GetWalletByLabel(label string) (*model.Wallet, error) {
	idx, err := s.Load()
	if err != nil {
		return nil, err
	}

	for i := range idx.Wallets {
		if strings.EqualFold(idx.Wallets[i].Label, label) {
			w := idx.Wallets[i]
			return &w, nil
		}
	}
	return nil, nil
}
