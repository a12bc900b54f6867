package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacksline/stacks-wallet/internal/model"
)

func newTestIndex(t *testing.T) *IndexStore {
	t.Helper()
	return NewIndexStore(filepath.Join(t.TempDir(), "index.json"))
}

func testWallet(id, label string) model.Wallet {
	now := time.Now().Format(time.RFC3339)
	return model.Wallet{
		ID:               id,
		Label:            label,
		CreatedAt:        now,
		LastUsed:         now,
		AccountCount:     1,
		KeystoreFileName: FileName(id),
	}
}

func TestLoadEmptyIndex(t *testing.T) {
	s := newTestIndex(t)

	idx, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, idx.Wallets)
	assert.Empty(t, idx.ActiveWalletID)
	assert.Equal(t, model.IndexVersion, idx.Version)
}

func TestAddFirstWalletBecomesActive(t *testing.T) {
	s := newTestIndex(t)

	require.NoError(t, s.AddWallet(testWallet("w1", "Main")))

	idx, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "w1", idx.ActiveWalletID)

	// a second wallet does not steal the active pointer
	require.NoError(t, s.AddWallet(testWallet("w2", "Backup")))
	idx, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "w1", idx.ActiveWalletID)
	assert.Len(t, idx.Wallets, 2)
}

func TestAddDuplicateID(t *testing.T) {
	s := newTestIndex(t)

	require.NoError(t, s.AddWallet(testWallet("w1", "Main")))
	err := s.AddWallet(testWallet("w1", "Clone"))
	assert.ErrorIs(t, err, model.ErrDuplicateWallet)
}

func TestRemoveActiveWalletMovesPointer(t *testing.T) {
	s := newTestIndex(t)

	require.NoError(t, s.AddWallet(testWallet("w1", "Main")))
	require.NoError(t, s.AddWallet(testWallet("w2", "Backup")))

	require.NoError(t, s.RemoveWallet("w1"))
	idx, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "w2", idx.ActiveWalletID)

	// removing the last wallet clears the pointer
	require.NoError(t, s.RemoveWallet("w2"))
	idx, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, idx.ActiveWalletID)
	assert.Empty(t, idx.Wallets)
}

func TestRemoveMissingWallet(t *testing.T) {
	s := newTestIndex(t)
	assert.ErrorIs(t, s.RemoveWallet("nope"), model.ErrWalletNotFound)
}

func TestUpdateWalletIDImmutable(t *testing.T) {
	s := newTestIndex(t)
	require.NoError(t, s.AddWallet(testWallet("w1", "Main")))

	require.NoError(t, s.UpdateWallet("w1", func(w *model.Wallet) {
		w.ID = "evil"
		w.Label = "Renamed"
	}))

	w, err := s.GetWallet("w1")
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "w1", w.ID)
	assert.Equal(t, "Renamed", w.Label)

	assert.ErrorIs(t, s.UpdateWallet("nope", func(w *model.Wallet) {}), model.ErrWalletNotFound)
}

func TestSetActiveWalletTouchesLastUsed(t *testing.T) {
	s := newTestIndex(t)

	w := testWallet("w1", "Main")
	w.LastUsed = "2020-01-01T00:00:00Z"
	require.NoError(t, s.AddWallet(w))
	require.NoError(t, s.AddWallet(testWallet("w2", "Backup")))

	require.NoError(t, s.SetActiveWallet("w1"))

	idx, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "w1", idx.ActiveWalletID)

	got, err := s.GetWallet("w1")
	require.NoError(t, err)
	assert.NotEqual(t, "2020-01-01T00:00:00Z", got.LastUsed)

	assert.ErrorIs(t, s.SetActiveWallet("nope"), model.ErrWalletNotFound)
}

func TestGetWalletMissingReturnsNil(t *testing.T) {
	s := newTestIndex(t)

	w, err := s.GetWallet("nope")
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestGetWalletByLabelCaseInsensitive(t *testing.T) {
	s := newTestIndex(t)
	require.NoError(t, s.AddWallet(testWallet("w1", "Savings")))

	w, err := s.GetWalletByLabel("sAvInGs")
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "w1", w.ID)

	w, err = s.GetWalletByLabel("checking")
	require.NoError(t, err)
	assert.Nil(t, w)
}
