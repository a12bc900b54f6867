package session

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacksline/stacks-wallet/internal/crypto"
	"github.com/stacksline/stacks-wallet/internal/derive"
	"github.com/stacksline/stacks-wallet/internal/model"
	"github.com/stacksline/stacks-wallet/internal/store"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testPassword = "correct-horse-battery"
	testAutoLock = 15 * time.Minute
)

var testParams = crypto.Params{N: 1 << 12, R: 8, P: 1, DKLen: 48}

type fixture struct {
	index     *store.IndexStore
	keystores *store.KeystoreStore
	session   *Session
	now       time.Time
}

// newFixture builds a locked session over empty stores with a controllable
// clock. Advance time through f.advance.
func newFixture(t *testing.T, network model.Network) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		index:     store.NewIndexStore(filepath.Join(dir, "index.json")),
		keystores: store.NewKeystoreStore(filepath.Join(dir, "keystores")),
		now:       time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
	}
	f.session = New(f.index, f.keystores, network, testAutoLock, func() time.Time { return f.now })
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// addWallet registers a mnemonic wallet with the given number of derived
// accounts, encrypted under testPassword.
func (f *fixture) addWallet(t *testing.T, id string, accounts int) {
	t.Helper()

	ks := &model.KeystoreFile{
		Version:  model.KeystoreVersion,
		WalletID: id,
	}
	for i := 0; i < accounts; i++ {
		d, err := derive.Account(testMnemonic, uint32(i))
		require.NoError(t, err)
		ks.Accounts = append(ks.Accounts, model.Account{
			Index:          i,
			Label:          "Account",
			MainnetAddress: d.MainnetAddress,
			TestnetAddress: d.TestnetAddress,
			DerivationPath: d.DerivationPath,
		})
	}

	env, err := crypto.EncryptSecret(testMnemonic, testPassword, testParams)
	require.NoError(t, err)
	ks.Crypto = env
	require.NoError(t, f.keystores.Save(ks))

	now := f.now.Format(time.RFC3339)
	require.NoError(t, f.index.AddWallet(model.Wallet{
		ID:               id,
		Label:            id,
		CreatedAt:        now,
		LastUsed:         now,
		AccountCount:     accounts,
		KeystoreFileName: store.FileName(id),
	}))
}

func TestUnlockLifecycle(t *testing.T) {
	f := newFixture(t, model.NetworkMainnet)
	f.addWallet(t, "w1", 1)

	assert.False(t, f.session.IsUnlocked())
	_, err := f.session.GetPrivateKey()
	assert.ErrorIs(t, err, model.ErrWalletLocked)
	_, err = f.session.GetAddress()
	assert.ErrorIs(t, err, model.ErrWalletLocked)
	_, err = f.session.Secret()
	assert.ErrorIs(t, err, model.ErrWalletLocked)

	account, err := f.session.Unlock(testPassword, "")
	require.NoError(t, err)
	assert.Equal(t, 0, account.Index)
	assert.True(t, f.session.IsUnlocked())

	key, err := f.session.GetPrivateKey()
	require.NoError(t, err)
	assert.Len(t, key, 66)
	assert.True(t, strings.HasSuffix(key, "01"))

	addr, err := f.session.GetAddress()
	require.NoError(t, err)
	assert.Equal(t, account.MainnetAddress, addr)

	f.session.Lock()
	assert.False(t, f.session.IsUnlocked())
	_, err = f.session.GetPrivateKey()
	assert.ErrorIs(t, err, model.ErrWalletLocked)
}

func TestUnlockWrongPassword(t *testing.T) {
	f := newFixture(t, model.NetworkMainnet)
	f.addWallet(t, "w1", 1)

	_, err := f.session.Unlock("wrong-pass-word", "")
	assert.ErrorIs(t, err, model.ErrInvalidPassword)
	assert.False(t, f.session.IsUnlocked())
}

func TestUnlockNoWallets(t *testing.T) {
	f := newFixture(t, model.NetworkMainnet)

	_, err := f.session.Unlock(testPassword, "")
	assert.ErrorIs(t, err, model.ErrNoWallets)
}

func TestUnlockUnknownWallet(t *testing.T) {
	f := newFixture(t, model.NetworkMainnet)
	f.addWallet(t, "w1", 1)

	_, err := f.session.Unlock(testPassword, "nope")
	assert.ErrorIs(t, err, model.ErrWalletNotFound)
}

func TestAutoLockDeadline(t *testing.T) {
	f := newFixture(t, model.NetworkMainnet)
	f.addWallet(t, "w1", 1)

	_, err := f.session.Unlock(testPassword, "")
	require.NoError(t, err)

	f.advance(testAutoLock - time.Second)
	assert.True(t, f.session.IsUnlocked())

	f.advance(2 * time.Second)
	assert.False(t, f.session.IsUnlocked())
	_, err = f.session.GetPrivateKey()
	assert.ErrorIs(t, err, model.ErrWalletLocked)
}

func TestReadsDoNotExtendDeadline(t *testing.T) {
	f := newFixture(t, model.NetworkMainnet)
	f.addWallet(t, "w1", 1)

	_, err := f.session.Unlock(testPassword, "")
	require.NoError(t, err)

	f.advance(testAutoLock / 2)
	_, err = f.session.GetPrivateKey()
	require.NoError(t, err)

	// the deadline armed at unlock still applies
	f.advance(testAutoLock/2 + time.Second)
	assert.False(t, f.session.IsUnlocked())
}

func TestUnlockReArmsDeadline(t *testing.T) {
	f := newFixture(t, model.NetworkMainnet)
	f.addWallet(t, "w1", 1)

	_, err := f.session.Unlock(testPassword, "")
	require.NoError(t, err)

	f.advance(testAutoLock + time.Minute)
	assert.False(t, f.session.IsUnlocked())

	_, err = f.session.Unlock(testPassword, "")
	require.NoError(t, err)
	f.advance(testAutoLock - time.Second)
	assert.True(t, f.session.IsUnlocked())
}

func TestSwitchAccountWhileUnlocked(t *testing.T) {
	f := newFixture(t, model.NetworkMainnet)
	f.addWallet(t, "w1", 2)

	_, err := f.session.Unlock(testPassword, "")
	require.NoError(t, err)

	require.NoError(t, f.session.SwitchAccount(1))
	assert.True(t, f.session.IsUnlocked())

	want, err := derive.Account(testMnemonic, 1)
	require.NoError(t, err)
	addr, err := f.session.GetAddress()
	require.NoError(t, err)
	assert.Equal(t, want.MainnetAddress, addr)
}

func TestSwitchAccountWhileLocked(t *testing.T) {
	f := newFixture(t, model.NetworkMainnet)
	f.addWallet(t, "w1", 2)

	// establish w1 as the session's wallet, then lock
	_, err := f.session.Unlock(testPassword, "")
	require.NoError(t, err)
	f.session.Lock()

	require.NoError(t, f.session.SwitchAccount(1))
	assert.False(t, f.session.IsUnlocked())

	// the selection takes effect on the next unlock
	account, err := f.session.Unlock(testPassword, "")
	require.NoError(t, err)
	assert.Equal(t, 1, account.Index)
}

func TestSwitchAccountUnknownIndex(t *testing.T) {
	f := newFixture(t, model.NetworkMainnet)
	f.addWallet(t, "w1", 1)

	_, err := f.session.Unlock(testPassword, "")
	require.NoError(t, err)

	assert.ErrorIs(t, f.session.SwitchAccount(5), model.ErrAccountNotFound)
	assert.Error(t, f.session.SwitchAccount(-1))
}

func TestSwitchWalletRelocks(t *testing.T) {
	f := newFixture(t, model.NetworkMainnet)
	f.addWallet(t, "w1", 1)
	f.addWallet(t, "w2", 1)

	_, err := f.session.Unlock(testPassword, "w1")
	require.NoError(t, err)

	require.NoError(t, f.session.SwitchWallet("w2", nil))
	assert.False(t, f.session.IsUnlocked())

	idx, err := f.index.Load()
	require.NoError(t, err)
	assert.Equal(t, "w2", idx.ActiveWalletID)

	_, walletID, _ := f.session.Status()
	assert.Equal(t, "w2", walletID)
}

func TestSwitchWalletSameWalletStaysUnlocked(t *testing.T) {
	f := newFixture(t, model.NetworkMainnet)
	f.addWallet(t, "w1", 2)

	_, err := f.session.Unlock(testPassword, "w1")
	require.NoError(t, err)

	one := 1
	require.NoError(t, f.session.SwitchWallet("w1", &one))
	assert.True(t, f.session.IsUnlocked())

	want, err := derive.Account(testMnemonic, 1)
	require.NoError(t, err)
	addr, err := f.session.GetAddress()
	require.NoError(t, err)
	assert.Equal(t, want.MainnetAddress, addr)
}

func TestSwitchWalletUnknown(t *testing.T) {
	f := newFixture(t, model.NetworkMainnet)
	f.addWallet(t, "w1", 1)

	assert.ErrorIs(t, f.session.SwitchWallet("nope", nil), model.ErrWalletNotFound)
}

func TestGetAddressTestnet(t *testing.T) {
	f := newFixture(t, model.NetworkTestnet)
	f.addWallet(t, "w1", 1)

	account, err := f.session.Unlock(testPassword, "")
	require.NoError(t, err)

	addr, err := f.session.GetAddress()
	require.NoError(t, err)
	assert.Equal(t, account.TestnetAddress, addr)
	assert.True(t, strings.HasPrefix(addr, "ST"))
}
