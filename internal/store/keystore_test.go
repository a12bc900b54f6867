package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacksline/stacks-wallet/internal/model"
)

func testKeystoreFile(walletID string) *model.KeystoreFile {
	return &model.KeystoreFile{
		Version:  model.KeystoreVersion,
		WalletID: walletID,
		Crypto: model.CryptoEnvelope{
			Cipher:       "aes-256-gcm",
			Ciphertext:   "deadbeef",
			CipherParams: model.CipherParams{IV: "00112233445566778899aabbccddeeff"},
			KDF:          "scrypt",
			KDFParams:    model.KDFParams{Salt: "ab", N: 4096, R: 8, P: 1, DKLen: 48},
			MAC:          "cafe",
		},
		Accounts: []model.Account{{
			Index:          0,
			Label:          "Account 1",
			MainnetAddress: "SPEXAMPLE",
			TestnetAddress: "STEXAMPLE",
			DerivationPath: "m/44'/5757'/0'/0/0",
		}},
	}
}

func TestKeystoreSaveLoad(t *testing.T) {
	s := NewKeystoreStore(t.TempDir())

	ks := testKeystoreFile("w1")
	require.NoError(t, s.Save(ks))

	got, err := s.Load("w1")
	require.NoError(t, err)
	assert.Equal(t, ks, got)

	// keystore files must not be world readable
	info, err := os.Stat(filepath.Join(s.dir, FileName("w1")))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestKeystoreLoadMissing(t *testing.T) {
	s := NewKeystoreStore(t.TempDir())

	_, err := s.Load("nope")
	assert.ErrorIs(t, err, model.ErrWalletNotFound)
}

func TestKeystoreWalletIDMismatch(t *testing.T) {
	dir := t.TempDir()
	s := NewKeystoreStore(dir)

	ks := testKeystoreFile("other")
	require.NoError(t, s.Save(ks))

	// rename the file so its name no longer matches the payload
	require.NoError(t, os.Rename(filepath.Join(dir, FileName("other")), filepath.Join(dir, FileName("w1"))))

	_, err := s.Load("w1")
	assert.Error(t, err)
}

func TestKeystoreDelete(t *testing.T) {
	s := NewKeystoreStore(t.TempDir())

	require.NoError(t, s.Save(testKeystoreFile("w1")))
	require.NoError(t, s.Delete("w1"))

	_, err := s.Load("w1")
	assert.ErrorIs(t, err, model.ErrWalletNotFound)
	assert.ErrorIs(t, s.Delete("w1"), model.ErrWalletNotFound)
}

func TestSaveReplacesWhole(t *testing.T) {
	s := NewKeystoreStore(t.TempDir())

	ks := testKeystoreFile("w1")
	require.NoError(t, s.Save(ks))

	ks.Accounts = append(ks.Accounts, model.Account{Index: 1, Label: "Account 2"})
	require.NoError(t, s.Save(ks))

	got, err := s.Load("w1")
	require.NoError(t, err)
	assert.Len(t, got.Accounts, 2)
}
