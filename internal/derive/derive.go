package derive

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	bip39 "github.com/tyler-smith/go-bip39"

	"github.com/stacksline/stacks-wallet/internal/address"
)

// CoinType is the SLIP-0044 coin type for Stacks, distinguishing its
// derivation paths from other chains.
const CoinType = 5757

// Derived is the outcome of deriving one account. The mainnet and testnet
// addresses encode the same key with different version bytes - one
// identity on two networks, not two keys. PrivateKey is hex with the "01"
// compressed-key suffix used by Stacks tooling.
type Derived struct {
	Index          int
	MainnetAddress string
	TestnetAddress string
	DerivationPath string
	PrivateKey     string
}

// Account derives the account at m/44'/5757'/0'/0/<index> from a BIP39
// mnemonic. Pure: identical inputs always produce identical output.
func Account(mnemonic string, index uint32) (*Derived, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}

	seed := bip39.NewSeed(mnemonic, "")
	defer clear(seed)

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	defer master.Zero()

	// m / 44' / 5757' / 0' / 0 / index
	steps := []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + CoinType,
		hdkeychain.HardenedKeyStart + 0,
		0,
		index,
	}

	key := master
	for depth, step := range steps {
		child, err := key.Derive(step)
		if depth > 0 {
			key.Zero()
		}
		if err != nil {
			return nil, fmt.Errorf("failed to derive path step %d: %w", depth, err)
		}
		key = child
	}
	defer key.Zero()

	privKey, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to extract private key: %w", err)
	}
	defer privKey.Zero()

	mainnet, testnet, err := addressesFor(privKey.PubKey())
	if err != nil {
		return nil, err
	}

	return &Derived{
		Index:          int(index),
		MainnetAddress: mainnet,
		TestnetAddress: testnet,
		DerivationPath: fmt.Sprintf("m/44'/%d'/0'/0/%d", CoinType, index),
		PrivateKey:     hex.EncodeToString(privKey.Serialize()) + "01",
	}, nil
}

// FromRawKey computes the address pair for a raw hex private key. Raw-key
// wallets have exactly one account and no derivation path.
func FromRawKey(rawHex string) (*Derived, error) {
	s := strings.ToLower(strings.TrimSpace(rawHex))
	if len(s) == 66 && strings.HasSuffix(s, "01") {
		s = s[:64]
	}
	if len(s) != 64 {
		return nil, fmt.Errorf("invalid private key: expected 64 hex characters, got %d", len(s))
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: not valid hex")
	}
	defer clear(raw)

	privKey, _ := btcec.PrivKeyFromBytes(raw)
	defer privKey.Zero()

	mainnet, testnet, err := addressesFor(privKey.PubKey())
	if err != nil {
		return nil, err
	}

	return &Derived{
		Index:          0,
		MainnetAddress: mainnet,
		TestnetAddress: testnet,
		DerivationPath: "",
		PrivateKey:     s + "01",
	}, nil
}

// addressesFor hashes the compressed public key and encodes it under both
// network version bytes.
func addressesFor(pubKey *btcec.PublicKey) (mainnet, testnet string, err error) {
	h160 := btcutil.Hash160(pubKey.SerializeCompressed())

	mainnet, err = address.EncodeC32Check(address.VersionMainnet, h160)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode mainnet address: %w", err)
	}

	testnet, err = address.EncodeC32Check(address.VersionTestnet, h160)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode testnet address: %w", err)
	}

	return mainnet, testnet, nil
}
