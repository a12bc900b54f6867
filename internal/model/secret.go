package model

import (
	"encoding/hex"
	"fmt"
	"strings"

	bip39 "github.com/tyler-smith/go-bip39"
)

// SecretKind tags what shape of secret a wallet was created from.
type SecretKind string

const (
	SecretMnemonic SecretKind = "mnemonic"
	SecretRawKey   SecretKind = "rawKey"
)

// ImportSecret is a classified wallet secret. The kind is decided once at
// the boundary (word count vs hex shape) so downstream code never has to
// re-sniff the value.
type ImportSecret struct {
	Kind  SecretKind
	Value string
}

// ParseImportSecret classifies a user-supplied secret as a BIP39 mnemonic
// or a raw hex private key. Raw keys are 64 hex chars, optionally with the
// "01" compression suffix (66 chars) used by Stacks tooling.
func ParseImportSecret(raw string) (ImportSecret, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ImportSecret{}, fmt.Errorf("secret cannot be empty")
	}

	words := strings.Fields(s)
	if len(words) > 1 {
		switch len(words) {
		case 12, 15, 18, 21, 24:
			// normalize whitespace before validating
			mnemonic := strings.Join(words, " ")
			if !bip39.IsMnemonicValid(mnemonic) {
				return ImportSecret{}, fmt.Errorf("invalid mnemonic: checksum or word list mismatch")
			}
			return ImportSecret{Kind: SecretMnemonic, Value: mnemonic}, nil
		default:
			return ImportSecret{}, fmt.Errorf("invalid mnemonic: expected 12, 15, 18, 21 or 24 words, got %d", len(words))
		}
	}

	if len(s) != 64 && !(len(s) == 66 && strings.HasSuffix(s, "01")) {
		return ImportSecret{}, fmt.Errorf("invalid private key: expected 64 or 66 hex characters, got %d", len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		return ImportSecret{}, fmt.Errorf("invalid private key: not valid hex")
	}
	return ImportSecret{Kind: SecretRawKey, Value: strings.ToLower(s)}, nil
}
