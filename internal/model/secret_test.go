package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImportSecret(t *testing.T) {
	const mnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	const rawKey = "3b2a6f1e9c8d7b6a5f4e3d2c1b0a99887766554433221100ffeeddccbbaa9988"

	testCases := []struct {
		name      string
		raw       string
		wantKind  SecretKind
		wantValue string
		wantErr   string
	}{
		{"12-word mnemonic", mnemonic, SecretMnemonic, mnemonic, ""},
		{"mnemonic with messy whitespace", "  " + strings.ReplaceAll(mnemonic, " ", "   ") + "\n", SecretMnemonic, mnemonic, ""},
		{"raw key 64 chars", rawKey, SecretRawKey, rawKey, ""},
		{"raw key 66 chars", rawKey + "01", SecretRawKey, rawKey + "01", ""},
		{"raw key uppercased", strings.ToUpper(rawKey), SecretRawKey, rawKey, ""},
		{"empty", "", "", "", "secret cannot be empty"},
		{"blank", "   ", "", "", "secret cannot be empty"},
		{"wrong word count", "one two three", "", "", "expected 12, 15, 18, 21 or 24 words"},
		{"bad checksum", strings.Replace(mnemonic, "about", "abandon", 1), "", "", "checksum or word list mismatch"},
		{"hex wrong length", rawKey[:40], "", "", "expected 64 or 66 hex characters"},
		{"66 chars without suffix", rawKey + "ff", "", "", "expected 64 or 66 hex characters"},
		{"not hex", strings.Repeat("z", 64), "", "", "not valid hex"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseImportSecret(tc.raw)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, got.Kind)
			assert.Equal(t, tc.wantValue, got.Value)
		})
	}
}
