package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"encoding/hex"
	"fmt"

	"github.com/stacksline/stacks-wallet/internal/model"

	"golang.org/x/crypto/scrypt"
)

// DecryptSecret reverses EncryptSecret. The stored MAC is recomputed and
// compared before the cipher is touched; a MAC mismatch and a failed GCM
// tag check both surface as the same generic error so callers cannot tell
// a wrong password from a corrupted keystore.
func DecryptSecret(env model.CryptoEnvelope, password string) (string, error) {
	if env.Cipher != cipherName {
		return "", fmt.Errorf("unsupported cipher %q", env.Cipher)
	}
	if env.KDF != kdfName {
		return "", fmt.Errorf("unsupported kdf %q", env.KDF)
	}

	salt, err := hex.DecodeString(env.KDFParams.Salt)
	if err != nil {
		return "", fmt.Errorf("failed to decode salt: %w", err)
	}
	if len(salt) == 0 {
		return "", fmt.Errorf("empty salt")
	}

	iv, err := hex.DecodeString(env.CipherParams.IV)
	if err != nil {
		return "", fmt.Errorf("failed to decode iv: %w", err)
	}
	if len(iv) == 0 {
		return "", fmt.Errorf("empty iv")
	}

	ciphertext, err := hex.DecodeString(env.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	storedMAC, err := hex.DecodeString(env.MAC)
	if err != nil {
		return "", fmt.Errorf("failed to decode mac: %w", err)
	}

	p := env.KDFParams
	if p.DKLen < aesKeyLen+macKeyLen {
		return "", fmt.Errorf("dklen must be at least %d", aesKeyLen+macKeyLen)
	}

	// Derive key from password with the stored parameters
	key, err := scrypt.Key([]byte(password), salt, p.N, p.R, p.P, p.DKLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	// Early integrity check: wrong password and tampered ciphertext fail
	// here identically, before any decryption is attempted
	mac := computeMAC(key[aesKeyLen:aesKeyLen+macKeyLen], ciphertext)
	if !hmac.Equal(mac, storedMAC) {
		return "", model.ErrInvalidPassword
	}

	block, err := aes.NewCipher(key[:aesKeyLen])
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCMWithNonceSize(block, len(iv))
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := aesGCM.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", model.ErrInvalidPassword
	}

	return string(plaintext), nil
}
