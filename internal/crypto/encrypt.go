package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/stacksline/stacks-wallet/internal/model"

	"golang.org/x/crypto/scrypt"
	"golang.org/x/crypto/sha3"
)

const (
	// scrypt parameters for local keystores
	// Security is prioritized over performance
	//
	// N=2^18 (~256MB RAM, 0.5-2s) - optimal balance:
	//   - Maximum security while remaining compatible with mobile devices
	//   - Works on phones (4-16GB RAM) and desktops alike
	//   - Brute-force attacks remain extremely expensive
	//
	// Note: N=2^20 (~1GB) offers the highest security but fails on mobile due to
	// Android memory limits per app (~256-512MB typically)
	scryptN = 1 << 18
	scryptR = 8
	scryptP = 1

	// dklen 48: bytes 0..31 are the AES-256 key, bytes 32..47 feed the MAC
	scryptDKLen = 48

	saltLen = 32
	ivLen   = 16

	cipherName = "aes-256-gcm"
	kdfName    = "scrypt"
)

// Params are the tunable scrypt cost parameters. They are recorded in the
// envelope so decryption reproduces the derivation exactly.
type Params struct {
	N     int
	R     int
	P     int
	DKLen int
}

// DefaultParams is the production cost profile.
var DefaultParams = Params{N: scryptN, R: scryptR, P: scryptP, DKLen: scryptDKLen}

const aesKeyLen = 32

// EncryptSecret encrypts a plaintext secret (mnemonic or raw key) under a
// password into a tamper-evident envelope. Salt and IV are freshly random
// on every call; the returned envelope never contains the password or the
// derived key.
func EncryptSecret(secret, password string, params Params) (model.CryptoEnvelope, error) {
	if secret == "" {
		return model.CryptoEnvelope{}, fmt.Errorf("secret cannot be empty")
	}
	if password == "" {
		return model.CryptoEnvelope{}, fmt.Errorf("password cannot be empty")
	}
	if params.DKLen < aesKeyLen+macKeyLen {
		return model.CryptoEnvelope{}, fmt.Errorf("dklen must be at least %d", aesKeyLen+macKeyLen)
	}

	// Generate salt and IV
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return model.CryptoEnvelope{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	iv := make([]byte, ivLen)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return model.CryptoEnvelope{}, fmt.Errorf("failed to generate iv: %w", err)
	}

	// Derive key from password
	key, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return model.CryptoEnvelope{}, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key[:aesKeyLen])
	if err != nil {
		return model.CryptoEnvelope{}, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCMWithNonceSize(block, ivLen)
	if err != nil {
		return model.CryptoEnvelope{}, fmt.Errorf("failed to create GCM: %w", err)
	}

	// Ciphertext carries the GCM tag at the end
	ciphertext := aesGCM.Seal(nil, iv, []byte(secret), nil)

	// Secondary integrity value over the tail of the derived key plus the
	// ciphertext, checked on decrypt before any cipher work
	mac := computeMAC(key[aesKeyLen:aesKeyLen+macKeyLen], ciphertext)

	return model.CryptoEnvelope{
		Cipher:       cipherName,
		Ciphertext:   hex.EncodeToString(ciphertext),
		CipherParams: model.CipherParams{IV: hex.EncodeToString(iv)},
		KDF:          kdfName,
		KDFParams: model.KDFParams{
			Salt:  hex.EncodeToString(salt),
			N:     params.N,
			R:     params.R,
			P:     params.P,
			DKLen: params.DKLen,
		},
		MAC: hex.EncodeToString(mac),
	}, nil
}

const macKeyLen = 16

// computeMAC is SHA3-256 over macKey || ciphertext, the same shape the
// go-ethereum keystore uses for its early integrity check.
func computeMAC(macKey, ciphertext []byte) []byte {
	h := sha3.New256()
	h.Write(macKey)
	h.Write(ciphertext)
	return h.Sum(nil)
}
