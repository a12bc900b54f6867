package model

// KDFParams are the scrypt parameters stored next to the ciphertext so
// decryption can reproduce the key derivation.
type KDFParams struct {
	Salt  string `json:"salt"` // hex
	N     int    `json:"n"`
	R     int    `json:"r"`
	P     int    `json:"p"`
	DKLen int    `json:"dklen"`
}

// CipherParams holds cipher inputs that are safe to store in the clear.
type CipherParams struct {
	IV string `json:"iv"` // hex
}

// CryptoEnvelope is the tamper-evident container for one encrypted secret.
// Ciphertext includes the GCM authentication tag; MAC is a secondary
// integrity value checked before any decryption is attempted.
type CryptoEnvelope struct {
	Cipher       string       `json:"cipher"`
	Ciphertext   string       `json:"ciphertext"` // hex, ciphertext||tag
	CipherParams CipherParams `json:"cipherparams"`
	KDF          string       `json:"kdf"`
	KDFParams    KDFParams    `json:"kdfparams"`
	MAC          string       `json:"mac"` // hex
}

// KeystoreFile is the persisted at-rest form of one wallet: the encrypted
// secret plus public metadata for every derived account.
type KeystoreFile struct {
	Version  int            `json:"version"`
	WalletID string         `json:"walletId"`
	Crypto   CryptoEnvelope `json:"crypto"`
	Accounts []Account      `json:"accounts"`
}

// KeystoreVersion is the current on-disk keystore format version.
const KeystoreVersion = 1

// IndexVersion is the current on-disk wallet index format version.
const IndexVersion = 1
