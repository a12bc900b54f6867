package model

// Network identifies which Stacks network an address or endpoint belongs to.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

// Valid reports whether the network is one of the two known values.
func (n Network) Valid() bool {
	return n == NetworkMainnet || n == NetworkTestnet
}

// Wallet is the public metadata for one mnemonic-derived identity.
// The id is assigned at creation and never changes.
type Wallet struct {
	ID                  string `json:"id"`
	Label               string `json:"label"`
	CreatedAt           string `json:"createdAt"`
	LastUsed            string `json:"lastUsed"`
	AccountCount        int    `json:"accountCount"`
	DefaultAccountIndex int    `json:"defaultAccountIndex"`
	KeystoreFileName    string `json:"keystoreFileName"`
}

// WalletIndex is the process-wide registry of wallets. ActiveWalletID is
// empty when no wallet exists. Migrated records the one-time upgrade from
// the legacy single-wallet file layout.
type WalletIndex struct {
	Version        int      `json:"version"`
	Wallets        []Wallet `json:"wallets"`
	ActiveWalletID string   `json:"activeWalletId"`
	Migrated       bool     `json:"migrated"`
	MigratedAt     string   `json:"migratedAt,omitempty"`
}

// Account is one derived key-pair identity within a wallet. Only public
// data lives here; private keys are derived on demand while unlocked.
type Account struct {
	Index          int    `json:"index"`
	Label          string `json:"label"`
	MainnetAddress string `json:"mainnetAddress"`
	TestnetAddress string `json:"testnetAddress"`
	CreatedAt      string `json:"createdAt"`
	DerivationPath string `json:"derivationPath"`
}
