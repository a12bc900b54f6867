package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"

	"github.com/stacksline/stacks-wallet/internal/model"
)

// Config contains all configuration parameters for the application.
type Config struct {
	Port            string `envconfig:"PORT" default:"8080"`
	Network         string `envconfig:"STACKS_NETWORK" default:"mainnet"`
	WalletDir       string `envconfig:"WALLET_DIR" default:""`
	AutoLockMinutes int    `envconfig:"AUTO_LOCK_MINUTES" default:"15"`
	HiroMainnetURL  string `envconfig:"HIRO_MAINNET_URL" default:"https://api.hiro.so"`
	HiroTestnetURL  string `envconfig:"HIRO_TESTNET_URL" default:"https://api.testnet.hiro.so"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if !model.Network(cfg.Network).Valid() {
		return fmt.Errorf("STACKS_NETWORK must be mainnet or testnet, got %q", cfg.Network)
	}
	if cfg.AutoLockMinutes <= 0 {
		return errors.New("AUTO_LOCK_MINUTES must be positive")
	}
	if cfg.WalletDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.WalletDir = filepath.Join(home, ".stacks-wallet")
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetNetwork returns the configured default network
func GetNetwork() model.Network {
	return model.Network(Get().Network)
}

// GetWalletDir returns the directory holding the index and keystore files
func GetWalletDir() string {
	return Get().WalletDir
}

// GetIndexPath returns the wallet index file path
func GetIndexPath() string {
	return filepath.Join(Get().WalletDir, "index.json")
}

// GetKeystoreDir returns the directory holding encrypted keystore files
func GetKeystoreDir() string {
	return filepath.Join(Get().WalletDir, "keystores")
}

// GetAutoLockMinutes returns the session auto-lock duration in minutes
func GetAutoLockMinutes() int {
	return Get().AutoLockMinutes
}

// GetHiroURL returns the Hiro API base URL for a network
func GetHiroURL(network model.Network) string {
	if network == model.NetworkTestnet {
		return Get().HiroTestnetURL
	}
	return Get().HiroMainnetURL
}

// PromptForPassword prompts the user for a wallet password in the terminal.
// The password is read without echoing (hidden input).
func PromptForPassword(prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("stdin is not a terminal: run the command interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return "", errors.New("password cannot be empty")
	}

	password := string(raw)
	clear(raw)
	return password, nil
}
