package address

import (
	"strings"

	"github.com/stacksline/stacks-wallet/internal/model"
)

// DetectNetwork maps an address prefix to its network so callers reach the
// correct backend regardless of the configured default. SP/SM are mainnet,
// ST/SN are testnet; anything else falls back to the supplied default.
// Every operation that accepts an arbitrary address parameter must go
// through this before picking an endpoint.
func DetectNetwork(addr string, fallback model.Network) model.Network {
	switch {
	case strings.HasPrefix(addr, "SP"), strings.HasPrefix(addr, "SM"):
		return model.NetworkMainnet
	case strings.HasPrefix(addr, "ST"), strings.HasPrefix(addr, "SN"):
		return model.NetworkTestnet
	default:
		return fallback
	}
}

// IsValid reports whether addr parses and checksums as a c32check address.
func IsValid(addr string) bool {
	_, _, err := DecodeC32Check(addr)
	return err == nil
}
