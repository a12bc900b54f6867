package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacksline/stacks-wallet/internal/model"
)

func testHash160() []byte {
	h := make([]byte, 20)
	for i := range h {
		h[i] = byte(i * 7)
	}
	return h
}

func TestEncodeC32CheckPrefixes(t *testing.T) {
	h := testHash160()

	mainnet, err := EncodeC32Check(VersionMainnet, h)
	require.NoError(t, err)
	assert.Equal(t, "SP", mainnet[:2])

	testnet, err := EncodeC32Check(VersionTestnet, h)
	require.NoError(t, err)
	assert.Equal(t, "ST", testnet[:2])

	// same hash, different version: the bodies differ only through the
	// version-dependent checksum
	assert.NotEqual(t, mainnet, testnet)
}

func TestEncodeC32CheckDeterministic(t *testing.T) {
	h := testHash160()

	a, err := EncodeC32Check(VersionMainnet, h)
	require.NoError(t, err)
	b, err := EncodeC32Check(VersionMainnet, h)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecodeC32CheckRoundTrip(t *testing.T) {
	hashes := [][]byte{
		testHash160(),
		make([]byte, 20),                    // all zero: leading-zero handling
		append([]byte{0, 0, 0}, testHash160()[:17]...), // leading zeros
	}

	for _, h := range hashes {
		for _, version := range []byte{VersionMainnet, VersionTestnet} {
			addr, err := EncodeC32Check(version, h)
			require.NoError(t, err)

			gotVersion, gotHash, err := DecodeC32Check(addr)
			require.NoError(t, err, "address %s", addr)
			assert.Equal(t, version, gotVersion)
			assert.Equal(t, h, gotHash)
		}
	}
}

func TestDecodeC32CheckRejectsTampering(t *testing.T) {
	addr, err := EncodeC32Check(VersionMainnet, testHash160())
	require.NoError(t, err)

	// flip one payload character to a different alphabet character
	mid := len(addr) / 2
	replacement := byte('7')
	if addr[mid] == replacement {
		replacement = '9'
	}
	tampered := addr[:mid] + string(replacement) + addr[mid+1:]

	_, _, err = DecodeC32Check(tampered)
	assert.Error(t, err)
}

func TestDecodeC32CheckRejectsGarbage(t *testing.T) {
	for _, addr := range []string{"", "S", "XP000", "SPl1nva!d", "SP"} {
		_, _, err := DecodeC32Check(addr)
		assert.Error(t, err, "address %q", addr)
	}
}

func TestEncodeC32CheckValidatesInput(t *testing.T) {
	_, err := EncodeC32Check(VersionMainnet, []byte{1, 2, 3})
	assert.Error(t, err)

	_, err = EncodeC32Check(99, testHash160())
	assert.Error(t, err)
}

func TestDetectNetwork(t *testing.T) {
	testCases := []struct {
		name     string
		addr     string
		fallback model.Network
		want     model.Network
	}{
		{"testnet address on mainnet default", "ST3YF2YMAGQPRTDDGV5161KBPSK4PX9TZ2NKRZ3S0", model.NetworkMainnet, model.NetworkTestnet},
		{"mainnet address on testnet default", "SP3YF2YMAGQPRTDDGV5161KBPSK4PX9TZ2NKRZ3S0", model.NetworkTestnet, model.NetworkMainnet},
		{"multisig mainnet", "SM1ABCDEF", model.NetworkTestnet, model.NetworkMainnet},
		{"multisig testnet", "SN1ABCDEF", model.NetworkMainnet, model.NetworkTestnet},
		{"unknown prefix falls back to mainnet", "1BoatSLRHtKNngkdXEeobR76b53LETtpyT", model.NetworkMainnet, model.NetworkMainnet},
		{"unknown prefix falls back to testnet", "0x1234", model.NetworkTestnet, model.NetworkTestnet},
		{"empty string", "", model.NetworkMainnet, model.NetworkMainnet},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectNetwork(tc.addr, tc.fallback))
		})
	}
}
