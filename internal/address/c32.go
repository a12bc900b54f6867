package address

import (
	"crypto/sha256"
	"fmt"
	"math/big"
	"strings"
)

// c32 is Crockford-style base32: no I, L, O or U.
const c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// Single-sig address version bytes. The version's c32 character is the
// second character of the printed address: 'P' for mainnet, 'T' for testnet.
const (
	VersionMainnet byte = 22
	VersionTestnet byte = 26
)

const hash160Len = 20

// EncodeC32Check encodes a 20-byte public key hash into a printed Stacks
// address: 'S' + version char + c32(hash160 || checksum), where checksum is
// the first 4 bytes of SHA256(SHA256(version || hash160)).
func EncodeC32Check(version byte, hash160 []byte) (string, error) {
	if len(hash160) != hash160Len {
		return "", fmt.Errorf("hash160 must be %d bytes, got %d", hash160Len, len(hash160))
	}
	if int(version) >= len(c32Alphabet) {
		return "", fmt.Errorf("version byte %d out of range", version)
	}

	payload := append([]byte{version}, hash160...)
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	checksum := second[:4]

	data := make([]byte, 0, hash160Len+4)
	data = append(data, hash160...)
	data = append(data, checksum...)

	return "S" + string(c32Alphabet[version]) + c32Encode(data), nil
}

// DecodeC32Check reverses EncodeC32Check, verifying the checksum.
func DecodeC32Check(addr string) (version byte, hash160 []byte, err error) {
	if len(addr) < 3 || addr[0] != 'S' {
		return 0, nil, fmt.Errorf("invalid address: must start with 'S'")
	}

	idx := strings.IndexByte(c32Alphabet, addr[1])
	if idx < 0 {
		return 0, nil, fmt.Errorf("invalid address: bad version character %q", addr[1])
	}
	version = byte(idx)

	data, err := c32Decode(addr[2:], hash160Len+4)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid address: %w", err)
	}

	hash160 = data[:hash160Len]
	checksum := data[hash160Len:]

	payload := append([]byte{version}, hash160...)
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	for i := 0; i < 4; i++ {
		if checksum[i] != second[i] {
			return 0, nil, fmt.Errorf("invalid address: checksum mismatch")
		}
	}

	return version, hash160, nil
}

// c32Encode encodes bytes big-endian in the c32 alphabet. Each leading zero
// byte of the input is preserved as a single leading '0' character.
func c32Encode(data []byte) string {
	leadingZeros := 0
	for _, b := range data {
		if b != 0 {
			break
		}
		leadingZeros++
	}

	n := new(big.Int).SetBytes(data)
	base := big.NewInt(int64(len(c32Alphabet)))
	mod := new(big.Int)

	var digits []byte
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		digits = append(digits, c32Alphabet[mod.Int64()])
	}

	var sb strings.Builder
	for i := 0; i < leadingZeros; i++ {
		sb.WriteByte(c32Alphabet[0])
	}
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteByte(digits[i])
	}
	return sb.String()
}

// c32Decode decodes a c32 string into exactly byteLen big-endian bytes.
func c32Decode(s string, byteLen int) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("empty payload")
	}

	n := new(big.Int)
	base := big.NewInt(int64(len(c32Alphabet)))
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(c32Alphabet, s[i])
		if idx < 0 {
			return nil, fmt.Errorf("invalid c32 character %q", s[i])
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(idx)))
	}

	raw := n.Bytes()
	if len(raw) > byteLen {
		return nil, fmt.Errorf("payload too long")
	}

	out := make([]byte, byteLen)
	copy(out[byteLen-len(raw):], raw)
	return out, nil
}
