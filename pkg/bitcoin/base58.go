package bitcoin

import (
	"fmt"
	"math/big"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var (
	base58Base   = big.NewInt(58)
	base58Lookup = buildBase58Lookup()
)

func buildBase58Lookup() map[byte]int64 {
	m := make(map[byte]int64, len(base58Alphabet))
	for i, c := range base58Alphabet {
		m[byte(c)] = int64(i)
	}
	return m
}

// Base58Encode encodes b using Bitcoin's Base58 alphabet: leading 0x00 bytes
// become leading '1' characters, the remainder is treated as a big-endian
// integer and repeatedly divmod by 58.
func Base58Encode(b []byte) string {
	zeros := 0
	for zeros < len(b) && b[zeros] == 0x00 {
		zeros++
	}

	n := new(big.Int).SetBytes(b[zeros:])
	mod := new(big.Int)
	var digits []byte
	for n.Sign() > 0 {
		n.DivMod(n, base58Base, mod)
		digits = append(digits, base58Alphabet[mod.Int64()])
	}

	out := make([]byte, 0, zeros+len(digits))
	for i := 0; i < zeros; i++ {
		out = append(out, '1')
	}
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
	}
	return string(out)
}

// Base58Decode decodes s back to bytes, zero-padded to exactly n bytes
// (big-endian). It fails with ErrBadEncoding on an out-of-alphabet
// character or if the decoded integer does not fit in n bytes.
func Base58Decode(s string, n int) ([]byte, error) {
	leadingOnes := 0
	for leadingOnes < len(s) && s[leadingOnes] == '1' {
		leadingOnes++
	}

	num := new(big.Int)
	for i := 0; i < len(s); i++ {
		digit, ok := base58Lookup[s[i]]
		if !ok {
			return nil, fmt.Errorf("bitcoin: invalid base58 character %q: %w", s[i], ErrBadEncoding)
		}
		num.Mul(num, base58Base)
		num.Add(num, big.NewInt(digit))
	}

	raw := num.Bytes()
	out := make([]byte, n)
	if len(raw) > n {
		return nil, fmt.Errorf("bitcoin: base58 payload exceeds %d bytes: %w", n, ErrBadEncoding)
	}
	copy(out[n-len(raw):], raw)
	return out, nil
}

// Checksum returns hash256(b)[:4], the 4-byte Base58Check checksum.
func Checksum(b []byte) []byte {
	h := DoubleSHA256(b)
	return h[:4]
}

// Base58CheckEncode appends a checksum to b and Base58-encodes the result.
func Base58CheckEncode(b []byte) string {
	payload := append(append([]byte{}, b...), Checksum(b)...)
	return Base58Encode(payload)
}

// Base58CheckDecode decodes s to a fixed-width payload of expectedLen bytes
// (including its 4-byte checksum) and verifies the checksum, returning the
// payload without the checksum. Fails with ErrChecksumBad on mismatch.
func Base58CheckDecode(s string, expectedLen int) ([]byte, error) {
	full, err := Base58Decode(s, expectedLen)
	if err != nil {
		return nil, err
	}
	payload, checksum := full[:expectedLen-4], full[expectedLen-4:]
	want := Checksum(payload)
	for i := range want {
		if want[i] != checksum[i] {
			return nil, fmt.Errorf("bitcoin: base58check checksum mismatch: %w", ErrChecksumBad)
		}
	}
	return payload, nil
}
