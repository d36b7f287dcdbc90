package bitcoin

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for Bitcoin HASH160; stdlib has no RIPEMD-160
)

// Hash256 represents a 256-bit hash (32 bytes). DoubleSHA256 returns it in
// internal (wire) byte order; Reversed converts to and from display order.
type Hash256 [32]byte

// ZeroHash represents an all-zero hash.
var ZeroHash = Hash256{}

// NewHash256FromBytes creates a Hash256 from a 32-byte slice.
func NewHash256FromBytes(b []byte) (Hash256, error) {
	if len(b) != 32 {
		return ZeroHash, fmt.Errorf("bitcoin: hash256 length %d, want 32: %w", len(b), ErrBadEncoding)
	}
	var hash Hash256
	copy(hash[:], b)
	return hash, nil
}

// NewHash256FromString creates a Hash256 from a hex string.
func NewHash256FromString(s string) (Hash256, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ZeroHash, fmt.Errorf("bitcoin: invalid hex string: %w", ErrBadEncoding)
	}
	return NewHash256FromBytes(b)
}

// String returns the hash as a hex string in its stored byte order.
func (h Hash256) String() string {
	return hex.EncodeToString(h[:])
}

// Reversed returns the hash with its bytes reversed, the wire <-> display
// order conversion used for txids, block hashes, and header fields.
func (h Hash256) Reversed() Hash256 {
	var out Hash256
	for i := range h {
		out[i] = h[31-i]
	}
	return out
}

// Bytes returns the hash as a byte slice.
func (h Hash256) Bytes() []byte {
	return h[:]
}

// IsZero returns true if the hash is all zeros.
func (h Hash256) IsZero() bool {
	return h == ZeroHash
}

// toBytes hex-decodes s if it parses as hex; otherwise treats it as UTF-8
// bytes. Every internal consumer of hashing operates on raw bytes; this is
// only the convenience contract at the package boundary (spec §4.B).
func toBytes(s string) []byte {
	if b, err := hex.DecodeString(s); err == nil {
		return b
	}
	return []byte(s)
}

// SHA256 computes the FIPS 180-4 SHA-256 digest of b.
func SHA256(b []byte) [32]byte {
	return sha256.Sum256(b)
}

// DoubleSHA256 performs Bitcoin's "hash256": SHA256(SHA256(data)).
func DoubleSHA256(data []byte) Hash256 {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return Hash256(second)
}

// DoubleSHA256String is the hex/UTF-8 string convenience form of
// DoubleSHA256.
func DoubleSHA256String(s string) Hash256 {
	return DoubleSHA256(toBytes(s))
}

// Hash160 represents a 160-bit hash (20 bytes) used for P2PKH/P2SH.
type Hash160 [20]byte

// ZeroHash160 represents an all-zero hash160.
var ZeroHash160 = Hash160{}

// NewHash160FromBytes creates a Hash160 from a 20-byte slice.
func NewHash160FromBytes(b []byte) (Hash160, error) {
	if len(b) != 20 {
		return ZeroHash160, fmt.Errorf("bitcoin: hash160 length %d, want 20: %w", len(b), ErrBadEncoding)
	}
	var hash Hash160
	copy(hash[:], b)
	return hash, nil
}

// String returns the hash160 as a hex string.
func (h Hash160) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns the hash160 as a byte slice.
func (h Hash160) Bytes() []byte {
	return h[:]
}

// Hash160Bytes computes RIPEMD-160(SHA-256(data)), Bitcoin's "hash160".
func Hash160Bytes(data []byte) Hash160 {
	sha := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(sha[:])
	var out Hash160
	copy(out[:], r.Sum(nil))
	return out
}

// Hash160String is the hex/UTF-8 string convenience form of Hash160Bytes.
func Hash160String(s string) Hash160 {
	return Hash160Bytes(toBytes(s))
}
