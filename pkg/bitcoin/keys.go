package bitcoin

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// AddressVersion selects the network byte used in P2PKH addresses and WIF
// payloads.
type AddressVersion byte

const (
	MainnetAddress AddressVersion = 0x00
	TestnetAddress AddressVersion = 0x6f

	mainnetWIF = 0x80
	testnetWIF = 0xef
)

// PrivateKey is a secp256k1 scalar in [1, N).
type PrivateKey struct {
	Secret *big.Int
}

// PublicKey is a point on the secp256k1 curve.
type PublicKey struct {
	Point Point
}

// NewPrivateKey wraps secret as a PrivateKey, failing with ErrRange unless
// 1 <= secret < N.
func NewPrivateKey(secret *big.Int) (PrivateKey, error) {
	if secret.Sign() <= 0 || secret.Cmp(secp256k1N) >= 0 {
		return PrivateKey{}, fmt.Errorf("bitcoin: private key out of range [1, N): %w", ErrRange)
	}
	return PrivateKey{Secret: secret}, nil
}

// RandomPrivateKey generates a cryptographically random private key, drawn
// uniformly from [1, N) by rejection sampling against crypto/rand.
func RandomPrivateKey() (PrivateKey, error) {
	for {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return PrivateKey{}, fmt.Errorf("bitcoin: read random bytes: %w", err)
		}
		k := new(big.Int).SetBytes(b)
		if k.Sign() > 0 && k.Cmp(secp256k1N) < 0 {
			return PrivateKey{Secret: k}, nil
		}
	}
}

// PublicKey derives the public key k*G for this private key.
func (pk PrivateKey) PublicKey() PublicKey {
	return PublicKey{Point: ScalarMul(pk.Secret, G)}
}

// WIF encodes the private key in Wallet Import Format (spec §1.F / §4): a
// Base58Check payload of network-prefix || 32-byte-big-endian-secret
// [|| 0x01 if compressed].
func (pk PrivateKey) WIF(version AddressVersion, compressed bool) string {
	prefix := mainnetWIF
	if version == TestnetAddress {
		prefix = testnetWIF
	}
	secretBytes := make([]byte, 32)
	pk.Secret.FillBytes(secretBytes)

	payload := make([]byte, 0, 34)
	payload = append(payload, byte(prefix))
	payload = append(payload, secretBytes...)
	if compressed {
		payload = append(payload, 0x01)
	}
	return Base58CheckEncode(payload)
}

// ImportWIF decodes a Wallet Import Format string, returning the private
// key and whether it encodes a compressed public key.
func ImportWIF(s string) (PrivateKey, bool, error) {
	// Base58Check payload is 1 (prefix) + 32 (secret) + [1 (compressed flag)]
	// + 4 (checksum) bytes, so the encoded length is either 37 or 38.
	var payload []byte
	var err error
	payload, err = Base58CheckDecode(s, 38)
	compressed := true
	if err != nil {
		payload, err = Base58CheckDecode(s, 37)
		compressed = false
	}
	if err != nil {
		return PrivateKey{}, false, fmt.Errorf("bitcoin: decode WIF: %w", err)
	}
	if payload[0] != mainnetWIF && payload[0] != testnetWIF {
		return PrivateKey{}, false, fmt.Errorf("bitcoin: WIF prefix 0x%02x unrecognized: %w", payload[0], ErrBadEncoding)
	}
	secret := new(big.Int).SetBytes(payload[1:33])
	pk, err := NewPrivateKey(secret)
	if err != nil {
		return PrivateKey{}, false, err
	}
	return pk, compressed, nil
}

// SEC encodes the public key per SEC1: a leading 0x04 followed by the raw
// 32-byte X and Y coordinates when uncompressed, or a leading 0x02/0x03
// (Y parity) followed by X alone when compressed.
func (pub PublicKey) SEC(compressed bool) []byte {
	xBytes := make([]byte, 32)
	pub.Point.X.Num.FillBytes(xBytes)

	if compressed {
		prefix := byte(0x02)
		if pub.Point.Y.Num.Bit(0) == 1 {
			prefix = 0x03
		}
		return append([]byte{prefix}, xBytes...)
	}

	yBytes := make([]byte, 32)
	pub.Point.Y.Num.FillBytes(yBytes)
	out := make([]byte, 0, 65)
	out = append(out, 0x04)
	out = append(out, xBytes...)
	out = append(out, yBytes...)
	return out
}

// ParseSEC decodes a SEC-encoded public key, reconstructing Y from the
// parity byte and the curve equation when the encoding is compressed.
func ParseSEC(data []byte) (PublicKey, error) {
	if len(data) == 0 {
		return PublicKey{}, fmt.Errorf("bitcoin: empty SEC encoding: %w", ErrBadEncoding)
	}
	switch data[0] {
	case 0x04:
		if len(data) != 65 {
			return PublicKey{}, fmt.Errorf("bitcoin: uncompressed SEC length %d, want 65: %w", len(data), ErrBadEncoding)
		}
		x := new(big.Int).SetBytes(data[1:33])
		y := new(big.Int).SetBytes(data[33:65])
		p, err := S256Point(x, y)
		if err != nil {
			return PublicKey{}, err
		}
		return PublicKey{Point: p}, nil
	case 0x02, 0x03:
		if len(data) != 33 {
			return PublicKey{}, fmt.Errorf("bitcoin: compressed SEC length %d, want 33: %w", len(data), ErrBadEncoding)
		}
		x := new(big.Int).SetBytes(data[1:33])
		fx, err := S256FieldElement(x)
		if err != nil {
			return PublicKey{}, err
		}
		rhs, err := cubePlusLine(Secp256k1, fx)
		if err != nil {
			return PublicKey{}, err
		}
		beta := rhs.Sqrt()
		isEven := beta.Num.Bit(0) == 0
		wantEven := data[0] == 0x02
		var y FieldElement
		if isEven == wantEven {
			y = beta
		} else {
			y, err = S256FieldElement(new(big.Int).Sub(secp256k1P, beta.Num))
			if err != nil {
				return PublicKey{}, err
			}
		}
		p, err := NewPoint(Secp256k1, fx, y)
		if err != nil {
			return PublicKey{}, err
		}
		return PublicKey{Point: p}, nil
	default:
		return PublicKey{}, fmt.Errorf("bitcoin: SEC prefix 0x%02x unrecognized: %w", data[0], ErrBadEncoding)
	}
}

// Hash160 returns RIPEMD160(SHA256(SEC(compressed))), the pubkey hash
// embedded in a P2PKH script/address.
func (pub PublicKey) Hash160(compressed bool) Hash160 {
	return Hash160Bytes(pub.SEC(compressed))
}

// Address derives the Base58Check P2PKH address for this public key.
func (pub PublicKey) Address(version AddressVersion, compressed bool) string {
	h160 := pub.Hash160(compressed)
	payload := append([]byte{byte(version)}, h160.Bytes()...)
	return Base58CheckEncode(payload)
}

// DecodeAddress recovers the pubkey hash and network version encoded in a
// P2PKH Base58Check address.
func DecodeAddress(address string) (Hash160, AddressVersion, error) {
	payload, err := Base58CheckDecode(address, 25)
	if err != nil {
		return ZeroHash160, 0, err
	}
	h160, err := NewHash160FromBytes(payload[1:])
	if err != nil {
		return ZeroHash160, 0, err
	}
	return h160, AddressVersion(payload[0]), nil
}
