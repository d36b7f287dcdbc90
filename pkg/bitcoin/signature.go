package bitcoin

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
)

// Signature is an ECDSA signature (r, s) over secp256k1.
type Signature struct {
	R, S *big.Int
}

var (
	secp256k1HalfN = new(big.Int).Rsh(new(big.Int).Set(secp256k1N), 1)
)

// Sign produces a low-s, RFC-6979-deterministic ECDSA signature of hash
// (a 32-byte message digest, typically a sighash) under the private key.
// Per spec §4.G, a candidate k that yields r = 0 or s = 0 is discarded and
// the next RFC-6979 candidate is tried; this never restarts from scratch,
// it continues the same HMAC-DRBG state per RFC 6979 §3.2's own retry step.
func Sign(pk PrivateKey, hash []byte) (Signature, error) {
	if len(hash) != 32 {
		return Signature{}, fmt.Errorf("bitcoin: sign hash length %d, want 32: %w", len(hash), ErrBadEncoding)
	}
	nextK := rfc6979Generator(pk.Secret, hash)
	for {
		sig, err := signWithK(pk, hash, nextK())
		if err == nil {
			return sig, nil
		}
		if !errors.Is(err, ErrInvalidSig) {
			return Signature{}, err
		}
	}
}

// SignWithK signs hash using the caller-supplied nonce k instead of the
// RFC-6979 derivation. This exists only for reproducing fixed test vectors;
// production signing must go through Sign, never through this entry point.
// Unlike Sign, it does not retry: a k producing r = 0 or s = 0 is a hard
// failure, since the caller chose k explicitly.
func SignWithK(pk PrivateKey, hash []byte, k *big.Int) (Signature, error) {
	return signWithK(pk, hash, k)
}

func signWithK(pk PrivateKey, hash []byte, k *big.Int) (Signature, error) {
	z := new(big.Int).SetBytes(hash)
	point := ScalarMul(k, G)
	r := point.X.Num
	if r.Sign() == 0 {
		return Signature{}, fmt.Errorf("bitcoin: signature r = 0: %w", ErrInvalidSig)
	}

	kInv := new(big.Int).Exp(k, new(big.Int).Sub(secp256k1N, big.NewInt(2)), secp256k1N)
	s := new(big.Int).Mul(r, pk.Secret)
	s.Add(s, z)
	s.Mul(s, kInv)
	s.Mod(s, secp256k1N)
	if s.Sign() == 0 {
		return Signature{}, fmt.Errorf("bitcoin: signature s = 0: %w", ErrInvalidSig)
	}

	if s.Cmp(secp256k1HalfN) > 0 {
		s.Sub(secp256k1N, s)
	}
	return Signature{R: r, S: s}, nil
}

// Verify reports whether sig is a valid signature of hash under pub.
func Verify(pub PublicKey, hash []byte, sig Signature) bool {
	if len(hash) != 32 {
		return false
	}
	if sig.R.Sign() <= 0 || sig.R.Cmp(secp256k1N) >= 0 || sig.S.Sign() <= 0 || sig.S.Cmp(secp256k1N) >= 0 {
		return false
	}
	z := new(big.Int).SetBytes(hash)
	sInv := new(big.Int).Exp(sig.S, new(big.Int).Sub(secp256k1N, big.NewInt(2)), secp256k1N)

	u := modN(new(big.Int).Mul(z, sInv))
	v := modN(new(big.Int).Mul(sig.R, sInv))

	total, err := ScalarMul(u, G).Add(ScalarMul(v, pub.Point))
	if err != nil || total.Infinity {
		return false
	}
	return total.X.Num.Cmp(sig.R) == 0
}

// rfc6979Generator returns a closure yielding successive RFC-6979 §3.2
// candidate nonces for (secret, hash), one per call. A rejected candidate
// (out of [1, N), or one Sign discards for producing r = 0 / s = 0) is
// followed by the next candidate from the same HMAC-DRBG state, per RFC
// 6979's own retry step — never a restart from the initial K/V.
func rfc6979Generator(secret *big.Int, hash []byte) func() *big.Int {
	qlen := secp256k1N.BitLen()
	rolen := (qlen + 7) / 8

	secretBytes := make([]byte, rolen)
	secret.FillBytes(secretBytes)

	h1 := bitsToOctets(hash, rolen)

	v := bytes.Repeat([]byte{0x01}, sha256.Size)
	k := bytes.Repeat([]byte{0x00}, sha256.Size)

	k = hmacSum(k, bytes.Join([][]byte{v, {0x00}, secretBytes, h1}, nil))
	v = hmacSum(k, v)
	k = hmacSum(k, bytes.Join([][]byte{v, {0x01}, secretBytes, h1}, nil))
	v = hmacSum(k, v)

	started := false
	return func() *big.Int {
		if started {
			k = hmacSum(k, bytes.Join([][]byte{v, {0x00}}, nil))
			v = hmacSum(k, v)
		}
		started = true
		for {
			v = hmacSum(k, v)
			t := new(big.Int).SetBytes(v)
			if t.Sign() > 0 && t.Cmp(secp256k1N) < 0 {
				return t
			}
			k = hmacSum(k, bytes.Join([][]byte{v, {0x00}}, nil))
			v = hmacSum(k, v)
		}
	}
}

func hmacSum(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// bitsToOctets is RFC 6979's bits2octets: reduce the hash mod N, then
// render it as rolen big-endian bytes.
func bitsToOctets(hash []byte, rolen int) []byte {
	z := new(big.Int).SetBytes(hash)
	z.Mod(z, secp256k1N)
	out := make([]byte, rolen)
	z.FillBytes(out)
	return out
}

// DER encodes sig using strict DER (spec §4.G): a SEQUENCE of two INTEGERs,
// each minimally encoded with a leading 0x00 pad byte whenever the
// high bit of the first magnitude byte would otherwise be set.
func (sig Signature) DER() []byte {
	rEnc := derInt(sig.R)
	sEnc := derInt(sig.S)
	body := append(append([]byte{}, rEnc...), sEnc...)
	return append([]byte{0x30, byte(len(body))}, body...)
}

func derInt(n *big.Int) []byte {
	b := n.Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
	}
	return append([]byte{0x02, byte(len(b))}, b...)
}

// ParseDER decodes a strict DER-encoded signature.
func ParseDER(data []byte) (Signature, error) {
	r := NewReader(data)
	seqTag, err := r.ReadByte()
	if err != nil || seqTag != 0x30 {
		return Signature{}, fmt.Errorf("bitcoin: DER signature missing SEQUENCE tag: %w", ErrBadEncoding)
	}
	seqLen, err := r.ReadByte()
	if err != nil {
		return Signature{}, fmt.Errorf("bitcoin: DER signature truncated: %w", ErrBadEncoding)
	}
	if int(seqLen) != r.Len() {
		return Signature{}, fmt.Errorf("bitcoin: DER signature length %d != remaining %d: %w", seqLen, r.Len(), ErrBadEncoding)
	}

	rVal, err := derReadInt(r)
	if err != nil {
		return Signature{}, err
	}
	sVal, err := derReadInt(r)
	if err != nil {
		return Signature{}, err
	}
	if r.Len() != 0 {
		return Signature{}, fmt.Errorf("bitcoin: DER signature has trailing data: %w", ErrBadEncoding)
	}
	return Signature{R: rVal, S: sVal}, nil
}

func derReadInt(r *Reader) (*big.Int, error) {
	tag, err := r.ReadByte()
	if err != nil || tag != 0x02 {
		return nil, fmt.Errorf("bitcoin: DER signature missing INTEGER tag: %w", ErrBadEncoding)
	}
	length, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("bitcoin: DER signature truncated integer length: %w", ErrBadEncoding)
	}
	b, err := r.ReadBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("bitcoin: DER signature truncated integer: %w", ErrBadEncoding)
	}
	return new(big.Int).SetBytes(b), nil
}
