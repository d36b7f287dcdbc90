package bitcoin

import "math/big"

// secp256k1 domain parameters (spec §6 / SEC2): y^2 = x^3 + 7 over F_P, with
// base point G of prime order N.
var (
	secp256k1P, _  = new(big.Int).SetString("fffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", 16)
	secp256k1N, _  = new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	secp256k1Gx, _ = new(big.Int).SetString("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", 16)
	secp256k1Gy, _ = new(big.Int).SetString("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8", 16)

	// P is the secp256k1 field prime.
	P = secp256k1P
	// N is the order of the secp256k1 base point (the order of the group).
	N = secp256k1N

	secp256k1A, _ = NewFieldElement(big.NewInt(0), secp256k1P)
	secp256k1B, _ = NewFieldElement(big.NewInt(7), secp256k1P)

	// Secp256k1 is the secp256k1 curve.
	Secp256k1 = Curve{A: secp256k1A, B: secp256k1B}

	// G is the secp256k1 base point / generator.
	G = mustSecp256k1Point(secp256k1Gx, secp256k1Gy)
)

func mustSecp256k1Point(x, y *big.Int) Point {
	fx, err := NewFieldElement(x, secp256k1P)
	if err != nil {
		panic(err)
	}
	fy, err := NewFieldElement(y, secp256k1P)
	if err != nil {
		panic(err)
	}
	p, err := NewPoint(Secp256k1, fx, fy)
	if err != nil {
		panic(err)
	}
	return p
}

// S256FieldElement builds a FieldElement over the secp256k1 prime.
func S256FieldElement(num *big.Int) (FieldElement, error) {
	return NewFieldElement(num, secp256k1P)
}

// S256Point builds a point on the secp256k1 curve from affine coordinates.
func S256Point(x, y *big.Int) (Point, error) {
	fx, err := S256FieldElement(x)
	if err != nil {
		return Point{}, err
	}
	fy, err := S256FieldElement(y)
	if err != nil {
		return Point{}, err
	}
	return NewPoint(Secp256k1, fx, fy)
}

// modN reduces k modulo the group order N. big.Int.Mod is the Euclidean
// modulus, so the result is always in [0, N), even for negative k (like
// Python's %); callers pass k as already non-negative in this package, but
// this keeps the contract explicit.
func modN(k *big.Int) *big.Int {
	return new(big.Int).Mod(k, secp256k1N)
}
