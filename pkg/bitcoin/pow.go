package bitcoin

import (
	"math/big"
)

// maxTarget is the difficulty-1 target (bits 0x1d00ffff), used as the
// numerator when converting a target to a difficulty multiple.
var maxTarget = CompactToBigTarget(0x1d00ffff)

// ValidateProofOfWork checks if a block hash meets the difficulty target
// encoded by targetBits: the hash, read as a big-endian integer, must be
// less than or equal to the expanded target.
func ValidateProofOfWork(blockHash Hash256, targetBits uint32) bool {
	target := CompactToBigTarget(targetBits)

	hashInt := new(big.Int)
	hashInt.SetBytes(blockHash[:])

	return hashInt.Cmp(target) <= 0
}

// CompactToBigTarget expands Bitcoin's compact ("nBits") target encoding
// (0xEEMMMMNN: EE exponent, MMMMNN mantissa) to a full-width big.Int.
func CompactToBigTarget(compactBits uint32) *big.Int {
	if compactBits == 0 {
		return big.NewInt(0)
	}

	exponent := compactBits >> 24
	mantissa := compactBits & 0x00ffffff

	if exponent > 32 {
		return big.NewInt(0)
	}

	if exponent <= 3 {
		target := big.NewInt(int64(mantissa))
		if exponent < 3 {
			target.Rsh(target, uint((3-exponent)*8))
		}
		return target
	}

	target := big.NewInt(int64(mantissa))
	target.Lsh(target, uint((exponent-3)*8))

	return target
}

// BigTargetToHash256 right-aligns target's big-endian bytes into a Hash256,
// for comparing a target against a block hash in the same representation.
func BigTargetToHash256(target *big.Int) Hash256 {
	var hash Hash256

	targetBytes := target.Bytes()
	if len(targetBytes) <= 32 {
		copy(hash[32-len(targetBytes):], targetBytes)
	}

	return hash
}

// BigTargetToCompact converts a big.Int target back to the compact "nBits"
// encoding.
func BigTargetToCompact(target *big.Int) uint32 {
	if target.Sign() <= 0 {
		return 0
	}

	targetBytes := target.Bytes()
	if len(targetBytes) == 0 {
		return 0
	}

	exponent := len(targetBytes)

	var mantissa uint32
	switch {
	case exponent >= 3:
		mantissa = uint32(targetBytes[0])<<16 | uint32(targetBytes[1])<<8 | uint32(targetBytes[2])
	case exponent == 2:
		mantissa = uint32(targetBytes[0])<<16 | uint32(targetBytes[1])<<8
	default:
		mantissa = uint32(targetBytes[0]) << 16
	}

	if mantissa&0x800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	if exponent < 0 || exponent > 255 {
		return 0
	}
	return uint32(exponent)<<24 | (mantissa & 0x00ffffff)
}

// Difficulty returns targetBits as a multiple of the difficulty-1 target
// (the conventional "difficulty" number miners quote).
func Difficulty(targetBits uint32) float64 {
	target := CompactToBigTarget(targetBits)
	if target.Sign() <= 0 {
		return 0
	}
	ratio := new(big.Rat).SetFrac(maxTarget, target)
	f, _ := ratio.Float64()
	return f
}

// AdjustDifficulty computes the next compact target given the current one
// and the actual time taken to mine the last retarget period, clamped to a
// 4x adjustment in either direction (Bitcoin's standard 2016-block, 2-week
// retarget rule). Retargeting across a full chain is out of this core's
// scope; this is the pure per-period calculation.
func AdjustDifficulty(currentTargetBits, actualTimeSeconds uint32) uint32 {
	const targetTimespan = 14 * 24 * 60 * 60 // 2 weeks in seconds
	const maxAdjustment = 4

	if actualTimeSeconds == 0 || actualTimeSeconds == targetTimespan {
		return currentTargetBits
	}

	currentTarget := CompactToBigTarget(currentTargetBits)

	actualTime := big.NewInt(int64(actualTimeSeconds))
	targetTime := big.NewInt(targetTimespan)

	maxTime := big.NewInt(targetTimespan * maxAdjustment)
	minTime := big.NewInt(targetTimespan / maxAdjustment)

	if actualTime.Cmp(maxTime) > 0 {
		actualTime = maxTime
	}
	if actualTime.Cmp(minTime) < 0 {
		actualTime = minTime
	}

	newTarget := new(big.Int)
	newTarget.Mul(currentTarget, actualTime)
	newTarget.Div(newTarget, targetTime)

	return BigTargetToCompact(newTarget)
}
