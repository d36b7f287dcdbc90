package bitcoin

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompactToBigTarget_GenesisBits(t *testing.T) {
	target := CompactToBigTarget(0x1d00ffff)
	want := new(big.Int).Lsh(big.NewInt(0x00ffff), 8*(0x1d-3))
	assert.Equal(t, 0, target.Cmp(want))
}

func TestCompactTargetRoundTrip(t *testing.T) {
	for _, bits := range []uint32{0x1d00ffff, 0x1b0404cb, 0x207fffff} {
		target := CompactToBigTarget(bits)
		assert.Equal(t, bits, BigTargetToCompact(target))
	}
}

func TestDifficulty_GenesisBitsIsOne(t *testing.T) {
	assert.InDelta(t, 1.0, Difficulty(0x1d00ffff), 1e-9)
}

func TestValidateProofOfWork(t *testing.T) {
	target := CompactToBigTarget(0x1d00ffff)
	below := new(big.Int).Sub(target, big.NewInt(1))
	hash := BigTargetToHash256(below)
	assert.True(t, ValidateProofOfWork(hash, 0x1d00ffff))

	above := new(big.Int).Add(target, big.NewInt(1))
	hash2 := BigTargetToHash256(above)
	assert.False(t, ValidateProofOfWork(hash2, 0x1d00ffff))
}

func TestAdjustDifficulty_ClampsTo4x(t *testing.T) {
	const targetTimespan = 14 * 24 * 60 * 60
	bits := uint32(0x1b0404cb)

	adjustedUp := AdjustDifficulty(bits, targetTimespan/8)
	adjustedDown := AdjustDifficulty(bits, targetTimespan*8)

	targetUp := CompactToBigTarget(adjustedUp)
	targetDown := CompactToBigTarget(adjustedDown)
	original := CompactToBigTarget(bits)

	quarter := new(big.Int).Div(original, big.NewInt(4))
	quadruple := new(big.Int).Mul(original, big.NewInt(4))

	assert.True(t, targetUp.Cmp(quarter) >= 0 && targetUp.Cmp(original) <= 0)
	assert.True(t, targetDown.Cmp(original) >= 0 && targetDown.Cmp(quadruple) <= 0)
}

func TestAdjustDifficulty_NoChangeAtExactTimespan(t *testing.T) {
	const targetTimespan = 14 * 24 * 60 * 60
	bits := uint32(0x1b0404cb)
	assert.Equal(t, bits, AdjustDifficulty(bits, targetTimespan))
}
