package bitcoin

// CalculateMerkleRoot computes the merkle root of txHashes, each already in
// internal (non-reversed) byte order, duplicating the last hash at each
// level when the level has an odd count (Bitcoin's merkle rule).
func CalculateMerkleRoot(txHashes []Hash256) Hash256 {
	if len(txHashes) == 0 {
		return ZeroHash
	}
	if len(txHashes) == 1 {
		return txHashes[0]
	}

	hashes := make([]Hash256, len(txHashes))
	copy(hashes, txHashes)

	for len(hashes) > 1 {
		var nextLevel []Hash256
		for i := 0; i < len(hashes); i += 2 {
			left := hashes[i]
			right := left
			if i+1 < len(hashes) {
				right = hashes[i+1]
			}
			nextLevel = append(nextLevel, hashPair(left, right))
		}
		hashes = nextLevel
	}

	return hashes[0]
}

// MerkleRootFromTxIDs computes the merkle root from display-order (reversed,
// hex-string) transaction IDs, the form transactions are normally exchanged
// in: each txid is un-reversed to internal byte order before hashing, and
// the final root is reversed back to display order.
func MerkleRootFromTxIDs(txids []string) (Hash256, error) {
	hashes := make([]Hash256, len(txids))
	for i, s := range txids {
		h, err := NewHash256FromString(s)
		if err != nil {
			return ZeroHash, err
		}
		hashes[i] = h.Reversed()
	}
	return CalculateMerkleRoot(hashes).Reversed(), nil
}

// hashPair performs Bitcoin's double SHA-256 hash on two concatenated hashes
func hashPair(left, right Hash256) Hash256 {
	combined := make([]byte, 64)
	copy(combined[0:32], left[:])
	copy(combined[32:64], right[:])
	return DoubleSHA256(combined)
}
