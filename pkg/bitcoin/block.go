package bitcoin

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

// MaxBlockSize is the legacy 1MB block size limit.
const MaxBlockSize = 1000000

// MaxBlockWeight is the BIP141 block weight limit.
const MaxBlockWeight = 4000000

// Block represents a Bitcoin block
type Block struct {
	Header       BlockHeader   `json:"header"`
	Transactions []Transaction `json:"transactions"`

	height *int32 // Block height (set when connected to chain)
}

// BlockHeader represents the fixed 80-byte Bitcoin block header.
type BlockHeader struct {
	Version       uint32  `json:"version"`
	PrevBlockHash Hash256 `json:"prev_block_hash"`
	MerkleRoot    Hash256 `json:"merkle_root"`
	Timestamp     uint32  `json:"timestamp"`
	Bits          uint32  `json:"bits"`
	Nonce         uint32  `json:"nonce"`
}

// NewBlock creates a new block
func NewBlock(header BlockHeader, transactions []Transaction) *Block { //nolint:gocritic // header copied intentionally for immutability
	return &Block{
		Header:       header,
		Transactions: transactions,
	}
}

// NewBlockHeader creates a new block header
func NewBlockHeader(version uint32, prevHash, merkleRoot Hash256, timestamp, bits, nonce uint32) BlockHeader {
	return BlockHeader{
		Version:       version,
		PrevBlockHash: prevHash,
		MerkleRoot:    merkleRoot,
		Timestamp:     timestamp,
		Bits:          bits,
		Nonce:         nonce,
	}
}

// Hash returns the block hash (the header hash).
func (b *Block) Hash() Hash256 {
	return b.Header.Hash()
}

// Height returns the block height if known
func (b *Block) Height() *int32 {
	return b.height
}

// SetHeight sets the block height
func (b *Block) SetHeight(height int32) {
	b.height = &height
}

// Serialize encodes the 80-byte block header to Bitcoin wire format.
func (bh BlockHeader) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)

	if err := binary.Write(buf, binary.LittleEndian, bh.Version); err != nil {
		return nil, fmt.Errorf("write version: %w", err)
	}
	buf.Write(bh.PrevBlockHash.Reversed().Bytes())
	buf.Write(bh.MerkleRoot.Reversed().Bytes())
	if err := binary.Write(buf, binary.LittleEndian, bh.Timestamp); err != nil {
		return nil, fmt.Errorf("write timestamp: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, bh.Bits); err != nil {
		return nil, fmt.Errorf("write bits: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, bh.Nonce); err != nil {
		return nil, fmt.Errorf("write nonce: %w", err)
	}

	return buf.Bytes(), nil
}

// DeserializeBlockHeader decodes an 80-byte Bitcoin block header.
func DeserializeBlockHeader(data []byte) (BlockHeader, error) {
	r := NewReader(data)

	version, err := r.DecodeInt(4, LittleEndian)
	if err != nil {
		return BlockHeader{}, fmt.Errorf("decode version: %w", err)
	}
	prevRaw, err := r.ReadBytes(32)
	if err != nil {
		return BlockHeader{}, fmt.Errorf("decode prev block hash: %w", err)
	}
	var prev Hash256
	copy(prev[:], prevRaw)

	merkleRaw, err := r.ReadBytes(32)
	if err != nil {
		return BlockHeader{}, fmt.Errorf("decode merkle root: %w", err)
	}
	var merkle Hash256
	copy(merkle[:], merkleRaw)

	timestamp, err := r.DecodeInt(4, LittleEndian)
	if err != nil {
		return BlockHeader{}, fmt.Errorf("decode timestamp: %w", err)
	}
	bits, err := r.DecodeInt(4, LittleEndian)
	if err != nil {
		return BlockHeader{}, fmt.Errorf("decode bits: %w", err)
	}
	nonce, err := r.DecodeInt(4, LittleEndian)
	if err != nil {
		return BlockHeader{}, fmt.Errorf("decode nonce: %w", err)
	}

	return BlockHeader{
		Version:       uint32(version),
		PrevBlockHash: prev.Reversed(),
		MerkleRoot:    merkle.Reversed(),
		Timestamp:     uint32(timestamp),
		Bits:          uint32(bits),
		Nonce:         uint32(nonce),
	}, nil
}

// Hash returns the header hash: hash256 of the 80-byte serialization,
// reversed to Bitcoin's natural display order.
func (bh BlockHeader) Hash() Hash256 {
	serialized, err := bh.Serialize()
	if err != nil {
		return ZeroHash
	}
	return DoubleSHA256(serialized).Reversed()
}

// Time returns the block timestamp as a time.Time
func (bh BlockHeader) Time() time.Time {
	return time.Unix(int64(bh.Timestamp), 0)
}

// Difficulty returns the header's target as a multiple of the difficulty-1
// target.
func (bh BlockHeader) Difficulty() float64 {
	return Difficulty(bh.Bits)
}

// CheckProofOfWork reports whether the header's hash satisfies its own
// Bits target. ValidateProofOfWork compares the hash as a big-endian
// integer, so it takes the display-order hash Hash already returns (whose
// leading zero bytes are what makes low-valued hashes "hard to find").
func (bh BlockHeader) CheckProofOfWork() bool {
	return ValidateProofOfWork(bh.Hash(), bh.Bits)
}

// IsGenesis returns true if this is the genesis block
func (b *Block) IsGenesis() bool {
	return b.Header.PrevBlockHash.IsZero()
}

// TransactionCount returns the number of transactions in the block
func (b *Block) TransactionCount() int {
	return len(b.Transactions)
}

// HasCoinbase returns true if the block has a coinbase transaction
func (b *Block) HasCoinbase() bool {
	return len(b.Transactions) > 0 && b.Transactions[0].IsCoinbase()
}

// CoinbaseTransaction returns the coinbase transaction if present
func (b *Block) CoinbaseTransaction() *Transaction {
	if b.HasCoinbase() {
		return &b.Transactions[0]
	}
	return nil
}

// Size returns the serialized size of the block in bytes.
func (b *Block) Size() int {
	size := 80
	size += len(EncodeVarInt(uint64(len(b.Transactions))))
	for i := range b.Transactions {
		raw, err := b.Transactions[i].Serialize()
		if err != nil {
			continue
		}
		size += len(raw)
	}
	return size
}

// Weight returns the block weight as defined by BIP141:
// (base_size * 3) + total_size, where base_size excludes witness data.
func (b *Block) Weight() int {
	baseSize := 80 + len(EncodeVarInt(uint64(len(b.Transactions))))
	totalSize := baseSize
	for i := range b.Transactions {
		tx := &b.Transactions[i]

		var legacyBuf bytes.Buffer
		if err := tx.serializeLegacy(&legacyBuf); err == nil {
			baseSize += legacyBuf.Len()
		}
		if raw, err := tx.Serialize(); err == nil {
			totalSize += len(raw)
		}
	}
	return baseSize*3 + totalSize
}

// MerkleRoot recomputes the merkle root over the block's transactions, for
// comparison against Header.MerkleRoot.
func (b *Block) MerkleRoot() Hash256 {
	hashes := make([]Hash256, len(b.Transactions))
	for i := range b.Transactions {
		hashes[i] = b.Transactions[i].Hash().Reversed()
	}
	return CalculateMerkleRoot(hashes)
}

// Validate performs basic block validation
func (b *Block) Validate() error {
	if len(b.Transactions) == 0 {
		return fmt.Errorf("block has no transactions")
	}

	if !b.Transactions[0].IsCoinbase() {
		return fmt.Errorf("first transaction is not coinbase")
	}

	for i, tx := range b.Transactions[1:] {
		if tx.IsCoinbase() {
			return fmt.Errorf("transaction %d is coinbase (only first can be)", i+1)
		}
	}

	for i, tx := range b.Transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("transaction %d validation failed: %v", i, err)
		}
	}

	if b.Size() > MaxBlockSize {
		return fmt.Errorf("block size %d exceeds maximum %d", b.Size(), MaxBlockSize)
	}

	if b.Weight() > MaxBlockWeight {
		return fmt.Errorf("block weight %d exceeds maximum %d", b.Weight(), MaxBlockWeight)
	}

	if b.MerkleRoot().Reversed() != b.Header.MerkleRoot {
		return fmt.Errorf("merkle root mismatch")
	}

	return nil
}

// Validate performs block header validation: proof-of-work target and
// future-timestamp bound. Chain-context checks (median time, retargeting)
// are out of scope for a header decoded standalone.
func (bh BlockHeader) Validate() error {
	maxTime := time.Now().Add(2 * time.Hour)
	if bh.Time().After(maxTime) {
		return fmt.Errorf("block timestamp too far in future")
	}

	if !bh.CheckProofOfWork() {
		return fmt.Errorf("block hash does not satisfy difficulty target")
	}

	return nil
}
