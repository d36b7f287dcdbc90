package bitcoin

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// SighashAll is the only sighash type this core implements (spec §4.I):
// it covers every input and output of the transaction.
const SighashAll byte = 0x01

// MaxMoney is the maximum number of satoshis that can ever exist.
const MaxMoney = 21000000 * 100000000

// Transaction represents a Bitcoin transaction
type Transaction struct {
	Version  uint32     `json:"version"`
	Inputs   []TxInput  `json:"inputs"`
	Outputs  []TxOutput `json:"outputs"`
	LockTime uint32     `json:"locktime"`

	// Witness data for SegWit transactions, one stack per input.
	Witnesses []TxWitness `json:"witnesses,omitempty"`
}

// TxInput represents a transaction input
type TxInput struct {
	PreviousOutput OutPoint `json:"previous_output"`
	ScriptSig      []byte   `json:"script_sig"`
	Sequence       uint32   `json:"sequence"`
}

// TxOutput represents a transaction output
type TxOutput struct {
	Value        uint64 `json:"value"` // Amount in satoshis
	ScriptPubKey []byte `json:"script_pubkey"`
}

// TxWitness represents witness data for a SegWit input
type TxWitness struct {
	Stack [][]byte `json:"stack"`
}

// OutPoint represents a reference to a transaction output
type OutPoint struct {
	Hash  Hash256 `json:"hash"` // Transaction hash, display byte order (reversed on the wire)
	Index uint32  `json:"index"`
}

// NewTransaction creates a new transaction
func NewTransaction(version uint32, inputs []TxInput, outputs []TxOutput, lockTime uint32) *Transaction {
	return &Transaction{
		Version:  version,
		Inputs:   inputs,
		Outputs:  outputs,
		LockTime: lockTime,
	}
}

// HasWitness returns true if the transaction has witness data
func (tx *Transaction) HasWitness() bool {
	for _, w := range tx.Witnesses {
		if len(w.Stack) > 0 {
			return true
		}
	}
	return false
}

// serializeLegacy writes the non-witness body of the transaction: version,
// inputs, outputs, locktime. Shared by Serialize and the sighash pre-image.
func (tx *Transaction) serializeLegacy(buf *bytes.Buffer) error {
	if err := binary.Write(buf, binary.LittleEndian, tx.Version); err != nil {
		return fmt.Errorf("write version: %w", err)
	}

	buf.Write(EncodeVarInt(uint64(len(tx.Inputs))))
	for _, input := range tx.Inputs {
		hashBytes := input.PreviousOutput.Hash.Reversed()
		buf.Write(hashBytes.Bytes())
		if err := binary.Write(buf, binary.LittleEndian, input.PreviousOutput.Index); err != nil {
			return fmt.Errorf("write previous output index: %w", err)
		}
		buf.Write(EncodeVarInt(uint64(len(input.ScriptSig))))
		buf.Write(input.ScriptSig)
		if err := binary.Write(buf, binary.LittleEndian, input.Sequence); err != nil {
			return fmt.Errorf("write sequence: %w", err)
		}
	}

	buf.Write(EncodeVarInt(uint64(len(tx.Outputs))))
	for _, output := range tx.Outputs {
		if err := binary.Write(buf, binary.LittleEndian, output.Value); err != nil {
			return fmt.Errorf("write output value: %w", err)
		}
		buf.Write(EncodeVarInt(uint64(len(output.ScriptPubKey))))
		buf.Write(output.ScriptPubKey)
	}

	return binary.Write(buf, binary.LittleEndian, tx.LockTime)
}

// Serialize converts the transaction to Bitcoin wire format, including the
// SegWit marker/flag and witness stacks when present.
func (tx *Transaction) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	hasWitness := tx.HasWitness()

	if err := binary.Write(&buf, binary.LittleEndian, tx.Version); err != nil {
		return nil, fmt.Errorf("failed to write version: %w", err)
	}

	if hasWitness {
		buf.WriteByte(0x00) // marker
		buf.WriteByte(0x01) // flag
	}

	buf.Write(EncodeVarInt(uint64(len(tx.Inputs))))
	for _, input := range tx.Inputs {
		hashBytes := input.PreviousOutput.Hash.Reversed()
		buf.Write(hashBytes.Bytes())
		if err := binary.Write(&buf, binary.LittleEndian, input.PreviousOutput.Index); err != nil {
			return nil, fmt.Errorf("failed to write previous output index: %w", err)
		}
		buf.Write(EncodeVarInt(uint64(len(input.ScriptSig))))
		buf.Write(input.ScriptSig)
		if err := binary.Write(&buf, binary.LittleEndian, input.Sequence); err != nil {
			return nil, fmt.Errorf("failed to write sequence: %w", err)
		}
	}

	buf.Write(EncodeVarInt(uint64(len(tx.Outputs))))
	for _, output := range tx.Outputs {
		if err := binary.Write(&buf, binary.LittleEndian, output.Value); err != nil {
			return nil, fmt.Errorf("failed to write output value: %w", err)
		}
		buf.Write(EncodeVarInt(uint64(len(output.ScriptPubKey))))
		buf.Write(output.ScriptPubKey)
	}

	if hasWitness {
		for i := range tx.Inputs {
			var stack [][]byte
			if i < len(tx.Witnesses) {
				stack = tx.Witnesses[i].Stack
			}
			buf.Write(EncodeVarInt(uint64(len(stack))))
			for _, element := range stack {
				buf.Write(EncodeVarInt(uint64(len(element))))
				buf.Write(element)
			}
		}
	}

	if err := binary.Write(&buf, binary.LittleEndian, tx.LockTime); err != nil {
		return nil, fmt.Errorf("failed to write locktime: %w", err)
	}

	return buf.Bytes(), nil
}

// DeserializeTransaction deserializes a transaction from Bitcoin wire
// format, including SegWit marker/flag detection and witness stacks.
func DeserializeTransaction(data []byte) (*Transaction, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("bitcoin: empty transaction data: %w", ErrTruncated)
	}

	r := NewReader(data)
	tx := &Transaction{}

	version, err := r.DecodeInt(4, LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("decode version: %w", err)
	}
	tx.Version = uint32(version)

	hasWitness := false
	if r.Len() >= 2 {
		save := r.Pos()
		marker, _ := r.ReadByte()
		flag, _ := r.ReadByte()
		if marker == 0x00 && flag == 0x01 {
			hasWitness = true
		} else {
			r.Seek(save)
		}
	}

	inputCount, err := r.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("decode input count: %w", err)
	}

	tx.Inputs = make([]TxInput, inputCount)
	for i := range tx.Inputs {
		hashBytes, err := r.ReadBytes(32)
		if err != nil {
			return nil, fmt.Errorf("decode input %d hash: %w", i, err)
		}
		var rev Hash256
		copy(rev[:], hashBytes)
		tx.Inputs[i].PreviousOutput.Hash = rev.Reversed()

		index, err := r.DecodeInt(4, LittleEndian)
		if err != nil {
			return nil, fmt.Errorf("decode input %d index: %w", i, err)
		}
		tx.Inputs[i].PreviousOutput.Index = uint32(index)

		scriptLen, err := r.ReadVarInt()
		if err != nil {
			return nil, fmt.Errorf("decode input %d script length: %w", i, err)
		}
		script, err := r.ReadBytes(int(scriptLen))
		if err != nil {
			return nil, fmt.Errorf("decode input %d script: %w", i, err)
		}
		tx.Inputs[i].ScriptSig = append([]byte{}, script...)

		sequence, err := r.DecodeInt(4, LittleEndian)
		if err != nil {
			return nil, fmt.Errorf("decode input %d sequence: %w", i, err)
		}
		tx.Inputs[i].Sequence = uint32(sequence)
	}

	outputCount, err := r.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("decode output count: %w", err)
	}

	tx.Outputs = make([]TxOutput, outputCount)
	for i := range tx.Outputs {
		value, err := r.DecodeInt(8, LittleEndian)
		if err != nil {
			return nil, fmt.Errorf("decode output %d value: %w", i, err)
		}
		tx.Outputs[i].Value = value

		scriptLen, err := r.ReadVarInt()
		if err != nil {
			return nil, fmt.Errorf("decode output %d script length: %w", i, err)
		}
		script, err := r.ReadBytes(int(scriptLen))
		if err != nil {
			return nil, fmt.Errorf("decode output %d script: %w", i, err)
		}
		tx.Outputs[i].ScriptPubKey = append([]byte{}, script...)
	}

	if hasWitness {
		tx.Witnesses = make([]TxWitness, len(tx.Inputs))
		for i := range tx.Inputs {
			elemCount, err := r.ReadVarInt()
			if err != nil {
				return nil, fmt.Errorf("decode witness %d element count: %w", i, err)
			}
			stack := make([][]byte, elemCount)
			for j := range stack {
				elemLen, err := r.ReadVarInt()
				if err != nil {
					return nil, fmt.Errorf("decode witness %d.%d length: %w", i, j, err)
				}
				elem, err := r.ReadBytes(int(elemLen))
				if err != nil {
					return nil, fmt.Errorf("decode witness %d.%d: %w", i, j, err)
				}
				stack[j] = append([]byte{}, elem...)
			}
			tx.Witnesses[i] = TxWitness{Stack: stack}
		}
	}

	locktime, err := r.DecodeInt(4, LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("decode locktime: %w", err)
	}
	tx.LockTime = uint32(locktime)

	return tx, nil
}

// Hash returns the transaction ID: hash256 of the non-witness serialization,
// reversed to Bitcoin's natural display order.
func (tx *Transaction) Hash() Hash256 {
	var buf bytes.Buffer
	if err := tx.serializeLegacy(&buf); err != nil {
		return ZeroHash
	}
	return DoubleSHA256(buf.Bytes()).Reversed()
}

// WitnessHash returns the witness transaction ID: hash256 of the full wire
// serialization (including any witness data), reversed to display order.
func (tx *Transaction) WitnessHash() Hash256 {
	raw, err := tx.Serialize()
	if err != nil {
		return ZeroHash
	}
	return DoubleSHA256(raw).Reversed()
}

// TxID renders the transaction hash as the conventional hex txid string.
func (tx *Transaction) TxID() string {
	return tx.Hash().String()
}

// SignatureHash computes the legacy SIGHASH_ALL pre-image hash for input
// inputIdx, substituting prevScriptPubKey for that input's scriptSig (per
// input-index convention) and the empty script for all others, then
// appending the little-endian sighash type before hashing (spec §4.I).
// Only SighashAll is supported: for any other type the pre-image still
// keeps every input and output as SIGHASH_ALL does, with that type's value
// appended in place of 0x01.
func (tx *Transaction) SignatureHash(inputIdx int, prevScriptPubKey []byte, sighashType byte) (Hash256, error) {
	if inputIdx < 0 || inputIdx >= len(tx.Inputs) {
		return ZeroHash, fmt.Errorf("bitcoin: sighash input index %d out of range: %w", inputIdx, ErrRange)
	}

	stripped := &Transaction{
		Version:  tx.Version,
		LockTime: tx.LockTime,
		Outputs:  tx.Outputs,
	}
	stripped.Inputs = make([]TxInput, len(tx.Inputs))
	for i, in := range tx.Inputs {
		script := []byte{}
		if i == inputIdx {
			script = prevScriptPubKey
		}
		stripped.Inputs[i] = TxInput{
			PreviousOutput: in.PreviousOutput,
			ScriptSig:      script,
			Sequence:       in.Sequence,
		}
	}

	var buf bytes.Buffer
	if err := stripped.serializeLegacy(&buf); err != nil {
		return ZeroHash, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint32(sighashType)); err != nil {
		return ZeroHash, fmt.Errorf("write sighash type: %w", err)
	}

	return DoubleSHA256(buf.Bytes()), nil
}

// SignP2PKHInput signs input inputIdx of tx as a spend of a P2PKH output
// with the given scriptPubKey, using SIGHASH_ALL, and installs the
// resulting scriptSig on that input.
func (tx *Transaction) SignP2PKHInput(inputIdx int, pk PrivateKey, prevScriptPubKey []byte, compressed bool) error {
	sighash, err := tx.SignatureHash(inputIdx, prevScriptPubKey, SighashAll)
	if err != nil {
		return err
	}
	sig, err := Sign(pk, sighash.Bytes())
	if err != nil {
		return err
	}
	scriptSig, err := NewP2PKHScriptSig(sig.DER(), SighashAll, pk.PublicKey().SEC(compressed))
	if err != nil {
		return err
	}
	tx.Inputs[inputIdx].ScriptSig = scriptSig
	return nil
}

// VerifyP2PKHInput checks that input inputIdx of tx correctly spends a
// P2PKH output carrying prevOuts[inputIdx].ScriptPubKey, by running the
// scriptSig and scriptPubKey through the script engine.
func (tx *Transaction) VerifyP2PKHInput(inputIdx int, prevOuts []TxOutput) (bool, error) {
	if inputIdx < 0 || inputIdx >= len(tx.Inputs) {
		return false, fmt.Errorf("bitcoin: verify input index %d out of range: %w", inputIdx, ErrRange)
	}
	if inputIdx >= len(prevOuts) {
		return false, fmt.Errorf("bitcoin: verify input index %d has no matching prevOuts entry: %w", inputIdx, ErrRange)
	}
	if tx.TotalOutput() > prevOuts[inputIdx].Value {
		return false, fmt.Errorf("bitcoin: output total %d exceeds input amount %d: %w", tx.TotalOutput(), prevOuts[inputIdx].Value, ErrTxInvalid)
	}

	sigScript := Script(tx.Inputs[inputIdx].ScriptSig)
	pubScript := Script(prevOuts[inputIdx].ScriptPubKey)

	engine := NewScriptEngine(sigScript, tx, inputIdx, prevOuts, ScriptVerifyDERSig|ScriptVerifyLowS)
	if ok, err := engine.Execute(); err != nil || !ok {
		return false, err
	}
	engine.SetScript(pubScript)
	_, err := engine.Execute()
	if err != nil {
		return false, err
	}
	stack := engine.GetStack()
	if len(stack) == 0 {
		return false, nil
	}
	return engine.isTrue(stack[len(stack)-1]), nil
}

// IsCoinbase returns true if this is a coinbase transaction
func (tx *Transaction) IsCoinbase() bool {
	return len(tx.Inputs) == 1 &&
		tx.Inputs[0].PreviousOutput.Hash.IsZero() &&
		tx.Inputs[0].PreviousOutput.Index == 0xffffffff
}

// TotalOutput calculates the total value of all outputs
func (tx *Transaction) TotalOutput() uint64 {
	var total uint64
	for _, output := range tx.Outputs {
		total += output.Value
	}
	return total
}

// Fee returns the transaction fee given the amounts of the outputs each
// input spends (in input order): sum(inputAmounts) - sum(outputs). Callers
// typically source inputAmounts from the explorer client, since a bare
// transaction carries no record of what its inputs were worth.
func (tx *Transaction) Fee(inputAmounts []uint64) (int64, error) {
	if len(inputAmounts) != len(tx.Inputs) {
		return 0, fmt.Errorf("bitcoin: fee needs %d input amounts, got %d: %w", len(tx.Inputs), len(inputAmounts), ErrTxInvalid)
	}
	var totalIn uint64
	for _, a := range inputAmounts {
		totalIn += a
	}
	return int64(totalIn) - int64(tx.TotalOutput()), nil
}

// Validate performs basic sanity checks on the transaction shape.
func (tx *Transaction) Validate() error {
	if len(tx.Inputs) == 0 {
		return fmt.Errorf("bitcoin: transaction has no inputs: %w", ErrTxInvalid)
	}
	if len(tx.Outputs) == 0 {
		return fmt.Errorf("bitcoin: transaction has no outputs: %w", ErrTxInvalid)
	}

	seen := make(map[OutPoint]bool)
	for _, input := range tx.Inputs {
		if seen[input.PreviousOutput] {
			return fmt.Errorf("bitcoin: transaction has duplicate inputs: %w", ErrTxInvalid)
		}
		seen[input.PreviousOutput] = true
	}

	for i, output := range tx.Outputs {
		if output.Value > MaxMoney {
			return fmt.Errorf("bitcoin: output %d value exceeds maximum: %w", i, ErrTxInvalid)
		}
	}
	if tx.TotalOutput() > MaxMoney {
		return fmt.Errorf("bitcoin: total output value exceeds maximum: %w", ErrTxInvalid)
	}

	return nil
}

// String returns a string representation of the OutPoint
func (op OutPoint) String() string {
	return fmt.Sprintf("%s:%d", op.Hash.String(), op.Index)
}

// IsNull returns true if the outpoint is null (coinbase)
func (op OutPoint) IsNull() bool {
	return op.Hash.IsZero() && op.Index == 0xffffffff
}
