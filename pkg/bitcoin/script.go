package bitcoin

import (
	"fmt"
)

// Script represents a Bitcoin script: a sequence of opcodes and data pushes.
type Script []byte

// ScriptOpcode represents a script operation code
type ScriptOpcode byte

// Script operation codes
const (
	// Constants
	OP_0         ScriptOpcode = 0x00
	OP_FALSE     ScriptOpcode = OP_0
	OP_PUSHDATA1 ScriptOpcode = 0x4c
	OP_PUSHDATA2 ScriptOpcode = 0x4d
	OP_PUSHDATA4 ScriptOpcode = 0x4e
	OP_1NEGATE   ScriptOpcode = 0x4f
	OP_RESERVED  ScriptOpcode = 0x50
	OP_1         ScriptOpcode = 0x51
	OP_TRUE      ScriptOpcode = OP_1
	OP_2         ScriptOpcode = 0x52
	OP_3         ScriptOpcode = 0x53
	OP_4         ScriptOpcode = 0x54
	OP_5         ScriptOpcode = 0x55
	OP_6         ScriptOpcode = 0x56
	OP_7         ScriptOpcode = 0x57
	OP_8         ScriptOpcode = 0x58
	OP_9         ScriptOpcode = 0x59
	OP_10        ScriptOpcode = 0x5a
	OP_11        ScriptOpcode = 0x5b
	OP_12        ScriptOpcode = 0x5c
	OP_13        ScriptOpcode = 0x5d
	OP_14        ScriptOpcode = 0x5e
	OP_15        ScriptOpcode = 0x5f
	OP_16        ScriptOpcode = 0x60

	// Flow control
	OP_NOP      ScriptOpcode = 0x61
	OP_VER      ScriptOpcode = 0x62
	OP_IF       ScriptOpcode = 0x63
	OP_NOTIF    ScriptOpcode = 0x64
	OP_VERIF    ScriptOpcode = 0x65
	OP_VERNOTIF ScriptOpcode = 0x66
	OP_ELSE     ScriptOpcode = 0x67
	OP_ENDIF    ScriptOpcode = 0x68
	OP_VERIFY   ScriptOpcode = 0x69
	OP_RETURN   ScriptOpcode = 0x6a

	// Stack ops
	OP_TOALTSTACK   ScriptOpcode = 0x6b
	OP_FROMALTSTACK ScriptOpcode = 0x6c
	OP_2DROP        ScriptOpcode = 0x6d
	OP_2DUP         ScriptOpcode = 0x6e
	OP_3DUP         ScriptOpcode = 0x6f
	OP_2OVER        ScriptOpcode = 0x70
	OP_2ROT         ScriptOpcode = 0x71
	OP_2SWAP        ScriptOpcode = 0x72
	OP_IFDUP        ScriptOpcode = 0x73
	OP_DEPTH        ScriptOpcode = 0x74
	OP_DROP         ScriptOpcode = 0x75
	OP_DUP          ScriptOpcode = 0x76
	OP_NIP          ScriptOpcode = 0x77
	OP_OVER         ScriptOpcode = 0x78
	OP_PICK         ScriptOpcode = 0x79
	OP_ROLL         ScriptOpcode = 0x7a
	OP_ROT          ScriptOpcode = 0x7b
	OP_SWAP         ScriptOpcode = 0x7c
	OP_TUCK         ScriptOpcode = 0x7d

	// String ops
	OP_SIZE ScriptOpcode = 0x82

	// Bitwise logic
	OP_EQUAL       ScriptOpcode = 0x87
	OP_EQUALVERIFY ScriptOpcode = 0x88

	// Arithmetic
	OP_1ADD               ScriptOpcode = 0x8b
	OP_1SUB               ScriptOpcode = 0x8c
	OP_NEGATE             ScriptOpcode = 0x8f
	OP_ABS                ScriptOpcode = 0x90
	OP_NOT                ScriptOpcode = 0x91
	OP_0NOTEQUAL          ScriptOpcode = 0x92
	OP_ADD                ScriptOpcode = 0x93
	OP_SUB                ScriptOpcode = 0x94
	OP_BOOLAND            ScriptOpcode = 0x9a
	OP_BOOLOR             ScriptOpcode = 0x9b
	OP_NUMEQUAL           ScriptOpcode = 0x9c
	OP_NUMEQUALVERIFY     ScriptOpcode = 0x9d
	OP_NUMNOTEQUAL        ScriptOpcode = 0x9e
	OP_LESSTHAN           ScriptOpcode = 0x9f
	OP_GREATERTHAN        ScriptOpcode = 0xa0
	OP_LESSTHANOREQUAL    ScriptOpcode = 0xa1
	OP_GREATERTHANOREQUAL ScriptOpcode = 0xa2
	OP_MIN                ScriptOpcode = 0xa3
	OP_MAX                ScriptOpcode = 0xa4
	OP_WITHIN             ScriptOpcode = 0xa5

	// Crypto
	OP_RIPEMD160           ScriptOpcode = 0xa6
	OP_SHA1                ScriptOpcode = 0xa7
	OP_SHA256              ScriptOpcode = 0xa8
	OP_HASH160             ScriptOpcode = 0xa9
	OP_HASH256             ScriptOpcode = 0xaa
	OP_CODESEPARATOR       ScriptOpcode = 0xab
	OP_CHECKSIG            ScriptOpcode = 0xac
	OP_CHECKSIGVERIFY      ScriptOpcode = 0xad
	OP_CHECKMULTISIG       ScriptOpcode = 0xae
	OP_CHECKMULTISIGVERIFY ScriptOpcode = 0xaf

	// Expansion
	OP_NOP1                ScriptOpcode = 0xb0
	OP_CHECKLOCKTIMEVERIFY ScriptOpcode = 0xb1 // BIP65
	OP_CHECKSEQUENCEVERIFY ScriptOpcode = 0xb2 // BIP112
	OP_NOP4                ScriptOpcode = 0xb3
	OP_NOP5                ScriptOpcode = 0xb4
	OP_NOP6                ScriptOpcode = 0xb5
	OP_NOP7                ScriptOpcode = 0xb6
	OP_NOP8                ScriptOpcode = 0xb7
	OP_NOP9                ScriptOpcode = 0xb8
	OP_NOP10               ScriptOpcode = 0xb9

	// Invalid opcodes
	OP_INVALIDOPCODE ScriptOpcode = 0xff
)

// MaxScriptElementSize is the maximum size of a single pushed element
// (spec §4.H): pushes beyond this fail with ErrScriptTooLarge.
const MaxScriptElementSize = 520

// ScriptType represents the type of a script
type ScriptType int

const (
	ScriptTypeUnknown ScriptType = iota
	ScriptTypeP2PK               // Pay-to-Public-Key
	ScriptTypeP2PKH              // Pay-to-Public-Key-Hash
	ScriptTypeP2SH               // Pay-to-Script-Hash
	ScriptTypeP2WPKH             // Pay-to-Witness-Public-Key-Hash
	ScriptTypeP2WSH              // Pay-to-Witness-Script-Hash
	ScriptTypeP2TR               // Pay-to-Taproot
	ScriptTypeMultisig
	ScriptTypeNullData // OP_RETURN
)

// Command is one element of a parsed script: either a data push (Data
// non-nil, Op zero) or a bare opcode (Op set, Data nil).
type Command struct {
	Op   ScriptOpcode
	Data []byte
}

// IsPush reports whether this command is a data push.
func (c Command) IsPush() bool {
	return c.Data != nil
}

// EncodePush length-prefix-encodes data as a script push, choosing the
// direct byte-count form for small pushes and OP_PUSHDATA1/2 for larger
// ones, and fails with ErrScriptTooLarge beyond MaxScriptElementSize.
func EncodePush(data []byte) ([]byte, error) {
	n := len(data)
	switch {
	case n > MaxScriptElementSize:
		return nil, fmt.Errorf("bitcoin: push of %d bytes exceeds %d: %w", n, MaxScriptElementSize, ErrScriptTooLarge)
	case n <= 75:
		return append([]byte{byte(n)}, data...), nil
	case n <= 255:
		return append([]byte{byte(OP_PUSHDATA1), byte(n)}, data...), nil
	default:
		out := make([]byte, 0, n+3)
		out = append(out, byte(OP_PUSHDATA2), byte(n), byte(n>>8))
		return append(out, data...), nil
	}
}

// ParseScript decodes raw script bytes into a sequence of Commands,
// resolving OP_PUSHDATA1/OP_PUSHDATA2 length prefixes and rejecting pushes
// beyond MaxScriptElementSize.
func ParseScript(data []byte) ([]Command, error) {
	r := NewReader(data)
	var cmds []Command
	for r.Len() > 0 {
		op, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		switch {
		case op >= 1 && op <= 75:
			b, err := r.ReadBytes(int(op))
			if err != nil {
				return nil, fmt.Errorf("bitcoin: script push truncated: %w", err)
			}
			cmds = append(cmds, Command{Data: append([]byte{}, b...)})
		case ScriptOpcode(op) == OP_PUSHDATA1:
			n, err := r.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("bitcoin: script OP_PUSHDATA1 truncated: %w", err)
			}
			b, err := r.ReadBytes(int(n))
			if err != nil {
				return nil, fmt.Errorf("bitcoin: script OP_PUSHDATA1 payload truncated: %w", err)
			}
			cmds = append(cmds, Command{Data: append([]byte{}, b...)})
		case ScriptOpcode(op) == OP_PUSHDATA2:
			n, err := r.DecodeInt(2, LittleEndian)
			if err != nil {
				return nil, fmt.Errorf("bitcoin: script OP_PUSHDATA2 truncated: %w", err)
			}
			if n > MaxScriptElementSize {
				return nil, fmt.Errorf("bitcoin: push of %d bytes exceeds %d: %w", n, MaxScriptElementSize, ErrScriptTooLarge)
			}
			b, err := r.ReadBytes(int(n))
			if err != nil {
				return nil, fmt.Errorf("bitcoin: script OP_PUSHDATA2 payload truncated: %w", err)
			}
			cmds = append(cmds, Command{Data: append([]byte{}, b...)})
		default:
			cmds = append(cmds, Command{Op: ScriptOpcode(op)})
		}
	}
	return cmds, nil
}

// SerializeScript encodes cmds back to raw script bytes.
func SerializeScript(cmds []Command) ([]byte, error) {
	var out []byte
	for _, c := range cmds {
		if c.IsPush() {
			enc, err := EncodePush(c.Data)
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
		} else {
			out = append(out, byte(c.Op))
		}
	}
	return out, nil
}

// NewP2PKHScript builds the standard pay-to-pubkey-hash scriptPubKey:
// OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG.
func NewP2PKHScript(hash Hash160) Script {
	cmds := []Command{
		{Op: OP_DUP},
		{Op: OP_HASH160},
		{Data: hash.Bytes()},
		{Op: OP_EQUALVERIFY},
		{Op: OP_CHECKSIG},
	}
	out, _ := SerializeScript(cmds)
	return Script(out)
}

// P2PKHHash160 returns the embedded pubkey hash if s is a standard P2PKH
// scriptPubKey, or false otherwise.
func (s Script) P2PKHHash160() (Hash160, bool) {
	if s.AnalyzeScript() != ScriptTypeP2PKH {
		return ZeroHash160, false
	}
	h, err := NewHash160FromBytes(s[3:23])
	if err != nil {
		return ZeroHash160, false
	}
	return h, true
}

// NewP2PKHScriptSig builds a P2PKH scriptSig: <sig-DER + sighash-byte>
// <pubkey-SEC>.
func NewP2PKHScriptSig(derSig []byte, sighashType byte, secPubKey []byte) (Script, error) {
	sigWithType := append(append([]byte{}, derSig...), sighashType)
	out, err := SerializeScript([]Command{{Data: sigWithType}, {Data: secPubKey}})
	if err != nil {
		return nil, err
	}
	return Script(out), nil
}

// ScriptEngine executes Bitcoin scripts
type ScriptEngine struct {
	stack    [][]byte
	altStack [][]byte
	script   Script
	pc       int

	// Execution flags
	flags ScriptFlags

	// Transaction context for signature verification
	tx       *Transaction
	txIdx    int
	prevOuts []TxOutput
}

// ScriptFlags control script execution behavior
type ScriptFlags uint32

const (
	ScriptFlagsNone                                ScriptFlags = 0
	ScriptVerifyP2SH                               ScriptFlags = 1 << 0 // BIP16
	ScriptVerifyStrictEnc                          ScriptFlags = 1 << 1 // Strict DER encoding
	ScriptVerifyDERSig                             ScriptFlags = 1 << 2 // Strict DER signatures
	ScriptVerifyLowS                               ScriptFlags = 1 << 3 // Low S values
	ScriptVerifyNullDummy                          ScriptFlags = 1 << 4 // Null dummy for multisig
	ScriptVerifySigPushOnly                        ScriptFlags = 1 << 5 // Only push operations in scriptSig
	ScriptVerifyMinimalData                        ScriptFlags = 1 << 6 // Minimal pushdata operations
	ScriptVerifyDiscourageUpgradableNops           ScriptFlags = 1 << 7
	ScriptVerifyCleanStack                         ScriptFlags = 1 << 8  // Clean stack after execution
	ScriptVerifyCheckLockTimeVerify                ScriptFlags = 1 << 9  // BIP65
	ScriptVerifyCheckSequenceVerify                ScriptFlags = 1 << 10 // BIP112
	ScriptVerifyWitness                            ScriptFlags = 1 << 11 // BIP141
	ScriptVerifyDiscourageUpgradableWitnessProgram ScriptFlags = 1 << 12
	ScriptVerifyMinimalIf                          ScriptFlags = 1 << 13
	ScriptVerifyNullFail                           ScriptFlags = 1 << 14
	ScriptVerifyWitnessPubkeyType                  ScriptFlags = 1 << 15
	ScriptVerifyConstScriptCode                    ScriptFlags = 1 << 16 // BIP342
	ScriptVerifyTaproot                            ScriptFlags = 1 << 17 // BIP340/341/342
)

// NewScriptEngine creates a new script execution engine
func NewScriptEngine(script Script, tx *Transaction, txIdx int, prevOuts []TxOutput, flags ScriptFlags) *ScriptEngine {
	return &ScriptEngine{
		stack:    make([][]byte, 0, 100),
		altStack: make([][]byte, 0, 100),
		script:   script,
		pc:       0,
		flags:    flags,
		tx:       tx,
		txIdx:    txIdx,
		prevOuts: prevOuts,
	}
}

// Execute runs the script and returns true if successful
func (se *ScriptEngine) Execute() (bool, error) {
	if len(se.script) == 0 {
		return true, nil
	}

	for se.pc < len(se.script) {
		opcode := ScriptOpcode(se.script[se.pc])
		se.pc++

		if err := se.executeOpcode(opcode); err != nil {
			return false, err
		}
	}

	return true, nil
}

// executeOpcode executes a single opcode
func (se *ScriptEngine) executeOpcode(opcode ScriptOpcode) error {
	switch opcode {
	// Number constants
	case OP_0:
		se.stack = append(se.stack, []byte{})
	case OP_1, OP_2, OP_3, OP_4, OP_5, OP_6, OP_7, OP_8, OP_9, OP_10,
		OP_11, OP_12, OP_13, OP_14, OP_15, OP_16:
		se.stack = append(se.stack, []byte{byte(opcode) - byte(OP_1) + 1})

	// Stack operations
	case OP_DUP:
		if len(se.stack) < 1 {
			return fmt.Errorf("OP_DUP: insufficient stack items")
		}
		top := se.stack[len(se.stack)-1]
		se.stack = append(se.stack, append([]byte{}, top...))

	case OP_DROP:
		if len(se.stack) < 1 {
			return fmt.Errorf("OP_DROP: insufficient stack items")
		}
		se.stack = se.stack[:len(se.stack)-1]

	case OP_SWAP:
		if len(se.stack) < 2 {
			return fmt.Errorf("OP_SWAP: insufficient stack items")
		}
		n := len(se.stack)
		se.stack[n-1], se.stack[n-2] = se.stack[n-2], se.stack[n-1]

	// Arithmetic operations
	case OP_ADD:
		if len(se.stack) < 2 {
			return fmt.Errorf("OP_ADD: insufficient stack items")
		}
		b := se.stack[len(se.stack)-1]
		a := se.stack[len(se.stack)-2]
		se.stack = se.stack[:len(se.stack)-2]
		se.stack = append(se.stack, se.numToBytes(se.bytesToNum(a)+se.bytesToNum(b)))

	case OP_SUB:
		if len(se.stack) < 2 {
			return fmt.Errorf("OP_SUB: insufficient stack items")
		}
		b := se.stack[len(se.stack)-1]
		a := se.stack[len(se.stack)-2]
		se.stack = se.stack[:len(se.stack)-2]
		se.stack = append(se.stack, se.numToBytes(se.bytesToNum(a)-se.bytesToNum(b)))

	// Comparison operations
	case OP_EQUAL:
		if len(se.stack) < 2 {
			return fmt.Errorf("OP_EQUAL: insufficient stack items")
		}
		a := se.stack[len(se.stack)-2]
		b := se.stack[len(se.stack)-1]
		se.stack = se.stack[:len(se.stack)-2]

		if bytesEqual(a, b) {
			se.stack = append(se.stack, []byte{1})
		} else {
			se.stack = append(se.stack, []byte{0})
		}

	case OP_EQUALVERIFY:
		if err := se.executeOpcode(OP_EQUAL); err != nil {
			return err
		}
		return se.executeOpcode(OP_VERIFY)

	case OP_VERIFY:
		if len(se.stack) < 1 {
			return fmt.Errorf("OP_VERIFY: insufficient stack items")
		}
		top := se.stack[len(se.stack)-1]
		se.stack = se.stack[:len(se.stack)-1]

		if !se.isTrue(top) {
			return fmt.Errorf("OP_VERIFY: failed")
		}

	// Hash operations
	case OP_HASH160:
		if len(se.stack) < 1 {
			return fmt.Errorf("OP_HASH160: insufficient stack items")
		}
		data := se.stack[len(se.stack)-1]
		se.stack = se.stack[:len(se.stack)-1]
		hash := Hash160Bytes(data)
		se.stack = append(se.stack, hash[:])

	case OP_HASH256:
		if len(se.stack) < 1 {
			return fmt.Errorf("OP_HASH256: insufficient stack items")
		}
		data := se.stack[len(se.stack)-1]
		se.stack = se.stack[:len(se.stack)-1]
		hash := DoubleSHA256(data)
		se.stack = append(se.stack, hash[:])

	// Signature operations
	case OP_CHECKSIG:
		if len(se.stack) < 2 {
			return fmt.Errorf("OP_CHECKSIG: insufficient stack items (need signature and pubkey)")
		}

		pubKeyBytes := se.stack[len(se.stack)-1]
		sigBytes := se.stack[len(se.stack)-2]
		se.stack = se.stack[:len(se.stack)-2]

		valid := se.verifySignature(sigBytes, pubKeyBytes)
		if valid {
			se.stack = append(se.stack, []byte{1})
		} else {
			se.stack = append(se.stack, []byte{0})
		}

	default:
		if opcode >= 1 && opcode <= 75 {
			n := int(opcode)
			if se.pc+n > len(se.script) {
				return fmt.Errorf("push operation exceeds script bounds")
			}
			data := se.script[se.pc : se.pc+n]
			se.pc += n
			se.stack = append(se.stack, data)
		} else {
			return fmt.Errorf("unimplemented opcode: %02x", opcode)
		}
	}

	return nil
}

// isTrue returns true if the byte slice represents a true value
func (se *ScriptEngine) isTrue(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	for i := 0; i < len(data)-1; i++ {
		if data[i] != 0 {
			return true
		}
	}

	last := data[len(data)-1]
	return last != 0 && last != 0x80
}

// Script size constants
const (
	P2PKHScriptSize        = 25 // OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG
	P2SHScriptSize         = 23 // OP_HASH160 <20-byte hash> OP_EQUAL
	P2WPKHScriptSize       = 22 // OP_0 <20-byte hash>
	P2WSHScriptSize        = 34 // OP_0 <32-byte hash>
	P2TRScriptSize         = 34 // OP_1 <32-byte key>
	CompressedPubKeySize   = 33 // 0x02/0x03 + 32 bytes
	UncompressedPubKeySize = 65 // 0x04 + 64 bytes
	Hash160Size            = 20 // RIPEMD160 output
	Hash256Size            = 32 // SHA256 output
)

// AnalyzeScript determines the type of a script
func (s Script) AnalyzeScript() ScriptType {
	if len(s) == 0 {
		return ScriptTypeUnknown
	}

	if len(s) == P2PKHScriptSize &&
		s[0] == byte(OP_DUP) &&
		s[1] == byte(OP_HASH160) &&
		s[2] == Hash160Size &&
		s[23] == byte(OP_EQUALVERIFY) &&
		s[24] == byte(OP_CHECKSIG) {
		return ScriptTypeP2PKH
	}

	if len(s) == P2SHScriptSize &&
		s[0] == byte(OP_HASH160) &&
		s[1] == Hash160Size &&
		s[22] == byte(OP_EQUAL) {
		return ScriptTypeP2SH
	}

	if len(s) >= 35 && s[len(s)-1] == byte(OP_CHECKSIG) {
		if s[0] == CompressedPubKeySize && (s[1] == 0x02 || s[1] == 0x03) {
			return ScriptTypeP2PK
		}
		if len(s) >= 67 && s[0] == UncompressedPubKeySize && s[1] == 0x04 {
			return ScriptTypeP2PK
		}
	}

	if len(s) == P2WPKHScriptSize && s[0] == byte(OP_0) && s[1] == Hash160Size {
		return ScriptTypeP2WPKH
	}

	if len(s) == P2WSHScriptSize && s[0] == byte(OP_0) && s[1] == Hash256Size {
		return ScriptTypeP2WSH
	}

	if len(s) == P2TRScriptSize && s[0] == byte(OP_1) && s[1] == Hash256Size {
		return ScriptTypeP2TR
	}

	if len(s) >= 4 && s[len(s)-1] == byte(OP_CHECKMULTISIG) {
		if s[0] >= 0x51 && s[0] <= 0x60 {
			if s[len(s)-2] >= 0x51 && s[len(s)-2] <= 0x60 {
				return ScriptTypeMultisig
			}
		}
	}

	if len(s) > 0 && s[0] == byte(OP_RETURN) {
		return ScriptTypeNullData
	}

	return ScriptTypeUnknown
}

// IsStandard returns true if the script is considered standard
func (s Script) IsStandard() bool {
	scriptType := s.AnalyzeScript()
	switch scriptType {
	case ScriptTypeP2PKH, ScriptTypeP2SH, ScriptTypeP2WPKH, ScriptTypeP2WSH, ScriptTypeP2TR, ScriptTypeP2PK:
		return true
	case ScriptTypeNullData:
		return len(s) <= 80
	case ScriptTypeMultisig:
		return s.isStandardMultisig()
	default:
		return false
	}
}

// isStandardMultisig checks if a multisig script meets standardness rules
func (s Script) isStandardMultisig() bool {
	if len(s) < 4 || s[len(s)-1] != byte(OP_CHECKMULTISIG) {
		return false
	}

	if s[0] < 0x51 || s[0] > 0x53 {
		return false
	}

	if s[len(s)-2] < 0x51 || s[len(s)-2] > 0x53 {
		return false
	}

	m := s[0] - 0x50
	n := s[len(s)-2] - 0x50

	return m <= n && n <= 3
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// GetStack returns a copy of the current execution stack
func (se *ScriptEngine) GetStack() [][]byte {
	stack := make([][]byte, len(se.stack))
	for i, item := range se.stack {
		stack[i] = make([]byte, len(item))
		copy(stack[i], item)
	}
	return stack
}

// SetScript updates the script being executed and resets the program counter
func (se *ScriptEngine) SetScript(script Script) {
	se.script = script
	se.pc = 0
}

// bytesToNum converts Bitcoin script number format (little-endian) to int64
func (se *ScriptEngine) bytesToNum(data []byte) int64 {
	if len(data) == 0 {
		return 0
	}

	var result int64
	for i := 0; i < len(data) && i <= 7; i++ {
		shift := uint64(i) * 8
		if i == len(data)-1 {
			if data[i]&0x80 != 0 {
				result |= int64(data[i]&0x7f) << shift
				result = -result
			} else {
				result |= int64(data[i]) << shift
			}
		} else {
			result |= int64(data[i]) << shift
		}
	}

	return result
}

// numToBytes converts int64 to Bitcoin script number format (little-endian)
func (se *ScriptEngine) numToBytes(num int64) []byte {
	if num == 0 {
		return []byte{}
	}

	negative := num < 0
	if negative {
		num = -num
	}

	var result []byte
	for num > 0 {
		result = append(result, byte(num&0xff))
		num >>= 8
	}

	if negative {
		if len(result) > 0 && result[len(result)-1]&0x80 != 0 {
			result = append(result, 0x80)
		} else if len(result) > 0 {
			result[len(result)-1] |= 0x80
		}
	} else if len(result) > 0 && result[len(result)-1]&0x80 != 0 {
		result = append(result, 0x00)
	}

	return result
}

// verifySignature checks a DER signature (with trailing sighash-type byte)
// and SEC-encoded public key popped off the stack against the legacy
// SIGHASH_ALL pre-image of the transaction input being evaluated.
func (se *ScriptEngine) verifySignature(sigBytes, pubKeyBytes []byte) bool {
	if len(sigBytes) < 2 || se.tx == nil || se.txIdx >= len(se.prevOuts) {
		return false
	}

	sighashType := sigBytes[len(sigBytes)-1]
	der := sigBytes[:len(sigBytes)-1]

	sig, err := ParseDER(der)
	if err != nil {
		return false
	}
	pub, err := ParseSEC(pubKeyBytes)
	if err != nil {
		return false
	}

	prevScript := se.prevOuts[se.txIdx].ScriptPubKey
	sighash, err := se.tx.SignatureHash(se.txIdx, prevScript, sighashType)
	if err != nil {
		return false
	}

	return Verify(pub, sighash[:], sig)
}
