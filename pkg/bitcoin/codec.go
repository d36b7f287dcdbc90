package bitcoin

import (
	"encoding/binary"
	"fmt"
)

// Endian selects byte order for EncodeInt/DecodeInt.
type Endian int

const (
	LittleEndian Endian = iota
	BigEndian
)

// EncodeInt encodes i as an unsigned integer in n bytes, using the given
// byte order. It fails if i does not fit unsigned in n bytes.
func EncodeInt(i uint64, n int, endian Endian) ([]byte, error) {
	if n <= 0 || n > 8 {
		return nil, fmt.Errorf("bitcoin: encode int width %d out of range: %w", n, ErrRange)
	}
	if n < 8 && i>>(uint(n)*8) != 0 {
		return nil, fmt.Errorf("bitcoin: %d does not fit in %d bytes: %w", i, n, ErrRange)
	}
	buf := make([]byte, 8)
	out := make([]byte, n)
	switch endian {
	case LittleEndian:
		binary.LittleEndian.PutUint64(buf, i)
		copy(out, buf[:n])
	case BigEndian:
		binary.BigEndian.PutUint64(buf, i)
		copy(out, buf[8-n:])
	default:
		return nil, fmt.Errorf("bitcoin: unknown endian %d", endian)
	}
	return out, nil
}

// Reader is an in-memory byte cursor used by every streaming decoder in this
// package. It fails deterministically with ErrTruncated on short read.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps b in a Reader starting at offset 0.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// Pos returns the current read offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Seek repositions the cursor to an absolute offset previously obtained
// from Pos, used to back out of a speculative read (e.g. a SegWit
// marker/flag probe).
func (r *Reader) Seek(pos int) {
	r.pos = pos
}

// ReadBytes reads exactly n bytes, failing with ErrTruncated on short read.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, fmt.Errorf("bitcoin: need %d bytes, have %d: %w", n, r.Len(), ErrTruncated)
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

// ReadByte reads a single byte. It satisfies io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// DecodeInt reads exactly n bytes and decodes them as an unsigned integer in
// the given byte order, failing with ErrTruncated on short read.
func (r *Reader) DecodeInt(n int, endian Endian) (uint64, error) {
	if n <= 0 || n > 8 {
		return 0, fmt.Errorf("bitcoin: decode int width %d out of range: %w", n, ErrRange)
	}
	b, err := r.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	buf := make([]byte, 8)
	switch endian {
	case LittleEndian:
		copy(buf, b)
		return binary.LittleEndian.Uint64(buf), nil
	case BigEndian:
		copy(buf[8-n:], b)
		return binary.BigEndian.Uint64(buf), nil
	default:
		return 0, fmt.Errorf("bitcoin: unknown endian %d", endian)
	}
}

// EncodeVarInt encodes value as a Bitcoin CompactSize varint.
func EncodeVarInt(value uint64) []byte {
	switch {
	case value < 0xfd:
		return []byte{byte(value)}
	case value <= 0xffff:
		buf := make([]byte, 3)
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(value))
		return buf
	case value <= 0xffffffff:
		buf := make([]byte, 5)
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(value))
		return buf
	default:
		buf := make([]byte, 9)
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:], value)
		return buf
	}
}

// ReadVarInt decodes a Bitcoin CompactSize varint from r.
func (r *Reader) ReadVarInt() (uint64, error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("bitcoin: read varint prefix: %w", err)
	}
	switch first {
	case 0xfd:
		return r.DecodeInt(2, LittleEndian)
	case 0xfe:
		return r.DecodeInt(4, LittleEndian)
	case 0xff:
		return r.DecodeInt(8, LittleEndian)
	default:
		return uint64(first), nil
	}
}

// DecodeVarInt decodes a Bitcoin CompactSize varint from the start of data,
// returning the value and the number of bytes consumed.
func DecodeVarInt(data []byte) (value uint64, bytesRead int, err error) {
	r := NewReader(data)
	value, err = r.ReadVarInt()
	if err != nil {
		return 0, 0, err
	}
	return value, r.Pos(), nil
}
