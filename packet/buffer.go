// Package packet encodes fixed-shape Go structs into compact byte buffers
// for network payloads. Codecs are resolved once per type and cached.
package packet

import (
	"encoding/binary"
	"errors"
	"math"
	"unicode/utf8"
)

// MaxStringLength is the largest string, in runes, WriteString accepts.
const MaxStringLength = 32767

var (
	// ErrShortBuffer is returned when a read runs past the end of the data.
	ErrShortBuffer = errors.New("packet: short buffer")
	// ErrVarIntTooBig is returned for a VarInt longer than 5 bytes or a
	// VarLong longer than 10.
	ErrVarIntTooBig = errors.New("packet: varint too big")
	// ErrStringTooLong is returned for strings over MaxStringLength runes.
	ErrStringTooLong = errors.New("packet: string too long")
	// ErrNegativeLength is returned when a length prefix is negative.
	ErrNegativeLength = errors.New("packet: negative length")
)

// Buffer is an append-only write buffer with an independent read cursor.
// Numbers are big-endian; lengths are VarInt prefixed.
type Buffer struct {
	data []byte
	off  int
}

// NewBuffer returns a buffer that reads data. Writes append to it.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Bytes returns everything written to the buffer.
func (b *Buffer) Bytes() []byte { return b.data }

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int { return len(b.data) - b.off }

// Reset empties the buffer, keeping its capacity.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.off = 0
}

func (b *Buffer) next(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeLength
	}
	if b.Remaining() < n {
		return nil, ErrShortBuffer
	}
	p := b.data[b.off : b.off+n]
	b.off += n
	return p, nil
}

// WriteVarInt writes v in 1 to 5 bytes, seven bits at a time.
func (b *Buffer) WriteVarInt(v int32) {
	b.writeVarUint(uint64(uint32(v)))
}

// ReadVarInt reads a VarInt written by WriteVarInt.
func (b *Buffer) ReadVarInt() (int32, error) {
	v, err := b.readVarUint(5)
	return int32(uint32(v)), err
}

// WriteVarLong writes v in 1 to 10 bytes.
func (b *Buffer) WriteVarLong(v int64) {
	b.writeVarUint(uint64(v))
}

// ReadVarLong reads a VarLong written by WriteVarLong.
func (b *Buffer) ReadVarLong() (int64, error) {
	v, err := b.readVarUint(10)
	return int64(v), err
}

func (b *Buffer) writeVarUint(v uint64) {
	for v >= 0x80 {
		b.data = append(b.data, byte(v)|0x80)
		v >>= 7
	}
	b.data = append(b.data, byte(v))
}

func (b *Buffer) readVarUint(maxBytes int) (uint64, error) {
	var v uint64
	for i := 0; ; i++ {
		if i >= maxBytes {
			return 0, ErrVarIntTooBig
		}
		p, err := b.next(1)
		if err != nil {
			return 0, err
		}
		v |= uint64(p[0]&0x7F) << (7 * i)
		if p[0]&0x80 == 0 {
			return v, nil
		}
	}
}

// WriteBool writes a single byte, 1 for true.
func (b *Buffer) WriteBool(v bool) {
	if v {
		b.data = append(b.data, 1)
		return
	}
	b.data = append(b.data, 0)
}

// ReadBool reads a byte written by WriteBool. Any non-zero byte is true.
func (b *Buffer) ReadBool() (bool, error) {
	p, err := b.next(1)
	if err != nil {
		return false, err
	}
	return p[0] != 0, nil
}

func (b *Buffer) WriteUint8(v uint8) { b.data = append(b.data, v) }

func (b *Buffer) ReadUint8() (uint8, error) {
	p, err := b.next(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (b *Buffer) WriteUint16(v uint16) { b.data = binary.BigEndian.AppendUint16(b.data, v) }

func (b *Buffer) ReadUint16() (uint16, error) {
	p, err := b.next(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

func (b *Buffer) WriteUint32(v uint32) { b.data = binary.BigEndian.AppendUint32(b.data, v) }

func (b *Buffer) ReadUint32() (uint32, error) {
	p, err := b.next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

func (b *Buffer) WriteUint64(v uint64) { b.data = binary.BigEndian.AppendUint64(b.data, v) }

func (b *Buffer) ReadUint64() (uint64, error) {
	p, err := b.next(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p), nil
}

func (b *Buffer) WriteFloat32(v float32) { b.WriteUint32(math.Float32bits(v)) }

func (b *Buffer) ReadFloat32() (float32, error) {
	u, err := b.ReadUint32()
	return math.Float32frombits(u), err
}

func (b *Buffer) WriteFloat64(v float64) { b.WriteUint64(math.Float64bits(v)) }

func (b *Buffer) ReadFloat64() (float64, error) {
	u, err := b.ReadUint64()
	return math.Float64frombits(u), err
}

// WriteString writes s as a VarInt byte length followed by its UTF-8 bytes.
func (b *Buffer) WriteString(s string) error {
	if utf8.RuneCountInString(s) > MaxStringLength {
		return ErrStringTooLong
	}
	b.WriteVarInt(int32(len(s)))
	b.data = append(b.data, s...)
	return nil
}

// ReadString reads a string written by WriteString.
func (b *Buffer) ReadString() (string, error) {
	n, err := b.ReadVarInt()
	if err != nil {
		return "", err
	}
	if n > MaxStringLength*utf8.UTFMax {
		return "", ErrStringTooLong
	}
	p, err := b.next(int(n))
	if err != nil {
		return "", err
	}
	if utf8.RuneCount(p) > MaxStringLength {
		return "", ErrStringTooLong
	}
	return string(p), nil
}

// WriteByteArray writes p with a VarInt length prefix. A nil slice is
// written as length -1.
func (b *Buffer) WriteByteArray(p []byte) {
	if p == nil {
		b.WriteVarInt(nilLength)
		return
	}
	b.WriteVarInt(int32(len(p)))
	b.data = append(b.data, p...)
}

// ReadByteArray reads a byte slice written by WriteByteArray. The result is
// a copy.
func (b *Buffer) ReadByteArray() ([]byte, error) {
	n, err := b.ReadVarInt()
	if err != nil || n == nilLength {
		return nil, err
	}
	p, err := b.next(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(p))
	copy(out, p)
	return out, nil
}
