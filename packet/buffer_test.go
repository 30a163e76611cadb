package packet

import (
	"errors"
	"strings"
	"testing"
)

func TestVarIntEncoding(t *testing.T) {
	tests := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xFF, 0x01}},
		{25565, []byte{0xDD, 0xC7, 0x01}},
		{2147483647, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07}},
		{-1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	}
	for _, tt := range tests {
		var b Buffer
		b.WriteVarInt(tt.v)
		if got := b.Bytes(); string(got) != string(tt.want) {
			t.Errorf("WriteVarInt(%d) = %x, want %x", tt.v, got, tt.want)
		}
		v, err := b.ReadVarInt()
		if err != nil {
			t.Fatalf("ReadVarInt: %v", err)
		}
		if v != tt.v {
			t.Errorf("ReadVarInt = %d, want %d", v, tt.v)
		}
	}
}

func TestVarLongNegative(t *testing.T) {
	var b Buffer
	b.WriteVarLong(-1)
	if len(b.Bytes()) != 10 {
		t.Errorf("len = %d, want 10", len(b.Bytes()))
	}
	v, err := b.ReadVarLong()
	if err != nil || v != -1 {
		t.Errorf("ReadVarLong = %d, %v, want -1", v, err)
	}
}

func TestVarIntTooBig(t *testing.T) {
	b := NewBuffer([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	if _, err := b.ReadVarInt(); !errors.Is(err, ErrVarIntTooBig) {
		t.Errorf("err = %v, want ErrVarIntTooBig", err)
	}
}

func TestShortBuffer(t *testing.T) {
	reads := map[string]func(b *Buffer) error{
		"varint": func(b *Buffer) error { _, err := b.ReadVarInt(); return err },
		"uint32": func(b *Buffer) error { _, err := b.ReadUint32(); return err },
		"string": func(b *Buffer) error { _, err := b.ReadString(); return err },
	}
	for name, read := range reads {
		b := NewBuffer([]byte{0x85})
		if err := read(b); !errors.Is(err, ErrShortBuffer) {
			t.Errorf("%s: err = %v, want ErrShortBuffer", name, err)
		}
	}
}

func TestFixedWidthBigEndian(t *testing.T) {
	var b Buffer
	b.WriteUint16(0x0102)
	b.WriteUint32(0x03040506)
	want := []byte{1, 2, 3, 4, 5, 6}
	if string(b.Bytes()) != string(want) {
		t.Errorf("bytes = %x, want %x", b.Bytes(), want)
	}
}

func TestStringRoundTrip(t *testing.T) {
	var b Buffer
	if err := b.WriteString("héllo"); err != nil {
		t.Fatal(err)
	}
	if b.Bytes()[0] != 6 {
		t.Errorf("length prefix = %d, want 6 bytes", b.Bytes()[0])
	}
	s, err := b.ReadString()
	if err != nil || s != "héllo" {
		t.Errorf("ReadString = %q, %v", s, err)
	}
}

func TestStringTooLong(t *testing.T) {
	var b Buffer
	if err := b.WriteString(strings.Repeat("a", MaxStringLength+1)); !errors.Is(err, ErrStringTooLong) {
		t.Errorf("err = %v, want ErrStringTooLong", err)
	}
	if err := b.WriteString(strings.Repeat("a", MaxStringLength)); err != nil {
		t.Errorf("max length string: %v", err)
	}
}

func TestNegativeByteArrayLength(t *testing.T) {
	var b Buffer
	b.WriteVarInt(-5)
	if _, err := b.ReadByteArray(); !errors.Is(err, ErrNegativeLength) {
		t.Errorf("err = %v, want ErrNegativeLength", err)
	}
}
