package packet

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrNotRecord is returned when a serializer is requested for a
	// non-struct type.
	ErrNotRecord = errors.New("packet: not a struct type")
	// ErrTrailingData is returned by Unmarshal when bytes remain after the
	// record.
	ErrTrailingData = errors.New("packet: trailing data")
)

var serializers sync.Map // reflect.Type -> *RecordSerializer[R]

// RecordSerializer writes and reads struct values of type R. Exported fields
// are encoded in declaration order; fields tagged `packet:"-"` are skipped.
// Pointer fields are optional values, slices and maps carry a VarInt length,
// arrays are written element by element and nested structs inline.
type RecordSerializer[R any] struct {
	typ   reflect.Type
	codec *codec
}

// NewRecordSerializer returns the serializer for R, building and caching it
// on first use. Every field codec is resolved here, so a field type with no
// codec fails now with a *ConfigError wrapping ErrNoCodec.
func NewRecordSerializer[R any]() (*RecordSerializer[R], error) {
	t := reflect.TypeFor[R]()
	if s, ok := serializers.Load(t); ok {
		return s.(*RecordSerializer[R]), nil
	}
	if t.Kind() != reflect.Struct {
		return nil, &ConfigError{Type: t, Err: ErrNotRecord}
	}
	r := &resolver{pending: make(map[reflect.Type]*codec)}
	c, err := r.structCodec(t)
	if err != nil {
		return nil, err
	}
	s, _ := serializers.LoadOrStore(t, &RecordSerializer[R]{typ: t, codec: c})
	return s.(*RecordSerializer[R]), nil
}

// MustRecordSerializer is like NewRecordSerializer but panics on error.
func MustRecordSerializer[R any]() *RecordSerializer[R] {
	s, err := NewRecordSerializer[R]()
	if err != nil {
		panic(err)
	}
	return s
}

// Write appends rec to b. On error b is left as it was.
func (s *RecordSerializer[R]) Write(b *Buffer, rec R) error {
	mark := len(b.data)
	if err := s.codec.write(b, reflect.ValueOf(&rec).Elem()); err != nil {
		b.data = b.data[:mark]
		return fmt.Errorf("write %v: %w", s.typ, err)
	}
	return nil
}

// Read decodes the next record from b.
func (s *RecordSerializer[R]) Read(b *Buffer) (R, error) {
	var rec R
	if err := s.codec.read(b, reflect.ValueOf(&rec).Elem()); err != nil {
		return rec, fmt.Errorf("read %v: %w", s.typ, err)
	}
	return rec, nil
}

// Marshal encodes rec into a new byte slice.
func (s *RecordSerializer[R]) Marshal(rec R) ([]byte, error) {
	var b Buffer
	if err := s.Write(&b, rec); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Unmarshal decodes data, which must hold exactly one record.
func (s *RecordSerializer[R]) Unmarshal(data []byte) (R, error) {
	b := NewBuffer(data)
	rec, err := s.Read(b)
	if err != nil {
		return rec, err
	}
	if b.Remaining() != 0 {
		return rec, fmt.Errorf("read %v: %w (%d bytes)", s.typ, ErrTrailingData, b.Remaining())
	}
	return rec, nil
}

type fieldCodec struct {
	index int
	codec *codec
}

// structCodec resolves a codec per serialized field. The codec is visible
// to nested lookups while it is being built so recursive types, which can
// only recurse through pointers, slices or maps, resolve to it.
func (r *resolver) structCodec(t reflect.Type) (*codec, error) {
	c := &codec{}
	r.pending[t] = c
	defer delete(r.pending, t)

	var fields []fieldCodec
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("packet") == "-" {
			continue
		}
		fc, err := r.codecFor(f.Type)
		if err != nil {
			return nil, fieldError(t, f.Name, err)
		}
		fields = append(fields, fieldCodec{index: i, codec: fc})
	}

	c.write = func(b *Buffer, v reflect.Value) error {
		for _, f := range fields {
			if err := f.codec.write(b, v.Field(f.index)); err != nil {
				return err
			}
		}
		return nil
	}
	c.read = func(b *Buffer, v reflect.Value) error {
		for _, f := range fields {
			if err := f.codec.read(b, v.Field(f.index)); err != nil {
				return err
			}
		}
		return nil
	}
	return c, nil
}

// fieldError reports err against the field path from t.
func fieldError(t reflect.Type, name string, err error) error {
	var ce *ConfigError
	if !errors.As(err, &ce) {
		return &ConfigError{Type: t, Field: name, Err: err}
	}
	path := name
	if ce.Field != "" {
		path += "." + ce.Field
	}
	return &ConfigError{Type: t, Field: path, Err: ce.Err}
}
