package packet

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"golang.org/x/exp/constraints"
)

// ErrNoCodec is returned when a type has no registered codec and cannot be
// derived from its kind.
var ErrNoCodec = errors.New("packet: no codec for type")

// ConfigError reports a type that cannot be serialized. Field is the dotted
// path to the offending field, empty for the top-level type.
type ConfigError struct {
	Type  reflect.Type
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("packet: %v: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("packet: %v field %s: %v", e.Type, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// codec writes and reads one value. read stores into v, which must be
// settable.
type codec struct {
	write func(b *Buffer, v reflect.Value) error
	read  func(b *Buffer, v reflect.Value) error
}

var (
	codecMu sync.RWMutex
	codecs  = make(map[reflect.Type]*codec)
)

// Register installs the codec for T, replacing any previous one. Codecs
// registered after a serializer was built do not affect that serializer.
func Register[T any](write func(*Buffer, T) error, read func(*Buffer) (T, error)) {
	t := reflect.TypeFor[T]()
	c := &codec{
		write: func(b *Buffer, v reflect.Value) error {
			return write(b, v.Interface().(T))
		},
		read: func(b *Buffer, v reflect.Value) error {
			x, err := read(b)
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(&x).Elem())
			return nil
		},
	}
	codecMu.Lock()
	codecs[t] = c
	codecMu.Unlock()
}

func registered(t reflect.Type) (*codec, bool) {
	codecMu.RLock()
	defer codecMu.RUnlock()
	c, ok := codecs[t]
	return c, ok
}

func registerVarSigned[T constraints.Signed]() {
	Register(func(b *Buffer, v T) error {
		b.WriteVarLong(int64(v))
		return nil
	}, func(b *Buffer) (T, error) {
		n, err := b.ReadVarLong()
		return T(n), err
	})
}

func registerVarUnsigned[T constraints.Unsigned]() {
	Register(func(b *Buffer, v T) error {
		b.writeVarUint(uint64(v))
		return nil
	}, func(b *Buffer) (T, error) {
		n, err := b.readVarUint(10)
		return T(n), err
	})
}

// registerFixed installs a big-endian codec of size bytes for T. Reads
// truncate and reinterpret, so signed values round-trip.
func registerFixed[T constraints.Integer](size int) {
	Register(func(b *Buffer, v T) error {
		switch size {
		case 1:
			b.WriteUint8(uint8(v))
		case 2:
			b.WriteUint16(uint16(v))
		}
		return nil
	}, func(b *Buffer) (T, error) {
		switch size {
		case 1:
			n, err := b.ReadUint8()
			return T(n), err
		default:
			n, err := b.ReadUint16()
			return T(n), err
		}
	})
}

func init() {
	Register(func(b *Buffer, v bool) error {
		b.WriteBool(v)
		return nil
	}, (*Buffer).ReadBool)

	registerFixed[int8](1)
	registerFixed[uint8](1)
	registerFixed[int16](2)
	registerFixed[uint16](2)

	Register(func(b *Buffer, v int32) error {
		b.WriteVarInt(v)
		return nil
	}, (*Buffer).ReadVarInt)
	registerVarSigned[int]()
	registerVarSigned[int64]()
	registerVarSigned[time.Duration]()
	registerVarUnsigned[uint]()
	registerVarUnsigned[uint32]()
	registerVarUnsigned[uint64]()

	Register(func(b *Buffer, v float32) error {
		b.WriteFloat32(v)
		return nil
	}, (*Buffer).ReadFloat32)
	Register(func(b *Buffer, v float64) error {
		b.WriteFloat64(v)
		return nil
	}, (*Buffer).ReadFloat64)

	Register((*Buffer).WriteString, (*Buffer).ReadString)
	Register(func(b *Buffer, v time.Time) error {
		b.WriteVarLong(v.Unix())
		b.WriteVarInt(int32(v.Nanosecond()))
		return nil
	}, func(b *Buffer) (time.Time, error) {
		sec, err := b.ReadVarLong()
		if err != nil {
			return time.Time{}, err
		}
		nsec, err := b.ReadVarInt()
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(sec, int64(nsec)).UTC(), nil
	})
	Register(func(b *Buffer, v []byte) error {
		b.WriteByteArray(v)
		return nil
	}, (*Buffer).ReadByteArray)
}

// kindBase maps a basic kind to the predeclared type that carries its codec.
// Named types such as `type Mode uint8` fall back to it.
var kindBase = map[reflect.Kind]reflect.Type{
	reflect.Bool:    reflect.TypeFor[bool](),
	reflect.Int:     reflect.TypeFor[int](),
	reflect.Int8:    reflect.TypeFor[int8](),
	reflect.Int16:   reflect.TypeFor[int16](),
	reflect.Int32:   reflect.TypeFor[int32](),
	reflect.Int64:   reflect.TypeFor[int64](),
	reflect.Uint:    reflect.TypeFor[uint](),
	reflect.Uint8:   reflect.TypeFor[uint8](),
	reflect.Uint16:  reflect.TypeFor[uint16](),
	reflect.Uint32:  reflect.TypeFor[uint32](),
	reflect.Uint64:  reflect.TypeFor[uint64](),
	reflect.Float32: reflect.TypeFor[float32](),
	reflect.Float64: reflect.TypeFor[float64](),
	reflect.String:  reflect.TypeFor[string](),
}

// resolver builds codecs for one serializer. pending holds struct types
// currently under construction so self-referencing types terminate.
type resolver struct {
	pending map[reflect.Type]*codec
}

func (r *resolver) codecFor(t reflect.Type) (*codec, error) {
	if c, ok := registered(t); ok {
		return c, nil
	}
	if c, ok := r.pending[t]; ok {
		return c, nil
	}
	if base, ok := kindBase[t.Kind()]; ok {
		return convertCodec(t, base)
	}
	switch t.Kind() {
	case reflect.Pointer:
		return r.optionalCodec(t)
	case reflect.Slice:
		return r.sliceCodec(t)
	case reflect.Array:
		return r.arrayCodec(t)
	case reflect.Map:
		return r.mapCodec(t)
	case reflect.Struct:
		if t.NumField() > 0 && serializedFields(t) == 0 {
			return nil, &ConfigError{Type: t, Err: ErrNoCodec}
		}
		return r.structCodec(t)
	}
	return nil, &ConfigError{Type: t, Err: ErrNoCodec}
}

// serializedFields counts the fields structCodec would encode. A nested
// struct whose state is all unexported, like time.Time, has none and needs a
// registered codec.
func serializedFields(t reflect.Type) int {
	n := 0
	for i := range t.NumField() {
		f := t.Field(i)
		if f.IsExported() && f.Tag.Get("packet") != "-" {
			n++
		}
	}
	return n
}

func convertCodec(t, base reflect.Type) (*codec, error) {
	c, ok := registered(base)
	if !ok {
		return nil, &ConfigError{Type: t, Err: ErrNoCodec}
	}
	return &codec{
		write: func(b *Buffer, v reflect.Value) error {
			return c.write(b, v.Convert(base))
		},
		read: func(b *Buffer, v reflect.Value) error {
			tmp := reflect.New(base).Elem()
			if err := c.read(b, tmp); err != nil {
				return err
			}
			v.Set(tmp.Convert(t))
			return nil
		},
	}, nil
}

// optionalCodec encodes a pointer as a presence flag followed by the value.
func (r *resolver) optionalCodec(t reflect.Type) (*codec, error) {
	elem, err := r.codecFor(t.Elem())
	if err != nil {
		return nil, err
	}
	return &codec{
		write: func(b *Buffer, v reflect.Value) error {
			b.WriteBool(!v.IsNil())
			if v.IsNil() {
				return nil
			}
			return elem.write(b, v.Elem())
		},
		read: func(b *Buffer, v reflect.Value) error {
			present, err := b.ReadBool()
			if err != nil || !present {
				v.SetZero()
				return err
			}
			p := reflect.New(t.Elem())
			if err := elem.read(b, p.Elem()); err != nil {
				return err
			}
			v.Set(p)
			return nil
		},
	}, nil
}

// sliceCodec writes a VarInt length and the elements. A nil slice is
// written as length -1 so nil and empty stay distinct.
func (r *resolver) sliceCodec(t reflect.Type) (*codec, error) {
	elem, err := r.codecFor(t.Elem())
	if err != nil {
		return nil, err
	}
	return &codec{
		write: func(b *Buffer, v reflect.Value) error {
			writeLength(b, v)
			for i := range v.Len() {
				if err := elem.write(b, v.Index(i)); err != nil {
					return err
				}
			}
			return nil
		},
		read: func(b *Buffer, v reflect.Value) error {
			n, err := readLength(b, t.Elem())
			if err != nil || n == nilLength {
				v.SetZero()
				return err
			}
			s := reflect.MakeSlice(t, n, n)
			for i := range n {
				if err := elem.read(b, s.Index(i)); err != nil {
					return err
				}
			}
			v.Set(s)
			return nil
		},
	}, nil
}

// arrayCodec writes the elements with no length prefix.
func (r *resolver) arrayCodec(t reflect.Type) (*codec, error) {
	elem, err := r.codecFor(t.Elem())
	if err != nil {
		return nil, err
	}
	return &codec{
		write: func(b *Buffer, v reflect.Value) error {
			for i := range v.Len() {
				if err := elem.write(b, v.Index(i)); err != nil {
					return err
				}
			}
			return nil
		},
		read: func(b *Buffer, v reflect.Value) error {
			for i := range v.Len() {
				if err := elem.read(b, v.Index(i)); err != nil {
					return err
				}
			}
			return nil
		},
	}, nil
}

// mapCodec writes a VarInt length and the entries in iteration order. Nil
// maps are written like nil slices.
func (r *resolver) mapCodec(t reflect.Type) (*codec, error) {
	key, err := r.codecFor(t.Key())
	if err != nil {
		return nil, err
	}
	val, err := r.codecFor(t.Elem())
	if err != nil {
		return nil, err
	}
	return &codec{
		write: func(b *Buffer, v reflect.Value) error {
			writeLength(b, v)
			it := v.MapRange()
			for it.Next() {
				if err := key.write(b, it.Key()); err != nil {
					return err
				}
				if err := val.write(b, it.Value()); err != nil {
					return err
				}
			}
			return nil
		},
		read: func(b *Buffer, v reflect.Value) error {
			n, err := readLength(b, t.Key())
			if err != nil || n == nilLength {
				v.SetZero()
				return err
			}
			m := reflect.MakeMapWithSize(t, n)
			for range n {
				k := reflect.New(t.Key()).Elem()
				if err := key.read(b, k); err != nil {
					return err
				}
				e := reflect.New(t.Elem()).Elem()
				if err := val.read(b, e); err != nil {
					return err
				}
				m.SetMapIndex(k, e)
			}
			v.Set(m)
			return nil
		},
	}, nil
}

// nilLength is the length prefix of a nil slice, map or byte array.
const nilLength = -1

func writeLength(b *Buffer, v reflect.Value) {
	if v.IsNil() {
		b.WriteVarInt(nilLength)
		return
	}
	b.WriteVarInt(int32(v.Len()))
}

// readLength reads a collection length, returning nilLength for a nil
// collection. Unless elements can encode to nothing, a length the remaining
// data cannot hold is rejected before allocating.
func readLength(b *Buffer, elem reflect.Type) (int, error) {
	n, err := b.ReadVarInt()
	if err != nil {
		return 0, err
	}
	if n == nilLength {
		return nilLength, nil
	}
	if n < 0 {
		return 0, ErrNegativeLength
	}
	if elem.Size() > 0 && int(n) > b.Remaining() {
		return 0, ErrShortBuffer
	}
	return int(n), nil
}
