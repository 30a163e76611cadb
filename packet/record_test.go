package packet

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

type mode uint8

type vec struct {
	X, Y float32
}

type playerState struct {
	ID       int32
	Name     string
	Health   float64
	Alive    bool
	Mode     mode
	Pos      vec
	Tags     []string
	Scores   map[string]int
	Color    [3]uint8
	Nickname *string
	Cooldown time.Duration
	Raw      []byte
	cache    int
	Skip     int `packet:"-"`
}

func TestRecordRoundTrip(t *testing.T) {
	s, err := NewRecordSerializer[playerState]()
	if err != nil {
		t.Fatal(err)
	}
	nick := "ace"
	in := playerState{
		ID:       42,
		Name:     "player",
		Health:   17.5,
		Alive:    true,
		Mode:     3,
		Pos:      vec{1.5, -2},
		Tags:     []string{"a", "b"},
		Scores:   map[string]int{"kills": 7, "deaths": -2},
		Color:    [3]uint8{255, 128, 0},
		Nickname: &nick,
		Cooldown: 1500 * time.Millisecond,
		Raw:      []byte{9, 8, 7},
		cache:    99,
		Skip:     5,
	}
	data, err := s.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}

	want := in
	want.cache = 0
	want.Skip = 0
	if !reflect.DeepEqual(out, want) {
		t.Errorf("round trip = %+v, want %+v", out, want)
	}
}

func TestRecordOptionalAbsent(t *testing.T) {
	s := MustRecordSerializer[playerState]()
	data, err := s.Marshal(playerState{})
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if out.Nickname != nil {
		t.Errorf("Nickname = %v, want nil", *out.Nickname)
	}
}

func TestRecordSerializerCached(t *testing.T) {
	a := MustRecordSerializer[vec]()
	b := MustRecordSerializer[vec]()
	if a != b {
		t.Error("serializer was not cached per type")
	}
}

type withChan struct {
	Name  string
	Inner struct {
		Events chan int
	}
}

func TestRecordUnsupportedField(t *testing.T) {
	_, err := NewRecordSerializer[withChan]()
	if !errors.Is(err, ErrNoCodec) {
		t.Fatalf("err = %v, want ErrNoCodec", err)
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %T, want *ConfigError", err)
	}
	if ce.Field != "Inner.Events" {
		t.Errorf("Field = %q, want %q", ce.Field, "Inner.Events")
	}
}

func TestRecordNotStruct(t *testing.T) {
	if _, err := NewRecordSerializer[int](); !errors.Is(err, ErrNotRecord) {
		t.Errorf("err = %v, want ErrNotRecord", err)
	}
}

type treeNode struct {
	Value    int
	Children []treeNode
	Parent   *treeNode `packet:"-"`
	Next     *treeNode
}

func TestRecordRecursive(t *testing.T) {
	s, err := NewRecordSerializer[treeNode]()
	if err != nil {
		t.Fatal(err)
	}
	in := treeNode{
		Value:    1,
		Children: []treeNode{{Value: 2}, {Value: 3, Children: []treeNode{{Value: 4}}}},
		Next:     &treeNode{Value: 5},
	}
	data, err := s.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

type celsius float64

type reading struct {
	Temp celsius
}

func TestRegisteredCodecOverridesKind(t *testing.T) {
	Register(func(b *Buffer, v celsius) error {
		b.WriteVarLong(int64(v * 10))
		return nil
	}, func(b *Buffer) (celsius, error) {
		n, err := b.ReadVarLong()
		return celsius(n) / 10, err
	})
	s := MustRecordSerializer[reading]()
	data, err := s.Marshal(reading{Temp: 21.5})
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 2 {
		t.Errorf("encoded length = %d, want 2 (varint 215)", len(data))
	}
	out, err := s.Unmarshal(data)
	if err != nil || out.Temp != 21.5 {
		t.Errorf("Unmarshal = %v, %v, want 21.5", out.Temp, err)
	}
}

func TestUnmarshalTrailingData(t *testing.T) {
	s := MustRecordSerializer[vec]()
	data, _ := s.Marshal(vec{1, 2})
	data = append(data, 0)
	if _, err := s.Unmarshal(data); !errors.Is(err, ErrTrailingData) {
		t.Errorf("err = %v, want ErrTrailingData", err)
	}
}

func TestUnmarshalTruncated(t *testing.T) {
	s := MustRecordSerializer[playerState]()
	data, _ := s.Marshal(playerState{Name: "abc", Tags: []string{"x"}})
	for n := 0; n < len(data); n++ {
		if _, err := s.Unmarshal(data[:n]); err == nil {
			t.Fatalf("Unmarshal(data[:%d]) succeeded", n)
		}
	}
}

type stamped struct {
	ID int
	At time.Time
}

func TestRecordTimeRoundTrip(t *testing.T) {
	s, err := NewRecordSerializer[stamped]()
	if err != nil {
		t.Fatal(err)
	}
	tests := []time.Time{
		{},
		time.Date(2026, 10, 16, 12, 30, 5, 123456789, time.UTC),
		time.Date(1969, 7, 20, 20, 17, 0, 0, time.UTC),
	}
	for _, at := range tests {
		data, err := s.Marshal(stamped{ID: 7, At: at})
		if err != nil {
			t.Fatal(err)
		}
		out, err := s.Unmarshal(data)
		if err != nil {
			t.Fatal(err)
		}
		if out.ID != 7 || !out.At.Equal(at) {
			t.Errorf("round trip = %+v, want At %v", out, at)
		}
	}
}

type opaque struct {
	n int
}

type withOpaque struct {
	Name  string
	State opaque
}

func TestRecordOpaqueStructField(t *testing.T) {
	_, err := NewRecordSerializer[withOpaque]()
	if !errors.Is(err, ErrNoCodec) {
		t.Fatalf("err = %v, want ErrNoCodec", err)
	}
	var ce *ConfigError
	if errors.As(err, &ce) && ce.Field != "State" {
		t.Errorf("Field = %q, want %q", ce.Field, "State")
	}
}

type marker struct{}

type withMarker struct {
	ID   int
	Flag marker
}

func TestRecordEmptyStructField(t *testing.T) {
	s, err := NewRecordSerializer[withMarker]()
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	data, _ := s.Marshal(withMarker{ID: 3})
	if out, err := s.Unmarshal(data); err != nil || out.ID != 3 {
		t.Errorf("Unmarshal = %+v, %v, want ID 3", out, err)
	}
}

type collections struct {
	Tags   []string
	Scores map[string]int
	Raw    []byte
}

func TestRecordNilAndEmptyCollections(t *testing.T) {
	s := MustRecordSerializer[collections]()
	tests := map[string]collections{
		"nil":   {},
		"empty": {Tags: []string{}, Scores: map[string]int{}, Raw: []byte{}},
		"mixed": {Tags: []string{"a"}, Raw: []byte{}},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := s.Marshal(in)
			if err != nil {
				t.Fatal(err)
			}
			out, err := s.Unmarshal(data)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(out, in) {
				t.Errorf("round trip = %#v, want %#v", out, in)
			}
		})
	}
}

type note struct {
	ID   int
	Body string
}

func TestRecordWriteErrorLeavesBuffer(t *testing.T) {
	s := MustRecordSerializer[note]()
	b := NewBuffer(nil)
	b.WriteUint8(0xAA)
	err := s.Write(b, note{ID: 1, Body: strings.Repeat("x", MaxStringLength+1)})
	if !errors.Is(err, ErrStringTooLong) {
		t.Fatalf("err = %v, want ErrStringTooLong", err)
	}
	if got := b.Bytes(); len(got) != 1 || got[0] != 0xAA {
		t.Errorf("Bytes() = %v, want [170]", got)
	}
}
