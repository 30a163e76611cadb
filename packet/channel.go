package packet

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnknownPacket is returned for a packet id or type the channel does
	// not know.
	ErrUnknownPacket = errors.New("packet: unknown packet")
	// ErrDuplicatePacket is returned when a record type is registered twice.
	ErrDuplicatePacket = errors.New("packet: duplicate packet type")
)

type packetType struct {
	typ    reflect.Type
	write  func(b *Buffer, msg any) error
	handle func(b *Buffer) error
}

// Channel maps record types to sequential packet ids. Each encoded packet is
// a VarInt id followed by the record.
type Channel struct {
	name    string
	packets []*packetType
	ids     map[reflect.Type]int32
}

// NewChannel creates an empty channel.
func NewChannel(name string) *Channel {
	return &Channel{name: name, ids: make(map[reflect.Type]int32)}
}

// Name returns the channel name.
func (ch *Channel) Name() string { return ch.name }

// RegisterPacket assigns R the next packet id and installs handler for it.
// Ids follow registration order, so both ends must register the same types
// in the same order.
func RegisterPacket[R any](ch *Channel, handler func(R)) (int32, error) {
	s, err := NewRecordSerializer[R]()
	if err != nil {
		return 0, err
	}
	t := reflect.TypeFor[R]()
	if _, ok := ch.ids[t]; ok {
		return 0, fmt.Errorf("channel %s: %w: %v", ch.name, ErrDuplicatePacket, t)
	}
	id := int32(len(ch.packets))
	ch.packets = append(ch.packets, &packetType{
		typ: t,
		write: func(b *Buffer, msg any) error {
			return s.Write(b, msg.(R))
		},
		handle: func(b *Buffer) error {
			rec, err := s.Read(b)
			if err != nil {
				return err
			}
			if handler != nil {
				handler(rec)
			}
			return nil
		},
	})
	ch.ids[t] = id
	return id, nil
}

// Encode writes msg with its packet id.
func (ch *Channel) Encode(msg any) ([]byte, error) {
	id, ok := ch.ids[reflect.TypeOf(msg)]
	if !ok {
		return nil, fmt.Errorf("channel %s: %w: %T", ch.name, ErrUnknownPacket, msg)
	}
	var b Buffer
	b.WriteVarInt(id)
	if err := ch.packets[id].write(&b, msg); err != nil {
		return nil, fmt.Errorf("channel %s: %w", ch.name, err)
	}
	return b.Bytes(), nil
}

// Dispatch decodes one packet and calls its handler.
func (ch *Channel) Dispatch(data []byte) error {
	b := NewBuffer(data)
	id, err := b.ReadVarInt()
	if err != nil {
		return fmt.Errorf("channel %s: read id: %w", ch.name, err)
	}
	if id < 0 || int(id) >= len(ch.packets) {
		return fmt.Errorf("channel %s: %w: id %d", ch.name, ErrUnknownPacket, id)
	}
	if err := ch.packets[id].handle(b); err != nil {
		return fmt.Errorf("channel %s: %w", ch.name, err)
	}
	if b.Remaining() != 0 {
		return fmt.Errorf("channel %s: %w (%d bytes)", ch.name, ErrTrailingData, b.Remaining())
	}
	return nil
}
