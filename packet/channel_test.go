package packet

import (
	"errors"
	"testing"
)

type chatMessage struct {
	From, Text string
}

type ping struct {
	Seq uint32
}

func TestChannelDispatch(t *testing.T) {
	ch := NewChannel("game")
	var chats []chatMessage
	var pings []uint32
	if id, err := RegisterPacket(ch, func(m chatMessage) { chats = append(chats, m) }); err != nil || id != 0 {
		t.Fatalf("RegisterPacket(chat) = %d, %v", id, err)
	}
	if id, err := RegisterPacket(ch, func(p ping) { pings = append(pings, p.Seq) }); err != nil || id != 1 {
		t.Fatalf("RegisterPacket(ping) = %d, %v", id, err)
	}

	for _, msg := range []any{ping{Seq: 7}, chatMessage{"a", "hi"}, ping{Seq: 8}} {
		data, err := ch.Encode(msg)
		if err != nil {
			t.Fatal(err)
		}
		if err := ch.Dispatch(data); err != nil {
			t.Fatal(err)
		}
	}

	if len(chats) != 1 || chats[0].Text != "hi" {
		t.Errorf("chats = %+v", chats)
	}
	if len(pings) != 2 || pings[0] != 7 || pings[1] != 8 {
		t.Errorf("pings = %v, want [7 8]", pings)
	}
}

func TestChannelErrors(t *testing.T) {
	ch := NewChannel("game")
	if _, err := RegisterPacket[ping](ch, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := RegisterPacket[ping](ch, nil); !errors.Is(err, ErrDuplicatePacket) {
		t.Errorf("duplicate register err = %v, want ErrDuplicatePacket", err)
	}
	if _, err := ch.Encode(chatMessage{}); !errors.Is(err, ErrUnknownPacket) {
		t.Errorf("Encode unknown err = %v, want ErrUnknownPacket", err)
	}
	if err := ch.Dispatch([]byte{5}); !errors.Is(err, ErrUnknownPacket) {
		t.Errorf("Dispatch unknown err = %v, want ErrUnknownPacket", err)
	}
	if err := ch.Dispatch(nil); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("Dispatch empty err = %v, want ErrShortBuffer", err)
	}
}
