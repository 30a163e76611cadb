package bramble

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"#FF0000", 0xFFFF0000, false},
		{"#80FF0000", 0x80FF0000, false},
		{"0x4000FF00", 0x4000FF00, false},
		{" Gold ", 0xFFFFAA00, false},
		{"transparent", 0x00000000, false},
		{"#FFF", 0, true},
		{"#GGGGGG", 0, true},
		{"red-ish", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got.ARGB() != tt.want {
			t.Errorf("ParseColor(%q) = %08X, want %08X", tt.in, got.ARGB(), tt.want)
		}
	}
}

func TestParseInsets(t *testing.T) {
	tests := []struct {
		in      string
		want    Insets
		wantErr bool
	}{
		{"4", InsetsAll(4), false},
		{"2 6", Insets{Top: 2, Bottom: 2, Left: 6, Right: 6}, false},
		{"1, 2, 3, 4", Insets{Top: 1, Right: 2, Bottom: 3, Left: 4}, false},
		{"1 2 3", Insets{}, true},
		{"a", Insets{}, true},
	}
	for _, tt := range tests {
		got, err := ParseInsets(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseInsets(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseInsets(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParsePositioning(t *testing.T) {
	tests := []struct {
		in      string
		want    Positioning
		wantErr bool
	}{
		{"layout", Positioning{}, false},
		{"absolute(10, -5)", Absolute(10, -5), false},
		{"Relative(50 100)", Relative(50, 100), false},
		{"absolute(1)", Positioning{}, true},
		{"sideways(1, 2)", Positioning{}, true},
		{"absolute", Positioning{}, true},
	}
	for _, tt := range tests {
		got, err := ParsePositioning(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePositioning(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePositioning(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseSizingPair(t *testing.T) {
	h, v, err := ParseSizingPair("fill(2) content(4)")
	if err != nil || h != Fill(2) || v != Content(4) {
		t.Errorf("pair = %v %v %v, want fill(2) content(4)", h, v, err)
	}
	h, v, err = ParseSizingPair("fixed(8)")
	if err != nil || h != Fixed(8) || v != Fixed(8) {
		t.Errorf("single = %v %v %v, want fixed(8) twice", h, v, err)
	}
	if _, _, err := ParseSizingPair("fill fill fill"); err == nil {
		t.Error("three sizings should fail")
	}
	list, err := parseSizingList("content fill(3) fixed(10)")
	if err != nil || len(list) != 3 || list[1] != Fill(3) {
		t.Errorf("list = %v %v", list, err)
	}
}

func TestParseAlignmentAndCursor(t *testing.T) {
	aligns := map[string]Alignment{"left": AlignStart, "TOP": AlignStart, "center": AlignCenter, "bottom": AlignEnd}
	for in, want := range aligns {
		if got, err := ParseAlignment(in); err != nil || got != want {
			t.Errorf("ParseAlignment(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseAlignment("middle"); err == nil {
		t.Error("ParseAlignment(middle) should fail")
	}
	if got, err := ParseCursor("pointer"); err != nil || got != CursorHand {
		t.Errorf("ParseCursor(pointer) = %v, %v, want hand", got, err)
	}
	if _, err := ParseCursor("wait"); err == nil {
		t.Error("ParseCursor(wait) should fail")
	}
}

func TestParseSurface(t *testing.T) {
	if b, err := ParseSurface("blank"); err != nil || b != nil {
		t.Errorf("blank = %v, %v, want nil", b, err)
	}
	if b, _ := ParseSurface("dark-panel"); b != BackgroundDarkPanel {
		t.Error("dark-panel did not return the preset")
	}
	b, err := ParseSurface("outline(#00FF00)")
	if err != nil || b.Outline.ARGB() != 0xFF00FF00 || b.Fill.A != 0 {
		t.Errorf("outline = %+v, %v", b, err)
	}
	for _, bad := range []string{"glass", "flat(nope)", "gradient(#000000)"} {
		if _, err := ParseSurface(bad); err == nil {
			t.Errorf("ParseSurface(%q) should fail", bad)
		}
	}
}
