package bramble

import (
	"errors"
	"strings"
	"testing"
)

func TestDistributeFill(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		weights   []int
		want      []int
	}{
		{"even", 80, []int{1, 1}, []int{40, 40}},
		{"odd pixel to last", 81, []int{1, 1}, []int{40, 41}},
		{"weighted", 10, []int{1, 2, 1}, []int{2, 5, 3}},
		{"zero weight counts as one", 9, []int{0, 2}, []int{3, 6}},
		{"nothing left", 0, []int{1, 1}, []int{0, 0}},
		{"negative", -5, []int{1}, []int{0}},
		{"no siblings", 50, nil, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistributeFill(tt.remaining, tt.weights)
			if len(got) != len(tt.want) {
				t.Fatalf("DistributeFill = %v, want %v", got, tt.want)
			}
			sum := 0
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("DistributeFill = %v, want %v", got, tt.want)
					break
				}
				sum += got[i]
			}
			if len(got) > 0 && tt.remaining > 0 && sum != tt.remaining {
				t.Errorf("shares sum to %d, want %d", sum, tt.remaining)
			}
		})
	}
}

func TestParseSizing(t *testing.T) {
	tests := []struct {
		in   string
		want Sizing
	}{
		{"fixed(20)", Fixed(20)},
		{"content", Content(0)},
		{"content(4)", Content(4)},
		{"fill", Fill(1)},
		{"fill(3)", Fill(3)},
		{" Fixed( 7 ) ", Fixed(7)},
	}
	for _, tt := range tests {
		got, err := ParseSizing(tt.in)
		if err != nil {
			t.Errorf("ParseSizing(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSizing(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		back, err := ParseSizing(got.String())
		if err != nil || back != got {
			t.Errorf("ParseSizing(%q.String()) = %+v, %v", got.String(), back, err)
		}
	}

	for _, bad := range []string{"fixed", "bogus", "fill(x)", "fixed(-1)", "content(2"} {
		if _, err := ParseSizing(bad); err == nil {
			t.Errorf("ParseSizing(%q) expected error", bad)
		}
	}
}

func TestResolve_FixedAndContent(t *testing.T) {
	c := testLabel("hello")
	c.Padding = InsetsAll(2)
	c.VerticalSizing = Content(3)

	got, err := Resolve(c, Space{Width: 200, Height: 200})
	if err != nil {
		t.Fatal(err)
	}
	// 5 runes * 6px + 4 padding; 10px line + 4 padding + 3 allowance.
	if want := (Size{Width: 34, Height: 17}); got != want {
		t.Errorf("Resolve = %+v, want %+v", got, want)
	}

	c.HorizontalSizing = Fixed(50)
	got, _ = Resolve(c, Space{Width: 10, Height: 10})
	if got.Width != 50 {
		t.Errorf("fixed width = %d, want 50 regardless of space", got.Width)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	root := VerticalFlow(Content(0), Content(0))
	root.Padding = InsetsAll(3)
	root.Gap = 2
	row := HorizontalFlow(Content(0), Content(0))
	row.AddChild(testLabel("a"))
	row.AddChild(testBox(12, 7))
	root.AddChild(row)
	root.AddChild(testLabel("longer text"))

	space := Space{Width: 300, Height: Unbounded}
	first, err := Resolve(root, space)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Resolve(root, space)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("Resolve not idempotent: %+v then %+v", first, second)
	}
}

func TestResolve_FillUnbounded(t *testing.T) {
	c := NewBox(Fill(1), Fixed(5), ColorWhite, true)
	_, err := Resolve(c, Space{Width: Unbounded, Height: 10})
	if !errors.Is(err, ErrAmbiguousSizing) {
		t.Errorf("err = %v, want ErrAmbiguousSizing", err)
	}
}

func TestValidate_AmbiguousFill(t *testing.T) {
	root := VerticalFlow(Fixed(100), Content(0))
	bad := NewBox(Fixed(10), Fill(1), ColorWhite, true)
	bad.Name = "bad"
	root.AddChild(bad)

	err := Validate(root)
	if !errors.Is(err, ErrAmbiguousSizing) {
		t.Fatalf("Validate = %v, want ErrAmbiguousSizing", err)
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("Validate error %T is not *ConfigError", err)
	}
	if !strings.HasSuffix(ce.Path, "box#bad") {
		t.Errorf("Path = %q, want suffix box#bad", ce.Path)
	}

	s := NewScreen()
	if err := s.SetRoot(root); !errors.Is(err, ErrAmbiguousSizing) {
		t.Errorf("SetRoot = %v, want ErrAmbiguousSizing", err)
	}
}

func TestValidate_FillAllowed(t *testing.T) {
	root := VerticalFlow(Fixed(100), Fixed(100))
	root.AddChild(NewBox(Fill(1), Fill(1), ColorWhite, true))

	content := VerticalFlow(Content(0), Content(0))
	overlay := NewBox(Fill(1), Fill(1), ColorWhite, true)
	overlay.Positioning = Absolute(0, 0)
	content.AddChild(overlay)
	root.AddChild(content)

	if err := Validate(root); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}

func TestValidate_ScrollAxis(t *testing.T) {
	child := NewBox(Fixed(10), Fill(1), ColorWhite, true)
	scroll := VerticalScroll(Fixed(50), Fixed(50), child)
	if err := Validate(scroll); !errors.Is(err, ErrAmbiguousSizing) {
		t.Errorf("Validate = %v, want ErrAmbiguousSizing for fill along the scroll axis", err)
	}
}

func TestValidate_GridFillTrack(t *testing.T) {
	tests := map[string]struct {
		horizontal Sizing
		wantErr    bool
	}{
		"content grid": {horizontal: Content(0), wantErr: true},
		"fixed grid":   {horizontal: Fixed(100)},
		"fill grid":    {horizontal: Fill(1)},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := Grid(tt.horizontal, Fixed(20), 1, 2)
			g.Layout.(*GridLayout).ColumnSizing = []Sizing{Fixed(10), Fill(1)}
			root := VerticalFlow(Fixed(200), Fixed(200))
			root.AddChild(g)

			err := NewScreen().SetRoot(root)
			if got := errors.Is(err, ErrAmbiguousSizing); got != tt.wantErr {
				t.Errorf("SetRoot = %v, want ambiguous sizing %v", err, tt.wantErr)
			}
			var ce *ConfigError
			if tt.wantErr && errors.As(err, &ce) && !strings.Contains(ce.Path, "grid-layout") {
				t.Errorf("error path = %q, want the grid", ce.Path)
			}
		})
	}
}

func TestGrid_FillCellInContentTrack(t *testing.T) {
	g := Grid(Fixed(100), Fixed(100), 2, 2)
	fill := NewBox(Fill(1), Fixed(8), ColorWhite, true)
	wide := testBox(30, 10)
	SetCell(g, fill, 0, 0)
	SetCell(g, wide, 1, 0)

	if err := Validate(g); err != nil {
		t.Fatalf("Validate = %v, want nil", err)
	}
	newTestScreen(t, 200, 200, g)

	wantBounds(t, fill, Rect{0, 0, 30, 8})
	wantBounds(t, wide, Rect{0, 8, 30, 10})
}
