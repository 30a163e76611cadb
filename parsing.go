package bramble

import (
	"fmt"
	"strconv"
	"strings"
)

var namedColors = map[string]uint32{
	"transparent": 0x00000000,
	"black":       0xFF000000,
	"white":       0xFFFFFFFF,
	"gray":        0xFFAAAAAA,
	"dark-gray":   0xFF555555,
	"red":         0xFFFF5555,
	"dark-red":    0xFFAA0000,
	"green":       0xFF55FF55,
	"dark-green":  0xFF00AA00,
	"blue":        0xFF5555FF,
	"dark-blue":   0xFF0000AA,
	"yellow":      0xFFFFFF55,
	"gold":        0xFFFFAA00,
	"aqua":        0xFF55FFFF,
	"purple":      0xFFAA00AA,
}

// ParseColor parses "#RRGGBB", "#AARRGGBB", "0xAARRGGBB" or a color name.
// Six-digit forms are opaque.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if v, ok := namedColors[s]; ok {
		return ColorFromARGB(v), nil
	}
	hex := ""
	switch {
	case strings.HasPrefix(s, "#"):
		hex = s[1:]
	case strings.HasPrefix(s, "0x"):
		hex = s[2:]
	default:
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	switch len(hex) {
	case 6:
		return ColorFromARGB(0xFF000000 | uint32(v)), nil
	case 8:
		return ColorFromARGB(uint32(v)), nil
	}
	return Color{}, fmt.Errorf("invalid color %q: want 6 or 8 hex digits", s)
}

// parseInts parses a list of integers separated by commas or whitespace.
func parseInts(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", f)
		}
		out[i] = n
	}
	return out, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", strings.TrimSpace(s))
	}
	return n, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", strings.TrimSpace(s))
	}
	return f, nil
}

func parseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", strings.TrimSpace(s))
	}
	return b, nil
}

// ParseInsets parses one value (all sides), two values (vertical then
// horizontal) or four values in CSS order (top, right, bottom, left).
func ParseInsets(s string) (Insets, error) {
	v, err := parseInts(s)
	if err != nil {
		return Insets{}, err
	}
	switch len(v) {
	case 1:
		return InsetsAll(v[0]), nil
	case 2:
		return Insets{Top: v[0], Bottom: v[0], Left: v[1], Right: v[1]}, nil
	case 4:
		return Insets{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}, nil
	}
	return Insets{}, fmt.Errorf("invalid insets %q: want 1, 2 or 4 values", s)
}

// ParseSizingPair parses "h v" or a single sizing used for both axes.
func ParseSizingPair(s string) (horizontal, vertical Sizing, err error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		h, err := ParseSizing(fields[0])
		return h, h, err
	case 2:
		if horizontal, err = ParseSizing(fields[0]); err != nil {
			return
		}
		vertical, err = ParseSizing(fields[1])
		return
	}
	return Sizing{}, Sizing{}, fmt.Errorf("invalid sizing %q: want one or two values", s)
}

// ParsePositioning parses "layout", "absolute(x, y)" or "relative(x, y)".
func ParsePositioning(s string) (Positioning, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "layout" {
		return Positioning{}, nil
	}
	name, args, ok := splitCall(s)
	if !ok {
		return Positioning{}, fmt.Errorf("invalid positioning %q", s)
	}
	v, err := parseInts(args)
	if err != nil || len(v) != 2 {
		return Positioning{}, fmt.Errorf("invalid positioning %q: want two integers", s)
	}
	switch name {
	case "absolute":
		return Absolute(v[0], v[1]), nil
	case "relative":
		return Relative(v[0], v[1]), nil
	}
	return Positioning{}, fmt.Errorf("unknown positioning %q", name)
}

// splitCall splits "name(args)" into its parts.
func splitCall(s string) (name, args string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", "", false
	}
	return strings.TrimSpace(s[:open]), s[open+1 : len(s)-1], true
}

// ParseAlignment parses start/left/top, center or end/right/bottom.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "start", "left", "top":
		return AlignStart, nil
	case "center":
		return AlignCenter, nil
	case "end", "right", "bottom":
		return AlignEnd, nil
	}
	return 0, fmt.Errorf("invalid alignment %q", s)
}

func parseTextAlign(s string) (TextAlign, error) {
	a, err := ParseAlignment(s)
	return TextAlign(a), err
}

var cursorNames = map[string]CursorStyle{
	"default":   CursorDefault,
	"text":      CursorText,
	"hand":      CursorHand,
	"pointer":   CursorHand,
	"move":      CursorMove,
	"crosshair": CursorCrosshair,
	"resize-ew": CursorResizeEW,
	"resize-ns": CursorResizeNS,
}

// ParseCursor parses a cursor style name.
func ParseCursor(s string) (CursorStyle, error) {
	if c, ok := cursorNames[strings.TrimSpace(strings.ToLower(s))]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("invalid cursor style %q", s)
}

// ParseSurface parses a background description: "blank", "panel",
// "dark-panel", "tooltip", "flat(color)" or "outline(color)".
func ParseSurface(s string) (*Background, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "blank", "none":
		return nil, nil
	case "panel":
		return BackgroundPanel, nil
	case "dark-panel":
		return BackgroundDarkPanel, nil
	case "tooltip":
		return BackgroundTooltip, nil
	}
	name, args, ok := splitCall(s)
	if !ok {
		return nil, fmt.Errorf("invalid surface %q", s)
	}
	col, err := ParseColor(args)
	if err != nil {
		return nil, fmt.Errorf("invalid surface %q: %w", s, err)
	}
	switch name {
	case "flat":
		return &Background{Fill: col}, nil
	case "outline":
		return &Background{Outline: col}, nil
	}
	return nil, fmt.Errorf("unknown surface %q", name)
}

func parseDirection(s string) (Axis, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "vertical":
		return AxisVertical, nil
	case "horizontal":
		return AxisHorizontal, nil
	}
	return 0, fmt.Errorf("invalid direction %q: want vertical or horizontal", s)
}

// parseSizingList parses whitespace-separated track sizings.
func parseSizingList(s string) ([]Sizing, error) {
	fields := strings.Fields(s)
	out := make([]Sizing, len(fields))
	for i, f := range fields {
		sz, err := ParseSizing(f)
		if err != nil {
			return nil, err
		}
		out[i] = sz
	}
	return out, nil
}
