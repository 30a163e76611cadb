package bramble

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Font is the interface for text measurement and rendering.
type Font interface {
	MeasureString(s string) (width, height float64)
	LineHeight() float64
	// Face returns the text/v2 face used at submission time. Fonts used only
	// for measurement may return nil.
	Face() text.Face
}

// FaceFont adapts any text/v2 face to Font.
type FaceFont struct {
	face text.Face
	lh   float64 // cached line height
}

// NewFaceFont wraps face, deriving the line height from its metrics.
func NewFaceFont(face text.Face) *FaceFont {
	m := face.Metrics()
	return &FaceFont{face: face, lh: math.Ceil(m.HAscent + m.HDescent + m.HLineGap)}
}

// MeasureString returns the width and height of the rendered text.
func (f *FaceFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between lines.
func (f *FaceFont) LineHeight() float64 { return f.lh }

// Face returns the underlying face.
func (f *FaceFont) Face() text.Face { return f.face }

var defaultFont *FaceFont

// DefaultFont returns the built-in 7x13 bitmap font.
func DefaultFont() Font {
	if defaultFont == nil {
		defaultFont = NewFaceFont(text.NewGoXFace(basicfont.Face7x13))
	}
	return defaultFont
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*FaceFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("bramble: failed to parse TTF data: %w", err)
	}
	return NewFaceFont(&text.GoTextFace{Source: source, Size: size}), nil
}

// wrapText splits s into lines no wider than maxWidth, breaking at spaces.
// Explicit newlines always break. A single word wider than maxWidth gets a
// line of its own. maxWidth <= 0 disables wrapping.
func wrapText(s string, f Font, maxWidth int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		if maxWidth <= 0 {
			lines = append(lines, para)
			continue
		}
		words := strings.FieldsFunc(para, unicode.IsSpace)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			candidate := cur + " " + w
			if width, _ := f.MeasureString(candidate); int(math.Ceil(width)) > maxWidth {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = candidate
		}
		lines = append(lines, cur)
	}
	return lines
}

// measureLines returns the widest line width and the block height.
func measureLines(lines []string, f Font) (int, int) {
	w := 0.0
	for _, l := range lines {
		lw, _ := f.MeasureString(l)
		w = math.Max(w, lw)
	}
	return int(math.Ceil(w)), int(math.Ceil(f.LineHeight() * float64(len(lines))))
}
