package types

import "testing"

func TestMakeGlyph(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		char  byte
		want  Glyph
	}{
		{"player", 0xFFFFFF, '@', Glyph(0xFFFFFF40)},
		{"tree", ColorTree1, '#', Glyph(0x0A5C0023)},
		{"color truncation", Color(0x12345678), 'x', Glyph(0x34567878)},
		{"zero char", 0x808080, 0, Glyph(0x80808000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeGlyph(tt.color, tt.char)
			if got != tt.want {
				t.Fatalf("MakeGlyph() = 0x%08X, want 0x%08X", uint32(got), uint32(tt.want))
			}
			if got.Char() != tt.char {
				t.Errorf("Char() = %q, want %q", got.Char(), tt.char)
			}
			if got.Color() != tt.color&0xFFFFFF {
				t.Errorf("Color() = %s, want %s", got.Color().Hex(), tt.color.Hex())
			}
		})
	}
}

func TestGlyph_WithColor(t *testing.T) {
	g := MakeGlyph(ColorAnxiety, 'a').WithColor(ColorVoices)
	if g.Char() != 'a' || g.Color() != ColorVoices {
		t.Errorf("WithColor() = %s", g)
	}
}

func TestGlyph_String(t *testing.T) {
	tests := []struct {
		g    Glyph
		want string
	}{
		{MakeGlyph(0xFFA500, 'A'), "Glyph{char='A', color=#FFA500}"},
		{MakeGlyph(0x000000, '\n'), "Glyph{char='\\x0A', color=#000000}"},
	}
	for _, tt := range tests {
		if got := tt.g.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
