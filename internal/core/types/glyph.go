package types

import (
	"fmt"
)

// Color — 24-битный RGB-цвет в формате 0xRRGGBB.
type Color uint32

// Палитра игры. Конкретные значения — часть внешнего вида, не логики.
const (
	ColorBackground Color = 0x000000
	ColorEmpty      Color = 0x1C1C1C

	ColorTree1 Color = 0x0A5C00
	ColorTree2 Color = 0x1B7A0E
	ColorTree3 Color = 0x2E8B57

	ColorNpcWill  Color = 0xFFD700
	ColorNpcMind  Color = 0x6495ED
	ColorNpcSpeed Color = 0xFF7F50

	ColorAnxiety    Color = 0xC8A2C8
	ColorDepression Color = 0x4B0082
	ColorHunger     Color = 0xCD853F
	ColorShadows    Color = 0x505050
	ColorVoices     Color = 0xDC143C

	ColorDose       Color = 0x00CED1
	ColorStrongDose Color = 0xFF00FF
	ColorFood       Color = 0xA0522D
)

// PlayerColors — варианты цвета игрока; индекс выбирается при старте сессии.
var PlayerColors = []Color{0xFFFFFF, 0xFFE4B5, 0xE0FFFF, 0xF0E68C, 0xFFB6C1, 0x98FB98}

// Hex возвращает строку вида "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}

// Glyph упаковывает символ и цвет в 32 бита:
//
//	[0:8]  - символ
//	[8:32] - RGB-цвет
type Glyph uint32

const (
	shiftColor = 8
	maskChar   = 0xFF
	maskColor  = 0xFFFFFF
)

// MakeGlyph создаёт Glyph из цвета и символа.
func MakeGlyph(c Color, char byte) Glyph {
	return Glyph((uint32(c)&maskColor)<<shiftColor | uint32(char))
}

func (g Glyph) Color() Color {
	return Color(uint32(g>>shiftColor) & maskColor)
}

func (g Glyph) Char() byte {
	return byte(g & maskChar)
}

// WithColor возвращает тот же символ в другом цвете.
func (g Glyph) WithColor(c Color) Glyph {
	return MakeGlyph(c, g.Char())
}

// String реализует fmt.Stringer: "Glyph{char='@', color=#FFFFFF}".
func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}
	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.Color().Hex())
}
