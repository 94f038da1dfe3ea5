package types

import (
	"fmt"
)

// Glyph представляет упакованное представление цветного символа.
// Использует 64 бита (uint64) для хранения в формате:
//
//	[0:32]  - символ (rune, включая CP437-символы вроде '♥')
//	[32:56] - RGB-цвет переднего плана (24 бита)
type Glyph uint64

const (
	bitsRune  = 32
	bitsColor = 24

	shiftColor = bitsRune

	maskRune  = (1 << bitsRune) - 1  // 0xFFFFFFFF
	maskColor = (1 << bitsColor) - 1 // 0xFFFFFF
)

// MakeGlyph создает новый Glyph из RGB-цвета и символа.
//
// Пример:
//
//	// Красный гоблин
//	glyph := MakeGlyph(0xFF0000, 'g')
//	// Внутреннее представление: 0x00FF0000_00000067
func MakeGlyph(colorRGB uint32, char rune) Glyph {
	return Glyph(uint64(colorRGB&maskColor)<<shiftColor | uint64(uint32(char)&maskRune))
}

// Color извлекает 24-битный RGB-цвет из Glyph.
func (g Glyph) Color() uint32 {
	return uint32(g>>shiftColor) & maskColor
}

// Char извлекает символ из Glyph.
func (g Glyph) Char() rune {
	return rune(uint32(g & maskRune))
}

// String реализует fmt.Stringer.
// Формат: "Glyph{char='g', color=#FF0000}"
func (g Glyph) String() string {
	char := g.Char()
	charStr := string(char)

	// Управляющие символы показываем hex
	if char < 32 || char == 127 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}

	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.HexColor())
}

// HexColor возвращает строковое HEX-представление цвета (например, "#00FF00").
func (g Glyph) HexColor() string {
	return HexColor(g.Color())
}

// HexColor форматирует 24-битный цвет для клиента.
func HexColor(rgb uint32) string {
	return fmt.Sprintf("#%06X", rgb&maskColor)
}
