package buffer

import "golang.org/x/text/encoding/charmap"

// DecodeCP437 converts raw CP437 bytes (as found in .asc/.bin/.xb/.diz
// files and BufferCP437-typed streams) to runes, one rune per input byte.
func DecodeCP437(b []byte) []rune {
	utf8Bytes, err := charmap.CodePage437.NewDecoder().Bytes(b)
	if err != nil {
		// CodePage437 is a total mapping (every byte has a glyph), so
		// NewDecoder never actually fails; fall back defensively.
		utf8Bytes = b
	}
	return []rune(string(utf8Bytes))
}

// EncodeCP437 converts runes back to CP437 bytes, one byte per rune. Runes
// outside CP437's repertoire encode as '?'.
func EncodeCP437(runes []rune) []byte {
	out := make([]byte, len(runes))
	for i, r := range runes {
		if b, ok := charmap.CodePage437.EncodeRune(r); ok {
			out[i] = b
		} else {
			out[i] = '?'
		}
	}
	return out
}
