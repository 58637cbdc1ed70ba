package font

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText normalizes text to NFC so that composed and decomposed
// forms of the same character measure and draw identically. Every face
// normalizes through here before width lookup and glyph coverage
// testing.
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}

// inWinAnsi reports whether r can be encoded in Windows-1252 (the PDF
// WinAnsiEncoding). The Standard 14 text faces cover exactly this
// repertoire.
func inWinAnsi(r rune) bool {
	_, ok := charmap.Windows1252.EncodeRune(r)
	return ok
}
