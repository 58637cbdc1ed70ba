package text

import (
	"unicode"
)

// Direction is the writing direction of text. A box's direction
// decides its default alignment and which edge justified lines grow
// from.
type Direction int

const (
	// Neutral indicates no strong directional characters. As a box or
	// paragraph setting it means "inherit from the document".
	Neutral Direction = iota
	// LTR (Left-to-Right) for Latin, Cyrillic, CJK, etc.
	LTR
	// RTL (Right-to-Left) for Arabic, Hebrew, etc.
	RTL
)

// String returns a string representation of the direction ("LTR",
// "RTL", or "Neutral").
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// ParseDirection parses a direction name as used by box options.
func ParseDirection(name string) (Direction, bool) {
	switch name {
	case "ltr":
		return LTR, true
	case "rtl":
		return RTL, true
	default:
		return Neutral, false
	}
}

// DetectDirection returns the dominant direction of a string by
// counting strong directional characters, or Neutral if there are
// none. A box whose direction is left unset falls back to the
// document's direction, so detection is advisory.
func DetectDirection(text string) Direction {
	if text == "" {
		return Neutral
	}

	ltrCount := 0
	rtlCount := 0

	for _, r := range text {
		switch CharDirection(r) {
		case LTR:
			ltrCount++
		case RTL:
			rtlCount++
		}
	}

	if ltrCount == 0 && rtlCount == 0 {
		return Neutral
	}

	if rtlCount > ltrCount {
		return RTL
	}
	return LTR
}

// CharDirection returns the inherent direction of a single Unicode
// character. Digits, punctuation, whitespace, and symbols are Neutral;
// RTL scripts (Arabic, Hebrew, Syriac, Thaana, N'Ko) return RTL; every
// other script, CJK included, is treated as LTR.
func CharDirection(r rune) Direction {
	// Numbers and neutral characters (check first, before script checks)
	if unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
		return Neutral
	}

	if isArabic(r) || isHebrew(r) || isSyriac(r) || isThaana(r) || isNKo(r) {
		return RTL
	}

	return LTR
}

// isArabic reports whether r is in an Arabic Unicode block.
// This includes:
//   - Arabic: U+0600–U+06FF
//   - Arabic Supplement: U+0750–U+077F
//   - Arabic Extended-A: U+08A0–U+08FF
//   - Arabic Presentation Forms-A: U+FB50–U+FDFF
//   - Arabic Presentation Forms-B: U+FE70–U+FEFF
func isArabic(r rune) bool {
	return (r >= 0x0600 && r <= 0x06FF) ||
		(r >= 0x0750 && r <= 0x077F) ||
		(r >= 0x08A0 && r <= 0x08FF) ||
		(r >= 0xFB50 && r <= 0xFDFF) ||
		(r >= 0xFE70 && r <= 0xFEFF)
}

// isHebrew reports whether r is in a Hebrew Unicode block.
// This includes:
//   - Hebrew: U+0590–U+05FF
//   - Hebrew Presentation Forms: U+FB1D–U+FB4F
func isHebrew(r rune) bool {
	return (r >= 0x0590 && r <= 0x05FF) ||
		(r >= 0xFB1D && r <= 0xFB4F)
}

// isSyriac reports whether r is in the Syriac Unicode block (U+0700–U+074F).
func isSyriac(r rune) bool {
	return r >= 0x0700 && r <= 0x074F
}

// isThaana reports whether r is in the Thaana Unicode block (U+0780–U+07BF).
// Thaana is the script used to write Maldivian (Dhivehi).
func isThaana(r rune) bool {
	return r >= 0x0780 && r <= 0x07BF
}

// isNKo reports whether r is in the N'Ko Unicode block (U+07C0–U+07FF).
// N'Ko is a script used for Manding languages in West Africa.
func isNKo(r rune) bool {
	return r >= 0x07C0 && r <= 0x07FF
}
