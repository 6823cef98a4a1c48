package arbitrary

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Hangul syllable block bounds (가..힣).
const (
	HangulFirst rune = 0xAC00
	HangulLast  rune = 0xD7A3
)

// emojiBlocks are the pictograph blocks used by CharGenerator.Emoji.
var emojiBlocks = [][2]rune{
	{0x1F300, 0x1F5FF}, // Miscellaneous Symbols and Pictographs
	{0x1F600, 0x1F64F}, // Emoticons
	{0x1F680, 0x1F6FF}, // Transport and Map Symbols
	{0x1F900, 0x1F9FF}, // Supplemental Symbols and Pictographs
}

// span builds a single-range table for [lo, hi].
func span(lo, hi rune) *unicode.RangeTable {
	t := &unicode.RangeTable{}
	switch {
	case hi <= 0xFFFF:
		t.R16 = []unicode.Range16{{Lo: uint16(lo), Hi: uint16(hi), Stride: 1}}
		if hi <= unicode.MaxLatin1 {
			t.LatinOffset = 1
		}
	case lo > 0xFFFF:
		t.R32 = []unicode.Range32{{Lo: uint32(lo), Hi: uint32(hi), Stride: 1}}
	default:
		t.R16 = []unicode.Range16{{Lo: uint16(lo), Hi: 0xFFFF, Stride: 1}}
		t.R32 = []unicode.Range32{{Lo: 0x10000, Hi: uint32(hi), Stride: 1}}
	}
	return t
}

func emojiTable() *unicode.RangeTable {
	tables := make([]*unicode.RangeTable, 0, len(emojiBlocks))
	for _, b := range emojiBlocks {
		tables = append(tables, span(b[0], b[1]))
	}
	return rangetable.Merge(tables...)
}

// Built-in character domains.
var (
	anyDomain = mustRuneDomain("any", &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0x0000, Hi: 0xD7FF, Stride: 1},
			{Lo: 0xE000, Hi: 0xFFFF, Stride: 1},
		},
		R32: []unicode.Range32{
			{Lo: 0x10000, Hi: unicode.MaxRune, Stride: 1},
		},
	})
	asciiDomain        = mustRuneDomain("ascii", span(0, unicode.MaxASCII))
	numericDomain      = mustRuneDomain("numeric", span('0', '9'))
	upperDomain        = mustRuneDomain("uppercase", span('A', 'Z'))
	lowerDomain        = mustRuneDomain("lowercase", span('a', 'z'))
	alphaDomain        = mustRuneDomain("alpha", rangetable.Merge(span('A', 'Z'), span('a', 'z')))
	alphaNumericDomain = mustRuneDomain("alphaNumeric", rangetable.Merge(span('0', '9'), span('A', 'Z'), span('a', 'z')))
	hangulDomain       = mustRuneDomain("hangul", span(HangulFirst, HangulLast))
	emojiDomain        = mustRuneDomain("emoji", emojiTable())
	whitespaceDomain   = mustRuneDomain("whitespace", unicode.White_Space)
)

// Domains returns the built-in character domains keyed by name.
func Domains() map[string]RuneDomain {
	return map[string]RuneDomain{
		anyDomain.Name():          anyDomain,
		asciiDomain.Name():        asciiDomain,
		numericDomain.Name():      numericDomain,
		upperDomain.Name():        upperDomain,
		lowerDomain.Name():        lowerDomain,
		alphaDomain.Name():        alphaDomain,
		alphaNumericDomain.Name(): alphaNumericDomain,
		hangulDomain.Name():       hangulDomain,
		emojiDomain.Name():        emojiDomain,
		whitespaceDomain.Name():   whitespaceDomain,
	}
}
