package render

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

type widthFunc func(string) int

func (m WidthMode) measure() widthFunc {
	if m == WidthEastAsian {
		cond := runewidth.NewCondition()
		cond.EastAsianWidth = true
		return cond.StringWidth
	}
	return asciiDoubleWidth
}

// asciiDoubleWidth counts one column per ASCII rune and two for anything else.
func asciiDoubleWidth(s string) int {
	width := 0
	for _, r := range s {
		if r < utf8.RuneSelf {
			width++
		} else {
			width += 2
		}
	}
	return width
}
