package tui

import (
	"unicode"
	"unicode/utf8"
)

// shownTitle mirrors what the text input displays for title: tabs and line
// breaks become a single space, other control runes are dropped. src[i] is
// the index in title of the rune shown at i.
func shownTitle(title []rune) (shown []rune, src []int) {
	for i := 0; i < len(title); i++ {
		r := title[i]
		switch {
		case r == '\r' && i+1 < len(title) && title[i+1] == '\n':
			shown, src = append(shown, ' '), append(src, i)
			i++
		case r == '\t' || r == '\r' || r == '\n':
			shown, src = append(shown, ' '), append(src, i)
		case r == utf8.RuneError || unicode.IsControl(r):
		default:
			shown, src = append(shown, r), append(src, i)
		}
	}
	return shown, src
}

// applyEdit carries an edit of the displayed text (prev -> next) over to
// title, so the runes the user did not touch stay exactly as stored.
// If prev is not how title is displayed, next is returned as is.
func applyEdit(title, prev, next string) string {
	if prev == next {
		return title
	}
	t := []rune(title)
	shown, src := shownTitle(t)
	if string(shown) != prev {
		return next
	}

	a, b := []rune(prev), []rune(next)
	p := 0
	for p < len(a) && p < len(b) && a[p] == b[p] {
		p++
	}
	s := 0
	for s < len(a)-p && s < len(b)-p && a[len(a)-1-s] == b[len(b)-1-s] {
		s++
	}

	start, end := len(t), len(t)
	if p < len(a) {
		start = src[p]
	}
	if s > 0 {
		end = src[len(a)-s]
	}
	out := make([]rune, 0, start+len(b)-p-s+len(t)-end)
	out = append(out, t[:start]...)
	out = append(out, b[p:len(b)-s]...)
	out = append(out, t[end:]...)
	return string(out)
}
