// Package smarttext parses the inline [text|color] markup used by
// smart_text blocks to color specific substrings of a paragraph.
package smarttext

import "strings"

// Segment is one run of text produced by Parse. Highlighted segments
// carry the color token from their bracket annotation, passed through
// verbatim (hex or named, never validated).
type Segment struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
	Color       string `json:"color,omitempty"`
}

// Parse splits text into plain and highlighted segments with a single
// left-to-right scan. An annotation has the form [literal|color]. Spans
// that never close, or close without a pipe, degrade to plain text
// rather than failing. Empty input yields no segments.
//
// Known limitation carried over from the original markup: a literal ']'
// or '|' inside the bracketed text ends the span early. There is no
// escape syntax.
func Parse(text string) []Segment {
	if text == "" {
		return nil
	}

	var segs []Segment
	rest := text
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			break
		}
		close := strings.IndexByte(rest[open:], ']')
		if close < 0 {
			break
		}
		close += open

		body := rest[open+1 : close]
		pipe := strings.IndexByte(body, '|')
		if pipe < 0 {
			// No color token: leave the bracket as plain text and keep
			// scanning after it.
			segs = appendPlain(segs, rest[:close+1])
			rest = rest[close+1:]
			continue
		}

		segs = appendPlain(segs, rest[:open])
		segs = append(segs, Segment{
			Text:        body[:pipe],
			Highlighted: true,
			Color:       body[pipe+1:],
		})
		rest = rest[close+1:]
	}

	segs = appendPlain(segs, rest)
	return segs
}

// appendPlain adds a non-highlighted segment, merging with a preceding
// plain segment so degraded spans don't fragment the output.
func appendPlain(segs []Segment, text string) []Segment {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && !segs[n-1].Highlighted {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Text: text})
}

// Plain reassembles the unstyled text of a segment list.
func Plain(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Markup reassembles the original annotated form of a segment list,
// re-inserting brackets around highlighted segments. Round-trips at the
// segment-boundary level; color tokens are not re-escaped.
func Markup(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Highlighted {
			b.WriteByte('[')
			b.WriteString(s.Text)
			b.WriteByte('|')
			b.WriteString(s.Color)
			b.WriteByte(']')
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
