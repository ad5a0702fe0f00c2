// Package markdown extracts navigation data (page title, section headings)
// from Markdown bodies using goldmark's parser.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one ATX or setext heading of a page.
type Heading struct {
	Level int
	Text  string
}

// Headings returns every heading up to maxLevel in document order.
// Frontmatter must already be removed from body.
func Headings(body []byte, maxLevel int) []Heading {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var out []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if h.Level <= maxLevel {
			out = append(out, Heading{Level: h.Level, Text: plainText(h, body)})
		}
		return gmast.WalkSkipChildren, nil
	})
	return out
}

// Title returns the text of the first level-1 heading.
func Title(body []byte) (string, bool) {
	hs := Headings(body, 1)
	if len(hs) == 0 {
		return "", false
	}
	return hs[0].Text, true
}

// plainText concatenates the literal text below n, dropping emphasis and link markup.
func plainText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		case *gmast.CodeSpan:
			for cc := t.FirstChild(); cc != nil; cc = cc.NextSibling() {
				if seg, ok := cc.(*gmast.Text); ok {
					buf.Write(seg.Segment.Value(source))
				}
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return string(bytes.TrimSpace(buf.Bytes()))
}
