// Package markdown renders page bodies to HTML with goldmark.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/docbabel/internal/structure"
)

// Options controls how a body is rendered.
type Options struct {
	// ResolveLink maps a link destination to its rendered URL. It returns
	// false to leave the destination untouched.
	ResolveLink func(dest string) (string, bool)
}

// Result is a rendered page body.
type Result struct {
	HTML string
	// Title is the text of the first level-one heading, if any.
	Title string
	TOC   []structure.Heading
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

// Render parses a Markdown body (frontmatter already removed) and renders it to HTML.
func Render(body []byte, opts Options) (*Result, error) {
	md := newMarkdown()
	root := md.Parser().Parse(text.NewReader(body))

	res := &Result{}
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			h := structure.Heading{Level: node.Level, Text: nodeText(node, body)}
			if id, ok := node.AttributeString("id"); ok {
				if b, ok := id.([]byte); ok {
					h.ID = string(b)
				}
			}
			if h.Level == 1 && res.Title == "" {
				res.Title = h.Text
			}
			res.TOC = append(res.TOC, h)
		case *gmast.Link:
			node.Destination = resolve(node.Destination, opts)
		case *gmast.Image:
			node.Destination = resolve(node.Destination, opts)
		}
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, body, root); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	res.HTML = buf.String()
	return res, nil
}

func resolve(dest []byte, opts Options) []byte {
	if opts.ResolveLink == nil {
		return dest
	}
	if out, ok := opts.ResolveLink(string(dest)); ok {
		return []byte(out)
	}
	return dest
}

func nodeText(n gmast.Node, source []byte) string {
	var b bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		case *gmast.CodeSpan:
			for cc := t.FirstChild(); cc != nil; cc = cc.NextSibling() {
				if tt, ok := cc.(*gmast.Text); ok {
					b.Write(tt.Segment.Value(source))
				}
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}
