package tokens

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML parses an HTML rendering of a document into page-attributed
// spans. Page attribution comes from container elements carrying a
// data-page attribute (the 1-based page number); everything outside such a
// container belongs to the most recently opened page, starting at page 1.
//
// Block-level elements each contribute one span; inline markup is flattened
// into its enclosing block's text.
func FromHTML(r io.Reader) ([]Span, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	w := &htmlWalker{page: 1}
	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}
	w.walk(body)
	return w.spans, nil
}

type htmlWalker struct {
	page  int
	spans []Span
}

func (w *htmlWalker) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		if skipElement(n.Data) {
			return
		}
		if p, ok := pageAttr(n); ok {
			prev := w.page
			w.page = p
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				w.walk(c)
			}
			w.page = prev
			return
		}
		if isBlockText(n.Data) {
			text := strings.Join(strings.Fields(textContent(n)), " ")
			if text != "" {
				w.spans = append(w.spans, Span{Page: w.page, Text: text})
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

// pageAttr reads a data-page attribute, if present and positive.
func pageAttr(n *html.Node) (int, bool) {
	for _, attr := range n.Attr {
		if attr.Key == "data-page" {
			var p int
			if _, err := fmt.Sscanf(attr.Val, "%d", &p); err == nil && p > 0 {
				return p, true
			}
		}
	}
	return 0, false
}

func isBlockText(tagName string) bool {
	switch tagName {
	case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "td", "th",
		"blockquote", "pre", "figcaption", "dt", "dd":
		return true
	}
	return false
}

func skipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe":
		return true
	}
	return false
}

func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		if n.Type == html.ElementNode {
			if skipElement(n.Data) {
				return
			}
			if n.Data == "br" {
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}
