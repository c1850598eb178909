package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads a complete HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return doc, nil
}

// Render writes the node and its subtree as HTML.
func Render(w io.Writer, n *html.Node) error {
	if n == nil {
		return errors.New("dom: render nil node")
	}
	return html.Render(w, n)
}

var errStopWalk = errors.New("dom: stop walk")

// FirstWithAttr returns the first element, in document order, that carries
// the attribute key. It returns nil when no element does.
func FirstWithAttr(root *html.Node, key string) *html.Node {
	return first(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasAttr(n, key)
	})
}

// first stops the walk at the first node accepted by match.
func first(root *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) error {
		if match(n) {
			found = n
			return errStopWalk
		}
		return nil
	})
	return found
}

// Attr returns the value of the attribute key and whether it was present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether n carries the attribute key.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets or replaces an attribute value.
func SetAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr drops every occurrence of the attribute key.
func RemoveAttr(n *html.Node, key string) {
	if n == nil || len(n.Attr) == 0 {
		return
	}
	kept := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			continue
		}
		kept = append(kept, attr)
	}
	n.Attr = kept
}

// SetInnerHTML parses markup in the context of el and replaces its children
// with the result.
func SetInnerHTML(el *html.Node, markup string) error {
	if el == nil || el.Type != html.ElementNode {
		return errors.New("dom: inner html target must be an element")
	}
	context := el
	if context.DataAtom == 0 {
		// ParseFragment needs an atom to pick the insertion mode.
		clone := *el
		clone.DataAtom = atom.Lookup([]byte(el.Data))
		if clone.DataAtom == 0 {
			clone.DataAtom = atom.Div
			clone.Data = "div"
		}
		context = &clone
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return fmt.Errorf("dom: parse fragment: %w", err)
	}

	RemoveChildren(el)
	for _, node := range nodes {
		el.AppendChild(node)
	}
	return nil
}

// InnerHTML renders the children of el.
func InnerHTML(el *html.Node) (string, error) {
	if el == nil {
		return "", nil
	}
	var buf bytes.Buffer
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("dom: render child: %w", err)
		}
	}
	return buf.String(), nil
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// NewElement creates a detached element node.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// NewText creates a detached text node.
func NewText(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// NewScript creates a script element whose only child is the body text.
func NewScript(body string) *html.Node {
	script := NewElement("script")
	script.AppendChild(NewText(body))
	return script
}

// InsertBefore places n immediately before ref under ref's parent.
func InsertBefore(n, ref *html.Node) error {
	if ref == nil || ref.Parent == nil {
		return errors.New("dom: insert before detached node")
	}
	ref.Parent.InsertBefore(n, ref)
	return nil
}

// TextContent concatenates the text of every descendant text node.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	for _, text := range TextNodes(n) {
		sb.WriteString(text.Data)
	}
	return sb.String()
}

// SetText replaces the children of el with a single text node.
func SetText(el *html.Node, text string) {
	RemoveChildren(el)
	el.AppendChild(NewText(text))
}
