package interp

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-fragments/pkg/directive"
	"github.com/goliatone/go-fragments/pkg/dom"
)

func interpolateDirective(def *Pattern, cfg config) directive.Directive {
	return func(el *html.Node, args directive.Args, _ directive.Utilities) error {
		pattern, err := patternFor(def, args)
		if err != nil {
			return err
		}
		Split(pattern, el, cfg.wrapperTag, cfg.textAttribute)
		return nil
	}
}

// Split rewrites every matching text node under root into literal text
// nodes and wrapper elements, one wrapper per expression, each carrying
// textAttr="expression" so the host's live text directive keeps it current.
// It runs once; later updates belong to the host. Template content is walked
// like any other subtree, raw text elements are not.
func Split(pattern *Pattern, root *html.Node, wrapperTag, textAttr string) {
	var targets []*html.Node
	dom.Walk(root, func(n *html.Node) error {
		switch n.Type {
		case html.TextNode:
			if n != root && len(n.Data) > 0 {
				targets = append(targets, n)
			}
		case html.ElementNode:
			if n != root && isRawText(n.Data) {
				return dom.SkipChildren
			}
		}
		return nil
	})

	for _, text := range targets {
		segments := Segments(pattern, text.Data)
		if len(segments) == 1 && segments[0].Expression == "" {
			continue
		}
		parent := text.Parent
		for _, segment := range segments {
			var node *html.Node
			if segment.Expression != "" {
				node = dom.NewElement(wrapperTag, html.Attribute{Key: textAttr, Val: segment.Expression})
			} else {
				node = dom.NewText(segment.Literal)
			}
			parent.InsertBefore(node, text)
		}
		parent.RemoveChild(text)
	}
}

// Segment is either a literal run of text or an expression.
type Segment struct {
	Literal    string
	Expression string
}

// Segments splits text into literal and expression segments in order. Empty
// literals between adjacent matches are omitted. Text without matches yields
// a single literal segment.
func Segments(pattern *Pattern, text string) []Segment {
	spans := pattern.Matches(text)
	if len(spans) == 0 {
		return []Segment{{Literal: text}}
	}
	out := make([]Segment, 0, len(spans)*2+1)
	last := 0
	for _, span := range spans {
		if span.Start > last {
			out = append(out, Segment{Literal: text[last:span.Start]})
		}
		out = append(out, Segment{Expression: span.Expression})
		last = span.End
	}
	if last < len(text) {
		out = append(out, Segment{Literal: text[last:]})
	}
	return out
}

func isRawText(tag string) bool {
	switch tag {
	case "script", "style", "textarea", "title":
		return true
	default:
		return false
	}
}
