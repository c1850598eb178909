package dom

import (
	"errors"

	"golang.org/x/net/html"
)

// SkipChildren can be returned from a WalkFunc to prune the subtree of the
// node being visited. It is never returned by Walk.
var SkipChildren = errors.New("dom: skip children")

// WalkFunc is invoked once per node.
type WalkFunc func(n *html.Node) error

// Walk visits root and its descendants in document order using an explicit
// stack. Children are read after fn returns, so fn may rewrite the subtree
// of the node it is visiting. Any error other than SkipChildren stops the
// walk and is returned.
func Walk(root *html.Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := fn(n); err != nil {
			if errors.Is(err, SkipChildren) {
				continue
			}
			return err
		}

		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return nil
}

// TextNodes returns the descendant text nodes of root in document order.
func TextNodes(root *html.Node) []*html.Node {
	var out []*html.Node
	Walk(root, func(n *html.Node) error {
		if n != root && n.Type == html.TextNode {
			out = append(out, n)
		}
		return nil
	})
	return out
}
