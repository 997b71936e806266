// SPDX-License-Identifier: Unlicense OR MIT

package scene

// Topmost returns the nodes of the subtree rooted at root ordered from
// the highest paint priority to the lowest. Siblings are visited in
// reverse paint order (highest ZIndex first, later children before
// earlier ones), and every node follows its descendants, so deeply
// nested nodes precede the containers they are painted in.
func Topmost(root *Node) []*Node {
	return appendTopmost(nil, root, nil)
}

// TopmostFunc is like Topmost but skips the subtree of every node for
// which skip returns true.
func TopmostFunc(root *Node, skip func(n *Node) bool) []*Node {
	return appendTopmost(nil, root, skip)
}

func appendTopmost(nodes []*Node, n *Node, skip func(n *Node) bool) []*Node {
	if skip != nil && skip(n) {
		return nodes
	}
	painted := n.Painted()
	for i := len(painted) - 1; i >= 0; i-- {
		nodes = appendTopmost(nodes, painted[i], skip)
	}
	return append(nodes, n)
}
