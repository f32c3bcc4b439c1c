// Package datastructures provides hierarchical container types.
package datastructures

// TreeNode is a node in a single-owner tree. Each node holds a value, a
// parent pointer, and an ordered child list. A node has at most one parent;
// inserting a node that already has a parent reparents it.
type TreeNode[T any] struct {
	Value    T
	parent   *TreeNode[T]
	children []*TreeNode[T]
}

// NewTreeNode creates a detached node holding value.
func NewTreeNode[T any](value T) *TreeNode[T] {
	return &TreeNode[T]{Value: value}
}

// Parent returns the parent node, or nil for a root.
func (n *TreeNode[T]) Parent() *TreeNode[T] {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated
// by the caller.
func (n *TreeNode[T]) Children() []*TreeNode[T] {
	return n.children
}

// IsRoot reports whether the node has no parent.
func (n *TreeNode[T]) IsRoot() bool {
	return n.parent == nil
}

// IsLeaf reports whether the node has no children.
func (n *TreeNode[T]) IsLeaf() bool {
	return len(n.children) == 0
}

// Add appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *TreeNode[T]) Add(child *TreeNode[T]) {
	if child == nil {
		panic("datastructures: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("datastructures: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeByPtr(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from this node.
// Panics if child's parent is not this node.
func (n *TreeNode[T]) Remove(child *TreeNode[T]) {
	if child.parent != n {
		panic("datastructures: child's parent is not this node")
	}
	n.removeByPtr(child)
	child.parent = nil
}

// removeByPtr removes child from the child slice without touching its
// parent pointer.
func (n *TreeNode[T]) removeByPtr(child *TreeNode[T]) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// Root returns the topmost ancestor of the node (the node itself if it is
// a root).
func (n *TreeNode[T]) Root() *TreeNode[T] {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Ancestors returns the chain of ancestors from the node's parent up to and
// including the root, in child-to-root order.
func (n *TreeNode[T]) Ancestors() []*TreeNode[T] {
	var out []*TreeNode[T]
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// Walk visits the node and all descendants depth-first in child order.
// Returning false from fn stops the walk.
func (n *TreeNode[T]) Walk(fn func(*TreeNode[T]) bool) {
	n.walk(fn)
}

func (n *TreeNode[T]) walk(fn func(*TreeNode[T]) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// isAncestor reports whether a is an ancestor of (or the same node as) b.
func isAncestor[T any](a, b *TreeNode[T]) bool {
	for n := b; n != nil; n = n.parent {
		if n == a {
			return true
		}
	}
	return false
}

// Tree owns a root node.
type Tree[T any] struct {
	root *TreeNode[T]
}

// NewTree creates a tree whose root holds value.
func NewTree[T any](value T) *Tree[T] {
	return &Tree[T]{root: NewTreeNode(value)}
}

// Root returns the tree's root node.
func (t *Tree[T]) Root() *TreeNode[T] {
	return t.root
}
