// Package tree provides a generic arena-backed ordered tree.
//
// Nodes live in a flat slice addressed by integer id. A node owns the ordered
// list of its children's ids and refers back to its parent by id, so the
// structure has no reference cycles. Node 0 is always the synthetic root.
package tree

// RootID is the id of the synthetic root of every tree.
const RootID = 0

// NoParent is the Parent of the root node.
const NoParent = -1

// Node is a single entry of a Tree.
type Node[T any] struct {
	// ID is the index of the node in its tree.
	ID int

	// Parent is the id of the parent node, or NoParent for the root.
	Parent int

	// Children holds child ids in order. Callers must treat it as read-only.
	Children []int

	// Level is the depth from the root (root = 0).
	Level int

	// Position is the index of the node among its siblings.
	Position int

	// Value is the payload carried by the node.
	Value T

	// WasDetachedLeafParent marks a node whose content was moved to the
	// leaf section store and is represented by placeholder children.
	WasDetachedLeafParent bool
}

// IsRoot reports whether the node is the synthetic root.
func (n Node[T]) IsRoot() bool {
	return n.Parent == NoParent
}

// IsLeaf reports whether the node has no children.
func (n Node[T]) IsLeaf() bool {
	return len(n.Children) == 0
}

// HasChildren reports whether the node has any children.
func (n Node[T]) HasChildren() bool {
	return len(n.Children) > 0
}

// Tree is an ordered tree of T values stored in an arena.
// A built tree is safe for concurrent readers as long as nobody mutates it.
type Tree[T any] struct {
	nodes []Node[T]
}

// New creates a tree holding only a root with the given value.
func New[T any](root T) *Tree[T] {
	return &Tree[T]{
		nodes: []Node[T]{{ID: RootID, Parent: NoParent, Value: root}},
	}
}

// Len returns the number of nodes including the root.
func (t *Tree[T]) Len() int {
	return len(t.nodes)
}

// Valid reports whether id addresses a node of t.
func (t *Tree[T]) Valid(id int) bool {
	return id >= 0 && id < len(t.nodes)
}

// Add appends a new last child to parent and returns its id.
// It returns -1 when parent is not a node of t.
func (t *Tree[T]) Add(parent int, value T) int {
	if !t.Valid(parent) {
		return -1
	}

	id := len(t.nodes)
	p := &t.nodes[parent]
	t.nodes = append(t.nodes, Node[T]{
		ID:       id,
		Parent:   parent,
		Level:    p.Level + 1,
		Position: len(p.Children),
		Value:    value,
	})
	// p may be stale after append.
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// Node returns a copy of the node with the given id.
func (t *Tree[T]) Node(id int) (Node[T], bool) {
	if !t.Valid(id) {
		return Node[T]{}, false
	}
	return t.nodes[id], true
}

// Root returns the root node.
func (t *Tree[T]) Root() Node[T] {
	return t.nodes[RootID]
}

// Value returns the value stored at id, or the zero value for unknown ids.
func (t *Tree[T]) Value(id int) T {
	if !t.Valid(id) {
		var zero T
		return zero
	}
	return t.nodes[id].Value
}

// Children returns the child ids of id. The slice must not be modified.
func (t *Tree[T]) Children(id int) []int {
	if !t.Valid(id) {
		return nil
	}
	return t.nodes[id].Children
}

// ChildValues returns the values of the children of id in order.
func (t *Tree[T]) ChildValues(id int) []T {
	children := t.Children(id)
	values := make([]T, len(children))
	for i, child := range children {
		values[i] = t.nodes[child].Value
	}
	return values
}

// SetValue replaces the value stored at id.
func (t *Tree[T]) SetValue(id int, value T) {
	if t.Valid(id) {
		t.nodes[id].Value = value
	}
}

// MarkDetachedLeafParent flags id as the parent of detached leaf content.
func (t *Tree[T]) MarkDetachedLeafParent(id int) {
	if t.Valid(id) {
		t.nodes[id].WasDetachedLeafParent = true
	}
}

// CopySubtree copies the node srcID of src and all its descendants into dst
// as a new last child of dstParent, converting each value with convert.
// It returns the id of the copy of srcID, or -1 if either id is invalid.
func CopySubtree[S, T any](src *Tree[S], srcID int, dst *Tree[T], dstParent int, convert func(Node[S]) T) int {
	if !src.Valid(srcID) || !dst.Valid(dstParent) {
		return -1
	}

	type pending struct{ src, dstParent int }

	var top int
	stack := []pending{{srcID, dstParent}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := src.nodes[item.src]
		id := dst.Add(item.dstParent, convert(node))
		if node.WasDetachedLeafParent {
			dst.MarkDetachedLeafParent(id)
		}
		if item.src == srcID {
			top = id
		}

		// Push in reverse so children are added in order.
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, pending{node.Children[i], id})
		}
	}
	return top
}
