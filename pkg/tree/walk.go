package tree

// WalkFunc is called for each visited node. Return a non-nil error to stop.
type WalkFunc[T any] func(n Node[T]) error

// Walk performs a pre-order traversal of t starting at the root.
func (t *Tree[T]) Walk(fn WalkFunc[T]) error {
	return t.WalkFrom(RootID, fn)
}

// WalkFrom performs a pre-order traversal of the subtree rooted at id.
func (t *Tree[T]) WalkFrom(id int, fn WalkFunc[T]) error {
	if !t.Valid(id) {
		return nil
	}

	stack := []int{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[cur]
		if err := fn(node); err != nil {
			return err
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
	return nil
}

// FindAll returns the ids of all nodes matching the predicate, in pre-order.
func (t *Tree[T]) FindAll(predicate func(n Node[T]) bool) []int {
	var ids []int

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	t.Walk(func(n Node[T]) error {
		if predicate(n) {
			ids = append(ids, n.ID)
		}
		return nil
	})

	return ids
}

// Descendants returns the number of nodes below id.
func (t *Tree[T]) Descendants(id int) int {
	count := -1

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	t.WalkFrom(id, func(Node[T]) error {
		count++
		return nil
	})

	if count < 0 {
		return 0
	}
	return count
}
