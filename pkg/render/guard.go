package render

// Sides of a leaf key.
const (
	sidePlain = iota
	sideBefore
	sideAfter
)

// leafKey identifies a stored section on one side of a render.
type leafKey struct {
	side  int
	index int
}

// expansionGuard tracks the leaf sections being expanded on the current path
// so a section that refers to itself is emitted as a placeholder instead of
// recursing forever.
type expansionGuard map[leafKey]struct{}

func (g expansionGuard) enter(keys ...leafKey) bool {
	for _, k := range keys {
		if _, busy := g[k]; busy {
			return false
		}
	}
	for _, k := range keys {
		g[k] = struct{}{}
	}
	return true
}

func (g expansionGuard) leave(keys ...leafKey) {
	for _, k := range keys {
		delete(g, k)
	}
}
