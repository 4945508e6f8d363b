package render

import "strings"

// anchor places a flattened subtree under an existing node. Every level of
// the subtree is shifted by level; sibling positions are kept, so spliced
// top-level lines are numbered within the spliced group.
type anchor struct {
	level int
}

// place returns the rendered level and position of a node.
func (a anchor) place(level, position int) (int, int) {
	return level + a.level, position
}

// under returns the anchor for content spliced in place of a placeholder
// rendered at level.
func under(level int) anchor {
	return anchor{level: level - 1}
}

func splitClasses(class string) []string {
	return strings.Fields(class)
}
