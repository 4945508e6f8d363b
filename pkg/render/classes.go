package render

import (
	"strconv"

	"github.com/yaklabco/codesurface/pkg/codeline"
)

// HierarchyClasses returns the classes encoding a node's depth and sibling
// position.
func HierarchyClasses(level, position int, hasChildren bool) []string {
	classes := make([]string, 0, 3)
	if hasChildren {
		classes = append(classes, "lvl_"+strconv.Itoa(level)+"_parent_"+strconv.Itoa(position))
	}
	classes = append(classes, "lvl_"+strconv.Itoa(level)+"_child_"+strconv.Itoa(position))
	if level > 1 {
		classes = append(classes, codeline.HiddenClass)
	}
	return classes
}

// withClasses returns line with its own class followed by the hierarchy classes.
func withClasses(line codeline.Line, level, position int, hasChildren bool) codeline.Line {
	classes := append([]string{line.Class}, HierarchyClasses(level, position, hasChildren)...)
	line.Class = codeline.JoinClasses(classes...)
	return line
}

// Renumber assigns line numbers start, start+1, ... to lines in place.
func Renumber(lines []codeline.Line, start int) {
	for i := range lines {
		lines[i].LineNumber = start + i
	}
}

// StripHierarchy removes generated hierarchy classes from a line class,
// leaving only the section classes.
func StripHierarchy(class string) string {
	var kept []string
	for _, c := range splitClasses(class) {
		if c == codeline.HiddenClass || isLevelClass(c) {
			continue
		}
		kept = append(kept, c)
	}
	return codeline.JoinClasses(kept...)
}

func isLevelClass(c string) bool {
	return len(c) > 4 && c[:4] == "lvl_"
}
