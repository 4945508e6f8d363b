package linediff

// Line is one entry of a diff.
type Line[V any] struct {
	// Value is the before-side value for Unchanged and Removed lines and the
	// after-side value for Added lines.
	Value V `json:"line" yaml:"line"`

	// Other is the after-side value of an Unchanged match.
	Other V `json:"-" yaml:"-"`

	// Kind classifies the line.
	Kind Kind `json:"kind" yaml:"kind"`

	// HasDescendantDiff is set by tree diffs when the line or anything
	// nested below it changed.
	HasDescendantDiff bool `json:"hasDescendantDiff,omitempty" yaml:"hasDescendantDiff,omitempty"`
}

// Changed reports whether the line itself was added or removed.
func (l Line[V]) Changed() bool {
	return l.Kind != Unchanged
}

// Diff aligns two sequences on their keys and returns the merged sequence.
//
// beforeKeys and beforeValues must have equal length, as must afterKeys and
// afterValues. A longer side of a pair is truncated to the shorter one.
func Diff[K comparable, V any](beforeKeys []K, beforeValues []V, afterKeys []K, afterValues []V) []Line[V] {
	n := min(len(beforeKeys), len(beforeValues))
	m := min(len(afterKeys), len(afterValues))
	bk, bv := beforeKeys[:n], beforeValues[:n]
	ak, av := afterKeys[:m], afterValues[:m]

	table := lcsTable(bk, ak)

	// Walk back from (n, m); ops come out reversed.
	ops := make([]Line[V], 0, n+m)
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && bk[i-1] == ak[j-1]:
			ops = append(ops, Line[V]{Value: bv[i-1], Other: av[j-1], Kind: Unchanged})
			i--
			j--
		case i > 0 && (j == 0 || table.at(i-1, j) >= table.at(i, j-1)):
			ops = append(ops, Line[V]{Value: bv[i-1], Kind: Removed})
			i--
		default:
			ops = append(ops, Line[V]{Value: av[j-1], Kind: Added})
			j--
		}
	}

	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}

	return groupEdits(ops)
}

// Strings diffs two string sequences using each string as its own key.
func Strings(before, after []string) []Line[string] {
	return Diff(before, before, after, after)
}

// LCSLength returns the length of a longest common subsequence of a and b.
func LCSLength[K comparable](a, b []K) int {
	return lcsTable(a, b).at(len(a), len(b))
}

// table is an (n+1) x (m+1) prefix LCS table stored row-major.
type table struct {
	cols  int
	cells []int
}

func (t table) at(i, j int) int {
	return t.cells[i*t.cols+j]
}

// lcsTable fills cell (i, j) with the LCS length of a[:i] and b[:j].
func lcsTable[K comparable](a, b []K) table {
	t := table{cols: len(b) + 1, cells: make([]int, (len(a)+1)*(len(b)+1))}
	for i := 1; i <= len(a); i++ {
		row := i * t.cols
		prev := row - t.cols
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				t.cells[row+j] = t.cells[prev+j-1] + 1
			case t.cells[prev+j] >= t.cells[row+j-1]:
				t.cells[row+j] = t.cells[prev+j]
			default:
				t.cells[row+j] = t.cells[row+j-1]
			}
		}
	}
	return t
}

// groupEdits reorders every run of edits so removals precede additions,
// keeping the relative order within each group.
func groupEdits[V any](ops []Line[V]) []Line[V] {
	out := make([]Line[V], 0, len(ops))
	var added []Line[V]

	flush := func() {
		out = append(out, added...)
		added = added[:0]
	}

	for _, op := range ops {
		switch op.Kind {
		case Removed:
			out = append(out, op)
		case Added:
			added = append(added, op)
		default:
			flush()
			out = append(out, op)
		}
	}
	flush()

	return out
}
