package section

// Report counts the anomalies the builder recovered from while building.
// A zero Report means the stream was well formed.
type Report struct {
	// UnmatchedEnds counts SectionContentEnd tokens with no open section.
	UnmatchedEnds int

	// UnclosedSections counts sections still open at end of stream.
	UnclosedSections int

	// OrphanStarts counts SectionContentStart tokens not preceded by a heading.
	OrphanStarts int

	// InvalidPlaceholders counts placeholder tokens whose index does not
	// resolve in the leaf store.
	InvalidPlaceholders int

	// UnknownKinds counts tokens with a kind outside the known set.
	UnknownKinds int

	// Detached counts sections moved to the leaf store by the limits.
	Detached int
}

// Anomalies returns the total number of recovered anomalies.
// Detached sections are not anomalies.
func (r Report) Anomalies() int {
	return r.UnmatchedEnds + r.UnclosedSections + r.OrphanStarts +
		r.InvalidPlaceholders + r.UnknownKinds
}

// Clean reports whether no anomalies were found.
func (r Report) Clean() bool {
	return r.Anomalies() == 0
}
