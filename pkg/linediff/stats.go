package linediff

// Stats counts diff lines by kind.
type Stats struct {
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Added     int `json:"added" yaml:"added"`
	Removed   int `json:"removed" yaml:"removed"`
}

// Count tallies lines by kind.
func Count[V any](lines []Line[V]) Stats {
	var s Stats
	for _, l := range lines {
		s.add(l.Kind)
	}
	return s
}

func (s *Stats) add(k Kind) {
	switch k {
	case Added:
		s.Added++
	case Removed:
		s.Removed++
	default:
		s.Unchanged++
	}
}

// HasChanges reports whether anything was added or removed.
func (s Stats) HasChanges() bool {
	return s.Added > 0 || s.Removed > 0
}

// Total returns the number of counted lines.
func (s Stats) Total() int {
	return s.Unchanged + s.Added + s.Removed
}
