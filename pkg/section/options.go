package section

// Options controls how the builder shapes a tree.
type Options struct {
	// MaxDepth detaches sections nested deeper than this many levels.
	// Zero disables the depth limit.
	MaxDepth int `yaml:"max_depth"`

	// MaxLines detaches sections whose content spans more lines than this.
	// Zero disables the size limit.
	MaxLines int `yaml:"max_lines"`

	// EnclosingSection builds the stream as if it were the content of the
	// section with this id. Leaf expansion uses it so detached lines keep
	// their content class.
	EnclosingSection string `yaml:"-"`
}

// DefaultOptions returns options with both limits disabled.
func DefaultOptions() Options {
	return Options{}
}

// detaches reports whether either limit is active.
func (o Options) detaches() bool {
	return o.MaxDepth > 0 || o.MaxLines > 0
}
