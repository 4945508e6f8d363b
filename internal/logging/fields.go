// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldName       = "name"
	FieldFormat     = "format"

	// Configuration fields.
	FieldConfig   = "config"
	FieldMaxDepth = "max_depth"
	FieldMaxLines = "max_lines"
	FieldMode     = "mode"
	FieldJobs     = "jobs"

	// Build report fields.
	FieldUnmatchedEnds       = "unmatched_ends"
	FieldUnclosedSections    = "unclosed_sections"
	FieldOrphanStarts        = "orphan_starts"
	FieldInvalidPlaceholders = "invalid_placeholders"
	FieldUnknownKinds        = "unknown_kinds"
	FieldDetached            = "detached"

	// Statistics fields.
	FieldLines     = "lines"
	FieldAdded     = "added"
	FieldRemoved   = "removed"
	FieldUnchanged = "unchanged"
	FieldJobsTotal = "jobs_total"
	FieldFailed    = "failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
