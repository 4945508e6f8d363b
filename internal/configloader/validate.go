package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/codesurface/pkg/config"
)

// ValidationError is a configuration problem tied to a field and,
// when known, the file that set it.
type ValidationError struct {
	Field    string
	Message  string
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult collects the findings for one configuration.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns errors then warnings, prefixed by their kind.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks cfg. Settings that are legal but have no effect are
// reported as warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if err := cfg.Validate(); err != nil {
		field, message, ok := strings.Cut(err.Error(), " ")
		if !ok {
			field, message = "", err.Error()
		}
		result.Errors = append(result.Errors, ValidationError{Field: field, Message: message})
	}

	if cfg.Render.LazyLeaves && cfg.Render.MaxDepth == 0 && cfg.Render.MaxLines == 0 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "render.lazy_leaves",
			Message: "has no effect unless render.max_depth or render.max_lines detach sections",
		})
	}

	if cfg.Output.Width > 0 && cfg.Output.Format != config.FormatText {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "output.width",
			Message: fmt.Sprintf("only applies to text output, not %s", cfg.Output.Format),
		})
	}

	if cfg.Render.Mode == config.ModeMarkup && cfg.Output.Format != config.FormatText {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "render.mode",
			Message: fmt.Sprintf("markup only changes text output, not %s", cfg.Output.Format),
		})
	}

	return result
}
