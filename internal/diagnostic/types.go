package diagnostic

import "fmt"

// Diagnostics collects the warnings produced while assembling a manifest.
type Diagnostics struct {
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Field identifies which manifest field this relates to (if any).
	Field string
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Code:    code,
		Message: message,
		Field:   field,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Field != "" {
		return d.Field + ": " + msg
	}

	return msg
}
