package ngff

import (
	"fmt"
	"strings"
)

// Warning codes. Warnings never fail validation; callers decide whether to
// surface, log, or drop them.
const (
	WarnUnitUnrecognized = "unit_unrecognized"
	WarnUnitMissing      = "unit_missing"
	WarnTypeMissing      = "axis_type_missing"
	WarnTypeUnknown      = "axis_type_unknown"
	WarnNameMissing      = "name_missing"
	WarnVersionMissing   = "version_missing"
	WarnVersionMismatch  = "version_mismatch"
	// WarnDuplicateKey mirrors CodeDuplicateKey when duplicate-key
	// strictness is Warn instead of Error.
	WarnDuplicateKey = "duplicate_key"
)

// Warning is a single advisory finding. Unlike Issue it is not an error:
// the value it describes is still usable.
type Warning struct {
	Path    string // JSON Pointer into the document.
	Code    string // One of the warning codes above.
	Message string
	Value   any    // The offending value, when one exists.
	Rule    string // The check that produced this warning.
}

// Warnings aggregates advisory findings. The zero value is ready to use.
type Warnings []Warning

// Has reports whether the collection carries a warning with the given code.
func (ws Warnings) Has(code string) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

// String renders a compact one-line summary, mainly for CLI output.
func (ws Warnings) String() string {
	if len(ws) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for i, w := range ws {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", w.Code, w.Path)
	}
	return b.String()
}

// AppendWarnings appends warnings to the destination, initializing the slice
// when needed.
func AppendWarnings(dst Warnings, more ...Warning) Warnings {
	if dst == nil {
		dst = Warnings{}
	}
	dst = append(dst, more...)
	return dst
}

// prefixWarnings shifts every warning path under the given JSON Pointer
// prefix, mirroring prefixIssues.
func prefixWarnings(prefix string, ws Warnings) Warnings {
	if prefix == "" || len(ws) == 0 {
		return ws
	}
	out := make(Warnings, len(ws))
	for i, w := range ws {
		w.Path = joinPointer(prefix, w.Path)
		out[i] = w
	}
	return out
}
