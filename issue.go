package ngff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ngff-go/ngff/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Wire / intake failures.
	CodeParseError   = "parse_error"
	CodeInvalidType  = "invalid_type"
	CodeRequired     = "required"
	CodeUnknownKey   = "unknown_key"
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"

	// Coordinate transform failures.
	CodeRankUndefined                 = "rank_undefined"
	CodeEmptyVector                   = "empty_vector"
	CodeVectorLengthMismatch          = "vector_length_mismatch"
	CodeRankInconsistent              = "rank_inconsistent"
	CodeTransformKindUnknown          = "transform_kind_unknown"
	CodeTransformCount                = "transform_count"
	CodeFirstTransformNotScale        = "first_transform_not_scale"
	CodeSecondTransformNotTranslation = "second_transform_not_translation"

	// Axis and multiscale failures.
	CodeAxisCount            = "axis_count"
	CodeAxisNamesDuplicate   = "axis_names_duplicate"
	CodeSpaceAxisCount       = "space_axis_count"
	CodeSpaceAxesNotTrailing = "space_axes_not_trailing"
	CodeTimeAxisCount        = "time_axis_count"
	CodeChannelAxisCount     = "channel_axis_count"
	CodeCustomAxisCount      = "custom_axis_count"
	CodeDatasetsEmpty        = "datasets_empty"
	CodeMultiscalesEmpty     = "multiscales_empty"
	CodeGroupRankMismatch    = "group_rank_mismatch"
	CodeVersionMismatch      = "version_mismatch"

	// Tree consistency failures.
	CodeArrayMissing               = "array_missing"
	CodeNodeNotArray               = "node_not_array"
	CodeNodeNotGroup               = "node_not_group"
	CodeArrayRankDisagreement      = "array_rank_disagreement"
	CodeTransformArrayRankMismatch = "transform_array_rank_mismatch"

	// Construction and rewriting failures.
	CodeCountMismatch    = "count_mismatch"
	CodePathDuplicate    = "path_duplicate"
	CodePathInvalid      = "path_invalid"
	CodeChunksInvalid    = "chunks_invalid"
	CodeAxisOrderInvalid = "axis_order_invalid"
)

// Issue represents a single validation failure.
type Issue struct {
	Path    string // JSON Pointer into the document (for example: /datasets/2/path).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"got": 7, "min": 2, "max": 5})
	// for i18n and observability.
	Params map[string]any
	// Rule optionally records the check that produced this issue.
	Rule string
}

// Issues is a collection of validation failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. axis_count at /axes
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// messageFor resolves the human-readable message for a code through the
// current i18n translator.
func messageFor(code string) string { return i18n.T(code, nil) }

// newIssue builds an Issue with the catalog message for its code.
func newIssue(path, code string, params map[string]any) Issue {
	return Issue{Path: path, Code: code, Message: messageFor(code), Params: params}
}

// prefixIssues shifts every issue path under the given JSON Pointer prefix.
// Child validators report paths relative to their own value; composites call
// this when aggregating.
func prefixIssues(prefix string, iss Issues) Issues {
	if prefix == "" || len(iss) == 0 {
		return iss
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		it.Path = joinPointer(prefix, it.Path)
		out[i] = it
	}
	return out
}

// joinPointer concatenates two JSON Pointer fragments.
func joinPointer(prefix, rel string) string {
	switch {
	case rel == "" || rel == "/":
		return prefix
	case strings.HasPrefix(rel, "/"):
		return prefix + rel
	default:
		return prefix + "/" + rel
	}
}
