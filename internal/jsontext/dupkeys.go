// Package jsontext provides low-level hygiene scans over raw JSON text.
// The scans work on the token stream and never build the document value.
package jsontext

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// DuplicateStrictness controls duplicate key handling in detection helpers.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by scan helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Key     string // offending key for duplicate_key issues
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	key          string // member key currently being valued (objects)
	index        int    // index of the element currently being valued (arrays)
}

// DetectDuplicateKeysBytes detects duplicate object keys in a JSON byte
// slice. If onDup is DupIgnore, no issues are produced. maxIssues < 0 means
// unlimited; 0 means disabled; > 0 sets a limit, marked with a trailing
// truncated issue.
func DetectDuplicateKeysBytes(data []byte, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return detectDuplicateKeys(dec, onDup, maxIssues)
}

// DetectDuplicateKeysReader detects duplicate object keys from an io.Reader.
// Note: this consumes the reader fully.
func DetectDuplicateKeysReader(r io.Reader, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return detectDuplicateKeys(dec, onDup, maxIssues)
}

func detectDuplicateKeys(dec *json.Decoder, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	var issues []SimpleIssue
	var stack []dupFrame
	truncated := false

	appendIssue := func(i SimpleIssue) {
		if maxIssues == 0 || truncated {
			return
		}
		issues = append(issues, i)
		if maxIssues > 0 && len(issues) >= maxIssues {
			issues = append(issues, SimpleIssue{Code: "truncated", Path: "/", Message: "max issues reached"})
			truncated = true
		}
	}

	// valueDone advances the top frame once a member value or array element
	// has been fully consumed.
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := &stack[len(stack)-1]
		switch top.kind {
		case kindObject:
			if !top.expectingKey {
				top.expectingKey = true
			}
		case kindArray:
			top.index++
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			appendIssue(SimpleIssue{Code: "parse_error", Path: "/", Message: err.Error()})
			break
		}
		if truncated {
			break
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true})
			case '[':
				stack = append(stack, dupFrame{kind: kindArray})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && top.expectingKey {
					if _, ok := top.keys[v]; ok {
						appendIssue(SimpleIssue{
							Code:    "duplicate_key",
							Path:    pointerOf(stack) + "/" + escapePointer(v),
							Message: "key '" + v + "' duplicated",
							Key:     v,
						})
						if onDup == DupError {
							return issues, nil
						}
					}
					top.keys[v] = struct{}{}
					top.key = v
					top.expectingKey = false
					continue
				}
			}
			valueDone()
		default:
			valueDone()
		}
	}

	return issues, nil
}

// pointerOf renders the JSON Pointer of the container currently on top of
// the stack. The segment between two frames is the outer frame's pending
// key or element index.
func pointerOf(stack []dupFrame) string {
	if len(stack) <= 1 {
		return ""
	}
	b := &strings.Builder{}
	for i := 0; i < len(stack)-1; i++ {
		f := stack[i]
		b.WriteByte('/')
		if f.kind == kindObject {
			b.WriteString(escapePointer(f.key))
		} else {
			b.WriteString(strconv.Itoa(f.index))
		}
	}
	return b.String()
}

// escapePointer applies RFC 6901 escaping to one pointer segment.
func escapePointer(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
