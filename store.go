package ngff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ngff-go/ngff/tree"
)

// FromStore opens the group at path and reassembles a validated
// MultiscaleGroup: the group's "multiscales" attribute is decoded, every
// dataset path is resolved through the store (absent and wrong-kind nodes
// are distinguished), and the assembled pair is cross-checked. The context
// is honored between store calls; no retries, no caching.
//
// tree.ErrNotFound for the group itself, context errors, and store I/O
// failures pass through untouched so callers can apply their own policy.
func FromStore(ctx context.Context, st tree.Store, path string, opts ...ParseOpt) (*MultiscaleGroup, Warnings, error) {
	opt := mergeParseOpt(opts)

	node, err := st.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	grp, ok := node.(*tree.Group)
	if !ok {
		return nil, nil, AppendIssues(nil, newIssue("", CodeNodeNotGroup, map[string]any{"path": path}))
	}

	attrs := grp.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}
	ga, ws, err := DecodeGroupAttrs(attrs, opt)
	if err != nil {
		return nil, nil, err
	}

	var iss Issues
	placeholders := map[string]*tree.Array{}
	for i, ms := range ga.Multiscales {
		for j, ds := range ms.Datasets {
			ptr := fmt.Sprintf("/multiscales/%d/datasets/%d/path", i, j)
			child, err := st.Open(ctx, joinStorePath(path, ds.Path))
			if err != nil {
				if errors.Is(err, tree.ErrNotFound) {
					iss = AppendIssues(iss, newIssue(ptr, CodeArrayMissing, map[string]any{"path": ds.Path}))
					if opt.FailFast {
						return nil, nil, iss
					}
					continue
				}
				return nil, nil, err
			}
			arr, ok := child.(*tree.Array)
			if !ok {
				iss = AppendIssues(iss, newIssue(ptr, CodeNodeNotArray, map[string]any{"path": ds.Path}))
				if opt.FailFast {
					return nil, nil, iss
				}
				continue
			}
			placeholders[strings.Trim(ds.Path, "/")] = arr
		}
	}
	if len(iss) > 0 {
		return nil, nil, iss
	}

	assembled, err := tree.Assemble(placeholders)
	if err != nil {
		return nil, nil, AppendIssues(nil, Issue{
			Path:    "",
			Code:    CodePathInvalid,
			Message: messageFor(CodePathInvalid),
			Cause:   err,
		})
	}
	assembled.Attrs = grp.Attrs

	if err := CheckGroupAttrs(ga, assembled); err != nil {
		return nil, nil, err
	}
	return &MultiscaleGroup{Attrs: ga, Node: assembled}, ws, nil
}

func joinStorePath(base, rel string) string {
	b := strings.Trim(base, "/")
	r := strings.Trim(rel, "/")
	switch {
	case b == "":
		return r
	case r == "":
		return b
	default:
		return b + "/" + r
	}
}
