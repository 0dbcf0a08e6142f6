// Package tree models the hierarchical array store a multiscale image lives
// in: array leaves with zarr-style metadata, groups with named children, and
// a small Store boundary for opening nodes by path. The package holds no
// validation logic of its own; consistency checks live with the metadata
// model.
package tree

import (
	"fmt"
	"slices"
	"strings"
)

// Node is a node of the storage tree: either an *Array leaf or a *Group.
type Node interface {
	isNode()
}

// Array is an array leaf with the metadata fields the validator and builder
// care about. Shape is required; the remaining fields mirror zarr v2 array
// metadata and may be zero when unknown.
type Array struct {
	Shape     []int
	DType     string
	Chunks    []int
	FillValue any
	Order     string
}

func (*Array) isNode() {}

// Rank is the number of dimensions.
func (a *Array) Rank() int { return len(a.Shape) }

// Group is an interior node with named children and an open attribute map.
type Group struct {
	Attrs    map[string]any
	Children map[string]Node
}

func (*Group) isNode() {}

// Flatten maps every node under root to its slash-joined path. The root
// itself sits at the empty key; children at "name", grandchildren at
// "name/child", and so on.
func Flatten(root *Group) map[string]Node {
	out := make(map[string]Node)
	if root == nil {
		return out
	}
	out[""] = root
	flattenInto(out, "", root)
	return out
}

func flattenInto(out map[string]Node, prefix string, g *Group) {
	for name, child := range g.Children {
		p := name
		if prefix != "" {
			p = prefix + "/" + name
		}
		out[p] = child
		if sub, ok := child.(*Group); ok {
			flattenInto(out, p, sub)
		}
	}
}

// Assemble materializes a group tree holding the given arrays at their
// slash-joined paths, creating intermediate groups as needed. Paths are
// processed in sorted order so collisions report deterministically.
func Assemble(arrays map[string]*Array) (*Group, error) {
	root := &Group{Children: map[string]Node{}}
	paths := make([]string, 0, len(arrays))
	for p := range arrays {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	for _, p := range paths {
		segs := strings.Split(strings.Trim(p, "/"), "/")
		if p == "" || len(segs) == 0 || segs[0] == "" {
			return nil, fmt.Errorf("tree: empty array path")
		}
		cur := root
		for i, seg := range segs[:len(segs)-1] {
			if seg == "" {
				return nil, fmt.Errorf("tree: empty path segment in %q", p)
			}
			child, ok := cur.Children[seg]
			if !ok {
				g := &Group{Children: map[string]Node{}}
				cur.Children[seg] = g
				cur = g
				continue
			}
			g, ok := child.(*Group)
			if !ok {
				return nil, fmt.Errorf("tree: %q is an array and cannot hold %q", strings.Join(segs[:i+1], "/"), p)
			}
			cur = g
		}
		last := segs[len(segs)-1]
		if last == "" {
			return nil, fmt.Errorf("tree: empty path segment in %q", p)
		}
		if _, exists := cur.Children[last]; exists {
			return nil, fmt.Errorf("tree: node already exists at %q", p)
		}
		cur.Children[last] = arrays[p]
	}
	return root, nil
}

// ArrayLike is anything that knows its shape and element type, typically an
// in-memory array about to be persisted.
type ArrayLike interface {
	Shape() []int
	DType() string
}

// ArrayDesc is a minimal ArrayLike carrier for callers that only track shape
// and dtype.
type ArrayDesc struct {
	Dims     []int
	DataType string
}

func (d ArrayDesc) Shape() []int  { return d.Dims }
func (d ArrayDesc) DType() string { return d.DataType }
