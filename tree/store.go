package tree

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound reports that no node exists at the requested path.
var ErrNotFound = errors.New("tree: node not found")

// Store is the storage collaborator boundary. Open returns the node at a
// slash-joined path relative to the store root; "" opens the root itself.
// Implementations return ErrNotFound when nothing lives at the path and are
// free to populate returned subtrees as deeply as they like; the in-memory
// store returns fully populated nodes.
type Store interface {
	Open(ctx context.Context, path string) (Node, error)
}

// MemStore serves a fully materialized tree from memory. It is the Store
// used by tests and by the construction conveniences.
type MemStore struct {
	Root *Group
}

// NewMemStore wraps a materialized tree in a Store.
func NewMemStore(root *Group) *MemStore { return &MemStore{Root: root} }

// Open walks the tree segment by segment. Paths through array leaves report
// ErrNotFound, since arrays have no children.
func (s *MemStore) Open(ctx context.Context, path string) (Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.Root == nil {
		return nil, ErrNotFound
	}
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return s.Root, nil
	}
	var cur Node = s.Root
	for _, seg := range strings.Split(trimmed, "/") {
		g, ok := cur.(*Group)
		if !ok {
			return nil, ErrNotFound
		}
		child, ok := g.Children[seg]
		if !ok {
			return nil, ErrNotFound
		}
		cur = child
	}
	return cur, nil
}
