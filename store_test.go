package ngff_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngff-go/ngff"
	"github.com/ngff-go/ngff/tree"
)

func TestFromStore_Happy(t *testing.T) {
	mg, _ := buildPyramid(t)
	st := tree.NewMemStore(mg.Node)

	got, ws, err := ngff.FromStore(context.Background(), st, "")
	require.NoError(t, err)
	assert.Equal(t, mg.Attrs, got.Attrs)
	require.Len(t, got.Node.Children, 2)

	// no name was recorded, the channel axis has no unit
	require.NotEmpty(t, ws)
	assert.Equal(t, "/multiscales/0/axes/0/unit", ws[0].Path)
	assert.True(t, ws.Has(ngff.WarnNameMissing))
}

func TestFromStore_NestedGroupPath(t *testing.T) {
	mg, _ := buildPyramid(t)
	root := &tree.Group{Children: map[string]tree.Node{"img": mg.Node}}
	st := tree.NewMemStore(root)

	got, _, err := ngff.FromStore(context.Background(), st, "/img/")
	require.NoError(t, err)
	assert.Equal(t, mg.Attrs, got.Attrs)
}

func TestFromStore_GroupMissing(t *testing.T) {
	mg, _ := buildPyramid(t)
	st := tree.NewMemStore(mg.Node)

	_, _, err := ngff.FromStore(context.Background(), st, "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, tree.ErrNotFound)
}

func TestFromStore_PathIsNotAGroup(t *testing.T) {
	mg, _ := buildPyramid(t)
	st := tree.NewMemStore(mg.Node)

	_, _, err := ngff.FromStore(context.Background(), st, "s0")
	require.Error(t, err)
	iss, _ := ngff.AsIssues(err)
	assert.Equal(t, ngff.CodeNodeNotGroup, iss[0].Code)
	assert.Equal(t, "s0", iss[0].Params["path"])
}

func TestFromStore_DeclaredArrayMissing(t *testing.T) {
	mg, _ := buildPyramid(t)
	delete(mg.Node.Children, "s1")
	st := tree.NewMemStore(mg.Node)

	_, _, err := ngff.FromStore(context.Background(), st, "")
	require.Error(t, err)
	iss, _ := ngff.AsIssues(err)
	assert.Equal(t, ngff.CodeArrayMissing, iss[0].Code)
	assert.Equal(t, "/multiscales/0/datasets/1/path", iss[0].Path)
	assert.Equal(t, "s1", iss[0].Params["path"])
}

func TestFromStore_DeclaredArrayIsAGroup(t *testing.T) {
	mg, _ := buildPyramid(t)
	mg.Node.Children["s1"] = &tree.Group{}
	st := tree.NewMemStore(mg.Node)

	_, _, err := ngff.FromStore(context.Background(), st, "")
	require.Error(t, err)
	assert.True(t, ngff.HasCode(err, ngff.CodeNodeNotArray))
}

func TestFromStore_FailFast(t *testing.T) {
	mg, _ := buildPyramid(t)
	delete(mg.Node.Children, "s0")
	delete(mg.Node.Children, "s1")
	st := tree.NewMemStore(mg.Node)

	_, _, err := ngff.FromStore(context.Background(), st, "")
	require.Error(t, err)
	iss, _ := ngff.AsIssues(err)
	assert.Len(t, iss, 2)

	_, _, err = ngff.FromStore(context.Background(), st, "", ngff.ParseOpt{FailFast: true})
	require.Error(t, err)
	iss, _ = ngff.AsIssues(err)
	assert.Len(t, iss, 1)
}

func TestFromStore_ContextCancellation(t *testing.T) {
	mg, _ := buildPyramid(t)
	st := tree.NewMemStore(mg.Node)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := ngff.FromStore(ctx, st, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromStore_GroupWithoutAttrs(t *testing.T) {
	st := tree.NewMemStore(&tree.Group{})

	_, _, err := ngff.FromStore(context.Background(), st, "")
	require.Error(t, err)
	iss, _ := ngff.AsIssues(err)
	assert.Equal(t, ngff.CodeRequired, iss[0].Code)
	assert.Equal(t, "/multiscales", iss[0].Path)
}
