package ngff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngff-go/ngff"
	"github.com/ngff-go/ngff/tree"
)

func pyramidArrays() []tree.ArrayLike {
	return []tree.ArrayLike{
		tree.ArrayDesc{Dims: []int{3, 64, 64}, DataType: "<f8"},
		tree.ArrayDesc{Dims: []int{3, 32, 32}, DataType: "<f8"},
	}
}

func buildPyramid(t *testing.T, opts ...ngff.BuildOption) (*ngff.MultiscaleGroup, ngff.Warnings) {
	t.Helper()
	mg, ws, err := ngff.FromArrays(
		pyramidArrays(),
		[]string{"s0", "s1"},
		pyramidAxes(),
		[][]float64{{1, 1, 1}, {1, 2, 2}},
		[][]float64{{0, 0, 0}, {0, 0.5, 0.5}},
		opts...,
	)
	require.NoError(t, err)
	return mg, ws
}

func TestFromArrays_Happy(t *testing.T) {
	mg, ws := buildPyramid(t, ngff.WithMultiscaleOptions(ngff.WithName("em")))

	require.Len(t, mg.Attrs.Multiscales, 1)
	ms := mg.Attrs.Multiscales[0]
	assert.Equal(t, "0.4", ms.Version)
	assert.Equal(t, "em", ms.Name)
	require.Len(t, ms.Datasets, 2)
	assert.Equal(t, "s0", ms.Datasets[0].Path)
	assert.Equal(t, []ngff.Transform{
		mustScale(t, 1, 2, 2),
		mustTranslation(t, 0, 0.5, 0.5),
	}, ms.Datasets[1].Transforms)

	require.Contains(t, mg.Node.Attrs, "multiscales")
	s0 := mg.Node.Children["s0"].(*tree.Array)
	assert.Equal(t, []int{3, 64, 64}, s0.Shape)
	assert.Equal(t, "<f8", s0.DType)
	assert.Equal(t, "C", s0.Order)

	// only the channel axis lacks a unit
	require.Len(t, ws, 1)
	assert.Equal(t, ngff.WarnUnitMissing, ws[0].Code)
}

// TestFromArrays_AutoChunks pins the default chunk policy: one shape guessed
// from the largest level and applied to every level, even where it exceeds a
// smaller level's shape.
func TestFromArrays_AutoChunks(t *testing.T) {
	mg, _ := buildPyramid(t)

	want := tree.GuessChunks([]int{3, 64, 64}, 8)
	assert.Equal(t, []int{3, 64, 64}, want)
	assert.Equal(t, want, mg.Node.Children["s0"].(*tree.Array).Chunks)
	assert.Equal(t, want, mg.Node.Children["s1"].(*tree.Array).Chunks)
}

func TestFromArrays_ExplicitChunks(t *testing.T) {
	t.Run("uniform", func(t *testing.T) {
		mg, _ := buildPyramid(t, ngff.WithChunks(1, 32, 32))
		assert.Equal(t, []int{1, 32, 32}, mg.Node.Children["s0"].(*tree.Array).Chunks)
		assert.Equal(t, []int{1, 32, 32}, mg.Node.Children["s1"].(*tree.Array).Chunks)
	})

	t.Run("per array", func(t *testing.T) {
		mg, _ := buildPyramid(t, ngff.WithChunksPerArray([][]int{{1, 32, 32}, {1, 16, 16}}))
		assert.Equal(t, []int{1, 32, 32}, mg.Node.Children["s0"].(*tree.Array).Chunks)
		assert.Equal(t, []int{1, 16, 16}, mg.Node.Children["s1"].(*tree.Array).Chunks)
	})

	t.Run("per-array count must match", func(t *testing.T) {
		_, _, err := ngff.FromArrays(pyramidArrays(), []string{"s0", "s1"}, pyramidAxes(),
			[][]float64{{1, 1, 1}, {1, 2, 2}}, [][]float64{{0, 0, 0}, {0, 0, 0}},
			ngff.WithChunksPerArray([][]int{{1, 32, 32}}))
		require.Error(t, err)
		iss, _ := ngff.AsIssues(err)
		assert.Equal(t, ngff.CodeChunksInvalid, iss[0].Code)
		assert.Equal(t, 1, iss[0].Params["got"])
		assert.Equal(t, 2, iss[0].Params["want"])
	})

	t.Run("rank mismatch", func(t *testing.T) {
		_, _, err := ngff.FromArrays(pyramidArrays(), []string{"s0", "s1"}, pyramidAxes(),
			[][]float64{{1, 1, 1}, {1, 2, 2}}, [][]float64{{0, 0, 0}, {0, 0, 0}},
			ngff.WithChunks(32, 32))
		require.Error(t, err)
		iss, _ := ngff.AsIssues(err)
		assert.Equal(t, ngff.CodeChunksInvalid, iss[0].Code)
		assert.Equal(t, "s0", iss[0].Params["path"])
		assert.Equal(t, []int{32, 32}, iss[0].Params["chunks"])
	})

	t.Run("extents must be positive", func(t *testing.T) {
		_, _, err := ngff.FromArrays(pyramidArrays(), []string{"s0", "s1"}, pyramidAxes(),
			[][]float64{{1, 1, 1}, {1, 2, 2}}, [][]float64{{0, 0, 0}, {0, 0, 0}},
			ngff.WithChunks(0, 32, 32))
		require.Error(t, err)
		assert.True(t, ngff.HasCode(err, ngff.CodeChunksInvalid))
	})
}

func TestFromArrays_CountMismatch(t *testing.T) {
	_, _, err := ngff.FromArrays(pyramidArrays(), []string{"s0"}, pyramidAxes(),
		[][]float64{{1, 1, 1}, {1, 2, 2}}, [][]float64{{0, 0, 0}, {0, 0, 0}})
	require.Error(t, err)

	iss, _ := ngff.AsIssues(err)
	assert.Equal(t, ngff.CodeCountMismatch, iss[0].Code)
	assert.Equal(t, 2, iss[0].Params["arrays"])
	assert.Equal(t, 1, iss[0].Params["paths"])
}

func TestFromArrays_DuplicatePaths(t *testing.T) {
	_, _, err := ngff.FromArrays(pyramidArrays(), []string{"s0", "s0"}, pyramidAxes(),
		[][]float64{{1, 1, 1}, {1, 2, 2}}, [][]float64{{0, 0, 0}, {0, 0, 0}})
	require.Error(t, err)

	iss, _ := ngff.AsIssues(err)
	assert.Equal(t, ngff.CodePathDuplicate, iss[0].Code)
	assert.Equal(t, "/datasets/1/path", iss[0].Path)
}

func TestFromArrays_DatasetIssuesCarryTheIndex(t *testing.T) {
	_, _, err := ngff.FromArrays(pyramidArrays(), []string{"s0", "s1"}, pyramidAxes(),
		[][]float64{{1, 1, 1}, {1, 2}}, [][]float64{{0, 0, 0}, {0, 0, 0}})
	require.Error(t, err)

	iss, _ := ngff.AsIssues(err)
	assert.Equal(t, ngff.CodeVectorLengthMismatch, iss[0].Code)
	assert.Equal(t, "/datasets/1", iss[0].Path)
}

func TestFromArrays_RevisionControlsSerialization(t *testing.T) {
	mg, _ := buildPyramid(t, ngff.WithRevision(ngff.V05Legacy))

	assert.Equal(t, "0.5.dev", mg.Attrs.Multiscales[0].Version)

	ms0 := mg.Node.Attrs["multiscales"].([]any)[0].(map[string]any)
	ax1 := ms0["axes"].([]any)[1].(map[string]any)
	assert.Equal(t, "micrometer", ax1["units"])
	assert.NotContains(t, ax1, "unit")
}

func TestFromArrays_PlaceholderFields(t *testing.T) {
	mg, _ := buildPyramid(t, ngff.WithFillValue(0.0), ngff.WithOrder("F"))

	s1 := mg.Node.Children["s1"].(*tree.Array)
	assert.Equal(t, 0.0, s1.FillValue)
	assert.Equal(t, "F", s1.Order)
}

func TestFromArrays_ConflictingPaths(t *testing.T) {
	arrays := []tree.ArrayLike{
		tree.ArrayDesc{Dims: []int{3, 64, 64}, DataType: "<f8"},
		tree.ArrayDesc{Dims: []int{3, 32, 32}, DataType: "<f8"},
	}
	_, _, err := ngff.FromArrays(arrays, []string{"a", "a/b"}, pyramidAxes(),
		[][]float64{{1, 1, 1}, {1, 2, 2}}, [][]float64{{0, 0, 0}, {0, 0, 0}})
	require.Error(t, err)

	iss, _ := ngff.AsIssues(err)
	assert.Equal(t, ngff.CodePathInvalid, iss[0].Code)
	assert.Equal(t, "/datasets", iss[0].Path)
	assert.NotNil(t, iss[0].Cause)
}

// TestFromArrays_TreeCheckRunsLast: metadata that validates on its own can
// still disagree with the array shapes; the final consistency pass catches
// it.
func TestFromArrays_TreeCheckRunsLast(t *testing.T) {
	arrays := []tree.ArrayLike{tree.ArrayDesc{Dims: []int{64, 64}, DataType: "<f8"}}
	_, _, err := ngff.FromArrays(arrays, []string{"s0"}, pyramidAxes(),
		[][]float64{{1, 1, 1}}, [][]float64{{0, 0, 0}})
	require.Error(t, err)

	iss, _ := ngff.AsIssues(err)
	assert.Equal(t, ngff.CodeTransformArrayRankMismatch, iss[0].Code)
	assert.Equal(t, "/multiscales/0/datasets/0/coordinateTransformations/0", iss[0].Path)
}
