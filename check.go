package ngff

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ngff-go/ngff/tree"
)

// CheckTree verifies that a multiscale's declared datasets agree with the
// backing array tree rooted at root. The check is pure and read-only; re-run
// it whenever the tree may have changed.
//
// Steps, in order: every dataset path must resolve to a node; the node must
// be an array; all referenced arrays must share one rank; every defined
// transform rank (the dataset's own plus group-level transforms) must equal
// that array rank. Structural failures report before rank failures, and
// datasets report in declaration order, so diagnostics are deterministic.
func CheckTree(ms Multiscale, root *tree.Group) error {
	flat := tree.Flatten(root)

	arrays := make([]*tree.Array, len(ms.Datasets))
	for i, ds := range ms.Datasets {
		node, ok := flat[strings.Trim(ds.Path, "/")]
		if !ok {
			return AppendIssues(nil, newIssue(
				fmt.Sprintf("/datasets/%d/path", i),
				CodeArrayMissing,
				map[string]any{"path": ds.Path},
			))
		}
		arr, ok := node.(*tree.Array)
		if !ok {
			return AppendIssues(nil, newIssue(
				fmt.Sprintf("/datasets/%d/path", i),
				CodeNodeNotArray,
				map[string]any{"path": ds.Path},
			))
		}
		arrays[i] = arr
	}

	var ranks []int
	for _, arr := range arrays {
		if !slices.Contains(ranks, arr.Rank()) {
			ranks = append(ranks, arr.Rank())
		}
	}
	if len(ranks) > 1 {
		slices.Sort(ranks)
		return AppendIssues(nil, newIssue("/datasets", CodeArrayRankDisagreement, map[string]any{"ranks": ranks}))
	}

	for i, ds := range ms.Datasets {
		arrRank := arrays[i].Rank()
		for j, tx := range ds.Transforms {
			if r, ok := definedRank(tx); ok && r != arrRank {
				return AppendIssues(nil, newIssue(
					fmt.Sprintf("/datasets/%d/coordinateTransformations/%d", i, j),
					CodeTransformArrayRankMismatch,
					map[string]any{"path": ds.Path, "transform": r, "array": arrRank},
				))
			}
		}
		for j, tx := range ms.Transforms {
			if r, ok := definedRank(tx); ok && r != arrRank {
				return AppendIssues(nil, newIssue(
					fmt.Sprintf("/coordinateTransformations/%d", j),
					CodeTransformArrayRankMismatch,
					map[string]any{"path": ds.Path, "transform": r, "array": arrRank},
				))
			}
		}
	}
	return nil
}

// CheckGroupAttrs runs CheckTree for every multiscale entry against the same
// tree root.
func CheckGroupAttrs(ga GroupAttrs, root *tree.Group) error {
	for i, ms := range ga.Multiscales {
		if err := CheckTree(ms, root); err != nil {
			iss, _ := AsIssues(err)
			return prefixIssues(fmt.Sprintf("/multiscales/%d", i), iss)
		}
	}
	return nil
}
