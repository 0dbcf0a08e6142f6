package ngff

import (
	"fmt"
	"maps"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// ScaleBy returns a copy of the dataset whose scale vector is multiplied
// elementwise by factors. A nil factors contributes the identity and returns
// an unchanged copy. The factors length must match the transform rank.
func (ds Dataset) ScaleBy(factors []float64) (Dataset, error) {
	return ds.rewrite(factors, nil)
}

// TranslateBy returns a copy of the dataset whose translation vector is
// shifted elementwise by offsets, materializing an all-zero translation when
// the dataset carries none. A nil offsets returns an unchanged copy.
func (ds Dataset) TranslateBy(offsets []float64) (Dataset, error) {
	return ds.rewrite(nil, offsets)
}

// TransposeAxes returns a copy of the dataset with every vector transform
// reordered by order. The order must be a permutation of [0, rank).
func (ds Dataset) TransposeAxes(order []int) (Dataset, error) {
	if iss := checkTransformSequence(ds.Transforms); len(iss) > 0 {
		return Dataset{}, prefixIssues("/coordinateTransformations", iss)
	}
	if iss := checkAxisOrder(order); len(iss) > 0 {
		return Dataset{}, iss
	}
	txs, iss := transposeTransforms(ds.Transforms, order)
	if len(iss) > 0 {
		return Dataset{}, prefixIssues("/coordinateTransformations", iss)
	}
	return Dataset{Path: ds.Path, Transforms: txs}, nil
}

// ScaleBy applies Dataset.ScaleBy to every resolution level and returns the
// rewritten multiscale. Group-level transforms are left untouched.
//
// TODO: offer a variant that rewrites the group-level transforms instead of
// the per-dataset ones.
func (ms Multiscale) ScaleBy(factors []float64) (Multiscale, error) {
	return ms.rewrite(factors, nil)
}

// TranslateBy applies Dataset.TranslateBy to every resolution level and
// returns the rewritten multiscale. Group-level transforms are left
// untouched.
func (ms Multiscale) TranslateBy(offsets []float64) (Multiscale, error) {
	return ms.rewrite(nil, offsets)
}

// TransposeAxes returns a copy of the multiscale with the axes, every
// dataset's transforms, and any group-level transforms reordered by order.
// The order must be a permutation of [0, len(axes)), and the permuted axes
// must still satisfy the axis layout rules.
func (ms Multiscale) TransposeAxes(order []int) (Multiscale, error) {
	if len(order) != len(ms.Axes) {
		return Multiscale{}, AppendIssues(nil, newIssue("/axes", CodeAxisOrderInvalid, map[string]any{
			"got":  len(order),
			"want": len(ms.Axes),
		}))
	}
	if iss := checkAxisOrder(order); len(iss) > 0 {
		return Multiscale{}, prefixIssues("/axes", iss)
	}

	out := ms.clone()
	out.Axes = permute(ms.Axes, order)
	if err := checkAxisTypes(out.Axes); err != nil {
		return Multiscale{}, err
	}
	for i, ds := range ms.Datasets {
		nds, err := ds.TransposeAxes(order)
		if err != nil {
			iss, _ := AsIssues(err)
			return Multiscale{}, prefixIssues(fmt.Sprintf("/datasets/%d", i), iss)
		}
		out.Datasets[i] = nds
	}
	if len(ms.Transforms) > 0 {
		txs, iss := transposeTransforms(ms.Transforms, order)
		if len(iss) > 0 {
			return Multiscale{}, prefixIssues("/coordinateTransformations", iss)
		}
		out.Transforms = txs
	}
	return out, nil
}

// TransposeAxesByName is TransposeAxes with the order given as axis names.
func (ms Multiscale) TransposeAxesByName(names ...string) (Multiscale, error) {
	index := make(map[string]int, len(ms.Axes))
	for i, ax := range ms.Axes {
		index[ax.Name] = i
	}
	order := make([]int, len(names))
	for i, name := range names {
		idx, ok := index[name]
		if !ok {
			return Multiscale{}, AppendIssues(nil, newIssue("/axes", CodeAxisOrderInvalid, map[string]any{"name": name}))
		}
		order[i] = idx
	}
	return ms.TransposeAxes(order)
}

func (ds Dataset) rewrite(factors, offsets []float64) (Dataset, error) {
	if iss := checkTransformSequence(ds.Transforms); len(iss) > 0 {
		return Dataset{}, prefixIssues("/coordinateTransformations", iss)
	}
	txs, iss := rewriteTransforms(ds.Transforms, factors, offsets)
	if len(iss) > 0 {
		return Dataset{}, prefixIssues("/coordinateTransformations", iss)
	}
	return Dataset{Path: ds.Path, Transforms: txs}, nil
}

func (ms Multiscale) rewrite(factors, offsets []float64) (Multiscale, error) {
	out := ms.clone()
	for i, ds := range ms.Datasets {
		nds, err := ds.rewrite(factors, offsets)
		if err != nil {
			iss, _ := AsIssues(err)
			return Multiscale{}, prefixIssues(fmt.Sprintf("/datasets/%d", i), iss)
		}
		out.Datasets[i] = nds
	}
	return out, nil
}

// rewriteTransforms composes factors into the scale vector and offsets into
// the translation vector of a well-formed transform sequence. Composition
// needs in-memory vectors, so a path-referencing transform in a slot being
// rewritten fails with rank_undefined. Issue paths are relative to the
// sequence.
func rewriteTransforms(txs []Transform, factors, offsets []float64) ([]Transform, Issues) {
	if factors == nil && offsets == nil {
		return slices.Clone(txs), nil
	}
	sc, ok := txs[0].(VectorScale)
	if !ok {
		return nil, AppendIssues(nil, newIssue("/0", CodeRankUndefined, map[string]any{"kind": kindOf(txs[0])}))
	}
	ndim := len(sc.Scale)

	newScale := slices.Clone(sc.Scale)
	if factors != nil {
		if len(factors) != ndim {
			return nil, AppendIssues(nil, newIssue("/0/scale", CodeVectorLengthMismatch, map[string]any{
				"got":  len(factors),
				"want": ndim,
			}))
		}
		floats.Mul(newScale, factors)
	}
	out := []Transform{VectorScale{Scale: newScale}}

	switch {
	case offsets != nil:
		if len(offsets) != ndim {
			return nil, AppendIssues(nil, newIssue("/1/translation", CodeVectorLengthMismatch, map[string]any{
				"got":  len(offsets),
				"want": ndim,
			}))
		}
		newTrans := make([]float64, ndim)
		if len(txs) == 2 {
			tr, ok := txs[1].(VectorTranslation)
			if !ok {
				return nil, AppendIssues(nil, newIssue("/1", CodeRankUndefined, map[string]any{"kind": kindOf(txs[1])}))
			}
			copy(newTrans, tr.Translation)
		}
		floats.Add(newTrans, offsets)
		out = append(out, VectorTranslation{Translation: newTrans})
	case len(txs) == 2:
		out = append(out, txs[1])
	}
	return out, nil
}

// transposeTransforms reorders each vector transform by order. Issue paths
// are relative to the sequence.
func transposeTransforms(txs []Transform, order []int) ([]Transform, Issues) {
	out := make([]Transform, len(txs))
	for i, tx := range txs {
		switch v := tx.(type) {
		case VectorScale:
			if len(order) != len(v.Scale) {
				return nil, AppendIssues(nil, newIssue(fmt.Sprintf("/%d/scale", i), CodeAxisOrderInvalid, map[string]any{
					"got":  len(order),
					"want": len(v.Scale),
				}))
			}
			out[i] = VectorScale{Scale: permute(v.Scale, order)}
		case VectorTranslation:
			if len(order) != len(v.Translation) {
				return nil, AppendIssues(nil, newIssue(fmt.Sprintf("/%d/translation", i), CodeAxisOrderInvalid, map[string]any{
					"got":  len(order),
					"want": len(v.Translation),
				}))
			}
			out[i] = VectorTranslation{Translation: permute(v.Translation, order)}
		default:
			return nil, AppendIssues(nil, newIssue(fmt.Sprintf("/%d", i), CodeRankUndefined, map[string]any{"kind": kindOf(tx)}))
		}
	}
	return out, nil
}

// checkAxisOrder verifies order is a permutation of [0, len(order)).
func checkAxisOrder(order []int) Issues {
	seen := make(map[int]struct{}, len(order))
	for _, idx := range order {
		if idx < 0 || idx >= len(order) {
			return AppendIssues(nil, newIssue("", CodeAxisOrderInvalid, map[string]any{"order": order}))
		}
		if _, dup := seen[idx]; dup {
			return AppendIssues(nil, newIssue("", CodeAxisOrderInvalid, map[string]any{"order": order}))
		}
		seen[idx] = struct{}{}
	}
	return nil
}

func permute[T any](vals []T, order []int) []T {
	out := make([]T, len(order))
	for i, idx := range order {
		out[i] = vals[idx]
	}
	return out
}

func (ms Multiscale) clone() Multiscale {
	out := ms
	out.Axes = slices.Clone(ms.Axes)
	out.Datasets = slices.Clone(ms.Datasets)
	out.Transforms = slices.Clone(ms.Transforms)
	out.Metadata = maps.Clone(ms.Metadata)
	return out
}
