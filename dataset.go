package ngff

import "slices"

// Dataset binds one resolution level's array path to the transforms that map
// its index space to physical space.
type Dataset struct {
	Path       string
	Transforms []Transform
}

// NewDataset validates and builds a Dataset. Checked in order: transform
// count is 1 or 2; the first transform is scale-kind; the second, when
// present, is translation-kind; all defined ranks agree. Issue paths are
// relative to the dataset object.
func NewDataset(path string, txs []Transform) (Dataset, error) {
	if iss := checkTransformSequence(txs); len(iss) > 0 {
		return Dataset{}, prefixIssues("/coordinateTransformations", iss)
	}
	return Dataset{Path: path, Transforms: slices.Clone(txs)}, nil
}

// DatasetFromScaleTranslation builds a Dataset for one resolution level from
// raw scale and translation vectors.
func DatasetFromScaleTranslation(path string, scale, translation []float64) (Dataset, error) {
	sc, tr, err := MakeScaleTranslation(scale, translation)
	if err != nil {
		return Dataset{}, err
	}
	return NewDataset(path, []Transform{sc, tr})
}

// checkTransformSequence applies the structural rules shared by dataset and
// group-level transform sequences. Issue paths are relative to the sequence.
func checkTransformSequence(txs []Transform) Issues {
	if n := len(txs); n < 1 || n > 2 {
		return AppendIssues(nil, newIssue("", CodeTransformCount, map[string]any{"got": n}))
	}
	if !isScaleKind(txs[0]) {
		return AppendIssues(nil, newIssue("/0", CodeFirstTransformNotScale, map[string]any{"kind": kindOf(txs[0])}))
	}
	if len(txs) == 2 && !isTranslationKind(txs[1]) {
		return AppendIssues(nil, newIssue("/1", CodeSecondTransformNotTranslation, map[string]any{"kind": kindOf(txs[1])}))
	}
	if err := EnsureRankConsistent(txs...); err != nil {
		iss, _ := AsIssues(err)
		return iss
	}
	return nil
}
