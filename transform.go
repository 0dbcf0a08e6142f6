package ngff

import "slices"

// Wire type tags for coordinate transforms.
const (
	KindIdentity    = "identity"
	KindScale       = "scale"
	KindTranslation = "translation"
)

// Transform is the closed union of coordinate transforms. A transform maps
// array-index space to physical space; its Kind reports the wire type tag.
// The union is sealed: only the variants in this package implement it.
type Transform interface {
	Kind() string
	isTransform()
}

// Identity is the no-op transform. It carries no parameters and has no rank
// of its own.
type Identity struct{}

func (Identity) Kind() string { return KindIdentity }
func (Identity) isTransform() {}

// PathScale is a scale transform whose parameters live at another path in
// the store. Its rank is deferred to whatever the path resolves to.
type PathScale struct {
	Path string
}

func (PathScale) Kind() string { return KindScale }
func (PathScale) isTransform() {}

// PathTranslation is a translation transform whose parameters live at
// another path in the store.
type PathTranslation struct {
	Path string
}

func (PathTranslation) Kind() string { return KindTranslation }
func (PathTranslation) isTransform() {}

// VectorScale scales each dimension by the matching element of Scale.
type VectorScale struct {
	Scale []float64
}

func (VectorScale) Kind() string { return KindScale }
func (VectorScale) isTransform() {}

// VectorTranslation shifts each dimension by the matching element of
// Translation.
type VectorTranslation struct {
	Translation []float64
}

func (VectorTranslation) Kind() string { return KindTranslation }
func (VectorTranslation) isTransform() {}

// NewVectorScale validates and builds a VectorScale. The vector must have at
// least one element; vals is copied.
func NewVectorScale(vals []float64) (VectorScale, error) {
	if len(vals) == 0 {
		return VectorScale{}, singleIssue(CodeEmptyVector, "/scale")
	}
	return VectorScale{Scale: slices.Clone(vals)}, nil
}

// NewVectorTranslation validates and builds a VectorTranslation.
func NewVectorTranslation(vals []float64) (VectorTranslation, error) {
	if len(vals) == 0 {
		return VectorTranslation{}, singleIssue(CodeEmptyVector, "/translation")
	}
	return VectorTranslation{Translation: slices.Clone(vals)}, nil
}

// Rank returns the declared dimensionality of a transform. Identity and the
// path-referencing variants have no rank of their own; asking for one fails
// with rank_undefined.
func Rank(tx Transform) (int, error) {
	if r, ok := definedRank(tx); ok {
		return r, nil
	}
	kind := ""
	if tx != nil {
		kind = tx.Kind()
	}
	return 0, AppendIssues(nil, newIssue("", CodeRankUndefined, map[string]any{"kind": kind}))
}

// definedRank reports the rank of vector transforms. Everything else has no
// defined rank.
func definedRank(tx Transform) (int, bool) {
	switch v := tx.(type) {
	case VectorScale:
		return len(v.Scale), true
	case VectorTranslation:
		return len(v.Translation), true
	default:
		return 0, false
	}
}

// MakeScaleTranslation builds the canonical scale+translation pair for one
// resolution level. Checked in order: scale non-empty, translation
// non-empty, equal lengths.
func MakeScaleTranslation(scale, translation []float64) (VectorScale, VectorTranslation, error) {
	if len(scale) == 0 {
		return VectorScale{}, VectorTranslation{}, singleIssue(CodeEmptyVector, "/scale")
	}
	if len(translation) == 0 {
		return VectorScale{}, VectorTranslation{}, singleIssue(CodeEmptyVector, "/translation")
	}
	if len(scale) != len(translation) {
		iss := AppendIssues(nil, newIssue("", CodeVectorLengthMismatch, map[string]any{
			"scale":       len(scale),
			"translation": len(translation),
		}))
		return VectorScale{}, VectorTranslation{}, iss
	}
	return VectorScale{Scale: slices.Clone(scale)}, VectorTranslation{Translation: slices.Clone(translation)}, nil
}

// EnsureRankConsistent checks that every transform with a defined rank
// agrees on it. Undefined ranks (Identity, path references) are ignored.
func EnsureRankConsistent(txs ...Transform) error {
	var ranks []int
	for _, tx := range txs {
		r, ok := definedRank(tx)
		if !ok {
			continue
		}
		if !slices.Contains(ranks, r) {
			ranks = append(ranks, r)
		}
	}
	if len(ranks) > 1 {
		slices.Sort(ranks)
		return AppendIssues(nil, newIssue("", CodeRankInconsistent, map[string]any{"ranks": ranks}))
	}
	return nil
}

func kindOf(tx Transform) string {
	if tx == nil {
		return ""
	}
	return tx.Kind()
}

func isScaleKind(tx Transform) bool {
	return tx != nil && tx.Kind() == KindScale
}

func isTranslationKind(tx Transform) bool {
	return tx != nil && tx.Kind() == KindTranslation
}
