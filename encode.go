package ngff

import (
	json "github.com/goccy/go-json"
)

// EncodeMultiscale renders a multiscale as a generic wire object. Absent
// optional fields (nil name, version, type, metadata) are omitted rather
// than written as null, and the axis unit key follows the policy's revision.
// Pass at most one policy; the default is V04.
func EncodeMultiscale(ms Multiscale, pol ...Policy) (map[string]any, error) {
	p := pickPolicy(pol)

	axes := make([]any, len(ms.Axes))
	for i, ax := range ms.Axes {
		axes[i] = axisDoc(ax, p)
	}
	datasets := make([]any, len(ms.Datasets))
	for i, ds := range ms.Datasets {
		doc, err := datasetDoc(ds)
		if err != nil {
			return nil, err
		}
		datasets[i] = doc
	}

	doc := map[string]any{
		"axes":     axes,
		"datasets": datasets,
	}
	if len(ms.Transforms) > 0 {
		txs, err := transformsDoc(ms.Transforms)
		if err != nil {
			return nil, err
		}
		doc["coordinateTransformations"] = txs
	}
	if ms.Version != nil {
		doc["version"] = ms.Version
	}
	if ms.Name != nil {
		doc["name"] = ms.Name
	}
	if ms.Kind != nil {
		doc["type"] = ms.Kind
	}
	if ms.Metadata != nil {
		doc["metadata"] = ms.Metadata
	}
	return doc, nil
}

// EncodeGroupAttrs renders a group attribute document.
func EncodeGroupAttrs(ga GroupAttrs, pol ...Policy) (map[string]any, error) {
	list := make([]any, len(ga.Multiscales))
	for i, ms := range ga.Multiscales {
		doc, err := EncodeMultiscale(ms, pol...)
		if err != nil {
			return nil, err
		}
		list[i] = doc
	}
	return map[string]any{"multiscales": list}, nil
}

// MarshalMultiscale serializes a multiscale document to JSON.
func MarshalMultiscale(ms Multiscale, pol ...Policy) ([]byte, error) {
	doc, err := EncodeMultiscale(ms, pol...)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// MarshalGroupAttrs serializes a group attribute document to JSON.
func MarshalGroupAttrs(ga GroupAttrs, pol ...Policy) ([]byte, error) {
	doc, err := EncodeGroupAttrs(ga, pol...)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func pickPolicy(pol []Policy) Policy {
	if len(pol) > 0 {
		return pol[len(pol)-1].orDefault()
	}
	return DefaultPolicy()
}

func axisDoc(ax Axis, pol Policy) map[string]any {
	unitKey := pol.AxisUnitKey
	if unitKey == "" {
		unitKey = "unit"
	}
	doc := map[string]any{"name": ax.Name}
	if ax.Type != nil {
		doc["type"] = *ax.Type
	}
	if ax.Unit != nil {
		doc[unitKey] = *ax.Unit
	}
	return doc
}

func datasetDoc(ds Dataset) (map[string]any, error) {
	txs, err := transformsDoc(ds.Transforms)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"path":                      ds.Path,
		"coordinateTransformations": txs,
	}, nil
}

func transformsDoc(txs []Transform) ([]any, error) {
	out := make([]any, len(txs))
	for i, tx := range txs {
		doc, err := transformDoc(tx)
		if err != nil {
			return nil, err
		}
		out[i] = doc
	}
	return out, nil
}

func transformDoc(tx Transform) (map[string]any, error) {
	switch v := tx.(type) {
	case Identity:
		return map[string]any{"type": KindIdentity}, nil
	case VectorScale:
		return map[string]any{"type": KindScale, "scale": v.Scale}, nil
	case PathScale:
		return map[string]any{"type": KindScale, "path": v.Path}, nil
	case VectorTranslation:
		return map[string]any{"type": KindTranslation, "translation": v.Translation}, nil
	case PathTranslation:
		return map[string]any{"type": KindTranslation, "path": v.Path}, nil
	default:
		return nil, AppendIssues(nil, newIssue("", CodeTransformKindUnknown, map[string]any{"got": typeName(tx)}))
	}
}
