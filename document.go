package ngff

import (
	"fmt"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
)

// ParseMultiscale decodes and validates one multiscale document from JSON
// bytes. Advisory findings (including duplicate keys under a Warn
// strictness) come back as Warnings; fatal findings abort with Issues.
func ParseMultiscale(data []byte, opts ...ParseOpt) (Multiscale, Warnings, error) {
	opt := mergeParseOpt(opts)
	raw, ws, err := parseObject(data, opt)
	if err != nil {
		return Multiscale{}, nil, err
	}
	ms, mws, err := DecodeMultiscale(raw, opt)
	if err != nil {
		return Multiscale{}, nil, err
	}
	return ms, AppendWarnings(ws, mws...), nil
}

// ParseGroupAttrs decodes and validates a group attribute document holding
// one or more multiscale entries under "multiscales".
func ParseGroupAttrs(data []byte, opts ...ParseOpt) (GroupAttrs, Warnings, error) {
	opt := mergeParseOpt(opts)
	raw, ws, err := parseObject(data, opt)
	if err != nil {
		return GroupAttrs{}, nil, err
	}
	ga, gws, err := DecodeGroupAttrs(raw, opt)
	if err != nil {
		return GroupAttrs{}, nil, err
	}
	return ga, AppendWarnings(ws, gws...), nil
}

// parseObject runs wire hygiene (duplicate keys) and decodes the document
// into a generic object.
func parseObject(data []byte, opt ParseOpt) (map[string]any, Warnings, error) {
	var ws Warnings
	if opt.Strictness.OnDuplicateKey != Ignore {
		dups, err := DetectDuplicateKeysBytes(data, opt.Strictness, opt.MaxIssues)
		if err != nil {
			return nil, nil, AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
		}
		if len(dups) > 0 {
			if opt.Strictness.OnDuplicateKey == Error {
				return nil, nil, dups
			}
			for _, it := range dups {
				ws = AppendWarnings(ws, Warning{Path: it.Path, Code: it.Code, Message: it.Message})
			}
		}
	}

	var rawAny any
	if err := json.Unmarshal(data, &rawAny); err != nil {
		return nil, nil, AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
	}
	raw, ok := rawAny.(map[string]any)
	if !ok {
		return nil, nil, AppendIssues(nil, newIssue("/", CodeInvalidType, map[string]any{"expected": "object", "got": typeName(rawAny)}))
	}
	return raw, ws, nil
}

// multiscaleKeys is the closed key set of a multiscale document.
var multiscaleKeys = map[string]bool{
	"axes":                      true,
	"datasets":                  true,
	"coordinateTransformations": true,
	"version":                   true,
	"name":                      true,
	"type":                      true,
	"metadata":                  true,
}

// DecodeMultiscale validates a generic object as a multiscale document.
// Unknown keys are fatal; the axis unit key follows the policy's revision.
func DecodeMultiscale(raw map[string]any, opts ...ParseOpt) (Multiscale, Warnings, error) {
	opt := mergeParseOpt(opts)
	pol := opt.Policy.orDefault()

	var iss Issues
	for _, k := range sortedKeys(raw) {
		if !multiscaleKeys[k] {
			iss = AppendIssues(iss, newIssue("/"+escapeSegment(k), CodeUnknownKey, map[string]any{"key": k}))
		}
	}
	if opt.FailFast && len(iss) > 0 {
		return Multiscale{}, nil, iss
	}

	var ms Multiscale

	axesRaw, ok := raw["axes"]
	if !ok {
		iss = AppendIssues(iss, newIssue("/axes", CodeRequired, nil))
	} else {
		axes, aiss := decodeAxes(axesRaw, pol)
		iss = AppendIssues(iss, prefixIssues("/axes", aiss)...)
		ms.Axes = axes
	}
	if opt.FailFast && len(iss) > 0 {
		return Multiscale{}, nil, iss
	}

	dsRaw, ok := raw["datasets"]
	if !ok {
		iss = AppendIssues(iss, newIssue("/datasets", CodeRequired, nil))
	} else {
		datasets, diss := decodeDatasets(dsRaw, opt.FailFast)
		iss = AppendIssues(iss, prefixIssues("/datasets", diss)...)
		ms.Datasets = datasets
	}
	if opt.FailFast && len(iss) > 0 {
		return Multiscale{}, nil, iss
	}

	if gtRaw, ok := raw["coordinateTransformations"]; ok {
		txs, tiss := decodeTransforms(gtRaw)
		iss = AppendIssues(iss, prefixIssues("/coordinateTransformations", tiss)...)
		ms.Transforms = txs
	}

	if mdRaw, ok := raw["metadata"]; ok && mdRaw != nil {
		if md, ok := mdRaw.(map[string]any); ok {
			ms.Metadata = md
		} else {
			iss = AppendIssues(iss, newIssue("/metadata", CodeInvalidType, map[string]any{"expected": "object", "got": typeName(mdRaw)}))
		}
	}

	ms.Version = raw["version"]
	ms.Name = raw["name"]
	ms.Kind = raw["type"]

	if len(iss) > 0 {
		return Multiscale{}, nil, iss
	}

	ws, err := ms.Validate(pol)
	if err != nil {
		return Multiscale{}, nil, err
	}
	return ms, ws, nil
}

// DecodeGroupAttrs validates a generic object as a group attribute document.
// Keys other than "multiscales" are ignored: group attributes routinely
// carry unrelated metadata.
func DecodeGroupAttrs(raw map[string]any, opts ...ParseOpt) (GroupAttrs, Warnings, error) {
	opt := mergeParseOpt(opts)

	msRaw, ok := raw["multiscales"]
	if !ok {
		return GroupAttrs{}, nil, AppendIssues(nil, newIssue("/multiscales", CodeRequired, nil))
	}
	list, ok := msRaw.([]any)
	if !ok {
		return GroupAttrs{}, nil, AppendIssues(nil, newIssue("/multiscales", CodeInvalidType, map[string]any{"expected": "array", "got": typeName(msRaw)}))
	}
	if len(list) == 0 {
		return GroupAttrs{}, nil, AppendIssues(nil, newIssue("/multiscales", CodeMultiscalesEmpty, nil))
	}

	var (
		iss Issues
		ws  Warnings
		mss []Multiscale
	)
	for i, el := range list {
		prefix := fmt.Sprintf("/multiscales/%d", i)
		obj, ok := el.(map[string]any)
		if !ok {
			iss = AppendIssues(iss, newIssue(prefix, CodeInvalidType, map[string]any{"expected": "object", "got": typeName(el)}))
			if opt.FailFast {
				return GroupAttrs{}, nil, iss
			}
			continue
		}
		ms, mws, err := DecodeMultiscale(obj, opt)
		if err != nil {
			sub, _ := AsIssues(err)
			iss = AppendIssues(iss, prefixIssues(prefix, sub)...)
			if opt.FailFast {
				return GroupAttrs{}, nil, iss
			}
			continue
		}
		ws = AppendWarnings(ws, prefixWarnings(prefix, mws)...)
		mss = append(mss, ms)
	}
	if len(iss) > 0 {
		return GroupAttrs{}, nil, iss
	}
	return GroupAttrs{Multiscales: mss}, ws, nil
}

func decodeAxes(v any, pol Policy) ([]Axis, Issues) {
	list, ok := v.([]any)
	if !ok {
		return nil, AppendIssues(nil, newIssue("", CodeInvalidType, map[string]any{"expected": "array", "got": typeName(v)}))
	}
	axes := make([]Axis, 0, len(list))
	var iss Issues
	for i, el := range list {
		ax, aiss := decodeAxis(el, pol)
		iss = AppendIssues(iss, prefixIssues(fmt.Sprintf("/%d", i), aiss)...)
		axes = append(axes, ax)
	}
	return axes, iss
}

func decodeAxis(v any, pol Policy) (Axis, Issues) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Axis{}, AppendIssues(nil, newIssue("", CodeInvalidType, map[string]any{"expected": "object", "got": typeName(v)}))
	}
	unitKey := pol.AxisUnitKey
	if unitKey == "" {
		unitKey = "unit"
	}

	var iss Issues
	for _, k := range sortedKeys(obj) {
		if k != "name" && k != "type" && k != unitKey {
			iss = AppendIssues(iss, newIssue("/"+escapeSegment(k), CodeUnknownKey, map[string]any{"key": k}))
		}
	}

	var ax Axis
	nameRaw, ok := obj["name"]
	if !ok {
		iss = AppendIssues(iss, newIssue("/name", CodeRequired, nil))
	} else if s, ok := nameRaw.(string); ok {
		ax.Name = s
	} else {
		iss = AppendIssues(iss, newIssue("/name", CodeInvalidType, map[string]any{"expected": "string", "got": typeName(nameRaw)}))
	}
	if tRaw, ok := obj["type"]; ok && tRaw != nil {
		if s, ok := tRaw.(string); ok {
			ax.Type = &s
		} else {
			iss = AppendIssues(iss, newIssue("/type", CodeInvalidType, map[string]any{"expected": "string", "got": typeName(tRaw)}))
		}
	}
	if uRaw, ok := obj[unitKey]; ok && uRaw != nil {
		if s, ok := uRaw.(string); ok {
			ax.Unit = &s
		} else {
			iss = AppendIssues(iss, newIssue("/"+unitKey, CodeInvalidType, map[string]any{"expected": "string", "got": typeName(uRaw)}))
		}
	}
	return ax, iss
}

func decodeDatasets(v any, failFast bool) ([]Dataset, Issues) {
	list, ok := v.([]any)
	if !ok {
		return nil, AppendIssues(nil, newIssue("", CodeInvalidType, map[string]any{"expected": "array", "got": typeName(v)}))
	}
	datasets := make([]Dataset, 0, len(list))
	var iss Issues
	for i, el := range list {
		ds, diss := decodeDataset(el)
		iss = AppendIssues(iss, prefixIssues(fmt.Sprintf("/%d", i), diss)...)
		if failFast && len(iss) > 0 {
			return nil, iss
		}
		datasets = append(datasets, ds)
	}
	return datasets, iss
}

func decodeDataset(v any) (Dataset, Issues) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Dataset{}, AppendIssues(nil, newIssue("", CodeInvalidType, map[string]any{"expected": "object", "got": typeName(v)}))
	}

	var iss Issues
	for _, k := range sortedKeys(obj) {
		if k != "path" && k != "coordinateTransformations" {
			iss = AppendIssues(iss, newIssue("/"+escapeSegment(k), CodeUnknownKey, map[string]any{"key": k}))
		}
	}

	var path string
	pRaw, ok := obj["path"]
	if !ok {
		iss = AppendIssues(iss, newIssue("/path", CodeRequired, nil))
	} else if s, ok := pRaw.(string); ok {
		path = s
	} else {
		iss = AppendIssues(iss, newIssue("/path", CodeInvalidType, map[string]any{"expected": "string", "got": typeName(pRaw)}))
	}

	txRaw, ok := obj["coordinateTransformations"]
	if !ok {
		iss = AppendIssues(iss, newIssue("/coordinateTransformations", CodeRequired, nil))
		return Dataset{}, iss
	}
	txs, tiss := decodeTransforms(txRaw)
	iss = AppendIssues(iss, prefixIssues("/coordinateTransformations", tiss)...)
	if len(iss) > 0 {
		return Dataset{}, iss
	}

	ds, err := NewDataset(path, txs)
	if err != nil {
		sub, _ := AsIssues(err)
		return Dataset{}, sub
	}
	return ds, nil
}

func decodeTransforms(v any) ([]Transform, Issues) {
	list, ok := v.([]any)
	if !ok {
		return nil, AppendIssues(nil, newIssue("", CodeInvalidType, map[string]any{"expected": "array", "got": typeName(v)}))
	}
	txs := make([]Transform, 0, len(list))
	var iss Issues
	for i, el := range list {
		tx, tiss := decodeTransform(el)
		iss = AppendIssues(iss, prefixIssues(fmt.Sprintf("/%d", i), tiss)...)
		if tx != nil {
			txs = append(txs, tx)
		}
	}
	return txs, iss
}

// decodeTransform resolves one transform object against the closed union:
// the "type" tag picks identity, scale, or translation, and the presence of
// a vector or a path picks the variant within the tag.
func decodeTransform(v any) (Transform, Issues) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, AppendIssues(nil, newIssue("", CodeInvalidType, map[string]any{"expected": "object", "got": typeName(v)}))
	}
	tRaw, ok := obj["type"]
	if !ok {
		return nil, AppendIssues(nil, newIssue("/type", CodeRequired, nil))
	}
	tag, ok := tRaw.(string)
	if !ok {
		return nil, AppendIssues(nil, newIssue("/type", CodeInvalidType, map[string]any{"expected": "string", "got": typeName(tRaw)}))
	}

	switch tag {
	case KindIdentity:
		if iss := rejectUnknownKeys(obj, "type"); len(iss) > 0 {
			return nil, iss
		}
		return Identity{}, nil

	case KindScale:
		if vecRaw, ok := obj["scale"]; ok {
			if iss := rejectUnknownKeys(obj, "type", "scale"); len(iss) > 0 {
				return nil, iss
			}
			vec, viss := decodeFloatVector(vecRaw)
			if len(viss) > 0 {
				return nil, prefixIssues("/scale", viss)
			}
			sc, err := NewVectorScale(vec)
			if err != nil {
				sub, _ := AsIssues(err)
				return nil, sub
			}
			return sc, nil
		}
		if pRaw, ok := obj["path"]; ok {
			if iss := rejectUnknownKeys(obj, "type", "path"); len(iss) > 0 {
				return nil, iss
			}
			p, ok := pRaw.(string)
			if !ok {
				return nil, AppendIssues(nil, newIssue("/path", CodeInvalidType, map[string]any{"expected": "string", "got": typeName(pRaw)}))
			}
			return PathScale{Path: p}, nil
		}
		return nil, AppendIssues(nil, newIssue("/scale", CodeRequired, nil))

	case KindTranslation:
		if vecRaw, ok := obj["translation"]; ok {
			if iss := rejectUnknownKeys(obj, "type", "translation"); len(iss) > 0 {
				return nil, iss
			}
			vec, viss := decodeFloatVector(vecRaw)
			if len(viss) > 0 {
				return nil, prefixIssues("/translation", viss)
			}
			tr, err := NewVectorTranslation(vec)
			if err != nil {
				sub, _ := AsIssues(err)
				return nil, sub
			}
			return tr, nil
		}
		if pRaw, ok := obj["path"]; ok {
			if iss := rejectUnknownKeys(obj, "type", "path"); len(iss) > 0 {
				return nil, iss
			}
			p, ok := pRaw.(string)
			if !ok {
				return nil, AppendIssues(nil, newIssue("/path", CodeInvalidType, map[string]any{"expected": "string", "got": typeName(pRaw)}))
			}
			return PathTranslation{Path: p}, nil
		}
		return nil, AppendIssues(nil, newIssue("/translation", CodeRequired, nil))
	}
	return nil, AppendIssues(nil, newIssue("/type", CodeTransformKindUnknown, map[string]any{"got": tag}))
}

func rejectUnknownKeys(obj map[string]any, allowed ...string) Issues {
	var iss Issues
	for _, k := range sortedKeys(obj) {
		if !slices.Contains(allowed, k) {
			iss = AppendIssues(iss, newIssue("/"+escapeSegment(k), CodeUnknownKey, map[string]any{"key": k}))
		}
	}
	return iss
}

func decodeFloatVector(v any) ([]float64, Issues) {
	list, ok := v.([]any)
	if !ok {
		return nil, AppendIssues(nil, newIssue("", CodeInvalidType, map[string]any{"expected": "array", "got": typeName(v)}))
	}
	out := make([]float64, len(list))
	var iss Issues
	for i, el := range list {
		f, ok := toFloat(el)
		if !ok {
			iss = AppendIssues(iss, newIssue(fmt.Sprintf("/%d", i), CodeInvalidType, map[string]any{"expected": "number", "got": typeName(el)}))
			continue
		}
		out[i] = f
	}
	return out, iss
}

// toFloat widens the numeric representations the JSON and YAML intakes
// produce.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// escapeSegment applies RFC 6901 escaping to one pointer segment.
func escapeSegment(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
