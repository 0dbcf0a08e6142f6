package ngff

import (
	"gopkg.in/yaml.v3"
)

// ImportYAMLMultiscale decodes one multiscale document written as YAML.
// The YAML value is normalized to the JSON object model first, so validation
// and diagnostics behave exactly as for ParseMultiscale. Duplicate-key
// strictness does not apply: the YAML decoder already rejects duplicates.
func ImportYAMLMultiscale(data []byte, opts ...ParseOpt) (Multiscale, Warnings, error) {
	raw, err := yamlObject(data)
	if err != nil {
		return Multiscale{}, nil, err
	}
	return DecodeMultiscale(raw, opts...)
}

// ImportYAMLGroupAttrs decodes a group attribute document written as YAML.
func ImportYAMLGroupAttrs(data []byte, opts ...ParseOpt) (GroupAttrs, Warnings, error) {
	raw, err := yamlObject(data)
	if err != nil {
		return GroupAttrs{}, nil, err
	}
	return DecodeGroupAttrs(raw, opts...)
}

func yamlObject(data []byte) (map[string]any, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
	}
	m := yamlAnyToStringMap(node)
	if m == nil {
		return nil, AppendIssues(nil, newIssue("/", CodeInvalidType, map[string]any{"expected": "object", "got": typeName(node)}))
	}
	return m, nil
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain
// map[any]any) into JSON-like map[string]any recursively. Non-map roots
// return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
