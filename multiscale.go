package ngff

import (
	"fmt"
	"slices"
)

// Multiscale describes one image pyramid: shared axis semantics plus one
// dataset per resolution level, and optionally transforms applied to the
// whole group. Name, Kind (the wire "type" field), and Version are loosely
// typed pass-through fields; Metadata is an open map.
type Multiscale struct {
	Version    any
	Name       any
	Kind       any
	Metadata   map[string]any
	Axes       []Axis
	Datasets   []Dataset
	Transforms []Transform
}

// MultiscaleOption adjusts optional fields and the validation policy during
// construction.
type MultiscaleOption func(*multiscaleConfig)

type multiscaleConfig struct {
	ms         Multiscale
	pol        Policy
	versionSet bool
}

// WithName sets the pyramid name.
func WithName(name string) MultiscaleOption {
	return func(c *multiscaleConfig) { c.ms.Name = name }
}

// WithKind sets the free-form tag serialized as "type".
func WithKind(kind string) MultiscaleOption {
	return func(c *multiscaleConfig) { c.ms.Kind = kind }
}

// WithMetadata attaches the open metadata map.
func WithMetadata(md map[string]any) MultiscaleOption {
	return func(c *multiscaleConfig) { c.ms.Metadata = md }
}

// WithTransforms sets group-level transforms applied on top of every
// dataset's own.
func WithTransforms(txs ...Transform) MultiscaleOption {
	return func(c *multiscaleConfig) { c.ms.Transforms = txs }
}

// WithVersion overrides the version literal stamped on the multiscale.
// The policy's version-mismatch knob decides what a disagreement costs.
func WithVersion(v string) MultiscaleOption {
	return func(c *multiscaleConfig) {
		c.ms.Version = v
		c.versionSet = true
	}
}

// WithPolicy selects the revision policy used for validation and for the
// default version literal.
func WithPolicy(pol Policy) MultiscaleOption {
	return func(c *multiscaleConfig) { c.pol = pol }
}

// NewMultiscale validates and builds a Multiscale from axes and datasets.
// When no version is given the policy's literal is stamped. Advisory
// findings come back as Warnings; any fatal finding aborts construction.
func NewMultiscale(axes []Axis, datasets []Dataset, opts ...MultiscaleOption) (Multiscale, Warnings, error) {
	cfg := multiscaleConfig{pol: DefaultPolicy()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.pol = cfg.pol.orDefault()

	ms := cfg.ms
	ms.Axes = slices.Clone(axes)
	ms.Datasets = slices.Clone(datasets)
	if !cfg.versionSet {
		ms.Version = cfg.pol.Version
	}

	ws, err := ms.Validate(cfg.pol)
	if err != nil {
		return Multiscale{}, nil, err
	}
	return ms, ws, nil
}

// Validate re-runs the construction-time checks against the policy. It is
// idempotent: a value built by NewMultiscale always passes under the policy
// it was built with.
//
// Fatal checks run in a fixed order for deterministic diagnostics: axis
// count, axis name uniqueness, axis type census, datasets non-empty, group
// transform shape and rank, then the policy knobs for name and version.
func (ms Multiscale) Validate(pol Policy) (Warnings, error) {
	pol = pol.orDefault()

	if n := len(ms.Axes); n < 2 || n > 5 {
		return nil, AppendIssues(nil, newIssue("/axes", CodeAxisCount, map[string]any{"got": n}))
	}
	if dup := duplicateAxisNames(ms.Axes); len(dup) > 0 {
		return nil, AppendIssues(nil, newIssue("/axes", CodeAxisNamesDuplicate, map[string]any{"names": dup}))
	}
	if err := checkAxisTypes(ms.Axes); err != nil {
		return nil, err
	}

	var ws Warnings
	for i, ax := range ms.Axes {
		ws = AppendWarnings(ws, prefixWarnings(fmt.Sprintf("/axes/%d", i), ValidateAxis(ax))...)
	}

	if len(ms.Datasets) == 0 {
		return nil, AppendIssues(nil, newIssue("/datasets", CodeDatasetsEmpty, nil))
	}
	if len(ms.Transforms) > 0 {
		if err := checkGroupTransforms(ms.Transforms, ms.Datasets[0].Transforms); err != nil {
			return nil, err
		}
	}

	nws, niss := checkNameValue(ms.Name, pol)
	ws = AppendWarnings(ws, nws...)
	if len(niss) > 0 {
		return nil, niss
	}
	vws, viss := checkVersionValue(ms.Version, pol)
	ws = AppendWarnings(ws, vws...)
	if len(viss) > 0 {
		return nil, viss
	}

	return ws, nil
}

// duplicateAxisNames returns the names that appear more than once, in first
// appearance order.
func duplicateAxisNames(axes []Axis) []string {
	seen := make(map[string]int, len(axes))
	var dup []string
	for _, ax := range axes {
		seen[ax.Name]++
		if seen[ax.Name] == 2 {
			dup = append(dup, ax.Name)
		}
	}
	return dup
}

// checkAxisTypes enforces the type census: 2 or 3 space axes forming the
// trailing block, at most one each of time, channel, and custom (anything
// else, including untyped).
func checkAxisTypes(axes []Axis) error {
	var spaces, times, channels, customs int
	for _, ax := range axes {
		switch {
		case ax.Type != nil && *ax.Type == TypeSpace:
			spaces++
		case ax.Type != nil && *ax.Type == TypeTime:
			times++
		case ax.Type != nil && *ax.Type == TypeChannel:
			channels++
		default:
			customs++
		}
	}
	if spaces < 2 || spaces > 3 {
		return AppendIssues(nil, newIssue("/axes", CodeSpaceAxisCount, map[string]any{"got": spaces}))
	}
	for _, ax := range axes[len(axes)-spaces:] {
		if ax.Type == nil || *ax.Type != TypeSpace {
			return AppendIssues(nil, newIssue("/axes", CodeSpaceAxesNotTrailing, map[string]any{"order": axisTypeOrder(axes)}))
		}
	}
	if times > 1 {
		return AppendIssues(nil, newIssue("/axes", CodeTimeAxisCount, map[string]any{"got": times}))
	}
	if channels > 1 {
		return AppendIssues(nil, newIssue("/axes", CodeChannelAxisCount, map[string]any{"got": channels}))
	}
	if customs > 1 {
		return AppendIssues(nil, newIssue("/axes", CodeCustomAxisCount, map[string]any{"got": customs}))
	}
	return nil
}

func axisTypeOrder(axes []Axis) []string {
	order := make([]string, len(axes))
	for i, ax := range axes {
		if ax.Type != nil {
			order[i] = *ax.Type
		}
	}
	return order
}

// checkGroupTransforms validates group-level transforms: the sequence is
// shaped like a dataset's (scale first, optional translation second,
// internally rank-consistent) and its rank agrees with the first dataset.
func checkGroupTransforms(group, first []Transform) error {
	if iss := checkTransformSequence(group); len(iss) > 0 {
		return prefixIssues("/coordinateTransformations", iss)
	}
	gr, gok := sequenceRank(group)
	dr, dok := sequenceRank(first)
	if gok && dok && gr != dr {
		return AppendIssues(nil, newIssue("/coordinateTransformations", CodeGroupRankMismatch, map[string]any{
			"group":   gr,
			"dataset": dr,
		}))
	}
	return nil
}

// sequenceRank reports the first defined rank in a transform sequence.
func sequenceRank(txs []Transform) (int, bool) {
	for _, tx := range txs {
		if r, ok := definedRank(tx); ok {
			return r, true
		}
	}
	return 0, false
}

// GroupAttrs is the attribute document of a multiscale group: one or more
// multiscale entries under the "multiscales" key.
type GroupAttrs struct {
	Multiscales []Multiscale
}

// NewGroupAttrs wraps already-constructed multiscales, requiring at least
// one entry.
func NewGroupAttrs(mss ...Multiscale) (GroupAttrs, error) {
	if len(mss) == 0 {
		return GroupAttrs{}, AppendIssues(nil, newIssue("/multiscales", CodeMultiscalesEmpty, nil))
	}
	return GroupAttrs{Multiscales: slices.Clone(mss)}, nil
}

// Validate re-checks every entry against the policy.
func (ga GroupAttrs) Validate(pol Policy) (Warnings, error) {
	if len(ga.Multiscales) == 0 {
		return nil, AppendIssues(nil, newIssue("/multiscales", CodeMultiscalesEmpty, nil))
	}
	var ws Warnings
	for i, ms := range ga.Multiscales {
		prefix := fmt.Sprintf("/multiscales/%d", i)
		mws, err := ms.Validate(pol)
		if err != nil {
			iss, _ := AsIssues(err)
			return nil, prefixIssues(prefix, iss)
		}
		ws = AppendWarnings(ws, prefixWarnings(prefix, mws)...)
	}
	return ws, nil
}
