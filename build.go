package ngff

import (
	"fmt"
	"slices"

	"github.com/ngff-go/ngff/tree"
)

// MultiscaleGroup pairs validated group attributes with the materialized
// array tree they describe. Construction always runs the tree consistency
// check, so a MultiscaleGroup that exists is internally consistent.
type MultiscaleGroup struct {
	Attrs GroupAttrs
	Node  *tree.Group
}

// BuildOption adjusts how FromArrays materializes array placeholders and
// which revision it targets.
type BuildOption func(*buildConfig)

type buildConfig struct {
	chunks    []int
	perArray  [][]int
	fillValue any
	order     string
	pol       Policy
	msOpts    []MultiscaleOption
}

// WithChunks applies one chunk shape to every array.
func WithChunks(shape ...int) BuildOption {
	return func(c *buildConfig) { c.chunks = shape }
}

// WithChunksPerArray gives each array its own chunk shape, in dataset order.
func WithChunksPerArray(shapes [][]int) BuildOption {
	return func(c *buildConfig) { c.perArray = shapes }
}

// WithFillValue sets the fill value recorded on every array placeholder.
func WithFillValue(v any) BuildOption {
	return func(c *buildConfig) { c.fillValue = v }
}

// WithOrder sets the memory layout recorded on every array placeholder
// ("C" or "F"). The default is "C".
func WithOrder(order string) BuildOption {
	return func(c *buildConfig) { c.order = order }
}

// WithRevision selects the revision policy for validation and
// serialization of the synthesized metadata.
func WithRevision(rev Revision) BuildOption {
	return func(c *buildConfig) { c.pol = PolicyFor(rev) }
}

// WithMultiscaleOptions forwards options (name, kind, metadata, group
// transforms) to the synthesized multiscale.
func WithMultiscaleOptions(opts ...MultiscaleOption) BuildOption {
	return func(c *buildConfig) { c.msOpts = append(c.msOpts, opts...) }
}

// FromArrays synthesizes a complete multiscale group from per-level array
// descriptions: one dataset per array built from the matching scale and
// translation vectors, a validated multiscale over the given axes, and a
// group node holding matching array placeholders. Chunk shapes come from
// WithChunks (uniform), WithChunksPerArray, or, by default, a guess from
// the largest array's shape and element size applied to every level.
func FromArrays(arrays []tree.ArrayLike, paths []string, axes []Axis, scales, translations [][]float64, opts ...BuildOption) (*MultiscaleGroup, Warnings, error) {
	cfg := buildConfig{pol: DefaultPolicy(), order: "C"}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(arrays) == 0 || len(paths) != len(arrays) || len(scales) != len(arrays) || len(translations) != len(arrays) {
		return nil, nil, AppendIssues(nil, newIssue("", CodeCountMismatch, map[string]any{
			"arrays":       len(arrays),
			"paths":        len(paths),
			"scales":       len(scales),
			"translations": len(translations),
		}))
	}
	seen := make(map[string]bool, len(paths))
	for i, p := range paths {
		if seen[p] {
			return nil, nil, AppendIssues(nil, newIssue(fmt.Sprintf("/datasets/%d/path", i), CodePathDuplicate, map[string]any{"path": p}))
		}
		seen[p] = true
	}

	datasets := make([]Dataset, len(arrays))
	for i := range arrays {
		ds, err := DatasetFromScaleTranslation(paths[i], scales[i], translations[i])
		if err != nil {
			iss, _ := AsIssues(err)
			return nil, nil, prefixIssues(fmt.Sprintf("/datasets/%d", i), iss)
		}
		datasets[i] = ds
	}

	msOpts := append(slices.Clone(cfg.msOpts), WithPolicy(cfg.pol))
	ms, ws, err := NewMultiscale(axes, datasets, msOpts...)
	if err != nil {
		return nil, nil, err
	}

	chunks, err := resolveChunks(cfg, arrays, paths)
	if err != nil {
		return nil, nil, err
	}

	placeholders := make(map[string]*tree.Array, len(arrays))
	for i, a := range arrays {
		placeholders[paths[i]] = &tree.Array{
			Shape:     slices.Clone(a.Shape()),
			DType:     a.DType(),
			Chunks:    chunks[i],
			FillValue: cfg.fillValue,
			Order:     cfg.order,
		}
	}
	node, err := tree.Assemble(placeholders)
	if err != nil {
		return nil, nil, AppendIssues(nil, Issue{
			Path:    "/datasets",
			Code:    CodePathInvalid,
			Message: messageFor(CodePathInvalid),
			Cause:   err,
		})
	}

	ga := GroupAttrs{Multiscales: []Multiscale{ms}}
	doc, err := EncodeGroupAttrs(ga, cfg.pol)
	if err != nil {
		return nil, nil, err
	}
	node.Attrs = doc

	if err := CheckGroupAttrs(ga, node); err != nil {
		return nil, nil, err
	}
	return &MultiscaleGroup{Attrs: ga, Node: node}, ws, nil
}

// resolveChunks applies the chunk policy: per-array shapes win over a
// uniform shape; with neither, a guess derived from the largest array is
// applied everywhere. Explicitly given shapes must match their array's rank
// with positive extents.
func resolveChunks(cfg buildConfig, arrays []tree.ArrayLike, paths []string) ([][]int, error) {
	out := make([][]int, len(arrays))
	switch {
	case cfg.perArray != nil:
		if len(cfg.perArray) != len(arrays) {
			return nil, AppendIssues(nil, newIssue("", CodeChunksInvalid, map[string]any{
				"got":  len(cfg.perArray),
				"want": len(arrays),
			}))
		}
		for i, shape := range cfg.perArray {
			out[i] = slices.Clone(shape)
		}
	case cfg.chunks != nil:
		for i := range arrays {
			out[i] = slices.Clone(cfg.chunks)
		}
	default:
		guess := tree.AutoChunks(largestArray(arrays))
		for i := range arrays {
			out[i] = slices.Clone(guess)
		}
		return out, nil
	}

	for i, a := range arrays {
		if err := validateChunks(out[i], a.Shape(), paths[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// largestArray picks the array with the most elements; ties keep the
// earliest.
func largestArray(arrays []tree.ArrayLike) tree.ArrayLike {
	best := arrays[0]
	bestSize := shapeSize(best.Shape())
	for _, a := range arrays[1:] {
		if size := shapeSize(a.Shape()); size > bestSize {
			best, bestSize = a, size
		}
	}
	return best
}

func shapeSize(shape []int) float64 {
	size := 1.0
	for _, s := range shape {
		size *= float64(s)
	}
	return size
}

func validateChunks(chunks, shape []int, path string) error {
	bad := len(chunks) != len(shape)
	if !bad {
		for _, c := range chunks {
			if c < 1 {
				bad = true
				break
			}
		}
	}
	if bad {
		return AppendIssues(nil, newIssue("", CodeChunksInvalid, map[string]any{
			"path":   path,
			"chunks": chunks,
			"shape":  shape,
		}))
	}
	return nil
}
