// Package ngff models and validates multiscale image metadata: the axes,
// coordinate transforms, and per-resolution datasets that describe an image
// pyramid stored in a hierarchical array tree.
//
// It provides:
//
// - Validated value types (Axis, Transform variants, Dataset, Multiscale)
//   built construct-or-fail, so a value that exists is internally consistent
// - A stable error model via Issues (JSON Pointer, code, message) next to a
//   non-fatal Warnings channel for spec "SHOULD" violations
// - A wire layer (Parse/Decode/Marshal, JSON and YAML) with strict unknown-
//   and duplicate-key handling
// - Consistency checking of metadata against the backing array tree, and
//   conveniences for building metadata plus matching array placeholders
//
// Design policy:
// - Keep only public APIs in the root package; put low-level JSON hygiene
//   under internal/.
// - Place the storage-tree contract under tree/ and the CLI under cmd/ngff.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	ms, warns, err := ngff.ParseMultiscale(data)
//	err = ngff.CheckTree(ms, root)
//
//	grp, warns, err := ngff.FromArrays(arrays, paths, axes, scales, translations)
//	wire, err := ngff.MarshalGroupAttrs(grp.Attrs)
package ngff
