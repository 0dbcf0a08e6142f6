package ngff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngff-go/ngff"
)

func TestEncodeMultiscale_OmitsAbsentFields(t *testing.T) {
	ms := ngff.Multiscale{
		Axes: []ngff.Axis{ngff.SpaceAxis("y", "meter"), ngff.SpaceAxis("x", "meter")},
		Datasets: []ngff.Dataset{
			{Path: "0", Transforms: []ngff.Transform{mustScale(t, 1, 1)}},
		},
	}

	doc, err := ngff.EncodeMultiscale(ms)
	require.NoError(t, err)

	assert.Contains(t, doc, "axes")
	assert.Contains(t, doc, "datasets")
	for _, k := range []string{"name", "version", "type", "metadata", "coordinateTransformations"} {
		assert.NotContains(t, doc, k)
	}
}

func TestEncodeMultiscale_PassThroughFields(t *testing.T) {
	ms := ngff.Multiscale{
		Version:  "0.4",
		Name:     "em",
		Kind:     "gaussian",
		Metadata: map[string]any{"method": "mean"},
		Axes:     []ngff.Axis{ngff.SpaceAxis("y", "meter"), ngff.SpaceAxis("x", "meter")},
		Datasets: []ngff.Dataset{
			{Path: "0", Transforms: []ngff.Transform{mustScale(t, 1, 1)}},
		},
		Transforms: []ngff.Transform{mustScale(t, 2, 2)},
	}

	doc, err := ngff.EncodeMultiscale(ms)
	require.NoError(t, err)

	assert.Equal(t, "0.4", doc["version"])
	assert.Equal(t, "em", doc["name"])
	assert.Equal(t, "gaussian", doc["type"])
	assert.Equal(t, map[string]any{"method": "mean"}, doc["metadata"])
	assert.Equal(t, []any{
		map[string]any{"type": "scale", "scale": []float64{2, 2}},
	}, doc["coordinateTransformations"])
}

func TestEncodeMultiscale_TransformShapes(t *testing.T) {
	ms := ngff.Multiscale{
		Axes: []ngff.Axis{ngff.SpaceAxis("y", "meter"), ngff.SpaceAxis("x", "meter")},
		Datasets: []ngff.Dataset{
			{Path: "0", Transforms: []ngff.Transform{
				ngff.PathScale{Path: "../s"},
				ngff.PathTranslation{Path: "../t"},
			}},
		},
		Transforms: []ngff.Transform{mustScale(t, 1, 1), mustTranslation(t, 0.5, 0.5)},
	}

	doc, err := ngff.EncodeMultiscale(ms)
	require.NoError(t, err)

	datasets := doc["datasets"].([]any)
	ds0 := datasets[0].(map[string]any)
	assert.Equal(t, []any{
		map[string]any{"type": "scale", "path": "../s"},
		map[string]any{"type": "translation", "path": "../t"},
	}, ds0["coordinateTransformations"])

	assert.Equal(t, []any{
		map[string]any{"type": "scale", "scale": []float64{1, 1}},
		map[string]any{"type": "translation", "translation": []float64{0.5, 0.5}},
	}, doc["coordinateTransformations"])
}

func TestEncodeMultiscale_AxisUnitKeyFollowsPolicy(t *testing.T) {
	ms := ngff.Multiscale{
		Axes: []ngff.Axis{ngff.SpaceAxis("y", "meter"), ngff.SpaceAxis("x", "meter")},
		Datasets: []ngff.Dataset{
			{Path: "0", Transforms: []ngff.Transform{mustScale(t, 1, 1)}},
		},
	}

	doc, err := ngff.EncodeMultiscale(ms, ngff.PolicyFor(ngff.V05Legacy))
	require.NoError(t, err)
	ax0 := doc["axes"].([]any)[0].(map[string]any)
	assert.Equal(t, "meter", ax0["units"])
	assert.NotContains(t, ax0, "unit")

	doc, err = ngff.EncodeMultiscale(ms)
	require.NoError(t, err)
	ax0 = doc["axes"].([]any)[0].(map[string]any)
	assert.Equal(t, "meter", ax0["unit"])
	assert.NotContains(t, ax0, "units")
}

func TestMarshalGroupAttrs_RoundTrip(t *testing.T) {
	ms, _, err := ngff.ParseMultiscale([]byte(canonicalDoc))
	require.NoError(t, err)
	ga, err := ngff.NewGroupAttrs(ms)
	require.NoError(t, err)

	data, err := ngff.MarshalGroupAttrs(ga)
	require.NoError(t, err)

	back, _, err := ngff.ParseGroupAttrs(data)
	require.NoError(t, err)
	assert.Equal(t, ga, back)
}
