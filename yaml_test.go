package ngff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngff-go/ngff"
)

// canonicalYAML mirrors canonicalDoc; both intakes must produce the same
// value, including integer literals widened to floats in the vectors.
const canonicalYAML = `
version: "0.4"
name: pyramid
type: gaussian
metadata:
  method: skimage
axes:
  - name: c
    type: channel
  - name: y
    type: space
    unit: micrometer
  - name: x
    type: space
    unit: micrometer
datasets:
  - path: "0"
    coordinateTransformations:
      - type: scale
        scale: [1, 0.5, 0.5]
      - type: translation
        translation: [0, 0, 0]
  - path: "1"
    coordinateTransformations:
      - type: scale
        scale: [1, 1, 1]
`

func TestImportYAMLMultiscale_MatchesJSONIntake(t *testing.T) {
	fromJSON, wsJSON, err := ngff.ParseMultiscale([]byte(canonicalDoc))
	require.NoError(t, err)

	fromYAML, wsYAML, err := ngff.ImportYAMLMultiscale([]byte(canonicalYAML))
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, wsJSON, wsYAML)
}

func TestImportYAMLMultiscale_MalformedInput(t *testing.T) {
	t.Run("broken YAML", func(t *testing.T) {
		_, _, err := ngff.ImportYAMLMultiscale([]byte("a: [1, 2"))
		require.Error(t, err)
		iss, _ := ngff.AsIssues(err)
		assert.Equal(t, ngff.CodeParseError, iss[0].Code)
		assert.NotNil(t, iss[0].Cause)
	})

	t.Run("sequence root", func(t *testing.T) {
		_, _, err := ngff.ImportYAMLMultiscale([]byte("- 1\n- 2\n"))
		require.Error(t, err)
		iss, _ := ngff.AsIssues(err)
		assert.Equal(t, ngff.CodeInvalidType, iss[0].Code)
		assert.Equal(t, "/", iss[0].Path)
	})

	t.Run("scalar root", func(t *testing.T) {
		_, _, err := ngff.ImportYAMLMultiscale([]byte("42\n"))
		require.Error(t, err)
		assert.True(t, ngff.HasCode(err, ngff.CodeInvalidType))
	})
}

func TestImportYAMLGroupAttrs(t *testing.T) {
	doc := `
multiscales:
  - version: "0.4"
    name: p
    axes:
      - {name: y, type: space, unit: meter}
      - {name: x, type: space, unit: meter}
    datasets:
      - path: "0"
        coordinateTransformations:
          - {type: scale, scale: [1, 1]}
omero:
  channels: []
`
	ga, ws, err := ngff.ImportYAMLGroupAttrs([]byte(doc))
	require.NoError(t, err)
	require.Len(t, ga.Multiscales, 1)
	assert.Equal(t, "p", ga.Multiscales[0].Name)
	assert.Empty(t, ws)
}
