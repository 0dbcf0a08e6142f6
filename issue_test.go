package ngff_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngff-go/ngff"
)

func TestIssues_ErrorSummary(t *testing.T) {
	assert.Equal(t, "", ngff.Issues{}.Error())

	one := ngff.AppendIssues(nil, ngff.Issue{Code: ngff.CodeAxisCount, Path: "/axes"})
	assert.Equal(t, "axis_count at /axes", one.Error())

	var many ngff.Issues
	for i := 0; i < 5; i++ {
		many = ngff.AppendIssues(many, ngff.Issue{
			Code: ngff.CodeRequired,
			Path: fmt.Sprintf("/datasets/%d/path", i),
		})
	}
	msg := many.Error()
	assert.Contains(t, msg, "required at /datasets/0/path")
	assert.Contains(t, msg, "required at /datasets/2/path")
	assert.NotContains(t, msg, "/datasets/3/path")
	assert.Contains(t, msg, "(total 5)")
}

func TestAsIssues(t *testing.T) {
	_, ok := ngff.AsIssues(nil)
	assert.False(t, ok)

	_, ok = ngff.AsIssues(errors.New("plain"))
	assert.False(t, ok)

	iss := ngff.AppendIssues(nil, ngff.Issue{Code: ngff.CodeRequired, Path: "/axes"})

	got, ok := ngff.AsIssues(iss)
	require.True(t, ok)
	assert.Equal(t, iss, got)

	// wrapped errors unwrap through errors.As
	wrapped := fmt.Errorf("loading attrs: %w", iss)
	got, ok = ngff.AsIssues(wrapped)
	require.True(t, ok)
	assert.Equal(t, iss, got)
}

func TestHasCode(t *testing.T) {
	iss := ngff.AppendIssues(nil,
		ngff.Issue{Code: ngff.CodeRequired, Path: "/axes"},
		ngff.Issue{Code: ngff.CodeUnknownKey, Path: "/foo"},
	)

	assert.True(t, ngff.HasCode(iss, ngff.CodeUnknownKey))
	assert.False(t, ngff.HasCode(iss, ngff.CodeParseError))
	assert.False(t, ngff.HasCode(nil, ngff.CodeRequired))
	assert.False(t, ngff.HasCode(errors.New("plain"), ngff.CodeRequired))
}

func TestAppendIssues_InitializesNilDestination(t *testing.T) {
	iss := ngff.AppendIssues(nil)
	assert.NotNil(t, iss)
	assert.Empty(t, iss)

	iss = ngff.AppendIssues(iss, ngff.Issue{Code: ngff.CodeRequired})
	assert.Len(t, iss, 1)
}
