package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequentlabs/sequent/pkg/domain"
)

func TestErrorKind_Code(t *testing.T) {
	cases := map[domain.ErrorKind]int{
		domain.KindStepParse:       0,
		domain.KindStepExecution:   1,
		domain.KindExpressionParse: 2,
		domain.KindElaboration:     3,
		domain.KindTransportParse:  -32700,
		domain.KindInvalidRequest:  -32600,
		domain.KindMethodNotFound:  -32601,
		domain.KindInvalidParams:   -32602,
		domain.KindInternal:        -32603,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.Code())
	}
}

func TestNewStepExecutionError(t *testing.T) {
	err := domain.NewStepExecutionError("unknown identifier x")
	assert.Equal(t, "unknown identifier x", err.Message)
	assert.Equal(t, []string{"unknown identifier x"}, err.Details)

	err = domain.NewStepExecutionError("first", "second")
	assert.Equal(t, "step execution failed", err.Message)
	assert.Contains(t, err.Error(), "first; second")
}

func TestCoerce(t *testing.T) {
	// Plain errors get the call site's kind.
	tagged := domain.Coerce(fmt.Errorf("boom"), domain.KindElaboration)
	assert.Equal(t, domain.KindElaboration, tagged.Kind)
	assert.Equal(t, "boom", tagged.Message)

	// Already-tagged errors keep their own kind, even when wrapped.
	inner := domain.NewError(domain.KindStepParse, "bad tactic")
	wrapped := fmt.Errorf("applying step: %w", inner)
	tagged = domain.Coerce(wrapped, domain.KindInternal)
	assert.Equal(t, domain.KindStepParse, tagged.Kind)

	var de *domain.Error
	require.True(t, errors.As(wrapped, &de))
	assert.Same(t, inner, de)
}
