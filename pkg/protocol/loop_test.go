package protocol_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequentlabs/sequent/pkg/adapters/sandbox"
	"github.com/sequentlabs/sequent/pkg/protocol"
	"github.com/sequentlabs/sequent/pkg/session"
)

func runLoop(t *testing.T, input string) []string {
	t.Helper()
	svc := session.NewService(sandbox.New())
	disp := protocol.NewDispatcher(svc)

	var out strings.Builder
	loop := protocol.NewLoop(svc, disp, strings.NewReader(input), &out)
	require.NoError(t, loop.Run(context.Background()))

	trimmed := strings.TrimSuffix(out.String(), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func TestLoop_OneResponsePerLine(t *testing.T) {
	lines := runLoop(t, strings.Join([]string{
		`{"id": 1, "method": "newState", "params": {"goals": [{"name": "h", "type": "Nat"}]}}`,
		`not json at all`,
		`{"id": 2, "method": "queryState", "params": {"stateId": 1}}`,
	}, "\n")+"\n")

	require.Len(t, lines, 3)
	for _, line := range lines {
		var resp protocol.Response
		require.NoError(t, json.Unmarshal([]byte(line), &resp), "line %s", line)
	}

	var bad protocol.Response
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &bad))
	require.NotNil(t, bad.Error)
	assert.Equal(t, -32700, bad.Error.Code)
	assert.Nil(t, bad.ID)
}

func TestLoop_StopsAfterCommit(t *testing.T) {
	lines := runLoop(t, strings.Join([]string{
		`{"id": 1, "method": "newState", "params": {"goals": [{"name": "h", "type": "Nat"}]}}`,
		`{"id": 2, "method": "commit", "params": {"stateId": 1}}`,
		`{"id": 3, "method": "queryState", "params": {"stateId": 1}}`,
	}, "\n")+"\n")

	// The line after commit is never read: the loop observed the stopped
	// flag before issuing another read.
	require.Len(t, lines, 2)

	var commit protocol.Response
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &commit))
	assert.Nil(t, commit.Error)
	assert.Equal(t, float64(2), commit.ID)
}

func TestLoop_ExitsCleanlyOnEOF(t *testing.T) {
	lines := runLoop(t, `{"id": 1, "method": "position", "params": {}}`)
	require.Len(t, lines, 1)
}

func TestLoop_SkipsBlankLines(t *testing.T) {
	lines := runLoop(t, "\n\n{\"id\": 1, \"method\": \"position\", \"params\": {}}\n\n")
	require.Len(t, lines, 1)
}
