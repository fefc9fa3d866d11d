package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequentlabs/sequent/pkg/domain"
	"github.com/sequentlabs/sequent/pkg/session"
)

func TestTree_RootIsItsOwnParent(t *testing.T) {
	tree := session.NewTree(domain.Node{Snapshot: "root", Parent: 42})

	root, err := tree.Lookup(domain.RootID)
	require.NoError(t, err)
	assert.Equal(t, domain.RootID, root.Parent)
	assert.Equal(t, "", root.Step)
	assert.Equal(t, 1, tree.Len())
}

func TestTree_AppendAssignsSequentialIDs(t *testing.T) {
	tree := session.NewTree(domain.Node{Snapshot: "root"})

	for i := 1; i <= 5; i++ {
		// The assigned id equals the node count before the append.
		before := tree.Len()
		id := tree.Append(domain.Node{Snapshot: i, Parent: domain.RootID, Step: "step"})
		assert.Equal(t, domain.NodeID(before), id)
		assert.Equal(t, before+1, tree.Len())
	}
}

func TestTree_LookupUnknownID(t *testing.T) {
	tree := session.NewTree(domain.Node{Snapshot: "root"})
	tree.Append(domain.Node{Parent: 0, Step: "a"})
	tree.Append(domain.Node{Parent: 1, Step: "b"})

	// Scenario: 3 nodes, lookup of 99 fails with invalid params.
	_, err := tree.Lookup(99)
	require.Error(t, err)

	var de *domain.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, domain.KindInvalidParams, de.Kind)

	_, err = tree.Lookup(-1)
	require.Error(t, err)
}
