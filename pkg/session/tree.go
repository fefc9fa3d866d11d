package session

import (
	"fmt"

	"github.com/sequentlabs/sequent/pkg/domain"
)

// Tree owns the append-only node array of one session. Nodes are never
// mutated or removed; all state evolution is additive. The arena is the
// node slice, node ids are indices into it.
type Tree struct {
	nodes []domain.Node
}

// NewTree creates a tree holding only the given root node. The root's
// parent is forced to itself.
func NewTree(root domain.Node) *Tree {
	root.Parent = domain.RootID
	return &Tree{nodes: []domain.Node{root}}
}

// Append adds a node and returns its assigned id: the node count before
// the append. Ids are sequential and never reused.
func (t *Tree) Append(node domain.Node) domain.NodeID {
	id := domain.NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node)
	return id
}

// Lookup returns the node with the given id. Unknown ids fail with an
// invalid-params error.
func (t *Tree) Lookup(id domain.NodeID) (domain.Node, error) {
	if id < 0 || int(id) >= len(t.nodes) {
		return domain.Node{}, domain.NewError(domain.KindInvalidParams,
			fmt.Sprintf("unknown state id %d (session has %d states)", id, len(t.nodes)))
	}
	return t.nodes[id], nil
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}
