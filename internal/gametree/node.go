// Package gametree implements the ordered tree of positions a parsed PGN
// game is built from, plus the Cursor/ConstCursor navigation types used
// to walk and edit it.
package gametree

import (
	"fmt"

	"github.com/lgbarn/chessgame/internal/chess"
)

// NodeId stably identifies a node within one game. It is not a global
// identifier; ids from two different games are not comparable.
type NodeId uint32

// InvalidNodeID marks the absence of a node (a node with no parent).
const InvalidNodeID NodeId = 0

// RootNodeID is always the id of a game's root node.
const RootNodeID NodeId = 1

// Node is one position in the game tree: the move that reached it from
// its parent, its parent's id, and its ordered children (index 0 is the
// main line, indices >= 1 are variations in insertion order).
type Node struct {
	ID     NodeId
	Move   chess.Move // zero value for the root
	Parent NodeId     // InvalidNodeID for the root

	Children []NodeId

	Comment        string
	PremoveComment string
	NAGs           []int

	// position caches the node's resolved position. Only the root and
	// nodes explicitly seeded with a FEN carry one; every other node's
	// position is derived on demand by walking to the nearest ancestor
	// that has one and replaying moves forward.
	position    chess.Position
	hasPosition bool
}

func (n *Node) setPosition(p chess.Position) {
	n.position = p
	n.hasPosition = true
}

// HasVariations reports whether this node has more than one child, i.e.
// whether the move played here had an alternative recorded.
func (n *Node) HasVariations() bool {
	return len(n.Children) > 1
}

func (n Node) String() string {
	return fmt.Sprintf("Node(id=%d, children=%d)", n.ID, len(n.Children))
}
