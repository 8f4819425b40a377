package gametree

import (
	"fmt"

	"github.com/lgbarn/chessgame/internal/chess"
)

// Game owns a tree of positions reached by a sequence of moves, plus the
// ordered tag metadata describing it. A Game exclusively owns its node
// storage; nodes are only ever appended, never removed.
type Game struct {
	Metadata Metadata

	nodes  []Node
	nextID NodeId
}

// NewGame returns a Game whose root position is the standard chess
// starting position.
func NewGame() *Game {
	return newGameWithPosition(chess.InitialPosition())
}

// NewGameFromFEN returns a Game whose root position is parsed from fen.
func NewGameFromFEN(fen string) (*Game, error) {
	pos, err := chess.FromFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGameWithPosition(pos), nil
}

func newGameWithPosition(pos chess.Position) *Game {
	root := Node{ID: RootNodeID, Parent: InvalidNodeID}
	root.setPosition(pos)
	g := &Game{nodes: []Node{root}, nextID: RootNodeID + 1}
	return g
}

func (g *Game) node(id NodeId) *Node {
	if id == InvalidNodeID || int(id) > len(g.nodes) {
		return nil
	}
	return &g.nodes[id-1]
}

// Root returns a cursor over the root node.
func (g *Game) Root() Cursor {
	return Cursor{game: g, id: RootNodeID}
}

// Cursor is an alias for Root: a mutable cursor over the root node.
func (g *Game) Cursor() Cursor {
	return g.Root()
}

// ConstCursor returns a read-only cursor over the root node.
func (g *Game) ConstCursor() ConstCursor {
	return ConstCursor{Cursor{game: g, id: RootNodeID}}
}

// CurrentMainline returns cursors along the game's main line, from the
// root to the deepest node reachable by always taking child 0.
func (g *Game) CurrentMainline() []Cursor {
	line := []Cursor{g.Root()}
	for {
		next, ok := line[len(line)-1].Child(0)
		if !ok {
			return line
		}
		line = append(line, next)
	}
}

// AddNode appends move as a new child of parentID, or returns the
// existing child if one already reached the same position by an equal
// move (dedup by move equality; transpositions along one line never
// duplicate subtrees). nextID is only advanced on real allocation.
func (g *Game) AddNode(parentID NodeId, move chess.Move) (NodeId, error) {
	parent := g.node(parentID)
	if parent == nil {
		return InvalidNodeID, fmt.Errorf("gametree: unknown parent node %d", parentID)
	}
	for _, childID := range parent.Children {
		if child := g.node(childID); child != nil && child.Move == move {
			return childID, nil
		}
	}

	id := g.nextID
	g.nextID++
	g.nodes = append(g.nodes, Node{ID: id, Move: move, Parent: parentID})
	parent = g.node(parentID)
	parent.Children = append(parent.Children, id)
	return id, nil
}

// CalculatePosition returns the position at id, using its cached
// position if present, otherwise walking to the nearest ancestor with a
// cached position and replaying the moves back down.
func (g *Game) CalculatePosition(id NodeId) (chess.Position, error) {
	var chain []chess.Move
	cur := g.node(id)
	if cur == nil {
		return chess.Position{}, fmt.Errorf("gametree: unknown node %d", id)
	}
	for !cur.hasPosition {
		chain = append(chain, cur.Move)
		cur = g.node(cur.Parent)
		if cur == nil {
			return chess.Position{}, fmt.Errorf("gametree: no ancestor with a cached position")
		}
	}
	pos := cur.position
	for i := len(chain) - 1; i >= 0; i-- {
		pos = pos.MakeMove(chain[i])
	}
	return pos, nil
}
