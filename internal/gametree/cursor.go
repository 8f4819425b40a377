package gametree

import (
	"fmt"

	"github.com/lgbarn/chessgame/internal/chess"
)

// Cursor is a mutable navigation and editing point in a game: the pair
// of a game and one of its nodes. Cursors are lightweight references —
// they borrow, not own, their game — and compare equal iff they refer to
// the same game and node.
type Cursor struct {
	game *Game
	id   NodeId
}

// NewCursor builds a cursor over the given node of game. It fails if the
// game is nil or the node does not exist.
func NewCursor(game *Game, id NodeId) (Cursor, error) {
	if game == nil || game.node(id) == nil {
		return Cursor{}, fmt.Errorf("gametree: invalid game or node for cursor")
	}
	return Cursor{game: game, id: id}, nil
}

// Equal reports whether two cursors refer to the same game and node.
func (c Cursor) Equal(other Cursor) bool {
	return c.game == other.game && c.id == other.id
}

// ID returns the node id this cursor points at.
func (c Cursor) ID() NodeId {
	return c.id
}

func (c Cursor) node() *Node {
	return c.game.node(c.id)
}

// Move returns the move that led to this cursor's node (the zero move
// for the root).
func (c Cursor) Move() chess.Move {
	return c.node().Move
}

// NAGs returns the NAG list attached to this cursor's node.
func (c Cursor) NAGs() []int {
	return c.node().NAGs
}

// AddNAG appends a Numeric Annotation Glyph to this cursor's node.
func (c Cursor) AddNAG(nag int) {
	n := c.node()
	n.NAGs = append(n.NAGs, nag)
}

// ChildCount returns the number of children of this cursor's node.
func (c Cursor) ChildCount() int {
	return len(c.node().Children)
}

// HasVariations reports whether this cursor's node has more than one
// child, i.e. the move played here had a recorded alternative.
func (c Cursor) HasVariations() bool {
	return c.node().HasVariations()
}

// Child returns a cursor to the child at index (0 is the main line), and
// whether that child exists.
func (c Cursor) Child(index int) (Cursor, bool) {
	children := c.node().Children
	if index < 0 || index >= len(children) {
		return Cursor{}, false
	}
	return Cursor{game: c.game, id: children[index]}, true
}

// Parent returns a cursor to the parent node, and whether one exists.
func (c Cursor) Parent() (Cursor, bool) {
	n := c.node()
	if n.Parent == InvalidNodeID {
		return Cursor{}, false
	}
	return Cursor{game: c.game, id: n.Parent}, true
}

// StartsVariation reports whether this node is a non-mainline child of
// its parent (index >= 1 among the parent's children).
func (c Cursor) StartsVariation() bool {
	parent, ok := c.Parent()
	if !ok {
		return false
	}
	idx, ok := parent.childIndex(c.id)
	return ok && idx > 0
}

// VariationNumber returns this node's index among its parent's children
// (0 for the main line), or -1 at the root.
func (c Cursor) VariationNumber() int {
	parent, ok := c.Parent()
	if !ok {
		return -1
	}
	idx, ok := parent.childIndex(c.id)
	if !ok {
		return -1
	}
	return idx
}

func (c Cursor) childIndex(id NodeId) (int, bool) {
	for i, childID := range c.node().Children {
		if childID == id {
			return i, true
		}
	}
	return 0, false
}

// Comment returns the post-move comment of this cursor's node.
func (c Cursor) Comment() string {
	return c.node().Comment
}

// SetComment sets the post-move comment of this cursor's node.
func (c Cursor) SetComment(comment string) {
	c.node().Comment = comment
}

// AppendComment appends text to the post-move comment of this cursor's
// node.
func (c Cursor) AppendComment(comment string) {
	n := c.node()
	n.Comment += comment
}

// PremoveComment returns the pre-move comment of this cursor's node.
func (c Cursor) PremoveComment() string {
	return c.node().PremoveComment
}

// SetPremoveComment sets the pre-move comment of this cursor's node.
func (c Cursor) SetPremoveComment(comment string) {
	c.node().PremoveComment = comment
}

// AppendPremoveComment appends text to the pre-move comment of this
// cursor's node.
func (c Cursor) AppendPremoveComment(comment string) {
	n := c.node()
	n.PremoveComment += comment
}

// Position returns the position represented by this cursor's node,
// using the cached position if present or replaying moves from the
// nearest ancestor that has one.
func (c Cursor) Position() (chess.Position, error) {
	return c.game.CalculatePosition(c.id)
}

// SideToMove returns the side to move in this cursor's position.
func (c Cursor) SideToMove() (chess.Color, error) {
	pos, err := c.Position()
	if err != nil {
		return 0, err
	}
	return pos.SideToMove(), nil
}

// PlayMove appends move as a new child of this cursor's node (with
// dedup) and returns a cursor advanced to it.
func (c Cursor) PlayMove(move chess.Move) (Cursor, error) {
	childID, err := c.game.AddNode(c.id, move)
	if err != nil {
		return Cursor{}, err
	}
	return Cursor{game: c.game, id: childID}, nil
}

// AddVariation appends move as a new child of this cursor's parent (an
// alternative to whatever move this cursor's node represents) and
// returns a cursor advanced to it, or false if this cursor has no
// parent.
func (c Cursor) AddVariation(move chess.Move) (Cursor, bool, error) {
	parent, ok := c.Parent()
	if !ok {
		return Cursor{}, false, nil
	}
	next, err := parent.PlayMove(move)
	if err != nil {
		return Cursor{}, false, err
	}
	return next, true, nil
}

// AsConst converts this mutable cursor to its read-only analogue.
func (c Cursor) AsConst() ConstCursor {
	return ConstCursor{c}
}

// ConstCursor is the read-only analogue of Cursor: it exposes the same
// navigation surface but no mutators.
type ConstCursor struct {
	c Cursor
}

// NewConstCursor builds a read-only cursor over the given node of game.
func NewConstCursor(game *Game, id NodeId) (ConstCursor, error) {
	c, err := NewCursor(game, id)
	if err != nil {
		return ConstCursor{}, err
	}
	return ConstCursor{c}, nil
}

func (c ConstCursor) Equal(other ConstCursor) bool      { return c.c.Equal(other.c) }
func (c ConstCursor) ID() NodeId                        { return c.c.ID() }
func (c ConstCursor) Move() chess.Move                  { return c.c.Move() }
func (c ConstCursor) NAGs() []int                       { return c.c.NAGs() }
func (c ConstCursor) ChildCount() int                   { return c.c.ChildCount() }
func (c ConstCursor) HasVariations() bool               { return c.c.HasVariations() }
func (c ConstCursor) StartsVariation() bool             { return c.c.StartsVariation() }
func (c ConstCursor) VariationNumber() int              { return c.c.VariationNumber() }
func (c ConstCursor) Position() (chess.Position, error) { return c.c.Position() }
func (c ConstCursor) SideToMove() (chess.Color, error)  { return c.c.SideToMove() }
func (c ConstCursor) Comment() string                   { return c.c.Comment() }
func (c ConstCursor) PremoveComment() string            { return c.c.PremoveComment() }

func (c ConstCursor) Child(index int) (ConstCursor, bool) {
	child, ok := c.c.Child(index)
	if !ok {
		return ConstCursor{}, false
	}
	return ConstCursor{child}, true
}

func (c ConstCursor) Parent() (ConstCursor, bool) {
	parent, ok := c.c.Parent()
	if !ok {
		return ConstCursor{}, false
	}
	return ConstCursor{parent}, true
}
