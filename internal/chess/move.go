package chess

// Square identifies a board square by file and rank.
type Square struct {
	File File
	Rank Rank
}

// String renders a square in SAN form, e.g. "e4".
func (s Square) String() string {
	return string([]byte{byte(s.File), byte(s.Rank)})
}

// Move is the collaborator-interface move value: the fields spec'd for the
// chess rules engine, nothing from the PGN tree (comments, NAGs,
// variations, move text all live one layer up, in gametree and sanmove).
// Move is comparable with ==, which internal/gametree relies on for its
// append-dedup semantics.
type Move struct {
	From Square
	To   Square

	// Piece is the coloured piece making the move.
	Piece Piece

	// Captured is the coloured piece removed by this move, or Empty.
	Captured Piece

	// Promoted is the piece type (uncoloured) a pawn becomes, or Empty.
	Promoted Piece

	CapturingEnPassant bool

	// Class records how to apply the move; it does not participate in
	// SAN matching (which only looks at From/To/Piece/Captured/Promoted).
	Class MoveClass
}

// IsCastling reports whether the move is kingside or queenside castling.
func (m Move) IsCastling() bool {
	return m.Class == KingsideCastle || m.Class == QueensideCastle
}

// IsNull reports whether this is a null (placeholder) move.
func (m Move) IsNull() bool {
	return m.Class == NullMove
}

// MoveList is an ordered set of legal moves, as returned by
// Position.AllLegalMoves.
type MoveList []Move
