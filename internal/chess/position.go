package chess

// Position is a value type wrapping a Board, matching the collaborator
// interface the PGN layer consumes: from_fen, all_legal_moves,
// side_to_move, fullmove_number, make_move, check_state.
type Position struct {
	board Board
}

// FromFEN parses a FEN string into a Position.
func FromFEN(fen string) (Position, error) {
	b, err := boardFromFEN(fen)
	if err != nil {
		return Position{}, err
	}
	return Position{board: *b}, nil
}

// InitialPosition returns the standard chess starting position.
func InitialPosition() Position {
	p, _ := FromFEN(InitialFEN)
	return p
}

// SideToMove returns the colour to move.
func (p Position) SideToMove() Color {
	return p.board.ToMove
}

// FullmoveNumber returns the position's full-move counter.
func (p Position) FullmoveNumber() uint32 {
	return uint32(p.board.MoveNumber)
}

// AllLegalMoves returns every legal move for the side to move.
func (p Position) AllLegalMoves() MoveList {
	return allLegalMoves(&p.board, p.board.ToMove)
}

// MakeMove returns the position reached after playing m. m is assumed
// legal; callers resolve legality via AllLegalMoves/the move matcher
// first, as the PGN parser does.
func (p Position) MakeMove(m Move) Position {
	next := p.board
	applyMove(&next, m)
	return Position{board: next}
}

// CheckState reports whether the side to move is in check, checkmated, or
// neither.
func (p Position) CheckState() CheckState {
	b := &p.board
	if !isInCheck(b, b.ToMove) {
		return NoCheck
	}
	if len(allLegalMoves(b, b.ToMove)) == 0 {
		return Checkmate
	}
	return Check
}

// FEN renders the position back to a FEN string.
func (p Position) FEN() string {
	return fen(&p.board)
}
