package chess

// Offset tables shared between attack detection (check.go) and legal move
// generation.
var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

var promotionPieces = []Piece{Queen, Rook, Bishop, Knight}

// allLegalMoves generates every legal move for the given colour on the
// given board. This generalizes the narrower "does at least one legal
// move exist" scan: for each pseudo-legal target square, the candidate
// move is played on a scratch copy of the board and kept only if it does
// not leave the mover's own king in check.
func allLegalMoves(b *Board, c Color) MoveList {
	var moves MoveList
	for file := File('a'); file <= 'h'; file++ {
		for rank := Rank('1'); rank <= '8'; rank++ {
			piece := b.Get(file, rank)
			if piece == Empty || piece == Off || ExtractColor(piece) != c {
				continue
			}
			moves = append(moves, movesForPiece(b, file, rank, ExtractPiece(piece), c)...)
		}
	}
	moves = append(moves, castlingMoves(b, c)...)
	return moves
}

func movesForPiece(b *Board, file File, rank Rank, pieceType Piece, c Color) MoveList {
	switch pieceType {
	case Pawn:
		return pawnMoves(b, file, rank, c)
	case Knight:
		return targetMoves(b, file, rank, pieceType, c, knightOffsets)
	case King:
		return targetMoves(b, file, rank, pieceType, c, kingOffsets)
	case Bishop:
		return slidingMoves(b, file, rank, c, diagonalDirs)
	case Rook:
		return slidingMoves(b, file, rank, c, straightDirs)
	case Queen:
		moves := slidingMoves(b, file, rank, c, diagonalDirs)
		return append(moves, slidingMoves(b, file, rank, c, straightDirs)...)
	default:
		return nil
	}
}

func targetMoves(b *Board, file File, rank Rank, pieceType Piece, c Color, offsets [][2]int) MoveList {
	var moves MoveList
	for _, d := range offsets {
		toFile, toRank := File(int(file)+d[0]), Rank(int(rank)+d[1])
		if toFile < 'a' || toFile > 'h' || toRank < '1' || toRank > '8' {
			continue
		}
		target := b.Get(toFile, toRank)
		if target != Empty && ExtractColor(target) == c {
			continue
		}
		m := Move{
			From:     Square{file, rank},
			To:       Square{toFile, toRank},
			Piece:    MakeColoredPiece(c, pieceType),
			Captured: target,
			Promoted: Empty,
			Class:    PieceMove,
		}
		if legalAfter(b, m, c) {
			moves = append(moves, m)
		}
	}
	return moves
}

func slidingMoves(b *Board, file File, rank Rank, c Color, dirs [][2]int) MoveList {
	var moves MoveList
	pieceType := ExtractPiece(b.Get(file, rank))
	for _, d := range dirs {
		toFile, toRank := File(int(file)+d[0]), Rank(int(rank)+d[1])
		for toFile >= 'a' && toFile <= 'h' && toRank >= '1' && toRank <= '8' {
			target := b.Get(toFile, toRank)
			if target != Empty && ExtractColor(target) == c {
				break
			}
			m := Move{
				From:     Square{file, rank},
				To:       Square{toFile, toRank},
				Piece:    MakeColoredPiece(c, pieceType),
				Captured: target,
				Promoted: Empty,
				Class:    PieceMove,
			}
			if legalAfter(b, m, c) {
				moves = append(moves, m)
			}
			if target != Empty {
				break
			}
			toFile, toRank = File(int(toFile)+d[0]), Rank(int(toRank)+d[1])
		}
	}
	return moves
}

func pawnMoves(b *Board, file File, rank Rank, c Color) MoveList {
	var moves MoveList
	dir := colorOffset(c)
	startRank := Rank('2')
	promoteRank := Rank('8')
	if c == Black {
		startRank = '7'
		promoteRank = '1'
	}

	pushRank := Rank(int(rank) + dir)
	if pushRank >= '1' && pushRank <= '8' && b.Get(file, pushRank) == Empty {
		moves = append(moves, pawnAdvance(b, file, rank, file, pushRank, c, pushRank == promoteRank)...)
		if rank == startRank {
			doubleRank := Rank(int(rank) + 2*dir)
			if b.Get(file, doubleRank) == Empty {
				m := Move{From: Square{file, rank}, To: Square{file, doubleRank}, Piece: MakeColoredPiece(c, Pawn), Captured: Empty, Promoted: Empty, Class: PawnMove}
				if legalAfter(b, m, c) {
					moves = append(moves, m)
				}
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		toFile := File(int(file) + df)
		toRank := pushRank
		if toFile < 'a' || toFile > 'h' || toRank < '1' || toRank > '8' {
			continue
		}
		target := b.Get(toFile, toRank)
		if target != Empty && ExtractColor(target) != c {
			moves = append(moves, pawnAdvance(b, file, rank, toFile, toRank, c, toRank == promoteRank)...)
			continue
		}
		if b.EnPassant && toFile == b.EPFile && toRank == b.EPRank {
			m := Move{
				From:               Square{file, rank},
				To:                 Square{toFile, toRank},
				Piece:              MakeColoredPiece(c, Pawn),
				Captured:           MakeColoredPiece(c.Opposite(), Pawn),
				Promoted:           Empty,
				CapturingEnPassant: true,
				Class:              EnPassantPawnMove,
			}
			if legalAfter(b, m, c) {
				moves = append(moves, m)
			}
		}
	}

	return moves
}

func pawnAdvance(b *Board, fromFile File, fromRank Rank, toFile File, toRank Rank, c Color, promotes bool) MoveList {
	captured := b.Get(toFile, toRank)
	if !promotes {
		m := Move{From: Square{fromFile, fromRank}, To: Square{toFile, toRank}, Piece: MakeColoredPiece(c, Pawn), Captured: captured, Promoted: Empty, Class: PawnMove}
		if legalAfter(b, m, c) {
			return MoveList{m}
		}
		return nil
	}
	var moves MoveList
	for _, promoted := range promotionPieces {
		m := Move{
			From:     Square{fromFile, fromRank},
			To:       Square{toFile, toRank},
			Piece:    MakeColoredPiece(c, Pawn),
			Captured: captured,
			Promoted: promoted,
			Class:    PawnMoveWithPromotion,
		}
		if legalAfter(b, m, c) {
			moves = append(moves, m)
		}
	}
	return moves
}

func castlingMoves(b *Board, c Color) MoveList {
	var moves MoveList
	rank := Rank('1')
	kingCastle, queenCastle := b.WKingCastle, b.WQueenCastle
	kingFile := b.WKingFile
	if c == Black {
		rank = '8'
		kingCastle, queenCastle = b.BKingCastle, b.BQueenCastle
		kingFile = b.BKingFile
	}
	opp := c.Opposite()

	if kingCastle != 0 && kingFile == 'e' &&
		b.Get('f', rank) == Empty && b.Get('g', rank) == Empty &&
		!isSquareAttacked(b, 'e', rank, opp) && !isSquareAttacked(b, 'f', rank, opp) && !isSquareAttacked(b, 'g', rank, opp) {
		moves = append(moves, Move{From: Square{'e', rank}, To: Square{'g', rank}, Piece: MakeColoredPiece(c, King), Captured: Empty, Promoted: Empty, Class: KingsideCastle})
	}
	if queenCastle != 0 && kingFile == 'e' &&
		b.Get('d', rank) == Empty && b.Get('c', rank) == Empty && b.Get('b', rank) == Empty &&
		!isSquareAttacked(b, 'e', rank, opp) && !isSquareAttacked(b, 'd', rank, opp) && !isSquareAttacked(b, 'c', rank, opp) {
		moves = append(moves, Move{From: Square{'e', rank}, To: Square{'c', rank}, Piece: MakeColoredPiece(c, King), Captured: Empty, Promoted: Empty, Class: QueensideCastle})
	}
	return moves
}

// legalAfter plays m on a scratch copy of b and reports whether the
// mover's king is safe afterward.
func legalAfter(b *Board, m Move, c Color) bool {
	scratch := b.Copy()
	applyMove(scratch, m)
	return !isInCheck(scratch, c)
}
