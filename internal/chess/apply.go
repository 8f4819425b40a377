package chess

// applyMove mutates b by playing m, which must already carry a fully
// resolved From square (unlike the PGN layer, which must resolve SAN
// disambiguation into a From square before it ever reaches here).
func applyMove(b *Board, m Move) {
	switch m.Class {
	case NullMove:
		b.ToMove = b.ToMove.Opposite()
		b.EnPassant = false
		return
	case KingsideCastle:
		applyCastle(b, true)
		return
	case QueensideCastle:
		applyCastle(b, false)
		return
	case EnPassantPawnMove, PawnMove, PawnMoveWithPromotion:
		applyPawnMove(b, m)
		return
	default:
		applyPieceMove(b, m)
	}
}

func applyCastle(b *Board, kingside bool) {
	color := b.ToMove
	rank := Rank('1')
	kingFile := b.WKingFile
	rookFrom := b.WKingCastle
	if !kingside {
		rookFrom = b.WQueenCastle
	}
	if color == Black {
		rank = '8'
		kingFile = b.BKingFile
		rookFrom = b.BKingCastle
		if !kingside {
			rookFrom = b.BQueenCastle
		}
	}

	kingTo, rookTo := File('g'), File('f')
	if !kingside {
		kingTo, rookTo = 'c', 'd'
	}

	king := b.Get(kingFile, rank)
	b.Set(kingFile, rank, Empty)
	b.Set(kingTo, rank, king)

	rook := b.Get(rookFrom, rank)
	b.Set(rookFrom, rank, Empty)
	b.Set(rookTo, rank, rook)

	if color == White {
		b.WKingFile = kingTo
		b.WKingCastle, b.WQueenCastle = 0, 0
	} else {
		b.BKingFile = kingTo
		b.BKingCastle, b.BQueenCastle = 0, 0
	}

	b.EnPassant = false
	b.HalfmoveClock++
	if color == Black {
		b.MoveNumber++
	}
	b.ToMove = color.Opposite()
}

func applyPawnMove(b *Board, m Move) {
	color := ExtractColor(m.Piece)

	if m.Class == EnPassantPawnMove {
		capturedRank := Rank(m.To.Rank - 1)
		if color == Black {
			capturedRank = Rank(m.To.Rank + 1)
		}
		b.Set(m.To.File, capturedRank, Empty)
	}

	b.Set(m.From.File, m.From.Rank, Empty)
	if m.Class == PawnMoveWithPromotion {
		promoted := m.Promoted
		if promoted == Empty {
			promoted = Queen
		}
		b.Set(m.To.File, m.To.Rank, MakeColoredPiece(color, promoted))
	} else {
		b.Set(m.To.File, m.To.Rank, m.Piece)
	}

	b.EnPassant = false
	if color == White && m.From.Rank == '2' && m.To.Rank == '4' {
		b.EnPassant, b.EPFile, b.EPRank = true, m.To.File, '3'
	} else if color == Black && m.From.Rank == '7' && m.To.Rank == '5' {
		b.EnPassant, b.EPFile, b.EPRank = true, m.To.File, '6'
	}

	b.HalfmoveClock = 0
	if color == Black {
		b.MoveNumber++
	}
	b.ToMove = color.Opposite()
}

func applyPieceMove(b *Board, m Move) {
	color := ExtractColor(m.Piece)
	pieceType := ExtractPiece(m.Piece)
	captured := b.Get(m.To.File, m.To.Rank)

	b.Set(m.From.File, m.From.Rank, Empty)
	b.Set(m.To.File, m.To.Rank, m.Piece)

	if pieceType == King {
		if color == White {
			b.WKingFile, b.WKingRank = m.To.File, m.To.Rank
			b.WKingCastle, b.WQueenCastle = 0, 0
		} else {
			b.BKingFile, b.BKingRank = m.To.File, m.To.Rank
			b.BKingCastle, b.BQueenCastle = 0, 0
		}
	}

	if pieceType == Rook {
		clearCastlingRightForRook(b, color, m.From.File, m.From.Rank)
	}
	if captured != Empty && ExtractPiece(captured) == Rook {
		clearCastlingRightForRook(b, ExtractColor(captured), m.To.File, m.To.Rank)
	}

	b.EnPassant = false
	if captured != Empty {
		b.HalfmoveClock = 0
	} else {
		b.HalfmoveClock++
	}
	if color == Black {
		b.MoveNumber++
	}
	b.ToMove = color.Opposite()
}

func clearCastlingRightForRook(b *Board, color Color, file File, rank Rank) {
	if color == White && rank == '1' {
		if file == b.WKingCastle {
			b.WKingCastle = 0
		}
		if file == b.WQueenCastle {
			b.WQueenCastle = 0
		}
	} else if color == Black && rank == '8' {
		if file == b.BKingCastle {
			b.BKingCastle = 0
		}
		if file == b.BQueenCastle {
			b.BQueenCastle = 0
		}
	}
}
