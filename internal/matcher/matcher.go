// Package matcher resolves a parsed SAN move against a position's legal
// moves: the bridge between text ("Nxe5+") and the board move it
// describes.
package matcher

import (
	"github.com/lgbarn/chessgame/internal/chess"
	"github.com/lgbarn/chessgame/internal/sanmove"
)

// Matches reports whether san can describe move: same piece, same target
// square, any disambiguation hint consistent with move's origin square,
// same capture/promotion status.
func Matches(san sanmove.SanMove, move chess.Move) bool {
	if san.Piece != move.Piece {
		return false
	}
	return matchesIgnoringPiece(san, move)
}

// matchesIgnoringPiece is Matches without the piece-type comparison, the
// predicate the wildcard fallback needs when a SAN move's piece letter
// turned out to be wrong for every legal candidate. The target square is
// still required to match exactly: only the piece letter is in doubt.
func matchesIgnoringPiece(san sanmove.SanMove, move chess.Move) bool {
	if san.Target != move.To {
		return false
	}
	if san.HasDisambigFile && san.DisambigFile != move.From.File {
		return false
	}
	if san.HasDisambigRank && san.DisambigRank != move.From.Rank {
		return false
	}
	if san.Capturing != (move.Captured != chess.Empty) {
		return false
	}
	// SanMove.Promoted is coloured while Move.Promoted is a bare piece
	// type, so only the piece types are compared.
	sanPromoted := san.Promoted
	if sanPromoted != chess.Empty {
		sanPromoted = chess.ExtractPiece(sanPromoted)
	}
	if move.Promoted != sanPromoted {
		return false
	}
	return true
}

// MatchList returns every move in moves that san can describe exactly
// (piece type included).
func MatchList(san sanmove.SanMove, moves chess.MoveList) chess.MoveList {
	var out chess.MoveList
	for _, m := range moves {
		if Matches(san, m) {
			out = append(out, m)
		}
	}
	return out
}

// MatchListWildcardPiece returns every move in moves that san can
// describe once its piece-type letter is ignored, for PGN source that
// got the piece letter wrong (spec's MoveMissingPieceType recovery).
func MatchListWildcardPiece(san sanmove.SanMove, moves chess.MoveList) chess.MoveList {
	var out chess.MoveList
	for _, m := range moves {
		if matchesIgnoringPiece(san, m) {
			out = append(out, m)
		}
	}
	return out
}
