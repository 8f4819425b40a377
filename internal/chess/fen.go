package chess

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chessgame/internal/pgnerrors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var sanPieceChars = map[Piece]byte{
	Pawn:   'P',
	Knight: 'N',
	Bishop: 'B',
	Rook:   'R',
	Queen:  'Q',
	King:   'K',
}

// pieceFromFENChar converts a FEN piece character to a piece type, case
// insensitively. Returns Empty for anything else.
func pieceFromFENChar(c byte) Piece {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'P', 'p':
		return Pawn
	default:
		return Empty
	}
}

// sanLetter returns the SAN letter for a coloured piece, lowercase for
// Black, as FEN and SAN both require.
func sanLetter(coloured Piece) byte {
	letter := sanPieceChars[ExtractPiece(coloured)]
	if letter == 0 {
		return '?'
	}
	if ExtractColor(coloured) == Black {
		return byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// boardFromFEN builds a board from a FEN string.
func boardFromFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", pgnerrors.ErrInvalidFEN)
	}

	b := NewBoard()
	if err := parseFENPieces(b, parts[0]); err != nil {
		return nil, err
	}
	if err := parseFENSideToMove(b, parts); err != nil {
		return nil, err
	}
	parseFENCastling(b, parts)
	parseFENEnPassant(b, parts)
	parseFENClocks(b, parts)

	return b, nil
}

func parseFENPieces(b *Board, placement string) error {
	rank := Rank('8')
	file := File('a')

	for _, c := range placement {
		switch {
		case c == '/':
			rank--
			file = 'a'
		case c >= '1' && c <= '8':
			file += File(c - '0')
		default:
			piece := pieceFromFENChar(byte(c))
			if piece == Empty {
				return fmt.Errorf("invalid piece character %q: %w", c, pgnerrors.ErrInvalidFEN)
			}
			if file > 'h' || rank < '1' {
				return fmt.Errorf("piece placement out of bounds: %w", pgnerrors.ErrInvalidFEN)
			}

			color := White
			if unicode.IsLower(c) {
				color = Black
			}
			b.Set(file, rank, MakeColoredPiece(color, piece))

			if piece == King {
				if color == White {
					b.WKingFile, b.WKingRank = file, rank
				} else {
					b.BKingFile, b.BKingRank = file, rank
				}
			}
			file++
		}
	}
	return nil
}

func parseFENSideToMove(b *Board, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		b.ToMove = White
	case "b":
		b.ToMove = Black
	default:
		return fmt.Errorf("invalid side to move %q: %w", parts[1], pgnerrors.ErrInvalidFEN)
	}
	return nil
}

func parseFENCastling(b *Board, parts []string) {
	b.WKingCastle, b.WQueenCastle, b.BKingCastle, b.BQueenCastle = 0, 0, 0, 0
	if len(parts) < 3 || parts[2] == "-" {
		return
	}
	for _, c := range parts[2] {
		switch c {
		case 'K':
			b.WKingCastle = 'h'
		case 'Q':
			b.WQueenCastle = 'a'
		case 'k':
			b.BKingCastle = 'h'
		case 'q':
			b.BQueenCastle = 'a'
		}
	}
}

func parseFENEnPassant(b *Board, parts []string) {
	b.EnPassant = false
	if len(parts) < 4 || parts[3] == "-" || len(parts[3]) != 2 {
		return
	}
	b.EnPassant = true
	b.EPFile = File(parts[3][0])
	b.EPRank = Rank(parts[3][1])
}

func parseFENClocks(b *Board, parts []string) {
	if len(parts) >= 5 {
		fmt.Sscanf(parts[4], "%d", &b.HalfmoveClock)
	}
	if len(parts) >= 6 {
		fmt.Sscanf(parts[5], "%d", &b.MoveNumber)
	}
}

// fen renders a board to its FEN string.
func fen(b *Board) string {
	var sb strings.Builder

	for rank := Rank('8'); rank >= '1'; rank-- {
		empty := 0
		for file := File('a'); file <= 'h'; file++ {
			piece := b.Get(file, rank)
			if piece == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(sanLetter(piece))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > '1' {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.ToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	wrote := false
	if b.WKingCastle != 0 {
		sb.WriteByte('K')
		wrote = true
	}
	if b.WQueenCastle != 0 {
		sb.WriteByte('Q')
		wrote = true
	}
	if b.BKingCastle != 0 {
		sb.WriteByte('k')
		wrote = true
	}
	if b.BQueenCastle != 0 {
		sb.WriteByte('q')
		wrote = true
	}
	if !wrote {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	if b.EnPassant {
		sb.WriteByte(byte(b.EPFile))
		sb.WriteByte(byte(b.EPRank))
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %d %d", b.HalfmoveClock, b.MoveNumber)

	return sb.String()
}
