// Package sanmove parses and generates Standard Algebraic Notation: the
// textual form of a chess move ("Nxe5+", "O-O-O", "e8=Q#") as distinct
// from the resolved board move it describes.
package sanmove

import (
	"strings"

	"github.com/lgbarn/chessgame/internal/chess"
	"github.com/lgbarn/chessgame/internal/pgnerrors"
)

// SuffixAnnotation is the "!"/"?" quality marker some SAN moves carry.
type SuffixAnnotation int

const (
	GoodMove SuffixAnnotation = iota
	PoorMove
	VeryGoodMove
	VeryPoorMove
	SpeculativeMove
	QuestionableMove
)

// NAG returns the Numeric Annotation Glyph code a suffix annotation maps
// to ($1..$6, the standard move-quality glyphs).
func (s SuffixAnnotation) NAG() int {
	switch s {
	case GoodMove:
		return 1
	case PoorMove:
		return 2
	case VeryGoodMove:
		return 3
	case VeryPoorMove:
		return 4
	case SpeculativeMove:
		return 5
	case QuestionableMove:
		return 6
	default:
		return 0
	}
}

// SanMove holds everything a SAN string conveys about a move, before it
// has been matched against a position's legal moves.
type SanMove struct {
	Text   string
	Piece  chess.Piece // coloured piece making the move
	Target chess.Square
	Capturing bool
	Promoted  chess.Piece // coloured promoted piece, chess.Empty if none

	CheckState chess.CheckState

	DisambigFile    chess.File
	HasDisambigFile bool
	DisambigRank    chess.Rank
	HasDisambigRank bool

	Suffix    SuffixAnnotation
	HasSuffix bool
}

type tokenKind int

const (
	tokPieceType tokenKind = iota
	tokFile
	tokRank
	tokCapturing
	tokCheck
	tokCheckmate
	tokPromotion
	tokSuffix
	tokInvalid
)

type sanToken struct {
	kind  tokenKind
	value string
}

func nextToken(s string) sanToken {
	if s == "" {
		return sanToken{kind: tokInvalid}
	}
	switch c := s[0]; {
	case c == 'P' || c == 'R' || c == 'N' || c == 'B' || c == 'Q' || c == 'K':
		return sanToken{kind: tokPieceType, value: s[:1]}
	case c >= 'a' && c <= 'h':
		return sanToken{kind: tokFile, value: s[:1]}
	case c >= '1' && c <= '8':
		return sanToken{kind: tokRank, value: s[:1]}
	case c == 'x':
		return sanToken{kind: tokCapturing}
	case c == '+':
		return sanToken{kind: tokCheck}
	case c == '#':
		return sanToken{kind: tokCheckmate}
	case c == '=':
		return sanToken{kind: tokPromotion}
	case c == '!' || c == '?':
		if len(s) >= 2 && (s[1] == '!' || s[1] == '?') {
			return sanToken{kind: tokSuffix, value: s[:2]}
		}
		return sanToken{kind: tokSuffix, value: s[:1]}
	default:
		return sanToken{kind: tokInvalid}
	}
}

func suffixFromText(text string) (SuffixAnnotation, bool) {
	switch text {
	case "!":
		return GoodMove, true
	case "!!":
		return VeryGoodMove, true
	case "?":
		return PoorMove, true
	case "??":
		return VeryPoorMove, true
	case "!?":
		return SpeculativeMove, true
	case "?!":
		return QuestionableMove, true
	default:
		return 0, false
	}
}

// parser walks a SAN string left to right, tracking the remaining text
// and the token at its head.
type parser struct {
	rest string
	tok  sanToken
}

func newParser(s string) *parser {
	p := &parser{rest: s}
	p.tok = nextToken(s)
	return p
}

func (p *parser) advance(n int) {
	p.rest = p.rest[n:]
	p.tok = nextToken(p.rest)
}

// Parse decodes a SAN string into a SanMove. It does not consult board
// state: disambiguation hints and the target square are recorded as
// written, to be resolved against legal moves by internal/matcher.
func Parse(san string, sideToMove chess.Color) (SanMove, error) {
	if strings.HasPrefix(san, "O-O-O") || strings.HasPrefix(san, "O-O") {
		return parseCastling(san, sideToMove)
	}

	move := SanMove{Text: san, Promoted: chess.Empty}
	p := newParser(san)
	if p.tok.kind == tokInvalid {
		return SanMove{}, pgnerrors.NewSANError(pgnerrors.ErrSANUnexpectedToken, san)
	}

	parsePieceType(sideToMove, &move, p)

	var possibleDisambig bool
	var tentativeFile chess.File
	var tentativeRank chess.Rank
	possibleDisambig, tentativeFile, tentativeRank = parseDisambiguation(&move, p)

	possibleDisambig = parseCapture(&move, p, possibleDisambig, tentativeFile, tentativeRank)

	if err := parseTargetSquare(san, &move, p, possibleDisambig, tentativeFile, tentativeRank); err != nil {
		return SanMove{}, err
	}
	if err := parsePromotion(san, sideToMove, &move, p); err != nil {
		return SanMove{}, err
	}
	if err := parseSuffixes(san, &move, p); err != nil {
		return SanMove{}, err
	}

	if p.rest != "" {
		return SanMove{}, pgnerrors.NewSANError(pgnerrors.ErrSANUnexpectedCharsAtEnd, san)
	}
	return move, nil
}

func parsePieceType(sideToMove chess.Color, move *SanMove, p *parser) {
	if p.tok.kind == tokPieceType {
		move.Piece = chess.MakeColoredPiece(sideToMove, chess.PieceFromLetter(p.tok.value[0]))
		p.advance(1)
		return
	}
	move.Piece = chess.MakeColoredPiece(sideToMove, chess.Pawn)
}

// parseDisambiguation handles the file/rank text right after the piece
// letter. A lone file or rank is an unambiguous disambiguation hint. A
// file immediately followed by a rank is ambiguous on its own: it might
// be a disambiguation square ("Rd1e1") or it might be the whole target
// square ("Rd1"); parseCapture and parseTargetSquare resolve it once
// they see whether anything else follows.
func parseDisambiguation(move *SanMove, p *parser) (possibleDisambig bool, file chess.File, rank chess.Rank) {
	switch p.tok.kind {
	case tokFile:
		file = chess.File(p.tok.value[0])
		next := nextToken(p.rest[1:])
		if next.kind != tokRank {
			move.DisambigFile = file
			move.HasDisambigFile = true
			p.advance(1)
			return false, 0, 0
		}
		rank = chess.Rank(next.value[0])
		p.advance(2)
		return true, file, rank
	case tokRank:
		move.DisambigRank = chess.Rank(p.tok.value[0])
		move.HasDisambigRank = true
		p.advance(1)
	}
	return false, 0, 0
}

func parseCapture(move *SanMove, p *parser, possibleDisambig bool, file chess.File, rank chess.Rank) bool {
	if p.tok.kind != tokCapturing {
		return possibleDisambig
	}
	move.Capturing = true
	p.advance(1)
	if possibleDisambig {
		move.DisambigFile = file
		move.HasDisambigFile = true
		move.DisambigRank = rank
		move.HasDisambigRank = true
		return false
	}
	return false
}

func parseTargetSquare(san string, move *SanMove, p *parser, possibleDisambig bool, tentativeFile chess.File, tentativeRank chess.Rank) error {
	if p.tok.kind == tokFile {
		toFile := chess.File(p.tok.value[0])
		rankTok := nextToken(p.rest[1:])
		if rankTok.kind != tokRank {
			return pgnerrors.NewSANError(pgnerrors.ErrSANMissingRank, san)
		}
		if possibleDisambig {
			move.DisambigFile = tentativeFile
			move.HasDisambigFile = true
			move.DisambigRank = tentativeRank
			move.HasDisambigRank = true
		}
		move.Target = chess.Square{File: toFile, Rank: chess.Rank(rankTok.value[0])}
		p.advance(2)
		return nil
	}
	if possibleDisambig {
		move.Target = chess.Square{File: tentativeFile, Rank: tentativeRank}
		return nil
	}
	return pgnerrors.NewSANError(pgnerrors.ErrSANMissingFile, san)
}

func parsePromotion(san string, sideToMove chess.Color, move *SanMove, p *parser) error {
	if p.tok.kind != tokPromotion {
		return nil
	}
	p.advance(1)
	if p.tok.kind != tokPieceType {
		return pgnerrors.NewSANError(pgnerrors.ErrSANMissingPieceType, san)
	}
	move.Promoted = chess.MakeColoredPiece(sideToMove, chess.PieceFromLetter(p.tok.value[0]))
	p.advance(1)
	return nil
}

func parseSuffixes(san string, move *SanMove, p *parser) error {
	if p.tok.kind == tokCheck {
		move.CheckState = chess.Check
		p.advance(1)
	}
	if p.tok.kind == tokCheckmate {
		if move.CheckState != chess.NoCheck {
			return pgnerrors.NewSANError(pgnerrors.ErrSANCheckAndCheckmate, san)
		}
		move.CheckState = chess.Checkmate
		p.advance(1)
	}
	if p.tok.kind == tokCheck {
		if move.CheckState != chess.NoCheck {
			return pgnerrors.NewSANError(pgnerrors.ErrSANCheckAndCheckmate, san)
		}
		move.CheckState = chess.Check
		p.advance(1)
	}
	if p.tok.kind == tokSuffix {
		annotation, ok := suffixFromText(p.tok.value)
		if !ok {
			return pgnerrors.NewSANError(pgnerrors.ErrSANInvalidSuffixAnnotation, san)
		}
		move.Suffix = annotation
		move.HasSuffix = true
		p.advance(len(p.tok.value))
	}
	return nil
}

func parseCastling(san string, sideToMove chess.Color) (SanMove, error) {
	move := SanMove{Text: san, Piece: chess.MakeColoredPiece(sideToMove, chess.King), Promoted: chess.Empty}

	var rest string
	if strings.HasPrefix(san, "O-O-O") {
		move.Target = castleTarget(sideToMove, chess.File('c'))
		rest = san[len("O-O-O"):]
	} else {
		move.Target = castleTarget(sideToMove, chess.File('g'))
		rest = san[len("O-O"):]
	}

	p := &parser{rest: rest, tok: nextToken(rest)}
	if err := parseSuffixes(san, &move, p); err != nil {
		return SanMove{}, err
	}
	if p.rest != "" {
		return SanMove{}, pgnerrors.NewSANError(pgnerrors.ErrSANUnexpectedCharsAtEnd, san)
	}
	return move, nil
}

func castleTarget(c chess.Color, kingFile chess.File) chess.Square {
	if c == chess.White {
		return chess.Square{File: kingFile, Rank: chess.Rank('1')}
	}
	return chess.Square{File: kingFile, Rank: chess.Rank('8')}
}

// Generate builds the SanMove that describes move, choosing the minimal
// disambiguation needed given the other candidate moves sharing its
// piece type and target square. It does not set CheckState; callers that
// need "+"/"#" add it from the resulting position.
func Generate(move chess.Move, moves chess.MoveList) (SanMove, bool) {
	if !containsExact(moves, move) {
		return SanMove{}, false
	}
	if move.IsCastling() {
		text := "O-O"
		if move.To.File == chess.File('c') {
			text = "O-O-O"
		}
		return SanMove{Text: text, Piece: move.Piece, Target: move.To, Promoted: chess.Empty}, true
	}

	matching := movesToTarget(moves, move.Piece, move.To)
	if len(matching) == 0 {
		return SanMove{}, false
	}

	san := SanMove{
		Piece:     move.Piece,
		Target:    move.To,
		Capturing: move.Captured != chess.Empty,
		Promoted:  chess.Empty,
	}

	var sb strings.Builder
	pieceType := chess.ExtractPiece(move.Piece)
	if pieceType != chess.Pawn {
		sb.WriteByte(pieceType.Letter())
	}

	if pieceType == chess.Pawn {
		if move.Captured != chess.Empty {
			sb.WriteByte(byte(move.From.File))
		}
	} else if len(matching) > 1 {
		file, hasFile, rank, hasRank := disambiguate(move, matching)
		if hasFile {
			sb.WriteByte(byte(file))
			san.DisambigFile = file
			san.HasDisambigFile = true
		}
		if hasRank {
			sb.WriteByte(byte(rank))
			san.DisambigRank = rank
			san.HasDisambigRank = true
		}
	}

	if move.Captured != chess.Empty {
		sb.WriteByte('x')
	}
	sb.WriteString(move.To.String())
	if move.Promoted != chess.Empty {
		san.Promoted = chess.MakeColoredPiece(chess.ExtractColor(move.Piece), move.Promoted)
		sb.WriteByte('=')
		sb.WriteByte(move.Promoted.Letter())
	}

	san.Text = sb.String()
	return san, true
}

func containsExact(moves chess.MoveList, move chess.Move) bool {
	for _, m := range moves {
		if m == move {
			return true
		}
	}
	return false
}

func movesToTarget(moves chess.MoveList, piece chess.Piece, to chess.Square) chess.MoveList {
	var out chess.MoveList
	for _, m := range moves {
		if m.Piece == piece && m.To == to {
			out = append(out, m)
		}
	}
	return out
}

// disambiguate picks the minimal disambiguation for move among the other
// moves sharing its piece type and target square: file alone if every
// candidate starts from a distinct file, rank alone if every candidate
// starts from a distinct rank, both otherwise.
func disambiguate(move chess.Move, matching chess.MoveList) (file chess.File, hasFile bool, rank chess.Rank, hasRank bool) {
	files := map[chess.File]struct{}{}
	ranks := map[chess.Rank]struct{}{}
	for _, m := range matching {
		files[m.From.File] = struct{}{}
		ranks[m.From.Rank] = struct{}{}
	}
	if len(files) == len(matching) {
		return move.From.File, true, 0, false
	}
	if len(ranks) == len(matching) {
		return 0, false, move.From.Rank, true
	}
	return move.From.File, true, move.From.Rank, true
}
