// Package parser drives a token-based state machine that turns PGN
// movetext into a gametree.Game: metadata tags, moves matched against an
// external chess engine's legal-move list, comments, NAGs, and
// recursive annotation variations.
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/chessgame/internal/chess"
	"github.com/lgbarn/chessgame/internal/config"
	"github.com/lgbarn/chessgame/internal/gametree"
	"github.com/lgbarn/chessgame/internal/lexer"
	"github.com/lgbarn/chessgame/internal/matcher"
	"github.com/lgbarn/chessgame/internal/pgnerrors"
	"github.com/lgbarn/chessgame/internal/sanmove"
	"github.com/lgbarn/chessgame/internal/token"
)

// Parser reads games, one at a time, from a PGN byte stream.
type Parser struct {
	lex      *lexer.Lexer
	cfg      *config.Config
	tok      token.Token
	warnings []pgnerrors.PGNWarning
}

// NewParser creates a parser reading from r. If cfg is nil, a default
// config is created.
func NewParser(r io.Reader, cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Parser{lex: lexer.NewLexer(r, cfg), cfg: cfg}
}

// Warnings returns the non-fatal diagnostics collected while reading the
// most recent game. It is reset at the start of every ReadGame call, so
// it must be read before the next one.
func (p *Parser) Warnings() []pgnerrors.PGNWarning {
	return p.warnings
}

func (p *Parser) warn(kind pgnerrors.WarningKind, line int, message string) {
	p.warnings = append(p.warnings, pgnerrors.PGNWarning{Kind: kind, Line: line, Message: message})
}

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// ReadGame reads and returns the next game in the stream. It returns
// (nil, nil) once the stream is exhausted. A Chess960 game (detected via
// a "chess960" Variant tag) is skipped entirely and the following game
// is returned instead.
func (p *Parser) ReadGame() (*gametree.Game, error) {
	p.warnings = nil

	for {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind == token.EndOfInput {
			return nil, nil
		}
		if p.tok.Kind != token.OpenBracket {
			return nil, pgnerrors.NewPGNError(pgnerrors.ErrUnexpectedToken, p.tok.Line, "expected '[' to start a game")
		}
		metadataLine := p.tok.Line

		metadata, premoveComment, err := p.parseMetadataSection()
		if err != nil {
			return nil, err
		}

		if isChess960(metadata) {
			if err := p.skipMovetext(); err != nil {
				return nil, err
			}
			continue
		}

		game, err := buildGame(metadata, metadataLine)
		if err != nil {
			return nil, err
		}
		if premoveComment != "" {
			game.Root().SetComment(premoveComment)
		}
		if err := p.parseMovetext(game); err != nil {
			return nil, err
		}
		return game, nil
	}
}

// parseMetadataSection consumes the leading run of "[ Name "Value" ]"
// tag pairs and the overall pre-move comment that may follow them. It
// requires p.tok to already be an OpenBracket.
func (p *Parser) parseMetadataSection() (gametree.Metadata, string, error) {
	var metadata gametree.Metadata

	for p.tok.Kind == token.OpenBracket {
		if err := p.advance(); err != nil {
			return metadata, "", err
		}
		if p.tok.Kind != token.Symbol {
			fmt.Fprintf(p.cfg.LogWriter, "line %d: missing tag name.\n", p.tok.Line)
			return metadata, "", pgnerrors.NewPGNError(pgnerrors.ErrUnexpectedToken, p.tok.Line, "expected tag name")
		}
		name := p.tok.Value

		if err := p.advance(); err != nil {
			return metadata, "", err
		}
		if p.tok.Kind != token.String {
			fmt.Fprintf(p.cfg.LogWriter, "line %d: missing tag value for %s.\n", p.tok.Line, name)
			return metadata, "", pgnerrors.NewPGNError(pgnerrors.ErrUnexpectedToken, p.tok.Line, "expected tag value")
		}
		value := p.tok.Value

		if err := p.advance(); err != nil {
			return metadata, "", err
		}
		if p.tok.Kind != token.CloseBracket {
			return metadata, "", pgnerrors.NewPGNError(pgnerrors.ErrUnexpectedToken, p.tok.Line, "expected ']'")
		}

		metadata.Add(name, value)
		if err := p.advance(); err != nil {
			return metadata, "", err
		}
	}

	premoveComment := ""
	if p.tok.Kind == token.Comment {
		premoveComment = p.tok.Value
		if err := p.advance(); err != nil {
			return metadata, "", err
		}
	}
	return metadata, premoveComment, nil
}

func isChess960(metadata gametree.Metadata) bool {
	variant, ok := metadata.Get("Variant")
	return ok && strings.ToLower(variant) == "chess960"
}

func buildGame(metadata gametree.Metadata, line int) (*gametree.Game, error) {
	if fen, ok := metadata.Get("FEN"); ok {
		if setup, hasSetup := metadata.Get("SetUp"); !hasSetup || setup == "1" {
			game, err := gametree.NewGameFromFEN(fen)
			if err != nil {
				return nil, pgnerrors.NewPGNError(pgnerrors.ErrInvalidFEN, line, err.Error())
			}
			game.Metadata = metadata
			return game, nil
		}
	}
	game := gametree.NewGame()
	game.Metadata = metadata
	return game, nil
}

// skipMovetext discards tokens up to and including the point just
// before the next game result or end of input, without interpreting
// moves. It is used to resynchronize past a recognized-but-unsupported
// game (Chess960) so the following game can still be read.
func (p *Parser) skipMovetext() error {
	for p.tok.Kind != token.GameResult && p.tok.Kind != token.EndOfInput {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// ravFrame tracks, for one entry on the cursor stack, whether a move has
// been placed yet in this variation and what pre-move comment (if any)
// is waiting to attach to the first move that is.
type ravFrame struct {
	hasMove        bool
	pendingComment string
}

// parseMovetext drives the dispatch loop of spec section 4.2 over
// game's root cursor until a GameResult token ends the game.
func (p *Parser) parseMovetext(game *gametree.Game) error {
	stack := []gametree.Cursor{game.Root()}
	ravStack := []ravFrame{{}}

	for {
		switch p.tok.Kind {
		case token.Number:
			if err := p.advance(); err != nil {
				return err
			}
			for p.tok.Kind == token.Dot {
				if err := p.advance(); err != nil {
					return err
				}
			}

		case token.Dot:
			p.warn(pgnerrors.WarningUnexpectedChar, p.tok.Line, "stray '.'")
			if err := p.advance(); err != nil {
				return err
			}

		case token.Symbol:
			if err := p.handleSANMove(&stack, &ravStack); err != nil {
				return err
			}

		case token.NAG:
			if n, err := strconv.Atoi(p.tok.Value); err == nil {
				stack[len(stack)-1].AddNAG(n)
			}
			if err := p.advance(); err != nil {
				return err
			}

		case token.Comment:
			top := len(ravStack) - 1
			if !ravStack[top].hasMove {
				ravStack[top].pendingComment += p.tok.Value
			} else {
				stack[len(stack)-1].AppendComment(p.tok.Value)
			}
			if err := p.advance(); err != nil {
				return err
			}

		case token.OpenParen:
			parent, ok := stack[len(stack)-1].Parent()
			if !ok {
				return pgnerrors.NewPGNError(pgnerrors.ErrCannotStartRav, p.tok.Line, "variation has no parent to branch from")
			}
			stack = append(stack, parent)
			ravStack = append(ravStack, ravFrame{})
			if err := p.advance(); err != nil {
				return err
			}

		case token.CloseParen:
			if len(stack) <= 1 {
				return pgnerrors.NewPGNError(pgnerrors.ErrNoPendingRav, p.tok.Line, "no pending variation to close")
			}
			stack = stack[:len(stack)-1]
			ravStack = ravStack[:len(ravStack)-1]
			if err := p.advance(); err != nil {
				return err
			}

		case token.Invalid:
			if p.tok.Value == "," || p.tok.Value == "}" {
				p.warn(pgnerrors.WarningUnexpectedChar, p.tok.Line, fmt.Sprintf("stray %q", p.tok.Value))
				if err := p.advance(); err != nil {
					return err
				}
			} else {
				return pgnerrors.NewPGNError(pgnerrors.ErrUnexpectedToken, p.tok.Line, fmt.Sprintf("unexpected character %q", p.tok.Value))
			}

		case token.GameResult:
			return nil

		case token.EndOfInput:
			return pgnerrors.NewPGNError(pgnerrors.ErrEndOfInput, p.tok.Line, "movetext ended without a game result")

		default:
			return pgnerrors.NewPGNError(pgnerrors.ErrUnexpectedToken, p.tok.Line, fmt.Sprintf("unexpected token %v", p.tok.Kind))
		}
	}
}

// handleSANMove parses the SAN text at p.tok, resolves it against the
// legal moves at the current cursor, appends it to the tree, and
// advances the cursor stack's top entry and the lexer.
func (p *Parser) handleSANMove(stack *[]gametree.Cursor, ravStack *[]ravFrame) error {
	text := p.tok.Value
	line := p.tok.Line
	cur := (*stack)[len(*stack)-1]

	pos, err := cur.Position()
	if err != nil {
		return pgnerrors.NewPGNError(pgnerrors.ErrIllegalMove, line, err.Error())
	}

	san, err := sanmove.Parse(text, pos.SideToMove())
	if err != nil {
		return pgnerrors.NewPGNError(pgnerrors.ErrInvalidMove, line, err.Error())
	}

	move, warnKind, resolveErr := findLegalMove(san, pos.AllLegalMoves())
	if resolveErr != nil {
		return pgnerrors.NewPGNError(resolveErr, line, text)
	}
	if warnKind != nil {
		p.warn(*warnKind, line, text)
	}

	next, err := cur.PlayMove(move)
	if err != nil {
		return pgnerrors.NewPGNError(pgnerrors.ErrIllegalMove, line, err.Error())
	}
	if san.HasSuffix {
		next.AddNAG(san.Suffix.NAG())
	}

	top := len(*ravStack) - 1
	if pending := (*ravStack)[top].pendingComment; pending != "" {
		next.SetPremoveComment(pending)
		(*ravStack)[top].pendingComment = ""
	}
	(*ravStack)[top].hasMove = true
	(*stack)[len(*stack)-1] = next

	return p.advance()
}

// findLegalMove implements spec section 4.2's five-step resolution
// order: an exact SanMove match against the legal move list; failing
// that, a wildcard-piece-type retry (the SAN got the piece letter
// wrong); failing that, a forced-capturing retry (the SAN omitted an
// "x" a capture actually requires). Each fallback is only taken if it
// resolves to exactly one candidate; anything else is an illegal or
// ambiguous move.
func findLegalMove(san sanmove.SanMove, legal chess.MoveList) (chess.Move, *pgnerrors.WarningKind, error) {
	if len(legal) == 0 {
		return chess.Move{}, nil, pgnerrors.ErrIllegalMove
	}

	exact := matcher.MatchList(san, legal)
	if len(exact) == 1 {
		return exact[0], nil, nil
	}
	if len(exact) > 1 {
		return chess.Move{}, nil, pgnerrors.ErrAmbiguousMove
	}

	wildcard := matcher.MatchListWildcardPiece(san, legal)
	if len(wildcard) == 1 {
		kind := pgnerrors.WarningMoveMissingPieceType
		return wildcard[0], &kind, nil
	}

	if !san.Capturing {
		forced := san
		forced.Capturing = true
		retry := matcher.MatchList(forced, legal)
		if len(retry) == 1 {
			kind := pgnerrors.WarningMoveMissingCapture
			return retry[0], &kind, nil
		}
	}

	return chess.Move{}, nil, pgnerrors.ErrIllegalMove
}

// ParseAll reads every game in r to completion, returning the games and,
// for each one, the warnings collected while reading it (the two slices
// are parallel and the same length; Parser.Warnings only ever reflects
// the most recently read game, so a caller walking a stream by hand has
// to snapshot it after every ReadGame call, which is exactly what this
// does).
func ParseAll(r io.Reader, cfg *config.Config) ([]*gametree.Game, [][]pgnerrors.PGNWarning, error) {
	p := NewParser(r, cfg)
	var games []*gametree.Game
	var warnings [][]pgnerrors.PGNWarning

	for {
		game, err := p.ReadGame()
		if err != nil {
			return games, warnings, err
		}
		if game == nil {
			return games, warnings, nil
		}
		games = append(games, game)
		warnings = append(warnings, p.Warnings())
	}
}
