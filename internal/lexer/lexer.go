// Package lexer implements the streaming PGN tokenizer: a byte-at-a-time
// scanner producing a lazy sequence of token.Token values, grounded on the
// teacher's table-driven character classification but narrowed to pure
// tokenization (SAN decoding happens one layer up, in sanmove).
package lexer

import (
	"bufio"
	"errors"
	"io"

	"github.com/lgbarn/chessgame/internal/config"
	"github.com/lgbarn/chessgame/internal/pgnerrors"
	"github.com/lgbarn/chessgame/internal/token"
)

// Lexer tokenizes PGN input from a byte stream.
type Lexer struct {
	r    *bufio.Reader
	cfg  *config.Config
	line int

	lastByte  byte
	canUnread bool
}

// symbolChars classifies bytes that may continue a Symbol token: tag
// names, SAN moves, and castling literals all share this character class.
var symbolChars [256]bool

func init() {
	for c := byte('a'); c <= 'z'; c++ {
		symbolChars[c] = true
	}
	for c := byte('A'); c <= 'Z'; c++ {
		symbolChars[c] = true
	}
	for c := byte('0'); c <= '9'; c++ {
		symbolChars[c] = true
	}
	for _, c := range []byte{'_', '+', '#', '=', '?', '!', '/', '-'} {
		symbolChars[c] = true
	}
}

// NewLexer creates a lexer reading from r. If cfg is nil, a default
// config is created.
func NewLexer(r io.Reader, cfg *config.Config) *Lexer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Lexer{r: bufio.NewReader(r), cfg: cfg, line: 1}
}

// LineNumber returns the 1-based line the lexer is currently positioned
// on.
func (l *Lexer) LineNumber() int {
	return l.line
}

func (l *Lexer) readByte() (byte, error) {
	c, err := l.r.ReadByte()
	if err != nil {
		l.canUnread = false
		return 0, err
	}
	if c == '\n' {
		l.line++
	}
	l.lastByte = c
	l.canUnread = true
	return c, nil
}

// PeekByte returns the next byte without consuming it, and whether one
// was available.
func (l *Lexer) PeekByte() (byte, bool) {
	c, err := l.r.ReadByte()
	if err != nil {
		return 0, false
	}
	l.r.UnreadByte()
	return c, true
}

// unreadByte pushes the most recently read byte back onto the stream. It
// may be called at most once per byte read. Unexported: nothing outside
// the lexer needs to push a byte back once NextToken has classified it —
// the parser resynchronizes at the token level instead, via its
// unconditional advance at the top of ReadGame's outer loop.
func (l *Lexer) unreadByte() error {
	if !l.canUnread {
		return errors.New("lexer: nothing to unread")
	}
	if err := l.r.UnreadByte(); err != nil {
		return err
	}
	if l.lastByte == '\n' {
		l.line--
	}
	l.canUnread = false
	return nil
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// NextToken returns the next token in the stream. Past end-of-input it
// keeps returning an EndOfInput token with a nil error; any other I/O
// failure, or an unterminated string/comment, is returned as an error
// wrapping pgnerrors.ErrInputError.
func (l *Lexer) NextToken() (token.Token, error) {
	c, err := l.readByte()
	for err == nil && isWhitespace(c) {
		c, err = l.readByte()
	}
	if err != nil {
		return token.Token{Kind: token.EndOfInput, Line: l.line}, nil
	}

	line := l.line
	switch {
	case c == '[':
		return token.Token{Kind: token.OpenBracket, Line: line}, nil
	case c == ']':
		return token.Token{Kind: token.CloseBracket, Line: line}, nil
	case c == '(':
		return token.Token{Kind: token.OpenParen, Line: line}, nil
	case c == ')':
		return token.Token{Kind: token.CloseParen, Line: line}, nil
	case c == '.':
		return token.Token{Kind: token.Dot, Line: line}, nil
	case c == '*':
		return token.Token{Kind: token.GameResult, Line: line, Value: "*"}, nil
	case c == '"':
		return l.readString(line)
	case c == '{':
		return l.readComment(line)
	case c == '$':
		return l.readNAG(line), nil
	case isDigit(c):
		return l.readNumberOrResult(c, line), nil
	case isAlpha(c):
		return l.readSymbol(c, line), nil
	default:
		return token.Token{Kind: token.Invalid, Line: line, Value: string(c)}, nil
	}
}

func (l *Lexer) readString(startLine int) (token.Token, error) {
	var sb []byte
	for {
		c, err := l.readByte()
		if err != nil {
			return token.Token{}, pgnerrors.NewPGNError(pgnerrors.ErrInputError, startLine, "unterminated string")
		}
		if c == '"' {
			return token.Token{Kind: token.String, Line: startLine, Value: string(sb)}, nil
		}
		sb = append(sb, c)
	}
}

func (l *Lexer) readComment(startLine int) (token.Token, error) {
	var sb []byte
	depth := 1
	for {
		c, err := l.readByte()
		if err != nil {
			return token.Token{}, pgnerrors.NewPGNError(pgnerrors.ErrInputError, startLine, "unterminated comment")
		}
		switch {
		case c == '{' && l.cfg.AllowNestedComments:
			depth++
			sb = append(sb, c)
		case c == '}':
			depth--
			if depth > 0 {
				sb = append(sb, c)
				continue
			}
			return token.Token{Kind: token.Comment, Line: startLine, Value: string(sb)}, nil
		case isWhitespace(c):
			sb = append(sb, ' ')
		default:
			sb = append(sb, c)
		}
	}
}

func (l *Lexer) readNAG(startLine int) token.Token {
	var sb []byte
	for {
		c, ok := l.PeekByte()
		if !ok || !isDigit(c) {
			break
		}
		l.readByte()
		sb = append(sb, c)
	}
	return token.Token{Kind: token.NAG, Line: startLine, Value: string(sb)}
}

func (l *Lexer) readNumberOrResult(first byte, startLine int) token.Token {
	sb := []byte{first}
	onlyDigits := true

	for {
		c, ok := l.PeekByte()
		if !ok {
			break
		}
		if isDigit(c) {
			l.readByte()
			sb = append(sb, c)
			continue
		}
		if c == '/' || c == '-' {
			onlyDigits = false
			l.readByte()
			sb = append(sb, c)
			continue
		}
		break
	}

	text := string(sb)
	switch text {
	case "1-0", "0-1", "1/2-1/2":
		return token.Token{Kind: token.GameResult, Line: startLine, Value: text}
	}
	if onlyDigits {
		return token.Token{Kind: token.Number, Line: startLine, Value: text}
	}
	return token.Token{Kind: token.Invalid, Line: startLine, Value: text}
}

func (l *Lexer) readSymbol(first byte, startLine int) token.Token {
	sb := []byte{first}
	for {
		c, ok := l.PeekByte()
		if !ok || !symbolChars[c] {
			break
		}
		l.readByte()
		sb = append(sb, c)
	}
	return token.Token{Kind: token.Symbol, Line: startLine, Value: string(sb)}
}
