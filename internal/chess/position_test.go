package chess

import (
	"strings"
	"testing"
)

func TestFromFEN(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		wantErr bool
		checkFn func(Position) bool
	}{
		{
			name: "initial position",
			fen:  InitialFEN,
			checkFn: func(p Position) bool {
				return p.SideToMove() == White && p.FullmoveNumber() == 1
			},
		},
		{
			name: "after 1.e4",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			checkFn: func(p Position) bool {
				return p.SideToMove() == Black && p.board.EnPassant &&
					p.board.EPFile == 'e' && p.board.EPRank == '3'
			},
		},
		{
			name: "no castling rights",
			fen:  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w - - 0 1",
			checkFn: func(p Position) bool {
				return p.board.WKingCastle == 0 && p.board.WQueenCastle == 0 &&
					p.board.BKingCastle == 0 && p.board.BQueenCastle == 0
			},
		},
		{
			name:    "empty string",
			fen:     "",
			wantErr: true,
		},
		{
			name:    "invalid piece letter",
			fen:     "rnbqkbnx/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			wantErr: true,
		},
		{
			name:    "invalid side to move",
			fen:     "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := FromFEN(tt.fen)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromFEN() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.checkFn != nil && !tt.checkFn(p) {
				t.Errorf("FromFEN(%q) check failed", tt.fen)
			}
		})
	}
}

func TestPositionFEN_RoundTrip(t *testing.T) {
	tests := []string{
		InitialFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
		"8/8/8/8/8/8/8/4K3 w - - 0 1",
	}

	for _, fen := range tests {
		t.Run(fen, func(t *testing.T) {
			p, err := FromFEN(fen)
			if err != nil {
				t.Fatalf("FromFEN() error = %v", err)
			}
			got := p.FEN()
			if got != fen {
				t.Errorf("FEN() round trip = %q, want %q", got, fen)
			}
		})
	}
}

func TestInitialPosition(t *testing.T) {
	p := InitialPosition()
	if p.SideToMove() != White {
		t.Errorf("SideToMove() = %v, want White", p.SideToMove())
	}
	moves := p.AllLegalMoves()
	if len(moves) != 20 {
		t.Errorf("AllLegalMoves() from initial position = %d moves, want 20", len(moves))
	}
}

func TestAllLegalMoves_PinnedPieceCannotMove(t *testing.T) {
	// White king on e1, white rook pinned on e2 by black rook on e8.
	p, err := FromFEN("4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN() error = %v", err)
	}
	for _, m := range p.AllLegalMoves() {
		if m.From == (Square{'e', '2'}) && m.To.File != 'e' {
			t.Errorf("pinned rook produced illegal off-file move: %+v", m)
		}
	}
}

func TestAllLegalMoves_KingMayNotMoveIntoCheck(t *testing.T) {
	p, err := FromFEN("4k3/8/8/8/8/4r3/8/3K4 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN() error = %v", err)
	}
	for _, m := range p.AllLegalMoves() {
		if m.From == (Square{'d', '1'}) && m.To.File == 'e' {
			t.Errorf("king stepped onto the e-file still attacked by the black rook: %+v", m)
		}
	}
}

func TestAllLegalMoves_EnPassantCapture(t *testing.T) {
	p, err := FromFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2")
	if err != nil {
		t.Fatalf("FromFEN() error = %v", err)
	}
	found := false
	for _, m := range p.AllLegalMoves() {
		if m.From == (Square{'d', '4'}) && m.To == (Square{'e', '3'}) {
			found = true
			if !m.CapturingEnPassant {
				t.Errorf("d4xe3 should be flagged CapturingEnPassant")
			}
		}
	}
	if !found {
		t.Errorf("expected d4xe3 en passant capture among legal moves")
	}
}

func TestAllLegalMoves_CastlingBothSides(t *testing.T) {
	p, err := FromFEN("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("FromFEN() error = %v", err)
	}
	var sawKingside, sawQueenside bool
	for _, m := range p.AllLegalMoves() {
		switch m.Class {
		case KingsideCastle:
			sawKingside = true
		case QueensideCastle:
			sawQueenside = true
		}
	}
	if !sawKingside || !sawQueenside {
		t.Errorf("expected both castling moves available, kingside=%v queenside=%v", sawKingside, sawQueenside)
	}
}

func TestAllLegalMoves_CastlingBlockedThroughCheck(t *testing.T) {
	// Black rook on f8 attacks f1, so white may not castle kingside through it.
	p, err := FromFEN("5r2/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("FromFEN() error = %v", err)
	}
	for _, m := range p.AllLegalMoves() {
		if m.Class == KingsideCastle {
			t.Errorf("castling through an attacked square should be illegal, got %+v", m)
		}
	}
}

func TestPositionMakeMove_PawnDoublePushSetsEnPassant(t *testing.T) {
	p := InitialPosition()
	var push Move
	for _, m := range p.AllLegalMoves() {
		if m.From == (Square{'e', '2'}) && m.To == (Square{'e', '4'}) {
			push = m
		}
	}
	next := p.MakeMove(push)
	if !next.board.EnPassant || next.board.EPFile != 'e' || next.board.EPRank != '3' {
		t.Errorf("e2e4 should set en passant target e3, board = %+v", next.board)
	}
	if next.SideToMove() != Black {
		t.Errorf("SideToMove() after white's move = %v, want Black", next.SideToMove())
	}
}

func TestPositionMakeMove_CastlingMovesRookAndClearsRights(t *testing.T) {
	p, err := FromFEN("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("FromFEN() error = %v", err)
	}
	var castle Move
	for _, m := range p.AllLegalMoves() {
		if m.Class == KingsideCastle {
			castle = m
		}
	}
	next := p.MakeMove(castle)
	if next.board.Get('g', '1') != W(King) || next.board.Get('f', '1') != W(Rook) {
		t.Errorf("kingside castle should place king on g1 and rook on f1")
	}
	if next.board.WKingCastle != 0 || next.board.WQueenCastle != 0 {
		t.Errorf("castling should clear both white castling rights")
	}
}

func TestPositionCheckState(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want CheckState
	}{
		{
			name: "initial position",
			fen:  InitialFEN,
			want: NoCheck,
		},
		{
			name: "fool's mate",
			fen:  "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
			want: Checkmate,
		},
		{
			name: "check but not mate",
			fen:  "4k3/8/8/8/8/8/4Q3/4K3 b - - 0 1",
			want: Check,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := FromFEN(tt.fen)
			if err != nil {
				t.Fatalf("FromFEN() error = %v", err)
			}
			if got := p.CheckState(); got != tt.want {
				t.Errorf("CheckState() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsStalemate(t *testing.T) {
	// Classic stalemate: black king on a8 has no legal move and is not in check.
	b, err := boardFromFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	if err != nil {
		t.Fatalf("boardFromFEN() error = %v", err)
	}
	if !IsStalemate(b) {
		t.Errorf("expected stalemate position to be reported as such")
	}
	if IsCheckmate(b) {
		t.Errorf("stalemate position should not also be reported as checkmate")
	}
}

func TestSquareString(t *testing.T) {
	s := Square{File: 'e', Rank: '4'}
	if got := s.String(); got != "e4" {
		t.Errorf("Square.String() = %q, want %q", got, "e4")
	}
}

func TestMove_IsCastlingAndIsNull(t *testing.T) {
	tests := []struct {
		name        string
		m           Move
		wantCastle  bool
		wantIsNull  bool
	}{
		{name: "kingside castle", m: Move{Class: KingsideCastle}, wantCastle: true},
		{name: "queenside castle", m: Move{Class: QueensideCastle}, wantCastle: true},
		{name: "pawn move", m: Move{Class: PawnMove}, wantCastle: false},
		{name: "null move", m: Move{Class: NullMove}, wantIsNull: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsCastling(); got != tt.wantCastle {
				t.Errorf("IsCastling() = %v, want %v", got, tt.wantCastle)
			}
			if got := tt.m.IsNull(); got != tt.wantIsNull {
				t.Errorf("IsNull() = %v, want %v", got, tt.wantIsNull)
			}
		})
	}
}

func TestPieceFromLetter(t *testing.T) {
	tests := map[byte]Piece{
		'N': Knight,
		'B': Bishop,
		'R': Rook,
		'Q': Queen,
		'K': King,
		'X': Empty,
	}
	for letter, want := range tests {
		if got := PieceFromLetter(letter); got != want {
			t.Errorf("PieceFromLetter(%q) = %v, want %v", letter, got, want)
		}
	}
}

func TestColoredPieceRoundTrip(t *testing.T) {
	for _, c := range []Color{White, Black} {
		for _, p := range []Piece{Pawn, Knight, Bishop, Rook, Queen, King} {
			cp := MakeColoredPiece(c, p)
			if ExtractColor(cp) != c {
				t.Errorf("ExtractColor(MakeColoredPiece(%v, %v)) = %v, want %v", c, p, ExtractColor(cp), c)
			}
			if ExtractPiece(cp) != p {
				t.Errorf("ExtractPiece(MakeColoredPiece(%v, %v)) = %v, want %v", c, p, ExtractPiece(cp), p)
			}
		}
	}
}

func TestFENPieceFields_RoundTripThroughSANLetters(t *testing.T) {
	p, err := FromFEN(InitialFEN)
	if err != nil {
		t.Fatalf("FromFEN() error = %v", err)
	}
	got := p.FEN()
	if !strings.HasPrefix(got, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR") {
		t.Errorf("FEN() piece placement = %q", got)
	}
}
