package gametree

import (
	"testing"

	"github.com/lgbarn/chessgame/internal/chess"
)

func e2e4() chess.Move {
	return chess.Move{
		From:  chess.Square{File: 'e', Rank: '2'},
		To:    chess.Square{File: 'e', Rank: '4'},
		Piece: chess.MakeColoredPiece(chess.White, chess.Pawn),
		Class: chess.PawnMove,
	}
}

func e7e5() chess.Move {
	return chess.Move{
		From:  chess.Square{File: 'e', Rank: '7'},
		To:    chess.Square{File: 'e', Rank: '5'},
		Piece: chess.MakeColoredPiece(chess.Black, chess.Pawn),
		Class: chess.PawnMove,
	}
}

func d7d5() chess.Move {
	return chess.Move{
		From:  chess.Square{File: 'd', Rank: '7'},
		To:    chess.Square{File: 'd', Rank: '5'},
		Piece: chess.MakeColoredPiece(chess.Black, chess.Pawn),
		Class: chess.PawnMove,
	}
}

func TestAddNode_AllocatesSequentialIDs(t *testing.T) {
	g := NewGame()
	root := g.Root()

	n1, err := root.PlayMove(e2e4())
	if err != nil {
		t.Fatalf("PlayMove() error: %v", err)
	}
	if n1.ID() != RootNodeID+1 {
		t.Errorf("first child id = %d, want %d", n1.ID(), RootNodeID+1)
	}

	n2, err := n1.PlayMove(e7e5())
	if err != nil {
		t.Fatalf("PlayMove() error: %v", err)
	}
	if n2.ID() != RootNodeID+2 {
		t.Errorf("second child id = %d, want %d", n2.ID(), RootNodeID+2)
	}
}

func TestAddNode_DedupsByMoveEquality(t *testing.T) {
	g := NewGame()
	root := g.Root()

	first, err := root.PlayMove(e2e4())
	if err != nil {
		t.Fatalf("PlayMove() error: %v", err)
	}
	second, err := root.PlayMove(e2e4())
	if err != nil {
		t.Fatalf("PlayMove() error: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("appending an equal move allocated a new node: %v != %v", first, second)
	}
	if root.ChildCount() != 1 {
		t.Errorf("ChildCount() = %d, want 1 after a dedup'd append", root.ChildCount())
	}
}

func TestAddVariation_AddsSiblingUnderSameParent(t *testing.T) {
	g := NewGame()
	root := g.Root()

	mainline, err := root.PlayMove(e2e4())
	if err != nil {
		t.Fatalf("PlayMove() error: %v", err)
	}
	reply, err := mainline.PlayMove(e7e5())
	if err != nil {
		t.Fatalf("PlayMove() error: %v", err)
	}

	variation, ok, err := reply.AddVariation(d7d5())
	if err != nil {
		t.Fatalf("AddVariation() error: %v", err)
	}
	if !ok {
		t.Fatal("AddVariation() returned ok=false")
	}
	if mainline.ChildCount() != 2 {
		t.Fatalf("mainline.ChildCount() = %d, want 2", mainline.ChildCount())
	}
	if variation.VariationNumber() != 1 {
		t.Errorf("VariationNumber() = %d, want 1", variation.VariationNumber())
	}
	if !variation.StartsVariation() {
		t.Error("StartsVariation() = false, want true")
	}
	if reply.StartsVariation() {
		t.Error("mainline reply StartsVariation() = true, want false")
	}
}

func TestPosition_ReplaysFromNearestCachedAncestor(t *testing.T) {
	g := NewGame()
	root := g.Root()

	n1, err := root.PlayMove(e2e4())
	if err != nil {
		t.Fatalf("PlayMove() error: %v", err)
	}
	n2, err := n1.PlayMove(e7e5())
	if err != nil {
		t.Fatalf("PlayMove() error: %v", err)
	}

	pos, err := n2.Position()
	if err != nil {
		t.Fatalf("Position() error: %v", err)
	}
	if pos.SideToMove() != chess.White {
		t.Errorf("SideToMove() after 1.e4 e5 = %v, want White", pos.SideToMove())
	}
	if pos.FullmoveNumber() != 2 {
		t.Errorf("FullmoveNumber() after 1.e4 e5 = %d, want 2", pos.FullmoveNumber())
	}
}

func TestMetadata_PreservesInsertionOrderAndLookup(t *testing.T) {
	var m Metadata
	m.Add("Event", "Test Championship")
	m.Add("White", "Tal")
	m.Add("Black", "Botvinnik")

	tags := m.Tags()
	if len(tags) != 3 || tags[0].Name != "Event" || tags[2].Name != "Black" {
		t.Errorf("Tags() = %v, want insertion order Event/White/Black", tags)
	}

	if v, ok := m.Get("White"); !ok || v != "Tal" {
		t.Errorf("Get(White) = %q, %v, want Tal, true", v, ok)
	}
	if _, ok := m.Get("ECO"); ok {
		t.Error("Get(ECO) = ok, want not found")
	}
}

func TestIsSTRTag(t *testing.T) {
	for _, name := range []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"} {
		if !IsSTRTag(name) {
			t.Errorf("IsSTRTag(%q) = false, want true", name)
		}
	}
	if IsSTRTag("ECO") {
		t.Error("IsSTRTag(ECO) = true, want false")
	}
}

func TestCursorEquality(t *testing.T) {
	g := NewGame()
	root1 := g.Root()
	root2 := g.Root()
	if !root1.Equal(root2) {
		t.Error("two cursors over the same root are not Equal")
	}

	other := NewGame()
	if root1.Equal(other.Root()) {
		t.Error("cursors over different games compared equal")
	}
}
