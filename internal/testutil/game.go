package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/chessgame/internal/config"
	"github.com/lgbarn/chessgame/internal/gametree"
	"github.com/lgbarn/chessgame/internal/parser"
)

// ParseTestGame parses a PGN string and returns the first game, or nil if
// parsing fails or no games are found. Use this for tests where parse
// failure is an acceptable outcome.
func ParseTestGame(pgn string) *gametree.Game {
	if games := ParseTestGames(pgn); len(games) > 0 {
		return games[0]
	}
	return nil
}

// ParseTestGames parses a PGN string and returns all games found.
// Returns an empty slice if parsing fails or no games are found.
func ParseTestGames(pgn string) []*gametree.Game {
	cfg := config.NewConfig()
	games, _, err := parser.ParseAll(strings.NewReader(pgn), cfg)
	if err != nil || len(games) == 0 {
		return nil
	}
	return games
}

// MustParseGame parses a PGN string and returns the first game. It calls
// t.Fatal if parsing fails or no games are found.
func MustParseGame(t *testing.T, pgn string) *gametree.Game {
	t.Helper()
	game := ParseTestGame(pgn)
	if game == nil {
		t.Fatalf("failed to parse test game:\n%s", pgn)
	}
	return game
}

// MustParseGames parses a PGN string and returns all games found. It
// calls t.Fatal if parsing fails or no games are found.
func MustParseGames(t *testing.T, pgn string) []*gametree.Game {
	t.Helper()
	games := ParseTestGames(pgn)
	if len(games) == 0 {
		t.Fatalf("failed to parse any games from PGN:\n%s", pgn)
	}
	return games
}
