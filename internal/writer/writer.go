// Package writer serializes a game tree back to PGN text: metadata block,
// movetext with move numbers and line wrapping, termination marker.
package writer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lgbarn/chessgame/internal/chess"
	"github.com/lgbarn/chessgame/internal/config"
	"github.com/lgbarn/chessgame/internal/gametree"
	"github.com/lgbarn/chessgame/internal/pgnerrors"
	"github.com/lgbarn/chessgame/internal/sanmove"
)

// TagFormat selects which tags WriteGame's metadata block includes.
type TagFormat int

const (
	// AllTags emits the Seven Tag Roster followed by every other tag.
	AllTags TagFormat = iota
	// SevenTagRosterOnly emits only the Seven Tag Roster.
	SevenTagRosterOnly
	// NoTags emits no metadata block at all.
	NoTags
)

// Options controls which parts of a game WriteGame renders. The line-wrap
// budget itself lives in config.Config, not here, since it is a property
// of the output stream rather than a content-selection choice.
type Options struct {
	TagFormat      TagFormat
	KeepComments   bool
	KeepNAGs       bool
	KeepVariations bool
}

// DefaultOptions renders a game in full: every tag, every comment, every
// NAG, every recorded variation.
func DefaultOptions() Options {
	return Options{TagFormat: AllTags, KeepComments: true, KeepNAGs: true, KeepVariations: true}
}

// WriteAll writes each of games to w in turn, in the given order.
func WriteAll(w io.Writer, games []*gametree.Game, cfg *config.Config, opts Options) error {
	for _, game := range games {
		if err := WriteGame(w, game, cfg, opts); err != nil {
			return err
		}
	}
	return nil
}

// WriteGame serializes one game to w: metadata, a blank line, an optional
// overall comment, movetext, the termination marker, and a trailing blank
// line separating it from whatever follows.
func WriteGame(w io.Writer, game *gametree.Game, cfg *config.Config, opts Options) error {
	writeMetadata(w, game.Metadata, opts)
	fmt.Fprintln(w)

	tw := newTokenWriter(w, int(cfg.MaxLineLength))

	root := game.Root()
	if opts.KeepComments && root.Comment() != "" {
		writeComment(tw, root.Comment())
		tw.NewLine()
		fmt.Fprintln(w)
	}

	state := &lineState{}
	if err := writeSubtree(tw, root, opts, state); err != nil {
		return err
	}

	writeResult(tw, game.Metadata)
	tw.NewLine()
	fmt.Fprintln(w)
	return nil
}

func writeMetadata(w io.Writer, md gametree.Metadata, opts Options) {
	if opts.TagFormat == NoTags {
		return
	}
	for _, name := range gametree.STRTags() {
		value, ok := md.Get(name)
		if !ok || value == "" {
			value = "?"
		}
		fmt.Fprintf(w, "[%s \"%s\"]\n", name, escapeTagValue(value))
	}
	if opts.TagFormat == SevenTagRosterOnly {
		return
	}

	seen := make(map[string]bool)
	var extra []gametree.Tag
	for _, t := range md.Tags() {
		if gametree.IsSTRTag(t.Name) || seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		extra = append(extra, t)
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Name < extra[j].Name })
	for _, t := range extra {
		fmt.Fprintf(w, "[%s \"%s\"]\n", t.Name, escapeTagValue(t.Value))
	}
}

func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// lineState tracks enough of the last-written movetext token to decide
// whether a black move needs its move number repeated: only a black move
// immediately following a white move of the same full-move number gets
// to skip it.
type lineState struct {
	lastWasWhiteMove bool
	lastWhiteMoveNum uint32
}

// writeSubtree walks cursor's mainline (child 0 at each step), writing
// each move and, when opts.KeepVariations, every sibling alternative as a
// parenthesized RAV attached at the same ply.
func writeSubtree(tw *tokenWriter, cursor gametree.Cursor, opts Options, state *lineState) error {
	for {
		child, ok := cursor.Child(0)
		if !ok {
			return nil
		}
		if err := writeNode(tw, cursor, child, opts, state); err != nil {
			return err
		}

		wroteVariation := false
		if opts.KeepVariations {
			for i := 1; i < cursor.ChildCount(); i++ {
				variation, _ := cursor.Child(i)
				if err := writeVariation(tw, cursor, variation, opts); err != nil {
					return err
				}
				wroteVariation = true
			}
		}
		if wroteVariation {
			state.lastWasWhiteMove = false
		}
		cursor = child
	}
}

// writeVariation writes one RAV: "(" the variation's own move onward
// through its mainline and any further nested variations, then ")".
func writeVariation(tw *tokenWriter, parent, variation gametree.Cursor, opts Options) error {
	if _, ok := variation.Parent(); !ok {
		return pgnerrors.NewPGNError(pgnerrors.ErrCannotStartRav, 0, "writer: variation node has no parent")
	}

	tw.WriteOpen("(")
	varState := &lineState{}
	if err := writeNode(tw, parent, variation, opts, varState); err != nil {
		return err
	}
	if err := writeSubtree(tw, variation, opts, varState); err != nil {
		return err
	}
	tw.WriteNoSpace(")")
	return nil
}

// writeNode writes one move: its pre-move comment, move number, SAN text
// with check/mate suffix, NAGs, and post-move comment, then updates state
// for the move just written.
func writeNode(tw *tokenWriter, parent, node gametree.Cursor, opts Options, state *lineState) error {
	parentPos, err := parent.Position()
	if err != nil {
		return err
	}

	san, ok := sanmove.Generate(node.Move(), parentPos.AllLegalMoves())
	if !ok {
		return pgnerrors.NewPGNError(pgnerrors.ErrInvalidMove, 0, "writer: move does not match any legal move of its parent position")
	}

	if opts.KeepComments {
		if c := node.PremoveComment(); c != "" {
			writeComment(tw, c)
			state.lastWasWhiteMove = false
		}
	}

	isWhite := parentPos.SideToMove() == chess.White
	moveNum := parentPos.FullmoveNumber()
	switch {
	case isWhite:
		tw.Write(fmt.Sprintf("%d.", moveNum))
	case !(state.lastWasWhiteMove && state.lastWhiteMoveNum == moveNum):
		tw.Write(fmt.Sprintf("%d...", moveNum))
	}

	text := san.Text
	pos, err := node.Position()
	if err != nil {
		return err
	}
	switch pos.CheckState() {
	case chess.Checkmate:
		text += "#"
	case chess.Check:
		text += "+"
	}
	tw.Write(text)

	if opts.KeepNAGs {
		for _, nag := range node.NAGs() {
			tw.Write(fmt.Sprintf("$%d", nag))
		}
	}

	comment := node.Comment()
	if isWhite {
		state.lastWasWhiteMove = true
		state.lastWhiteMoveNum = moveNum
	} else {
		state.lastWasWhiteMove = false
	}

	if opts.KeepComments && comment != "" {
		writeComment(tw, comment)
		state.lastWasWhiteMove = false
	}
	return nil
}

func writeResult(tw *tokenWriter, md gametree.Metadata) {
	result, ok := md.Get("Result")
	if !ok || result == "" {
		result = "?"
	}
	tw.Write(result)
}

// writeComment renders text as a brace-delimited comment, splitting it
// into space-separated words so each becomes its own wrappable token: the
// opening "{" attaches to the first word, the closing "}" to the last.
func writeComment(tw *tokenWriter, text string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		tw.Write("{}")
		return
	}
	words[0] = "{" + words[0]
	words[len(words)-1] = words[len(words)-1] + "}"
	for _, word := range words {
		tw.Write(word)
	}
}

// tokenWriter enforces a maximum output line length, adapted from the
// teacher's OutputWriter: it tracks whether the next token needs a
// leading space and, if writing it would overflow the line, breaks to a
// new line instead of emitting that space. Token-internal content is
// never itself broken.
type tokenWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

func newTokenWriter(w io.Writer, maxLineLength int) *tokenWriter {
	if maxLineLength <= 0 {
		maxLineLength = 79
	}
	return &tokenWriter{w: w, maxLineLength: maxLineLength}
}

// Write writes s, preceded by a space if one is pending and s fits on the
// current line, or by a newline if s would overflow it.
func (t *tokenWriter) Write(s string) {
	if t.needsSpace && len(s) > 0 {
		if t.lineLength+1+len(s) > t.maxLineLength {
			fmt.Fprintln(t.w)
			t.lineLength = 0
			t.needsSpace = false
		} else {
			fmt.Fprint(t.w, " ")
			t.lineLength++
		}
	}
	fmt.Fprint(t.w, s)
	t.lineLength += len(s)
	t.needsSpace = true
}

// WriteNoSpace writes s with no leading space, for tokens like a RAV's
// closing ")" that must hug whatever preceded them.
func (t *tokenWriter) WriteNoSpace(s string) {
	fmt.Fprint(t.w, s)
	t.lineLength += len(s)
	t.needsSpace = true
}

// WriteOpen writes s like Write (a leading space if one is pending and s
// fits, or a newline if it would overflow), but leaves no pending space
// afterward, for tokens like a RAV's opening "(" that the following token
// must hug.
func (t *tokenWriter) WriteOpen(s string) {
	t.Write(s)
	t.needsSpace = false
}

// NewLine starts a new output line unconditionally.
func (t *tokenWriter) NewLine() {
	fmt.Fprintln(t.w)
	t.lineLength = 0
	t.needsSpace = false
}
