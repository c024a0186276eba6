//
// AgateGo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2023-2026 Tobias Karger
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package history provides the heuristic tables a searcher thread
// maintains while searching: history scores, butterfly counters,
// killer moves and the quiet moves already tried per ply. All tables
// are strictly thread-owned - each searcher thread creates its own
// instance and no other thread ever writes to it.
package history

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	. "github.com/tkarger/AgateGo/internal/types"
)

var out = message.NewPrinter(language.German)

// History is the collection of heuristic tables updated during search
// to inform move ordering and pruning decisions.
type History struct {
	// HistoryScore is incremented by depth² for a quiet move causing a
	// beta cutoff and decremented by depth² for every quiet move tried
	// before it at the same node. Can become negative - used by the
	// history pruning and LMR decisions. 64-bit because of the ±depth²
	// accumulation over long searches.
	HistoryScore [ColorLength][SqLength][SqLength]int64

	// HhScore counts only the cutoff increments (relative history
	// numerator).
	HhScore [ColorLength][SqLength][SqLength]uint64

	// BfScore counts every searched quiet move which did not cause a
	// cutoff (relative history denominator, "butterfly boards").
	BfScore [ColorLength][SqLength][SqLength]uint64

	// KillerMoves holds the two most recent quiet cutoff moves per ply.
	KillerMoves [MaxDepth][2]Move

	// QuietsTried records the quiet moves already searched at a ply of
	// the current search path. Reset on node entry, read by the cutoff
	// update to punish quiets which did not cut.
	QuietsTried [MaxDepth][]Move
}

// NewHistory creates a new History instance with empty tables.
func NewHistory() *History {
	h := &History{}
	for ply := 0; ply < MaxDepth; ply++ {
		h.QuietsTried[ply] = make([]Move, 0, 64)
	}
	return h
}

// ClearPly resets the quiets-tried list for the given ply. Called on
// entry of every search node.
func (h *History) ClearPly(ply int) {
	h.QuietsTried[ply] = h.QuietsTried[ply][:0]
}

// IsKiller checks if the move is one of the killers of the ply.
func (h *History) IsKiller(ply int, m Move) bool {
	return h.KillerMoves[ply][0] == m.MoveOf() || h.KillerMoves[ply][1] == m.MoveOf()
}

// PushKiller stores a quiet cutoff move as killer for the ply unless
// it is already stored. The previous first killer is shifted to the
// second slot.
func (h *History) PushKiller(ply int, m Move) {
	m = m.MoveOf()
	if h.KillerMoves[ply][0] == m || h.KillerMoves[ply][1] == m {
		return
	}
	h.KillerMoves[ply][1] = h.KillerMoves[ply][0]
	h.KillerMoves[ply][0] = m
}

// String returns a debug dump of all non empty history table entries
// and killer slots.
func (h *History) String() string {
	sb := strings.Builder{}
	for c := White; c <= Black; c++ {
		for from := SqA1; from <= SqH8; from++ {
			for to := SqA1; to <= SqH8; to++ {
				score := h.HistoryScore[c][from][to]
				hh := h.HhScore[c][from][to]
				bf := h.BfScore[c][from][to]
				if score == 0 && hh == 0 && bf == 0 {
					continue
				}
				sb.WriteString(out.Sprintf("%s %s%s: history=%-9d hh=%-7d bf=%-7d\n",
					c.String(), from.String(), to.String(), score, hh, bf))
			}
		}
	}
	for ply := 0; ply < MaxDepth; ply++ {
		if h.KillerMoves[ply][0] == MoveNone && h.KillerMoves[ply][1] == MoveNone {
			continue
		}
		sb.WriteString(out.Sprintf("ply %d: killer1=%s killer2=%s\n",
			ply, h.KillerMoves[ply][0].StringUci(), h.KillerMoves[ply][1].StringUci()))
	}
	return sb.String()
}

// RelativeScore returns the combined ordering score of a quiet move:
// the raw history score plus the cutoff counter scaled down by the
// butterfly counter.
func (h *History) RelativeScore(c Color, from Square, to Square) int64 {
	score := h.HistoryScore[c][from][to]
	bf := h.BfScore[c][from][to]
	if bf == 0 {
		bf = 1
	}
	return score + int64(h.HhScore[c][from][to]/bf)
}
