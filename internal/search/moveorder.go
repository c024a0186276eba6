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

package search

import (
	"sort"

	"github.com/tkarger/AgateGo/internal/movegen"
	. "github.com/tkarger/AgateGo/internal/types"
)

// Orderer stages. The stage index advances strictly forward, the
// orderer is a plain state machine without polymorphism.
const (
	stagePvMove = iota
	stageTtMove
	stageGoodCaptures
	stageKillers
	stageQuiets
	stageBadCaptures
	stageDone
)

type scoredMove struct {
	move  Move
	score int64
}

// moveOrderer yields the legal moves of a node one by one in the
// priority order of the search: pv move, tt move, winning and equal
// captures by see, killers, remaining quiets by history score, losing
// captures. In genOnlyCaptures mode (quiescence) the killer and quiet
// stages are skipped.
//
// Each searcher thread owns one orderer per ply with preallocated
// buffers; reset() prepares it for a new node.
type moveOrderer struct {
	mg *movegen.Movegen

	stage           int
	genOnlyCaptures bool
	hasLegalMove    bool

	pvMove Move
	ttMove Move

	goodCaptures []scoredMove
	badCaptures  []scoredMove
	quiets       []scoredMove

	killers [2]Move

	idx       int
	killerIdx int
	generated bool
}

func newMoveOrderer() moveOrderer {
	return moveOrderer{
		mg:           movegen.NewMoveGen(),
		goodCaptures: make([]scoredMove, 0, MaxMoves),
		badCaptures:  make([]scoredMove, 0, MaxMoves),
		quiets:       make([]scoredMove, 0, MaxMoves),
	}
}

// reset prepares the orderer for a new node. pvMove and ttMove may be
// MoveNone; they are only yielded when they turn out to be legal moves
// of the position.
func (o *moveOrderer) reset(pvMove Move, ttMove Move, genOnlyCaptures bool) {
	o.stage = stagePvMove
	o.genOnlyCaptures = genOnlyCaptures
	o.hasLegalMove = false
	o.pvMove = pvMove.MoveOf()
	o.ttMove = ttMove.MoveOf()
	o.goodCaptures = o.goodCaptures[:0]
	o.badCaptures = o.badCaptures[:0]
	o.quiets = o.quiets[:0]
	o.killers = [2]Move{MoveNone, MoveNone}
	o.idx = 0
	o.killerIdx = 0
	o.generated = false
}

// generate produces all legal moves of the node, scores captures with
// see and quiets with the thread's history tables and partitions them
// into the stage buffers. Done lazily on the first next() call so a
// tt cutoff never pays for move generation.
func (o *moveOrderer) generate(t *thread, p *searchParams) {
	o.generated = true
	pos := p.pos
	us := pos.NextPlayer()

	mode := movegen.GenAll
	if o.genOnlyCaptures {
		mode = movegen.GenCap
	}
	for _, m := range *o.mg.GeneratePseudoLegalMoves(pos, mode) {
		if !pos.IsLegalMove(m) {
			continue
		}
		if pos.IsCapturingMove(m) || m.MoveType() == Promotion {
			sm := scoredMove{move: m, score: int64(see(pos, m))}
			if sm.score >= 0 {
				o.goodCaptures = append(o.goodCaptures, sm)
			} else {
				o.badCaptures = append(o.badCaptures, sm)
			}
		} else {
			o.quiets = append(o.quiets, scoredMove{
				move:  m,
				score: t.hist.RelativeScore(us, m.From(), m.To()),
			})
		}
	}
	sortScoredMoves(o.goodCaptures)
	sortScoredMoves(o.badCaptures)
	sortScoredMoves(o.quiets)

	if !o.genOnlyCaptures {
		for i := 0; i < 2; i++ {
			k := t.hist.KillerMoves[p.ply][i]
			if k != MoveNone && k != o.pvMove && k != o.ttMove && containsMove(o.quiets, k) {
				o.killers[i] = k
			}
		}
	}
}

// next returns the next move of the node together with its ordering
// score and true, or false when no moves are left. The score is only
// meaningful for captures where it is the see value of the exchange.
func (o *moveOrderer) next(t *thread, p *searchParams) (Move, int64, bool) {
	if !o.generated {
		o.generate(t, p)
	}
	for o.stage != stageDone {
		switch o.stage {
		case stagePvMove:
			o.stage = stageTtMove
			if o.pvMove != MoveNone {
				if m, score, found := takeMove(o, o.pvMove); found {
					o.hasLegalMove = true
					return m, score, true
				}
			}
		case stageTtMove:
			o.stage = stageGoodCaptures
			if o.ttMove != MoveNone && o.ttMove != o.pvMove {
				if m, score, found := takeMove(o, o.ttMove); found {
					o.hasLegalMove = true
					return m, score, true
				}
			}
		case stageGoodCaptures:
			if o.idx < len(o.goodCaptures) {
				sm := o.goodCaptures[o.idx]
				o.idx++
				if sm.move == MoveNone {
					continue
				}
				o.hasLegalMove = true
				return sm.move, sm.score, true
			}
			o.idx = 0
			if o.genOnlyCaptures {
				o.stage = stageBadCaptures
			} else {
				o.stage = stageKillers
			}
		case stageKillers:
			if o.killerIdx < 2 {
				k := o.killers[o.killerIdx]
				o.killerIdx++
				if k == MoveNone {
					continue
				}
				if m, score, found := takeMove(o, k); found {
					o.hasLegalMove = true
					return m, score, true
				}
				continue
			}
			o.stage = stageQuiets
		case stageQuiets:
			if o.idx < len(o.quiets) {
				sm := o.quiets[o.idx]
				o.idx++
				if sm.move == MoveNone {
					continue
				}
				o.hasLegalMove = true
				return sm.move, sm.score, true
			}
			o.idx = 0
			o.stage = stageBadCaptures
		case stageBadCaptures:
			if o.idx < len(o.badCaptures) {
				sm := o.badCaptures[o.idx]
				o.idx++
				if sm.move == MoveNone {
					continue
				}
				o.hasLegalMove = true
				return sm.move, sm.score, true
			}
			o.stage = stageDone
		}
	}
	return MoveNone, 0, false
}

// takeMove removes the given move from whichever buffer holds it and
// returns it with its score. Used by the pv, tt and killer stages so
// the move is not yielded again in its natural stage.
func takeMove(o *moveOrderer, m Move) (Move, int64, bool) {
	for _, buf := range [][]scoredMove{o.goodCaptures, o.badCaptures, o.quiets} {
		for i := range buf {
			if buf[i].move.MoveOf() == m {
				score := buf[i].score
				buf[i].move = MoveNone
				return m, score, true
			}
		}
	}
	return MoveNone, 0, false
}

func containsMove(buf []scoredMove, m Move) bool {
	for i := range buf {
		if buf[i].move.MoveOf() == m {
			return true
		}
	}
	return false
}

func sortScoredMoves(moves []scoredMove) {
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].score > moves[j].score
	})
}
