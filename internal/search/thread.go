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
	"time"

	"github.com/tkarger/AgateGo/internal/config"
	"github.com/tkarger/AgateGo/internal/evaluator"
	"github.com/tkarger/AgateGo/internal/history"
	"github.com/tkarger/AgateGo/internal/movegen"
	"github.com/tkarger/AgateGo/internal/moveslice"
	"github.com/tkarger/AgateGo/internal/position"
	. "github.com/tkarger/AgateGo/internal/types"
)

// thread is the per searcher state of one lazy SMP thread. Each thread
// runs its own iterative deepening loop on its own position clone with
// its own heuristic tables and repetition history. Threads share only
// the transposition table and the controller (stop flag, clock, node
// counters) through the Search facade.
type thread struct {
	id     int
	search *Search

	rootPosition position.Position
	hist         *history.History
	eval         *evaluator.Evaluator
	orderers     []moveOrderer

	// pvTable[ply] holds the best line found at that ply of the
	// current search path, pvTable[0] the best root line.
	pvTable [MaxDepth + 1]*moveslice.MoveSlice

	// currentPv is the root pv of the previous (or currently
	// improving) iteration, pvHashes the zobrist keys along it
	// starting with the root position. Used by the pv-move stage.
	currentPv     *moveslice.MoveSlice
	pvHashes      []Key
	lastRootValue Value

	rep             repetitionHistory
	rootPliesPlayed int

	selfStop bool
	nodes    uint64
	seldepth int
	stats    Statistics

	// result of the deepest completed iteration. A stopped incomplete
	// iteration never overwrites it.
	result *Result
}

func newThread(id int, s *Search, pos position.Position) *thread {
	t := &thread{
		id:           id,
		search:       s,
		rootPosition: pos,
		hist:         history.NewHistory(),
		eval:         evaluator.NewEvaluator(),
		currentPv:    moveslice.NewMoveSlice(MaxDepth + 1),
	}
	for i := range t.pvTable {
		t.pvTable[i] = moveslice.NewMoveSlice(MaxDepth + 1)
	}
	t.orderers = make([]moveOrderer, MaxDepth)
	for i := range t.orderers {
		t.orderers[i] = newMoveOrderer()
	}
	t.rep.seed(s.gameHistory)
	t.rootPliesPlayed = len(s.gameHistory)
	t.lastRootValue = ValueNA
	return t
}

// iterativeDeepening runs the depth incrementing outer loop of the
// thread: search at increasing depths until the depth limit is reached
// or the controller signals stop. Only completed depths produce a
// result; the time budget is consulted after every completed depth.
func (t *thread) iterativeDeepening(maxDepth int) {
	color := Value(1)
	if t.rootPosition.NextPlayer() == Black {
		color = -1
	}

	lastValue := ValueNA
	prevBestMove := MoveNone

	for depth := 1; depth <= maxDepth; depth++ {
		t.stats.CurrentIterationDepth = depth
		t.stats.CurrentSearchDepth = depth
		if t.seldepth < depth {
			t.seldepth = depth
		}

		var value Value
		if config.Settings.Search.UseAspiration &&
			depth > config.Settings.Search.AspirationDepth &&
			lastValue != ValueNA && !lastValue.IsCheckMateValue() {
			value = t.aspirationSearch(depth, lastValue, color)
		} else {
			value = t.principalVariationSearch(
				newSearchParams(-ValueInfinite, ValueInfinite, depth, 0, color, &t.rootPosition))
		}

		// a stopped iteration is unusable - keep the result of the
		// deepest completed depth
		if t.selfStop || t.search.stopped() {
			break
		}
		lastValue = value

		// snapshot the completed iteration
		if t.currentPv.Len() > 0 {
			t.result = &Result{
				BestMove:    t.currentPv.At(0).MoveOf(),
				BestValue:   value,
				Pv:          *t.currentPv.Clone(),
				SearchDepth: depth,
				ExtraDepth:  t.seldepth,
			}
			if t.currentPv.Len() > 1 {
				t.result.PonderMove = t.currentPv.At(1).MoveOf()
			}
		}
		t.buildPvHashes()
		t.stats.CurrentExtraSearchDepth = t.seldepth

		if t.id == 0 {
			// pv stability drives early termination by the time
			// controller; a changed best move buys extra time
			bestMove := MoveNone
			if t.result != nil {
				bestMove = t.result.BestMove
			}
			if depth > 1 && bestMove == prevBestMove {
				t.search.timeControl.StablePv = true
			} else if depth > 1 {
				t.search.timeControl.StablePv = false
				t.search.timeControl.UpdateAspiredTime(1.15)
			}
			prevBestMove = bestMove

			t.publishNodeCount()
			t.search.sendIterationEndInfo(t, value)

			// predictive stop - no point starting a depth we can not
			// finish
			if t.search.timeControl.TimeOver(t.search.elapsedMs(), t.search.moveOverhead) {
				t.search.setStop()
				break
			}
		}
	}
	t.publishNodeCount()
}

// aspirationSearch searches with a narrow window around the previous
// iteration's value and widens the failing bound exponentially until
// the value is inside the window again.
func (t *thread) aspirationSearch(depth int, prev Value, color Value) Value {
	delta := Value(config.Settings.Search.AspirationDelta)
	alpha := prev - delta
	if alpha < -ValueInfinite {
		alpha = -ValueInfinite
	}
	beta := prev + delta
	if beta > ValueInfinite {
		beta = ValueInfinite
	}

	for {
		value := t.principalVariationSearch(
			newSearchParams(alpha, beta, depth, 0, color, &t.rootPosition))
		if t.selfStop || t.search.stopped() {
			return value
		}
		switch {
		case value <= alpha:
			t.stats.AspirationResearches++
			alpha = value - delta
			if alpha < -ValueInfinite || delta > 1000 {
				alpha = -ValueInfinite
			}
		case value >= beta:
			t.stats.AspirationResearches++
			beta = value + delta
			if beta > ValueInfinite || delta > 1000 {
				beta = ValueInfinite
			}
		default:
			return value
		}
		delta *= 2
	}
}

// buildPvHashes records the zobrist keys of the positions along the
// current root pv. pvHashes[ply] is the key of the position at that
// ply; the pv-move stage of the next iteration uses it to detect that
// the search walked down the previous pv.
func (t *thread) buildPvHashes() {
	t.pvHashes = t.pvHashes[:0]
	pos := t.rootPosition
	t.pvHashes = append(t.pvHashes, pos.ZobristKey())
	for _, m := range *t.currentPv {
		pos = pos.DoMove(m.MoveOf())
		t.pvHashes = append(t.pvHashes, pos.ZobristKey())
	}
}

// checkup polls the shared stop flag. The main thread additionally
// checks the time budget and node limit and raises the global stop.
func (t *thread) checkup() {
	if t.search.stopped() {
		t.selfStop = true
		return
	}
	if t.id == 0 {
		if t.search.timeControl.TimeOver(t.search.elapsedMs(), t.search.moveOverhead) ||
			t.search.nodeLimitReached() {
			t.search.setStop()
			t.selfStop = true
		}
	}
}

// publishNodeCount publishes the thread local node and seldepth
// counters to the shared controller (read by the time controller and
// the UCI reporting).
func (t *thread) publishNodeCount() {
	t.search.updateThreadStats(t.id, t.nodes, t.seldepth)
}

// updateRootPv adopts a new best root line. A line which failed low
// against the original window is not adopted - the re-search with the
// widened window will deliver a usable line. The main thread reports
// adopted lines to the UCI interface.
func (t *thread) updateRootPv(p *searchParams, value Value, noFail bool) {
	if !noFail && t.currentPv.Len() > 0 {
		return
	}
	t.currentPv = t.pvTable[0].Clone()
	t.lastRootValue = value
	if t.id == 0 && noFail {
		t.search.sendPvUpdate(t, value)
	}
}

// reportCurrmove reports the root move currently being searched after
// the first second of search time.
func (t *thread) reportCurrmove(p *searchParams, m Move, index int) {
	if t.id != 0 {
		return
	}
	if t.search.elapsedMs() > 1000 {
		t.search.sendCurrmove(t.stats.CurrentIterationDepth, m, index+1)
	}
}

// firstLegalMove is the emergency fallback when not even a depth 1
// iteration completed before the stop.
func firstLegalMove(pos *position.Position) Move {
	mg := movegen.NewMoveGen()
	legal := mg.GenerateLegalMoves(pos, movegen.GenAll)
	if legal.Len() == 0 {
		return MoveNone
	}
	return legal.At(0)
}

// elapsed since search start in milliseconds.
func (s *Search) elapsedMs() uint64 {
	return uint64(time.Since(s.startTime).Milliseconds())
}
