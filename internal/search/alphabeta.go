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
	"math"

	"github.com/tkarger/AgateGo/internal/config"
	. "github.com/tkarger/AgateGo/internal/types"
)

const (
	// checkupInterval is the node count interval for polling the stop
	// flag and the time budget.
	checkupInterval = 4096
	// publishInterval is the node count interval for publishing node
	// and seldepth counters to the shared controller.
	publishInterval = 8192
)

// principalVariationSearch is the recursive main search. Given the
// window, remaining depth, ply and side to move sign it returns a
// fail-soft value: results <= the original alpha are upper bounds,
// results >= beta are lower bounds, anything else is exact. When the
// search is stopped mid-node the returned value is ValueNA and must
// be discarded by the caller (selfStop is set).
//
// The stages of a node run in a fixed order: statistics and pv reset,
// stop checkup, max ply guard, draw and mate distance checks, check
// extension, quiescence drop-in, pv table and tt lookup, repetition
// push, static eval, static null move and null move pruning, internal
// iterative deepening, futility preparation, the move loop with late
// move prunings and reductions, terminal detection and the tt store.
func (t *thread) principalVariationSearch(p searchParams) Value {
	// Step 1: statistics and pv reset for this ply
	t.nodes++
	t.stats.NormalNodes++
	t.clearPv(p.ply)
	root := p.ply == 0
	isPVNode := p.beta-p.alpha > 1

	// Step 2: periodic stop checkup and node count publishing
	if t.nodes%checkupInterval == 0 {
		t.checkup()
	}
	if t.nodes%publishInterval == 0 {
		t.publishNodeCount()
	}
	if t.selfStop {
		return ValueNA
	}

	// Step 3: max ply guard
	if p.ply >= MaxDepth-1 {
		return t.evaluate(&p)
	}

	// Step 4: draw and mate distance checks (never at root - the root
	// must produce a best move)
	if !root {
		if instr := t.checkForDraw(&p); instr.stop {
			return instr.value
		}
		if config.Settings.Search.UseMateDistancePruning {
			if instr := mateDistancePruning(&p); instr.stop {
				t.stats.Mdp++
				return instr.value
			}
		}
	}
	originalAlpha := p.alpha

	// Step 5: check extension
	inCheck := p.pos.HasCheck()
	if inCheck && !root && config.Settings.Search.UseCheckExtension {
		p.depthLeft++
	}

	// Step 6: quiescence drop-in
	if p.depthLeft <= 0 {
		t.stats.QRoots++
		return t.qSearch(p)
	}

	// Step 7: pv table move of the previous iteration
	pvTableMove := t.pvTableMove(&p)

	// Step 8: tt lookup
	staticEval := ValueNA
	ttMove := MoveNone
	if config.Settings.Search.UseTT {
		cutValue, move, eval := t.search.tt.Probe(p.pos.ZobristKey(), p.depthLeft, p.ply, p.alpha, p.beta)
		if move != MoveNone {
			t.stats.TTHit++
		} else {
			t.stats.TTMiss++
		}
		ttMove = move
		staticEval = eval
		// only cut in non pv nodes: the root must produce a best move
		// and pv nodes must deliver an unbroken pv line
		if cutValue != ValueNA && !isPVNode {
			t.stats.TTCuts++
			return cutValue
		}
	}

	// Step 9: repetition push. Every early return below this point
	// must pop the entry again.
	t.rep.push(p.pos.ZobristKey(), p.pos.HalfMoveClock() == 0)

	// Step 10: static evaluation if any pruning stage will need it
	prunable := !isPVNode && !inCheck
	staticEval = t.makeEval(&p, staticEval, prunable)

	// Step 11: pre move loop prunings
	if prunable {
		if config.Settings.Search.UseStaticNullMove {
			if instr := t.staticNullMovePruning(&p, staticEval); instr.stop {
				return instr.value
			}
		}
		if config.Settings.Search.UseNullMove {
			if instr := t.nullMovePruning(&p, staticEval); instr.stop {
				return instr.value
			}
		}
	}

	// Step 12: internal iterative deepening when no move to try first
	if config.Settings.Search.UseIID &&
		isPVNode && !inCheck &&
		pvTableMove == MoveNone && ttMove == MoveNone &&
		p.depthLeft > config.Settings.Search.IIDDepth {
		if instr := t.internalIterativeDeepening(&p, &ttMove); instr.stop {
			return instr.value
		}
	}

	// Step 13: futility margin preparation
	futilMargin := prepareFutilityPruning(&p, staticEval)

	// Step 14: move loop
	currentMax := ValueNA
	index := 0
	t.hist.ClearPly(p.ply)

	o := &t.orderers[p.ply]
	o.reset(pvTableMove, ttMove, false)
	for {
		m, moveScore, ok := o.next(t, &p)
		if !ok {
			break
		}

		if root {
			t.reportCurrmove(&p, m, index)
		}

		isCapture := p.pos.IsCapturingMove(m)
		isPromotion := m.MoveType() == Promotion
		isQuiet := !isCapture && !isPromotion
		givesCheck := p.pos.GivesCheck(m)

		// Step 14.1: late move prunings. Never at root, never when a
		// mate score is all we have, never in the rare positions
		// without non pawn material and never for checking moves.
		us := p.pos.NextPlayer()
		if !root && isQuiet &&
			currentMax > ValueMatedInMax &&
			p.pos.MaterialNonPawn(us) > 0 &&
			!givesCheck {
			// futility: quiet moves can not raise alpha anymore
			if config.Settings.Search.UseFutility && futilMargin <= p.alpha {
				t.stats.FutilityPrunings++
				index++
				continue
			}
			// history: quiets with a bad record in low depths
			if config.Settings.Search.UseHistoryPruning &&
				p.depthLeft <= config.Settings.Search.HistoryPruningDepth &&
				t.hist.HistoryScore[us][m.From()][m.To()] < 0 {
				t.stats.HistoryPrunings++
				index++
				continue
			}
			// see pruning for quiets - disabled by default
			if config.Settings.Search.UseSeeQuietPruning &&
				p.depthLeft <= config.Settings.Search.SeePruningDepth {
				if int64(see(p.pos, m)) < int64(config.Settings.Search.SeeCaptureMult)*int64(p.depthLeft+3) {
					t.stats.SeePrunings++
					index++
					continue
				}
			}
		} else if !root && isCapture &&
			currentMax > ValueMatedInMax &&
			config.Settings.Search.UseSeeCapturePruning &&
			p.depthLeft <= config.Settings.Search.SeePruningDepth &&
			moveScore < int64(config.Settings.Search.SeeCaptureMult)*int64(p.depthLeft)*int64(p.depthLeft) &&
			p.pos.MaterialNonPawn(us) > 0 &&
			!givesCheck {
			t.stats.SeePrunings++
			index++
			continue
		}

		// Step 14.2: late move reduction
		reduction := 0
		if config.Settings.Search.UseLmr &&
			p.depthLeft > 2 && !inCheck &&
			(!isCapture || moveScore < 0) &&
			index >= 2 && (!root || index >= 5) {
			reduction = t.computeLmrReduction(&p, m, index, isCapture || isPromotion, givesCheck)
			t.stats.LmrReductions++
		}

		// Step 14.3: search the move with the negated window
		next := p.pos.DoMove(m)
		var value Value
		if p.depthLeft <= 2 || !isPVNode || index == 0 {
			// full window - in pv nodes this happens for the first
			// move (reduction is 0 there) and for every move with 2 or
			// less plies left, otherwise the window is a zero window
			// anyway; a reduced search is verified by a research
			// without reduction
			value = -t.principalVariationSearch(
				newSearchParams(-p.beta, -p.alpha, p.depthLeft-1-reduction, p.ply+1, -p.color, &next))
			if reduction > 0 && value > p.alpha {
				t.stats.LmrResearches++
				value = -t.principalVariationSearch(
					newSearchParams(-p.beta, -p.alpha, p.depthLeft-1, p.ply+1, -p.color, &next))
			}
		} else {
			// pv node, later moves: prove with a zero window that the
			// move is worse than alpha, research with the full window
			// if the proof fails
			value = -t.principalVariationSearch(
				newSearchParams(-p.alpha-1, -p.alpha, p.depthLeft-1-reduction, p.ply+1, -p.color, &next))
			if value > p.alpha {
				t.stats.PvsResearches++
				value = -t.principalVariationSearch(
					newSearchParams(-p.beta, -p.alpha, p.depthLeft-1, p.ply+1, -p.color, &next))
			}
		}

		// Step 14.4: update best value and pv (a new node best does
		// not have to raise alpha in fail-soft)
		if value > currentMax && !t.selfStop {
			currentMax = value
			t.savePv(m, p.ply)
			if root {
				t.updateRootPv(&p, value, value > originalAlpha)
			}
		}

		// Step 14.5: raise alpha
		if value > p.alpha {
			p.alpha = value
		}

		// Step 14.6: beta cutoff
		if p.alpha >= p.beta {
			t.stats.BetaCuts++
			if index == 0 {
				t.stats.BetaCuts1st++
			}
			if !isCapture {
				t.updateQuietCutoff(&p, m)
			}
			break
		} else if !isCapture {
			// Step 14.7: quiet move did not cut - remember it for the
			// history punishment on a later cutoff and count it in
			// the butterfly board
			t.hist.QuietsTried[p.ply] = append(t.hist.QuietsTried[p.ply], m)
			t.hist.BfScore[us][m.From()][m.To()] += uint64(p.depthLeft) * uint64(p.depthLeft)
		}

		index++
	}

	// Step 15: pop repetition entry
	t.rep.pop()

	if t.selfStop {
		return ValueNA
	}

	// Step 16: mate and stalemate detection. The move orderer only
	// yields legal moves, so no yielded move means the game is over
	// here.
	if !o.hasLegalMove {
		t.clearPv(p.ply)
		if inCheck {
			t.stats.Checkmates++
			return -ValueMate + Value(p.ply)
		}
		t.stats.Stalemates++
		return ValueDraw
	}

	// Step 17: tt store
	if config.Settings.Search.UseTT {
		bound := EXACT
		switch {
		case currentMax >= p.beta:
			bound = BETA
		case currentMax <= originalAlpha:
			bound = ALPHA
		}
		bestMove := MoveNone
		if t.pvTable[p.ply].Len() > 0 {
			bestMove = t.pvTable[p.ply].At(0)
		}
		t.search.tt.Put(p.pos.ZobristKey(), bestMove, int8(p.depthLeft), p.ply,
			currentMax, bound, staticEval, t.rootPliesPlayed)
	}

	// Step 18: fail-soft return
	return currentMax
}

// ////////////////////////////////////////////////////////////////
// Node stages
// ////////////////////////////////////////////////////////////////

// checkForDraw detects draws by the 50 moves rule and by repetition
// within the game plus search path. One repetition within the search
// is scored as a draw - the opponent can force it.
func (t *thread) checkForDraw(p *searchParams) searchInstruction {
	if p.pos.HalfMoveClock() >= 100 {
		t.stats.Draws++
		return stopSearching(ValueDraw)
	}
	if t.rep.isRepetition(p.pos.ZobristKey()) {
		t.stats.Draws++
		return stopSearching(ValueDraw)
	}
	return continueSearching()
}

// mateDistancePruning tightens the window against mates which are
// further away than a mate we already found. With a full window both
// bounds are tightened.
func mateDistancePruning(p *searchParams) searchInstruction {
	// our best case is mating with this very move
	if upper := ValueMate - Value(p.ply+1); p.beta > upper {
		p.beta = upper
	}
	// our worst case is being mated in this very move
	if lower := -(ValueMate - Value(p.ply)); p.alpha < lower {
		p.alpha = lower
	}
	if p.alpha >= p.beta {
		return stopSearching(p.alpha)
	}
	return continueSearching()
}

// pvTableMove returns the move of the previous iteration's pv when
// the search is still on that line (hash matches), MoveNone otherwise.
func (t *thread) pvTableMove(p *searchParams) Move {
	if len(t.pvHashes) > p.ply+1 &&
		t.pvHashes[p.ply] == p.pos.ZobristKey() &&
		t.currentPv.Len() > p.ply {
		return t.currentPv.At(p.ply).MoveOf()
	}
	return MoveNone
}

// makeEval computes the static evaluation when it was not supplied by
// the tt and one of the pruning stages will need it.
func (t *thread) makeEval(p *searchParams, staticEval Value, prunable bool) Value {
	if staticEval != ValueNA {
		return staticEval
	}
	needed := (prunable &&
		(p.depthLeft <= config.Settings.Search.StaticNullMoveDepth ||
			p.depthLeft >= config.Settings.Search.NullMoveDepth)) ||
		p.depthLeft <= config.Settings.Search.FutilityDepth
	if !needed {
		return ValueNA
	}
	return t.evaluate(p)
}

// staticNullMovePruning (reverse futility): when the static eval is
// so far above beta that even a large depth-scaled margin can not
// bring it back we assume a fail high without searching.
func (t *thread) staticNullMovePruning(p *searchParams, staticEval Value) searchInstruction {
	if p.depthLeft <= config.Settings.Search.StaticNullMoveDepth &&
		staticEval-Value(config.Settings.Search.StaticNullMoveMargin*p.depthLeft) >= p.beta {
		t.rep.pop()
		t.stats.StaticNullPrunings++
		return stopSearching(staticEval - Value(config.Settings.Search.StaticNullMoveDepth*p.depthLeft))
	}
	return continueSearching()
}

// nullMovePruning: when doing nothing already fails high, an actual
// move will almost always fail high too. Unsafe in zugzwang, so it is
// disabled without non pawn material, and never runs in check or pv
// nodes (the caller guarantees that).
func (t *thread) nullMovePruning(p *searchParams, staticEval Value) searchInstruction {
	if p.depthLeft >= config.Settings.Search.NullMoveDepth &&
		p.pos.MaterialNonPawn(p.pos.NextPlayer()) > 0 &&
		staticEval >= p.beta {
		reduced := p.depthLeft - 4 - p.depthLeft/6
		if reduced < 0 {
			reduced = 0
		}
		next := p.pos.DoNullMove()
		value := -t.principalVariationSearch(
			newSearchParams(-p.beta, -p.beta+1, reduced, p.ply+1, -p.color, &next))
		if value >= p.beta && !t.selfStop {
			t.stats.NullMoveCuts++
			t.rep.pop()
			return stopSearching(value)
		}
	}
	return continueSearching()
}

// internalIterativeDeepening searches the node with a reduced depth to
// obtain a best move to try first when neither pv table nor tt offer
// one. The repetition entry is popped around the inner search so the
// node does not see itself as a repetition.
func (t *thread) internalIterativeDeepening(p *searchParams, ttMove *Move) searchInstruction {
	t.rep.pop()
	t.principalVariationSearch(
		newSearchParams(p.alpha, p.beta, p.depthLeft-2, p.ply, p.color, p.pos))
	t.stats.IIDSearches++
	if t.selfStop {
		return stopSearching(ValueNA)
	}
	t.rep.push(p.pos.ZobristKey(), p.pos.HalfMoveClock() == 0)
	if t.pvTable[p.ply].Len() > 0 {
		*ttMove = t.pvTable[p.ply].At(0).MoveOf()
	}
	return continueSearching()
}

// prepareFutilityPruning computes the best value a quiet move can
// realistically achieve at this node. ValueMate disables the pruning.
func prepareFutilityPruning(p *searchParams, staticEval Value) Value {
	if p.depthLeft <= config.Settings.Search.FutilityDepth && p.ply > 0 {
		return staticEval + Value(p.depthLeft*config.Settings.Search.FutilityMargin)
	}
	return ValueMate
}

// computeLmrReduction computes the late move reduction from depth and
// move index, halved for tactical moves, damped in pv nodes, relaxed
// for checking moves and for moves with a good history. The result is
// clamped to [1, depthLeft-1].
func (t *thread) computeLmrReduction(p *searchParams, m Move, index int, tactical bool, givesCheck bool) int {
	reduction := int(math.Sqrt(math.Max(0, float64(p.depthLeft)/2.0-1.0)) +
		math.Sqrt(math.Max(0, float64(index)/2.0-1.0)))
	if tactical {
		reduction /= 2
	}
	if p.beta-p.alpha > 1 {
		reduction = int(float64(reduction) * 0.66)
	}
	if givesCheck {
		reduction--
	}
	if t.hist.HistoryScore[p.pos.NextPlayer()][m.From()][m.To()] > 0 {
		reduction--
	}
	if reduction > p.depthLeft-1 {
		reduction = p.depthLeft - 1
	}
	if reduction < 1 {
		reduction = 1
	}
	return reduction
}

// updateQuietCutoff rewards a quiet cutoff move in the history and
// killer tables and punishes the quiets tried before it.
func (t *thread) updateQuietCutoff(p *searchParams, m Move) {
	us := p.pos.NextPlayer()
	from := m.From()
	to := m.To()
	d2 := int64(p.depthLeft) * int64(p.depthLeft)

	t.hist.HhScore[us][from][to] += uint64(d2)
	t.hist.HistoryScore[us][from][to] += d2
	for _, tried := range t.hist.QuietsTried[p.ply] {
		t.hist.HistoryScore[us][tried.From()][tried.To()] -= d2
	}
	t.hist.PushKiller(p.ply, m)
}

// ////////////////////////////////////////////////////////////////
// PV bookkeeping
// ////////////////////////////////////////////////////////////////

func (t *thread) clearPv(ply int) {
	t.pvTable[ply].Clear()
}

// savePv sets the move as the head of the pv at this ply and appends
// the child pv as its continuation.
func (t *thread) savePv(m Move, ply int) {
	dest := t.pvTable[ply]
	src := t.pvTable[ply+1]
	dest.Clear()
	dest.PushBack(m)
	*dest = append(*dest, *src...)
}
