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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkarger/AgateGo/internal/position"
	. "github.com/tkarger/AgateGo/internal/types"
)

// newTestSearchThread sets up a Search with an initialized tt and an
// infinite time control plus a single searcher thread on the given
// position. Used to drive the recursive search directly in tests.
func newTestSearchThread(fen string) (*Search, *thread) {
	s := NewSearch()
	s.initialize()
	s.tt.Clear()
	s.searchLimits = NewSearchLimits()
	s.timeControl = NewTimeControl(NewInfinite())
	s.startTime = time.Now()
	s.threadNodes = make([]uint64, 1)
	s.threadSeldepth = make([]int64, 1)
	pos := position.NewPosition(fen)
	th := newThread(0, s, *pos)
	s.mainThread = th
	return s, th
}

func TestMateIn1(t *testing.T) {
	s, th := newTestSearchThread("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	defer s.tt.Clear()

	value := th.principalVariationSearch(
		newSearchParams(-ValueInfinite, ValueInfinite, 2, 0, 1, &th.rootPosition))

	assert.Equal(t, ValueMate-1, value)
	require.True(t, th.currentPv.Len() > 0)
	assert.Equal(t, "a1a8", th.currentPv.At(0).StringUci())
}

func TestMateIn3(t *testing.T) {
	// 1.Qb2 Ka7 2.Kc6 Ka6/Ka8 3.Qb6#/Qb7# - forced mate in 3
	s, th := newTestSearchThread("k7/8/8/2K5/8/8/7Q/8 w - - 0 1")
	defer s.tt.Clear()

	th.iterativeDeepening(6)

	require.NotNil(t, th.result)
	assert.Equal(t, ValueMate-5, th.result.BestValue)
	assert.Equal(t, "h2b2", th.result.BestMove.StringUci())
	assert.Equal(t, 5, th.result.Pv.Len())

	// the pv must be playable to the mate
	pos := th.rootPosition
	for _, m := range th.result.Pv {
		require.True(t, pos.IsLegalMove(m.MoveOf()), "pv move %s not legal", m.StringUci())
		pos = pos.DoMove(m.MoveOf())
	}
	assert.True(t, pos.HasCheck())
}

func TestMatedIn1(t *testing.T) {
	// black to move is checkmated by the rook on a8
	s, th := newTestSearchThread("R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1")
	defer s.tt.Clear()
	// position is already mate - the search returns the mated score
	value := th.principalVariationSearch(
		newSearchParams(-ValueInfinite, ValueInfinite, 2, 0, -1, &th.rootPosition))
	assert.Equal(t, -ValueMate, value)
}

func TestRepetitionDraw(t *testing.T) {
	s, th := newTestSearchThread("7k/8/8/8/8/8/R7/6K1 w - - 10 20")
	defer s.tt.Clear()

	// simulate: the position after a1a2-rook-returns occurred before.
	// Searching that child with its hash in the repetition history
	// must score it as a draw immediately.
	child := th.rootPosition.DoMove(CreateMove(SqA2, SqA1, Normal, PtNone))
	th.rep.clear()
	th.rep.push(child.ZobristKey(), false) // earlier occurrence
	th.rep.push(th.rootPosition.ZobristKey(), false)

	value := th.principalVariationSearch(
		newSearchParams(-ValueInfinite, ValueInfinite, 3, 1, -1, &child))
	assert.Equal(t, ValueDraw, value)
}

func TestFiftyMoveDraw(t *testing.T) {
	s, th := newTestSearchThread("7k/8/8/8/8/8/R7/6K1 w - - 99 80")
	defer s.tt.Clear()

	// any quiet move reaches the 100 half move mark - the child is a draw
	child := th.rootPosition.DoMove(CreateMove(SqA2, SqB2, Normal, PtNone))
	assert.Equal(t, 100, child.HalfMoveClock())
	value := th.principalVariationSearch(
		newSearchParams(-ValueInfinite, ValueInfinite, 3, 1, -1, &child))
	assert.Equal(t, ValueDraw, value)
}

func TestZugzwangNullMoveSafety(t *testing.T) {
	// pawn endgame - neither side has non pawn material so null move
	// pruning must never fire anywhere in the tree
	s, th := newTestSearchThread("8/8/8/p7/P7/K7/8/k7 w - - 0 1")
	defer s.tt.Clear()

	th.iterativeDeepening(8)

	require.NotNil(t, th.result)
	assert.EqualValues(t, 0, th.stats.NullMoveCuts)
	assert.True(t, th.result.BestValue.IsValid())
}

func TestMateDistancePruning(t *testing.T) {
	p := newSearchParams(-ValueInfinite, ValueInfinite, 4, 10, 1, position.NewPosition())
	instr := mateDistancePruning(&p)
	assert.False(t, instr.stop)
	assert.Equal(t, ValueMate-11, p.beta)
	assert.Equal(t, -(ValueMate - 10), p.alpha)

	// window already proven better than any mate from here
	p = newSearchParams(ValueMate-5, ValueInfinite, 4, 10, 1, position.NewPosition())
	instr = mateDistancePruning(&p)
	assert.True(t, instr.stop)
	assert.Equal(t, ValueMate-5, instr.value)
}

func TestQSearchStandPat(t *testing.T) {
	// quiet position with white up a rook - the stand pat must cut
	// against a low beta and raise alpha otherwise
	s, th := newTestSearchThread("7k/8/8/8/8/8/8/R6K w - - 0 1")
	defer s.tt.Clear()

	beta := Value(100)
	value := th.qSearch(newSearchParams(Value(0), beta, 0, 2, 1, &th.rootPosition))
	assert.Equal(t, beta, value)

	value = th.qSearch(newSearchParams(-ValueInfinite, ValueInfinite, 0, 2, 1, &th.rootPosition))
	assert.True(t, value > Value(300))
}

func TestCutoffUpdatesHeuristics(t *testing.T) {
	s, th := newTestSearchThread(position.StartFen)
	defer s.tt.Clear()

	quiet := CreateMove(SqG1, SqF3, Normal, PtNone)
	other := CreateMove(SqB1, SqC3, Normal, PtNone)
	p := newSearchParams(-ValueInfinite, ValueInfinite, 4, 3, 1, &th.rootPosition)

	th.hist.ClearPly(p.ply)
	th.hist.QuietsTried[p.ply] = append(th.hist.QuietsTried[p.ply], other)
	bfBefore := th.hist.BfScore[White][SqG1][SqF3]

	th.updateQuietCutoff(&p, quiet)

	// cutoff move rewarded in history and killers, tried quiets punished
	assert.Equal(t, int64(16), th.hist.HistoryScore[White][SqG1][SqF3])
	assert.Equal(t, uint64(16), th.hist.HhScore[White][SqG1][SqF3])
	assert.Equal(t, int64(-16), th.hist.HistoryScore[White][SqB1][SqC3])
	assert.True(t, th.hist.IsKiller(p.ply, quiet))
	// butterfly untouched by the cutoff move itself
	assert.Equal(t, bfBefore, th.hist.BfScore[White][SqG1][SqF3])
}

func TestScoreBounds(t *testing.T) {
	// every returned score must be a valid value within the mate range
	s, th := newTestSearchThread("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	defer s.tt.Clear()

	value := th.principalVariationSearch(
		newSearchParams(-ValueInfinite, ValueInfinite, 4, 0, 1, &th.rootPosition))
	assert.True(t, value.IsValid())
	assert.True(t, value >= -ValueMate && value <= ValueMate)
}
