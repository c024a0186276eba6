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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/tkarger/AgateGo/internal/types"
)

// drain pulls all moves from the orderer for the given node.
func drain(t *thread, p *searchParams, o *moveOrderer) []Move {
	var moves []Move
	for {
		m, _, ok := o.next(t, p)
		if !ok {
			return moves
		}
		moves = append(moves, m.MoveOf())
	}
}

func indexOf(moves []Move, uci string) int {
	for i, m := range moves {
		if m.StringUci() == uci {
			return i
		}
	}
	return -1
}

func TestOrdererStages(t *testing.T) {
	s, th := newTestSearchThread("3qk3/8/4p3/3p4/8/2N5/8/3QK3 w - - 0 1")
	defer s.tt.Clear()
	pos := &th.rootPosition
	p := newSearchParams(-ValueInfinite, ValueInfinite, 4, 2, 1, pos)

	pvMove := CreateMove(SqD1, SqD2, Normal, PtNone)
	ttMove := CreateMove(SqC3, SqA4, Normal, PtNone)
	killer := CreateMove(SqC3, SqB5, Normal, PtNone)
	th.hist.PushKiller(p.ply, killer)

	o := &th.orderers[p.ply]
	o.reset(pvMove, ttMove, false)
	moves := drain(th, &p, o)
	require.NotEmpty(t, moves)
	assert.True(t, o.hasLegalMove)

	// stage order: pv, tt, killer (no winning captures here), then
	// quiets, losing captures at the very end
	assert.Equal(t, 0, indexOf(moves, "d1d2"))
	assert.Equal(t, 1, indexOf(moves, "c3a4"))
	assert.Equal(t, 2, indexOf(moves, "c3b5"))

	// both captures lose material and come last, the smaller loss first
	nxd5 := indexOf(moves, "c3d5")
	qxd5 := indexOf(moves, "d1d5")
	require.True(t, nxd5 >= 0 && qxd5 >= 0)
	assert.Equal(t, len(moves)-2, nxd5)
	assert.Equal(t, len(moves)-1, qxd5)

	// no duplicates
	seen := map[Move]bool{}
	for _, m := range moves {
		assert.False(t, seen[m], "duplicate move %s", m.StringUci())
		seen[m] = true
	}
}

func TestOrdererWinningCapturesFirst(t *testing.T) {
	s, th := newTestSearchThread("7k/8/8/3p4/4P3/8/8/6K1 w - - 0 1")
	defer s.tt.Clear()
	p := newSearchParams(-ValueInfinite, ValueInfinite, 4, 0, 1, &th.rootPosition)

	o := &th.orderers[p.ply]
	o.reset(MoveNone, MoveNone, false)
	moves := drain(th, &p, o)
	require.NotEmpty(t, moves)
	// the winning pawn capture is first, before all quiets
	assert.Equal(t, "e4d5", moves[0].StringUci())
}

func TestOrdererCapturesOnly(t *testing.T) {
	s, th := newTestSearchThread("3qk3/8/4p3/3p4/8/2N5/8/3QK3 w - - 0 1")
	defer s.tt.Clear()
	p := newSearchParams(-ValueInfinite, ValueInfinite, 0, 0, 1, &th.rootPosition)

	o := &th.orderers[p.ply]
	o.reset(MoveNone, MoveNone, true)
	moves := drain(th, &p, o)
	// only the two captures, no quiet moves
	assert.Equal(t, 2, len(moves))
	for _, m := range moves {
		assert.True(t, th.rootPosition.IsCapturingMove(m))
	}
}

func TestOrdererNoLegalMoves(t *testing.T) {
	s, th := newTestSearchThread("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	defer s.tt.Clear()
	p := newSearchParams(-ValueInfinite, ValueInfinite, 4, 0, -1, &th.rootPosition)

	o := &th.orderers[p.ply]
	o.reset(MoveNone, MoveNone, false)
	moves := drain(th, &p, o)
	assert.Empty(t, moves)
	assert.False(t, o.hasLegalMove)
}

func TestOrdererQuietsByHistory(t *testing.T) {
	s, th := newTestSearchThread("7k/8/8/8/8/8/8/R6K w - - 0 1")
	defer s.tt.Clear()
	// boost one particular quiet rook move
	th.hist.HistoryScore[White][SqA1][SqA5] = 1_000_000
	p := newSearchParams(-ValueInfinite, ValueInfinite, 4, 0, 1, &th.rootPosition)

	o := &th.orderers[p.ply]
	o.reset(MoveNone, MoveNone, false)
	moves := drain(th, &p, o)
	require.NotEmpty(t, moves)
	assert.Equal(t, "a1a5", moves[0].StringUci())
}
