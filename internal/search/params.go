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
	"github.com/tkarger/AgateGo/internal/position"
	. "github.com/tkarger/AgateGo/internal/types"
)

// searchParams is the bundle of parameters passed down the recursive
// search. It is a plain value which is copied on every recursion so a
// node can modify its window without affecting the parent.
type searchParams struct {
	alpha     Value
	beta      Value
	depthLeft int
	ply       int
	// color is +1 when white is to move, -1 for black. The static
	// evaluator is white point of view, the search multiplies its
	// result with color to get the negamax orientation.
	color Value
	pos   *position.Position
}

func newSearchParams(alpha Value, beta Value, depthLeft int, ply int, color Value, pos *position.Position) searchParams {
	return searchParams{
		alpha:     alpha,
		beta:      beta,
		depthLeft: depthLeft,
		ply:       ply,
		color:     color,
		pos:       pos,
	}
}

// searchInstruction is the result of a helper stage of the search.
// Either the search continues or the stage short-circuits the node
// with a final value.
type searchInstruction struct {
	stop  bool
	value Value
}

func continueSearching() searchInstruction {
	return searchInstruction{}
}

func stopSearching(v Value) searchInstruction {
	return searchInstruction{stop: true, value: v}
}

// RepetitionEntry is one station of the game or search path used for
// repetition detection.
type RepetitionEntry struct {
	// Hash is the zobrist key of the position.
	Hash Key
	// Reset marks positions directly after an irreversible move (the
	// half move clock was zero). Repetition scans stop at the nearest
	// reset entry as older positions can not repeat.
	Reset bool
}

// repetitionHistory is a stack of the positions on the path from the
// start of the game through the root to the current node. Strictly
// thread-owned.
type repetitionHistory struct {
	entries []RepetitionEntry
}

func (rh *repetitionHistory) push(hash Key, reset bool) {
	rh.entries = append(rh.entries, RepetitionEntry{Hash: hash, Reset: reset})
}

func (rh *repetitionHistory) pop() {
	rh.entries = rh.entries[:len(rh.entries)-1]
}

func (rh *repetitionHistory) clear() {
	rh.entries = rh.entries[:0]
}

func (rh *repetitionHistory) seed(entries []RepetitionEntry) {
	rh.entries = append(rh.entries[:0], entries...)
}

// isRepetition walks the history backwards until the nearest reset
// entry or the start and reports if the given hash occurs. The reset
// entry itself is still compared before the scan stops.
func (rh *repetitionHistory) isRepetition(hash Key) bool {
	for i := len(rh.entries) - 1; i >= 0; i-- {
		if rh.entries[i].Hash == hash {
			return true
		}
		if rh.entries[i].Reset {
			break
		}
	}
	return false
}
