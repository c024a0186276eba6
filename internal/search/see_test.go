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

	"github.com/tkarger/AgateGo/internal/position"
	. "github.com/tkarger/AgateGo/internal/types"
)

func TestSeeUndefendedCapture(t *testing.T) {
	p := position.NewPosition("7k/8/8/3p4/4P3/8/8/7K w - - 0 1")
	m := CreateMove(SqE4, SqD5, Normal, PtNone)
	assert.Equal(t, Value(100), see(p, m))
}

func TestSeeEqualExchange(t *testing.T) {
	// pawn takes pawn, defender recaptures: net zero
	p := position.NewPosition("7k/2p5/3p4/4P3/8/8/8/7K w - - 0 1")
	m := CreateMove(SqE5, SqD6, Normal, PtNone)
	assert.Equal(t, Value(0), see(p, m))
}

func TestSeeLosingCapture(t *testing.T) {
	// rook takes a pawn defended by a pawn: win 100, lose 500
	p := position.NewPosition("7k/2p5/3p4/8/3R4/8/8/7K w - - 0 1")
	m := CreateMove(SqD4, SqD6, Normal, PtNone)
	assert.Equal(t, Value(-400), see(p, m))
}

func TestSeeXray(t *testing.T) {
	// doubled rooks win the defended pawn: RxP, RxR, RxR
	p := position.NewPosition("3r3k/8/3p4/8/8/8/3R4/3R3K w - - 0 1")
	m := CreateMove(SqD2, SqD6, Normal, PtNone)
	// 100 (pawn) - 500 (rook) + 500 (rook) = 100
	assert.Equal(t, Value(100), see(p, m))
}

func TestSeeEnPassant(t *testing.T) {
	p := position.NewPosition("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	m := CreateMove(SqE5, SqD6, EnPassant, PtNone)
	assert.Equal(t, Pawn.ValueOf(), see(p, m))
}
