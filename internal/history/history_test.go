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

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/tkarger/AgateGo/internal/types"
)

func TestKillerMoves(t *testing.T) {
	h := NewHistory()
	m1 := CreateMove(SqE2, SqE4, Normal, PtNone)
	m2 := CreateMove(SqG1, SqF3, Normal, PtNone)
	m3 := CreateMove(SqB1, SqC3, Normal, PtNone)

	h.PushKiller(3, m1)
	assert.Equal(t, m1, h.KillerMoves[3][0])
	assert.Equal(t, MoveNone, h.KillerMoves[3][1])

	// storing the same move again does not shift
	h.PushKiller(3, m1)
	assert.Equal(t, m1, h.KillerMoves[3][0])
	assert.Equal(t, MoveNone, h.KillerMoves[3][1])

	h.PushKiller(3, m2)
	assert.Equal(t, m2, h.KillerMoves[3][0])
	assert.Equal(t, m1, h.KillerMoves[3][1])

	// a move already in slot 1 is not stored again
	h.PushKiller(3, m1)
	assert.Equal(t, m2, h.KillerMoves[3][0])
	assert.Equal(t, m1, h.KillerMoves[3][1])

	h.PushKiller(3, m3)
	assert.Equal(t, m3, h.KillerMoves[3][0])
	assert.Equal(t, m2, h.KillerMoves[3][1])

	assert.True(t, h.IsKiller(3, m3))
	assert.True(t, h.IsKiller(3, m2))
	assert.False(t, h.IsKiller(3, m1))
	assert.False(t, h.IsKiller(4, m3))
}

func TestQuietsTried(t *testing.T) {
	h := NewHistory()
	m := CreateMove(SqE2, SqE4, Normal, PtNone)
	h.QuietsTried[5] = append(h.QuietsTried[5], m)
	assert.Equal(t, 1, len(h.QuietsTried[5]))
	h.ClearPly(5)
	assert.Equal(t, 0, len(h.QuietsTried[5]))
}

func TestStringDump(t *testing.T) {
	h := NewHistory()
	h.HistoryScore[White][SqE2][SqE4] = 42
	h.PushKiller(7, CreateMove(SqG1, SqF3, Normal, PtNone))
	dump := h.String()
	assert.Contains(t, dump, "e2e4")
	assert.Contains(t, dump, "42")
	assert.Contains(t, dump, "g1f3")
	assert.Contains(t, dump, "ply 7")
}

func TestRelativeScore(t *testing.T) {
	h := NewHistory()
	h.HistoryScore[White][SqE2][SqE4] = 100
	h.HhScore[White][SqE2][SqE4] = 40
	h.BfScore[White][SqE2][SqE4] = 4
	assert.Equal(t, int64(110), h.RelativeScore(White, SqE2, SqE4))

	// zero butterfly count must not divide by zero
	h.BfScore[White][SqE2][SqE4] = 0
	assert.Equal(t, int64(140), h.RelativeScore(White, SqE2, SqE4))
}
