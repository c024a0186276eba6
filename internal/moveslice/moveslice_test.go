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

package moveslice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/tkarger/AgateGo/internal/types"
)

func TestPushPop(t *testing.T) {
	ms := NewMoveSlice(8)
	m1 := CreateMove(SqE2, SqE4, Normal, PtNone)
	m2 := CreateMove(SqD2, SqD4, Normal, PtNone)
	ms.PushBack(m1)
	ms.PushBack(m2)
	assert.Equal(t, 2, ms.Len())
	assert.Equal(t, m2, ms.PopBack())
	assert.Equal(t, 1, ms.Len())
	ms.Clear()
	assert.Equal(t, 0, ms.Len())
	assert.Panics(t, func() { ms.PopBack() })
}

func TestSortByValue(t *testing.T) {
	ms := NewMoveSlice(8)
	low := CreateMoveValue(SqA2, SqA3, Normal, PtNone, Value(-100))
	high := CreateMoveValue(SqE2, SqE4, Normal, PtNone, Value(500))
	mid := CreateMoveValue(SqD2, SqD4, Normal, PtNone, Value(10))
	ms.PushBack(low)
	ms.PushBack(high)
	ms.PushBack(mid)
	ms.Sort()
	assert.Equal(t, high, ms.At(0))
	assert.Equal(t, mid, ms.At(1))
	assert.Equal(t, low, ms.At(2))
}

func TestCloneAndContains(t *testing.T) {
	ms := NewMoveSlice(8)
	m := CreateMove(SqE2, SqE4, Normal, PtNone)
	ms.PushBack(m)
	c := ms.Clone()
	ms.Set(0, CreateMove(SqD2, SqD4, Normal, PtNone))
	assert.Equal(t, m, c.At(0))
	assert.True(t, c.Contains(m.SetValue(Value(55))))
	assert.False(t, c.Contains(CreateMove(SqA2, SqA3, Normal, PtNone)))
}

func TestStringUci(t *testing.T) {
	ms := NewMoveSlice(8)
	ms.PushBack(CreateMove(SqE2, SqE4, Normal, PtNone))
	ms.PushBack(CreateMove(SqE7, SqE8, Promotion, Queen))
	assert.Equal(t, "e2e4 e7e8q", ms.StringUci())
}
