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

// Package moveslice provides helper functionality for slices
// of type Move (chess moves).
package moveslice

import (
	"sort"
	"strings"

	. "github.com/tkarger/AgateGo/internal/types"
)

// MoveSlice represents a data structure (go slice) for Move.
type MoveSlice []Move

// NewMoveSlice creates a new move slice with the given capacity
// and 0 elements.
func NewMoveSlice(cap int) *MoveSlice {
	moves := make([]Move, 0, cap)
	return (*MoveSlice)(&moves)
}

// Len returns the number of moves currently stored in the slice.
func (ms *MoveSlice) Len() int {
	return len(*ms)
}

// Clear removes all moves from the slice but keeps the underlying
// array allocated.
func (ms *MoveSlice) Clear() {
	*ms = (*ms)[:0]
}

// PushBack appends a move at the end of the slice.
func (ms *MoveSlice) PushBack(m Move) {
	*ms = append(*ms, m)
}

// PopBack removes and returns the move from the back of the slice.
// If the slice is empty, the call panics.
func (ms *MoveSlice) PopBack() Move {
	if len(*ms) <= 0 {
		panic("MoveSlice: PopBack() called on empty slice")
	}
	backMove := (*ms)[len(*ms)-1]
	*ms = (*ms)[:len(*ms)-1]
	return backMove
}

// At returns the move at index i without removing it.
func (ms *MoveSlice) At(i int) Move {
	return (*ms)[i]
}

// Set puts a move at index i of the slice.
func (ms *MoveSlice) Set(i int, m Move) {
	(*ms)[i] = m
}

// Contains checks if the slice holds the given move ignoring any
// sort value.
func (ms *MoveSlice) Contains(m Move) bool {
	for _, move := range *ms {
		if move.MoveOf() == m.MoveOf() {
			return true
		}
	}
	return false
}

// Sort sorts the moves in the slice by their encoded sort value in
// descending order (stable to keep generation order of equal moves).
func (ms *MoveSlice) Sort() {
	sort.SliceStable(*ms, func(i, j int) bool {
		return (*ms)[i].ValueOf() > (*ms)[j].ValueOf()
	})
}

// Clone returns a deep copy of the slice.
func (ms *MoveSlice) Clone() *MoveSlice {
	c := make(MoveSlice, len(*ms))
	copy(c, *ms)
	return &c
}

// StringUci returns a string with all moves of the slice in UCI
// notation separated by spaces.
func (ms *MoveSlice) StringUci() string {
	var os strings.Builder
	for i, m := range *ms {
		if i > 0 {
			os.WriteString(" ")
		}
		os.WriteString(m.StringUci())
	}
	return os.String()
}
