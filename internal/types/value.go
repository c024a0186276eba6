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

package types

import (
	"strconv"
	"strings"
)

// Value represents the positional value of a chess position in
// centipawns. All values are relative to the side to move (negamax).
type Value int16

// Constants for values.
const (
	ValueZero Value = 0
	ValueDraw Value = 0
	ValueOne  Value = 1

	// ValueMate is the value of a position with the king checkmated.
	// Mate in n plies from the root is ValueMate - n.
	ValueMate Value = 30000

	// ValueInfinite is used as initial bound of the search window.
	ValueInfinite Value = ValueMate + 500

	// ValueNA marks a not yet computed or unusable value. It is below
	// every value the search can legally return, including being mated
	// at the root.
	ValueNA Value = -ValueInfinite - 1

	// ValueMateThreshold separates mate values from normal evaluations.
	ValueMateThreshold Value = ValueMate - MaxDepth

	// ValueMatedInMax is the worst value a search line can have without
	// being a mate score. A best value above this proves we found some
	// line which is not an immediate loss.
	ValueMatedInMax Value = -ValueMateThreshold

	// ValueMin and ValueMax are the limits for valid values.
	ValueMin Value = -ValueMate
	ValueMax Value = ValueMate
)

// IsValid checks if value is within the valid range (between ValueMin
// and ValueMax).
func (v Value) IsValid() bool {
	return v >= ValueMin && v <= ValueMax
}

// IsCheckMateValue returns true if the value is above the mate
// threshold, i.e. encodes a forced mate distance.
func (v Value) IsCheckMateValue() bool {
	a := v
	if a < 0 {
		a = -a
	}
	return a >= ValueMateThreshold && a <= ValueMate
}

// MateIn returns the number of full moves until mate for a mate value.
// Negative numbers mean the side to move is getting mated.
func (v Value) MateIn() int {
	a := v
	if a < 0 {
		a = -a
	}
	plies := int(ValueMate - a)
	moves := (plies + 1) / 2
	if v < 0 {
		return -moves
	}
	return moves
}

// String returns a UCI compatible string representation of the value,
// either "cp <n>" or "mate <n>".
func (v Value) String() string {
	var os strings.Builder
	switch {
	case v == ValueNA:
		os.WriteString("N/A")
	case v.IsCheckMateValue():
		os.WriteString("mate ")
		os.WriteString(strconv.Itoa(v.MateIn()))
	default:
		os.WriteString("cp ")
		os.WriteString(strconv.Itoa(int(v)))
	}
	return os.String()
}

// ValueType is used for transposition table entries to mark the type
// of the stored value in relation to the search window.
type ValueType int8

// ValueType constants.
const (
	Vnone ValueType = 0
	// EXACT - the value was inside the search window.
	EXACT ValueType = 1
	// ALPHA - the value is an upper bound (failed low).
	ALPHA ValueType = 2
	// BETA - the value is a lower bound (failed high, cut off).
	BETA ValueType = 3
)

// String returns a string representation of the value type.
func (vt ValueType) String() string {
	switch vt {
	case EXACT:
		return "EXACT"
	case ALPHA:
		return "ALPHA"
	case BETA:
		return "BETA"
	}
	return "NONE"
}
