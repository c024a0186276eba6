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

package transpositiontable

import (
	. "github.com/tkarger/AgateGo/internal/types"
)

// TtEntry is the data structure for each entry in the transposition
// table. Each entry is two 64-bit words which are written with two
// independent atomic stores. The key word is stored XOR-ed with the
// data word: a reader who sees a torn pair (key from one write, data
// from another) computes a mismatching zobrist key and discards the
// entry. No locking is needed for correctness since the table is only
// a hint to the search.
//
//  data bit layout
//  0-15  move (16 bit without sort value)
//  16-31 value (int16)
//  32-47 static eval (int16)
//  48-54 depth (0-127)
//  55-56 value type
//  57-63 age (root ply counter modulo 128)
type TtEntry struct {
	key  uint64 // zobrist key XOR data
	data uint64
}

// TtEntrySize is the size in bytes for each TtEntry.
const TtEntrySize = 16

const (
	valueOffset = 16
	evalOffset  = 32
	depthOffset = 48
	vtypeOffset = 55
	ageOffset   = 57

	depthEntryMask = 0x7F
	vtypeEntryMask = 0x3
	ageEntryMask   = 0x7F
)

func encodeEntryData(move Move, value Value, eval Value, depth int8, vt ValueType, age uint8) uint64 {
	return uint64(uint16(move.MoveOf())) |
		uint64(uint16(value))<<valueOffset |
		uint64(uint16(eval))<<evalOffset |
		uint64(uint8(depth)&depthEntryMask)<<depthOffset |
		uint64(uint8(vt)&vtypeEntryMask)<<vtypeOffset |
		uint64(age&ageEntryMask)<<ageOffset
}

func decodeMove(data uint64) Move {
	return Move(uint16(data))
}

func decodeValue(data uint64) Value {
	return Value(int16(uint16(data >> valueOffset)))
}

func decodeEval(data uint64) Value {
	return Value(int16(uint16(data >> evalOffset)))
}

func decodeDepth(data uint64) int8 {
	return int8((data >> depthOffset) & depthEntryMask)
}

func decodeVtype(data uint64) ValueType {
	return ValueType((data >> vtypeOffset) & vtypeEntryMask)
}

func decodeAge(data uint64) uint8 {
	return uint8((data >> ageOffset) & ageEntryMask)
}
