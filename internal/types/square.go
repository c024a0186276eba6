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

// Square represents exactly 64 squares on a chess board plus
// SqNone as a non-square marker.
type Square int8

// Constants for all squares A1=0 ... H8=63.
//noinspection GoUnusedConst
const (
	SqA1 Square = iota
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA8
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8
	SqNone
)

// SqLength is the number of squares on a chess board.
const SqLength int = 64

// File represents a file on a chess board from FileA to FileH.
type File int8

// File constants.
const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// Rank represents a rank on a chess board from Rank1 to Rank8.
type Rank int8

// Rank constants.
const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

// SquareOf returns a square from the given file and rank.
func SquareOf(f File, r Rank) Square {
	return Square(int8(r)<<3 + int8(f))
}

// FileOf returns the file of the square.
func (sq Square) FileOf() File {
	return File(sq & 7)
}

// RankOf returns the rank of the square.
func (sq Square) RankOf() Rank {
	return Rank(sq >> 3)
}

// IsValid checks if this is a valid square on a board.
func (sq Square) IsValid() bool {
	return sq >= SqA1 && sq <= SqH8
}

// Bb returns a bitboard with only the bit of this square set.
func (sq Square) Bb() Bitboard {
	return Bitboard(1) << uint(sq)
}

// String returns the standard square notation, e.g. "e4".
// SqNone returns "-".
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string(rune('a'+int(sq.FileOf()))) + string(rune('1'+int(sq.RankOf())))
}

// SquareFromString returns the Square for a standard notation string
// like "e4" or SqNone if the string is not a valid square.
func SquareFromString(s string) Square {
	if len(s) != 2 {
		return SqNone
	}
	f := int8(s[0] - 'a')
	r := int8(s[1] - '1')
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return SqNone
	}
	return SquareOf(File(f), Rank(r))
}
