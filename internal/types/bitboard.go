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
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit bitmap with one bit per square of a chess board.
// Bit 0 = A1, bit 63 = H8.
type Bitboard uint64

// BbZero is an empty bitboard.
const BbZero Bitboard = 0

// File and rank masks.
const (
	FileABb Bitboard = 0x0101010101010101
	FileHBb Bitboard = FileABb << 7
	Rank1Bb Bitboard = 0xFF
	Rank8Bb Bitboard = Rank1Bb << 56
)

// Has checks if the bit for the square is set.
func (b Bitboard) Has(sq Square) bool {
	return b&sq.Bb() != 0
}

// PushSquare sets the bit of the given square.
func (b *Bitboard) PushSquare(sq Square) {
	*b |= sq.Bb()
}

// PopSquare clears the bit of the given square.
func (b *Bitboard) PopSquare(sq Square) {
	*b &^= sq.Bb()
}

// Lsb returns the least significant bit of the bitboard as a Square.
// Returns SqNone if the bitboard is empty.
func (b Bitboard) Lsb() Square {
	if b == 0 {
		return SqNone
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Msb returns the most significant bit of the bitboard as a Square.
// Returns SqNone if the bitboard is empty.
func (b Bitboard) Msb() Square {
	if b == 0 {
		return SqNone
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLsb returns the least significant bit as a Square and clears it
// in the bitboard. Typical usage to serialize a bitboard:
//  for b != BbZero { sq := b.PopLsb(); ... }
func (b *Bitboard) PopLsb() Square {
	sq := b.Lsb()
	*b &= *b - 1
	return sq
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// String returns an 8x8 board representation with rank 8 first.
func (b Bitboard) String() string {
	var os strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		for f := FileA; f <= FileH; f++ {
			if b.Has(SquareOf(f, r)) {
				os.WriteString("1 ")
			} else {
				os.WriteString(". ")
			}
		}
		os.WriteString("\n")
	}
	return os.String()
}

// ////////////////////////////////////////////////////////////////
// Pre-computed attacks
// ////////////////////////////////////////////////////////////////

// Direction indexes into the ray attack tables.
const (
	dirN  = 0
	dirNE = 1
	dirE  = 2
	dirSE = 3
	dirS  = 4
	dirSW = 5
	dirW  = 6
	dirNW = 7
)

var dirDeltas = [8][2]int{
	{0, 1},   // N
	{1, 1},   // NE
	{1, 0},   // E
	{1, -1},  // SE
	{0, -1},  // S
	{-1, -1}, // SW
	{-1, 0},  // W
	{-1, 1},  // NW
}

var (
	pawnAttacks   [ColorLength][SqLength]Bitboard
	knightAttacks [SqLength]Bitboard
	kingAttacks   [SqLength]Bitboard
	rays          [8][SqLength]Bitboard

	// squaresBetween holds all squares strictly between two squares
	// on a common line or diagonal, empty otherwise.
	squaresBetween [SqLength][SqLength]Bitboard
)

func init() {
	knightDeltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	for sq := SqA1; sq <= SqH8; sq++ {
		f := int(sq.FileOf())
		r := int(sq.RankOf())
		// pawns
		for _, df := range []int{-1, 1} {
			if f+df >= 0 && f+df <= 7 {
				if r+1 <= 7 {
					pawnAttacks[White][sq] |= SquareOf(File(f+df), Rank(r+1)).Bb()
				}
				if r-1 >= 0 {
					pawnAttacks[Black][sq] |= SquareOf(File(f+df), Rank(r-1)).Bb()
				}
			}
		}
		// knights
		for _, d := range knightDeltas {
			if f+d[0] >= 0 && f+d[0] <= 7 && r+d[1] >= 0 && r+d[1] <= 7 {
				knightAttacks[sq] |= SquareOf(File(f+d[0]), Rank(r+d[1])).Bb()
			}
		}
		// king steps and full rays
		for d := 0; d < 8; d++ {
			df, dr := dirDeltas[d][0], dirDeltas[d][1]
			if f+df >= 0 && f+df <= 7 && r+dr >= 0 && r+dr <= 7 {
				kingAttacks[sq] |= SquareOf(File(f+df), Rank(r+dr)).Bb()
			}
			nf, nr := f+df, r+dr
			between := BbZero
			for nf >= 0 && nf <= 7 && nr >= 0 && nr <= 7 {
				target := SquareOf(File(nf), Rank(nr))
				rays[d][sq] |= target.Bb()
				squaresBetween[sq][target] = between
				between |= target.Bb()
				nf += df
				nr += dr
			}
		}
	}
}

// rayAttacks returns the attacks in one direction from a square with
// the given occupancy using the classical first-blocker scan. For
// directions towards higher square numbers the first blocker is the
// least significant bit of the blocker set, otherwise the most
// significant bit.
func rayAttacks(dir int, sq Square, occupied Bitboard) Bitboard {
	attacks := rays[dir][sq]
	blockers := attacks & occupied
	if blockers != 0 {
		var first Square
		switch dir {
		case dirN, dirNE, dirE, dirNW:
			first = blockers.Lsb()
		default:
			first = blockers.Msb()
		}
		attacks ^= rays[dir][first]
	}
	return attacks
}

// GetAttacksBb returns a bitboard with all squares attacked by the
// given piece type from the given square. For sliding pieces the
// given occupancy determines the first blocker in each direction.
// Does not return pawn attacks - use GetPawnAttacks instead.
func GetAttacksBb(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Knight:
		return knightAttacks[sq]
	case King:
		return kingAttacks[sq]
	case Bishop:
		return rayAttacks(dirNE, sq, occupied) | rayAttacks(dirSE, sq, occupied) |
			rayAttacks(dirSW, sq, occupied) | rayAttacks(dirNW, sq, occupied)
	case Rook:
		return rayAttacks(dirN, sq, occupied) | rayAttacks(dirE, sq, occupied) |
			rayAttacks(dirS, sq, occupied) | rayAttacks(dirW, sq, occupied)
	case Queen:
		return GetAttacksBb(Bishop, sq, occupied) | GetAttacksBb(Rook, sq, occupied)
	}
	return BbZero
}

// GetPawnAttacks returns the capture targets of a pawn of the given
// color on the given square.
func GetPawnAttacks(c Color, sq Square) Bitboard {
	return pawnAttacks[c][sq]
}

// SquaresBetween returns all squares strictly between the two squares
// if they share a rank, file or diagonal, BbZero otherwise.
func SquaresBetween(a Square, b Square) Bitboard {
	return squaresBetween[a][b]
}
