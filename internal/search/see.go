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

// see computes the Static Exchange Evaluation for a move: the material
// balance after the best serialized capture sequence on the target
// square. Positive values are winning or equal exchanges.
func see(p *position.Position, move Move) Value {
	// en passant moves are always winning captures and never lead
	// to cut offs when using see
	if move.MoveType() == EnPassant {
		return Pawn.ValueOf()
	}

	var gain [32]Value

	ply := 0
	toSquare := move.To()
	fromSquare := move.From()
	movedPiece := p.GetPiece(fromSquare)
	nextPlayer := p.NextPlayer()

	// occupancy is reduced piece by piece to reveal x-ray attacks
	occupied := p.OccupiedAll()
	remainingAttacks := attacksTo(p, toSquare, White, occupied) | attacksTo(p, toSquare, Black, occupied)

	gain[ply] = p.GetPiece(toSquare).ValueOf()

	for {
		ply++
		nextPlayer = nextPlayer.Flip()

		// speculative store, if defended
		if move.MoveType() == Promotion {
			gain[ply] = move.PromotionType().ValueOf() - Pawn.ValueOf() - gain[ply-1]
		} else {
			gain[ply] = movedPiece.ValueOf() - gain[ply-1]
		}

		// pruning if defended - will not change the final see score
		if maxValue(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		remainingAttacks.PopSquare(fromSquare)
		occupied.PopSquare(fromSquare)

		// reveal sliding attacks after removing the moving piece
		remainingAttacks |= revealedAttacks(p, toSquare, occupied, White) |
			revealedAttacks(p, toSquare, occupied, Black)

		fromSquare = leastValuableAttacker(p, remainingAttacks, nextPlayer)
		if fromSquare == SqNone {
			break
		}
		movedPiece = p.GetPiece(fromSquare)
	}

	for ply--; ply > 0; ply-- {
		gain[ply-1] = -maxValue(-gain[ply-1], gain[ply])
	}
	return gain[0]
}

// attacksTo determines all attackers of one color to a square for the
// given occupancy. En passant is not included - the move preceding an
// en passant capture is never a capture itself so this is irrelevant
// for see.
func attacksTo(p *position.Position, square Square, color Color, occupied Bitboard) Bitboard {
	return (GetPawnAttacks(color.Flip(), square) & p.PiecesBb(color, Pawn)) |
		(GetAttacksBb(Knight, square, occupied) & p.PiecesBb(color, Knight)) |
		(GetAttacksBb(King, square, occupied) & p.PiecesBb(color, King)) |
		(GetAttacksBb(Rook, square, occupied) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen))) |
		(GetAttacksBb(Bishop, square, occupied) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)))
}

// revealedAttacks returns sliding attacks to the square which are only
// visible with the reduced occupancy. Only sliders can be revealed.
func revealedAttacks(p *position.Position, square Square, occupied Bitboard, color Color) Bitboard {
	return (GetAttacksBb(Rook, square, occupied) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen)) & occupied) |
		(GetAttacksBb(Bishop, square, occupied) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)) & occupied)
}

// leastValuableAttacker returns the square of the least valuable
// attacker of the given color within the attacker set.
func leastValuableAttacker(p *position.Position, attackers Bitboard, color Color) Square {
	for pt := Pawn; pt <= King; pt++ {
		if set := attackers & p.PiecesBb(color, pt); set != 0 {
			return set.Lsb()
		}
	}
	return SqNone
}

func maxValue(a, b Value) Value {
	if a > b {
		return a
	}
	return b
}
