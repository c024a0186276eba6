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

// Package movegen contains functionality to create moves on a chess
// position. It generates pseudo legal moves per piece class and can
// filter them down to legal moves. Staged iteration for the search is
// implemented by the search's move orderer on top of this package.
package movegen

import (
	"github.com/tkarger/AgateGo/internal/moveslice"
	"github.com/tkarger/AgateGo/internal/position"
	. "github.com/tkarger/AgateGo/internal/types"
)

// GenMode generation modes for move generation.
type GenMode int

// GenMode constants. GenCap includes all promotions as they are
// tactical moves searched by the quiescence search.
const (
	GenZero   GenMode = 0b00
	GenCap    GenMode = 0b01
	GenNonCap GenMode = 0b10
	GenAll    GenMode = 0b11
)

// Movegen data structure. Create a new move generator via NewMoveGen().
// A Movegen instance reuses its internal move buffers, the returned
// slices are only valid until the next generation call.
type Movegen struct {
	pseudoLegalMoves *moveslice.MoveSlice
	legalMoves       *moveslice.MoveSlice
}

// NewMoveGen creates a new instance of a move generator.
func NewMoveGen() *Movegen {
	return &Movegen{
		pseudoLegalMoves: moveslice.NewMoveSlice(MaxMoves),
		legalMoves:       moveslice.NewMoveSlice(MaxMoves),
	}
}

// GeneratePseudoLegalMoves generates pseudo legal moves for the next
// player. Does not check if the king is left in check or if castling
// passes an attacked square - use IsLegalMove or GenerateLegalMoves.
func (mg *Movegen) GeneratePseudoLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.pseudoLegalMoves.Clear()
	if mode&GenCap != 0 {
		mg.generatePawnMoves(p, GenCap, mg.pseudoLegalMoves)
		mg.generatePieceMoves(p, GenCap, mg.pseudoLegalMoves)
		mg.generateKingMoves(p, GenCap, mg.pseudoLegalMoves)
	}
	if mode&GenNonCap != 0 {
		mg.generatePawnMoves(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generatePieceMoves(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateKingMoves(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateCastling(p, mg.pseudoLegalMoves)
	}
	return mg.pseudoLegalMoves
}

// GenerateLegalMoves generates all legal moves for the next player.
func (mg *Movegen) GenerateLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.legalMoves.Clear()
	mg.GeneratePseudoLegalMoves(p, mode)
	for _, m := range *mg.pseudoLegalMoves {
		if p.IsLegalMove(m) {
			mg.legalMoves.PushBack(m)
		}
	}
	return mg.legalMoves
}

// HasLegalMove determines if the position has at least one legal move.
// It generates all pseudo legal moves and stops the legality checks at
// the first legal one.
func (mg *Movegen) HasLegalMove(p *position.Position) bool {
	mg.GeneratePseudoLegalMoves(p, GenAll)
	for _, m := range *mg.pseudoLegalMoves {
		if p.IsLegalMove(m) {
			return true
		}
	}
	return false
}

func (mg *Movegen) generatePawnMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	them := us.Flip()
	pawns := p.PiecesBb(us, Pawn)
	occupied := p.OccupiedAll()
	opponents := p.OccupiedBb(them)
	dir := Square(us.MoveDirection())

	if mode&GenCap != 0 {
		// captures including capture promotions
		for tmp := pawns; tmp != BbZero; {
			from := tmp.PopLsb()
			targets := GetPawnAttacks(us, from) & opponents
			for targets != BbZero {
				to := targets.PopLsb()
				if to.RankOf() == us.PromotionRank() {
					pushPromotions(ml, from, to)
				} else {
					ml.PushBack(CreateMove(from, to, Normal, PtNone))
				}
			}
			// en passant
			if ep := p.GetEnPassantSquare(); ep != SqNone && GetPawnAttacks(us, from).Has(ep) {
				ml.PushBack(CreateMove(from, ep, EnPassant, PtNone))
			}
			// quiet push promotions are tactical moves as well
			to := from + dir
			if to.RankOf() == us.PromotionRank() && !occupied.Has(to) {
				pushPromotions(ml, from, to)
			}
		}
	}
	if mode&GenNonCap != 0 {
		for tmp := pawns; tmp != BbZero; {
			from := tmp.PopLsb()
			to := from + dir
			if occupied.Has(to) || to.RankOf() == us.PromotionRank() {
				continue
			}
			ml.PushBack(CreateMove(from, to, Normal, PtNone))
			if from.RankOf() == us.PawnDoubleRank() && !occupied.Has(to+dir) {
				ml.PushBack(CreateMove(from, to+dir, Normal, PtNone))
			}
		}
	}
}

func (mg *Movegen) generatePieceMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	occupied := p.OccupiedAll()
	var targets Bitboard
	if mode&GenCap != 0 {
		targets = p.OccupiedBb(us.Flip())
	} else {
		targets = ^occupied
	}
	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(us, pt)
		for pieces != BbZero {
			from := pieces.PopLsb()
			moves := GetAttacksBb(pt, from, occupied) & targets
			for moves != BbZero {
				ml.PushBack(CreateMove(from, moves.PopLsb(), Normal, PtNone))
			}
		}
	}
}

func (mg *Movegen) generateKingMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	from := p.KingSquare(us)
	var targets Bitboard
	if mode&GenCap != 0 {
		targets = p.OccupiedBb(us.Flip())
	} else {
		targets = ^p.OccupiedAll()
	}
	moves := GetAttacksBb(King, from, p.OccupiedAll()) & targets
	for moves != BbZero {
		ml.PushBack(CreateMove(from, moves.PopLsb(), Normal, PtNone))
	}
}

// generateCastling generates castling moves when the castling rights
// are intact, the squares between king and rook are empty and the king
// does not move out of or through an attacked square.
func (mg *Movegen) generateCastling(p *position.Position, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	them := us.Flip()
	occupied := p.OccupiedAll()

	type castle struct {
		right      CastlingRights
		kingFrom   Square
		kingTo     Square
		rookFrom   Square
		mustBeSafe [2]Square
	}
	var castles [2]castle
	if us == White {
		castles = [2]castle{
			{CastlingWhiteOO, SqE1, SqG1, SqH1, [2]Square{SqF1, SqG1}},
			{CastlingWhiteOOO, SqE1, SqC1, SqA1, [2]Square{SqD1, SqC1}},
		}
	} else {
		castles = [2]castle{
			{CastlingBlackOO, SqE8, SqG8, SqH8, [2]Square{SqF8, SqG8}},
			{CastlingBlackOOO, SqE8, SqC8, SqA8, [2]Square{SqD8, SqC8}},
		}
	}

	for _, c := range castles {
		if !p.CastlingRights().Has(c.right) {
			continue
		}
		if SquaresBetween(c.kingFrom, c.rookFrom)&occupied != 0 {
			continue
		}
		if p.IsAttacked(c.kingFrom, them) ||
			p.IsAttacked(c.mustBeSafe[0], them) ||
			p.IsAttacked(c.mustBeSafe[1], them) {
			continue
		}
		ml.PushBack(CreateMove(c.kingFrom, c.kingTo, Castling, PtNone))
	}
}

func pushPromotions(ml *moveslice.MoveSlice, from Square, to Square) {
	ml.PushBack(CreateMove(from, to, Promotion, Queen))
	ml.PushBack(CreateMove(from, to, Promotion, Rook))
	ml.PushBack(CreateMove(from, to, Promotion, Bishop))
	ml.PushBack(CreateMove(from, to, Promotion, Knight))
}
