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

package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/tkarger/AgateGo/internal/types"
)

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
	}
	for _, fen := range fens {
		p, err := NewPositionFen(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, p.StringFen())
	}
}

func TestFenErrors(t *testing.T) {
	invalid := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",   // missing rank
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQXBNR w - -", // invalid piece
		"8/8/8/8/8/8/8/8 w - - 0 1",                         // no kings
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x - -", // invalid side
	}
	for _, fen := range invalid {
		_, err := NewPositionFen(fen)
		assert.Error(t, err, fen)
	}
}

func TestStartPosition(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, White, p.NextPlayer())
	assert.Equal(t, SqE1, p.KingSquare(White))
	assert.Equal(t, SqE8, p.KingSquare(Black))
	assert.Equal(t, CastlingAny, p.CastlingRights())
	assert.Equal(t, p.Material(White), p.Material(Black))
	assert.Equal(t, GamePhaseMax, p.GamePhase())
	assert.Equal(t, 32, p.OccupiedAll().PopCount())
	assert.False(t, p.HasCheck())
}

func TestDoMoveBasics(t *testing.T) {
	p := NewPosition()
	before := *p

	next := p.DoMove(CreateMove(SqE2, SqE4, Normal, PtNone))

	// copy-make must leave the original untouched
	assert.Equal(t, before.StringFen(), p.StringFen())
	assert.Equal(t, before.ZobristKey(), p.ZobristKey())

	assert.Equal(t, Black, next.NextPlayer())
	assert.Equal(t, WhitePawn, next.GetPiece(SqE4))
	assert.Equal(t, PieceNone, next.GetPiece(SqE2))
	assert.Equal(t, SqE3, next.GetEnPassantSquare())
	assert.Equal(t, 0, next.HalfMoveClock())
	assert.NotEqual(t, p.ZobristKey(), next.ZobristKey())
}

func TestDoMoveCapture(t *testing.T) {
	p := NewPosition("4k3/8/8/3p4/4P3/8/8/4K3 w - - 3 10")
	m := CreateMove(SqE4, SqD5, Normal, PtNone)
	assert.True(t, p.IsCapturingMove(m))
	next := p.DoMove(m)
	assert.Equal(t, WhitePawn, next.GetPiece(SqD5))
	assert.Equal(t, 0, next.HalfMoveClock())
	assert.Equal(t, Value(100), next.Material(White))
	assert.Equal(t, Value(0), next.Material(Black))
}

func TestDoMoveEnPassant(t *testing.T) {
	// white pawn e5, black just played d7d5
	p := NewPosition("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	m := CreateMove(SqE5, SqD6, EnPassant, PtNone)
	assert.True(t, p.IsCapturingMove(m))
	next := p.DoMove(m)
	assert.Equal(t, WhitePawn, next.GetPiece(SqD6))
	assert.Equal(t, PieceNone, next.GetPiece(SqD5))
	assert.Equal(t, PieceNone, next.GetPiece(SqE5))
	assert.Equal(t, Value(0), next.Material(Black))
}

func TestDoMovePromotion(t *testing.T) {
	p := NewPosition("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	next := p.DoMove(CreateMove(SqA7, SqA8, Promotion, Queen))
	assert.Equal(t, WhiteQueen, next.GetPiece(SqA8))
	assert.Equal(t, PieceNone, next.GetPiece(SqA7))
	assert.Equal(t, Value(900), next.Material(White))
	assert.Equal(t, Value(900), next.MaterialNonPawn(White))
}

func TestDoMoveCastling(t *testing.T) {
	p := NewPosition("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	oo := p.DoMove(CreateMove(SqE1, SqG1, Castling, PtNone))
	assert.Equal(t, WhiteKing, oo.GetPiece(SqG1))
	assert.Equal(t, WhiteRook, oo.GetPiece(SqF1))
	assert.Equal(t, PieceNone, oo.GetPiece(SqH1))
	assert.False(t, oo.CastlingRights().Has(CastlingWhiteOO))
	assert.False(t, oo.CastlingRights().Has(CastlingWhiteOOO))
	assert.True(t, oo.CastlingRights().Has(CastlingBlackOO))

	ooo := p.DoMove(CreateMove(SqE1, SqC1, Castling, PtNone))
	assert.Equal(t, WhiteKing, ooo.GetPiece(SqC1))
	assert.Equal(t, WhiteRook, ooo.GetPiece(SqD1))
	assert.Equal(t, PieceNone, ooo.GetPiece(SqA1))
}

func TestCastlingRightsByRookMoves(t *testing.T) {
	p := NewPosition("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	// moving the h1 rook loses white king side castling only
	next := p.DoMove(CreateMove(SqH1, SqH8, Normal, PtNone))
	assert.False(t, next.CastlingRights().Has(CastlingWhiteOO))
	assert.True(t, next.CastlingRights().Has(CastlingWhiteOOO))
	// capturing on h8 removes black king side castling
	assert.False(t, next.CastlingRights().Has(CastlingBlackOO))
	assert.True(t, next.CastlingRights().Has(CastlingBlackOOO))
}

func TestDoNullMove(t *testing.T) {
	p := NewPosition()
	n := p.DoNullMove()
	assert.Equal(t, Black, n.NextPlayer())
	assert.NotEqual(t, p.ZobristKey(), n.ZobristKey())
	nn := n.DoNullMove()
	assert.Equal(t, p.ZobristKey(), nn.ZobristKey())
}

func TestZobristRepetition(t *testing.T) {
	// a move cycle must reproduce the identical hash
	p := NewPosition()
	h0 := p.ZobristKey()
	p1 := p.DoMove(CreateMove(SqG1, SqF3, Normal, PtNone))
	p2 := p1.DoMove(CreateMove(SqG8, SqF6, Normal, PtNone))
	p3 := p2.DoMove(CreateMove(SqF3, SqG1, Normal, PtNone))
	p4 := p3.DoMove(CreateMove(SqF6, SqG8, Normal, PtNone))
	assert.Equal(t, h0, p4.ZobristKey())
	assert.Equal(t, p.StringFen()[:len(p.StringFen())-4], p4.StringFen()[:len(p4.StringFen())-4])
}

func TestIsAttacked(t *testing.T) {
	p := NewPosition("4k3/8/8/8/8/8/4p3/R3K3 w Q - 0 1")
	assert.True(t, p.IsAttacked(SqD1, Black))  // pawn e2 attacks d1
	assert.True(t, p.IsAttacked(SqF1, Black))  // and f1
	assert.True(t, p.IsAttacked(SqA8, White))  // rook a1 up the file
	assert.False(t, p.IsAttacked(SqB2, Black)) // nothing attacks b2
}

func TestGivesCheckAndLegal(t *testing.T) {
	p := NewPosition("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	mate := CreateMove(SqA1, SqA8, Normal, PtNone)
	assert.True(t, p.GivesCheck(mate))
	assert.True(t, p.IsLegalMove(mate))
	quiet := CreateMove(SqA1, SqB1, Normal, PtNone)
	assert.False(t, p.GivesCheck(quiet))

	// pinned piece may not move away
	pinned := NewPosition("4r2k/8/8/8/8/8/4R3/4K3 w - - 0 1")
	assert.False(t, pinned.IsLegalMove(CreateMove(SqE2, SqA2, Normal, PtNone)))
	assert.True(t, pinned.IsLegalMove(CreateMove(SqE2, SqE4, Normal, PtNone)))
}

func TestHasCheck(t *testing.T) {
	p := NewPosition("4k3/8/8/8/8/8/8/4K2r w - - 0 1")
	assert.True(t, p.HasCheck())
	p = NewPosition("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.False(t, p.HasCheck())
}

func TestMaterialNonPawn(t *testing.T) {
	p := NewPosition("8/8/8/p7/P7/K7/8/k7 w - - 0 1")
	assert.Equal(t, Value(0), p.MaterialNonPawn(White))
	assert.Equal(t, Value(0), p.MaterialNonPawn(Black))
	assert.Equal(t, Value(100), p.Material(White))
	assert.Equal(t, 0, p.GamePhase())
}
