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

// PieceType is a set of constants for piece types in chess.
type PieceType int8

// PieceType constants.
const (
	PtNone   PieceType = 0
	Pawn     PieceType = 1
	Knight   PieceType = 2
	Bishop   PieceType = 3
	Rook     PieceType = 4
	Queen    PieceType = 5
	King     PieceType = 6
	PtLength int       = 7
)

var pieceTypeValues = [PtLength]Value{0, 100, 320, 330, 500, 900, 2000}

// ValueOf returns the material value of the piece type in centipawns.
func (pt PieceType) ValueOf() Value {
	return pieceTypeValues[pt]
}

// IsValid checks if pt is a valid piece type.
func (pt PieceType) IsValid() bool {
	return pt >= Pawn && pt <= King
}

var pieceTypeChars = " PNBRQK"

// Char returns a single char string for the piece type, e.g. "N".
func (pt PieceType) Char() string {
	return string(pieceTypeChars[pt])
}

// PieceTypeFromChar returns the PieceType for an upper or lower case
// piece letter or PtNone if the letter is no piece.
func PieceTypeFromChar(c byte) PieceType {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return PtNone
}

// Piece is a set of constants for pieces in chess. A piece encodes
// color and piece type in one small integer (color bit 3, type bits 0-2).
type Piece int8

// Piece constants.
//noinspection GoUnusedConst
const (
	PieceNone   Piece = 0
	WhitePawn   Piece = Piece(Pawn)
	WhiteKnight Piece = Piece(Knight)
	WhiteBishop Piece = Piece(Bishop)
	WhiteRook   Piece = Piece(Rook)
	WhiteQueen  Piece = Piece(Queen)
	WhiteKing   Piece = Piece(King)
	BlackPawn   Piece = Piece(Pawn) | 8
	BlackKnight Piece = Piece(Knight) | 8
	BlackBishop Piece = Piece(Bishop) | 8
	BlackRook   Piece = Piece(Rook) | 8
	BlackQueen  Piece = Piece(Queen) | 8
	BlackKing   Piece = Piece(King) | 8
)

// MakePiece creates a Piece from color and piece type.
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(int8(c)<<3 | int8(pt))
}

// ColorOf returns the color of the piece.
func (p Piece) ColorOf() Color {
	return Color(p >> 3)
}

// TypeOf returns the piece type of the piece.
func (p Piece) TypeOf() PieceType {
	return PieceType(p & 7)
}

// ValueOf returns the material value of the piece in centipawns.
func (p Piece) ValueOf() Value {
	return p.TypeOf().ValueOf()
}

// Char returns the FEN char of the piece, e.g. "N" or "n".
func (p Piece) Char() string {
	if p == PieceNone {
		return "-"
	}
	c := pieceTypeChars[p.TypeOf()]
	if p.ColorOf() == Black {
		c += 'a' - 'A'
	}
	return string(c)
}

// PieceFromChar returns the Piece for a FEN piece letter or
// PieceNone if the letter is no piece.
func PieceFromChar(c byte) Piece {
	pt := PieceTypeFromChar(c)
	if pt == PtNone {
		return PieceNone
	}
	if c >= 'a' {
		return MakePiece(Black, pt)
	}
	return MakePiece(White, pt)
}
