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

// Package position represents a chess position with all necessary
// state and functionality to make moves. Positions use copy-make
// semantics: DoMove returns a new Position value and leaves the
// receiver untouched, so every node of a recursive search owns an
// independent position without an undo stack.
package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	. "github.com/tkarger/AgateGo/internal/types"
)

// StartFen is the FEN string of the chess start position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// game phase contribution per piece type (none, pawn, knight, bishop,
// rook, queen, king). Sums to GamePhaseMax with the full piece set.
var phaseValues = [PtLength]int{0, 0, 1, 1, 2, 4, 0}

// GamePhaseMax is the game phase of the start position.
const GamePhaseMax = 24

// castlingRightsMask holds per square the castling rights which are
// preserved when the square is the origin or target of a move.
var castlingRightsMask [SqLength]CastlingRights

func init() {
	for sq := SqA1; sq <= SqH8; sq++ {
		castlingRightsMask[sq] = CastlingAny
	}
	castlingRightsMask[SqE1] &^= CastlingWhiteOO | CastlingWhiteOOO
	castlingRightsMask[SqH1] &^= CastlingWhiteOO
	castlingRightsMask[SqA1] &^= CastlingWhiteOOO
	castlingRightsMask[SqE8] &^= CastlingBlackOO | CastlingBlackOOO
	castlingRightsMask[SqH8] &^= CastlingBlackOO
	castlingRightsMask[SqA8] &^= CastlingBlackOOO
}

// Position represents a chess position with all necessary information
// to generate moves, evaluate and hash it. Position is a plain value
// type - copying it copies the complete state.
type Position struct {
	piecesBb   [ColorLength][PtLength]Bitboard
	occupiedBb [ColorLength]Bitboard
	board      [SqLength]Piece
	kingSquare [ColorLength]Square

	nextPlayer    Color
	castling      CastlingRights
	epSquare      Square
	halfMoveClock int
	moveNumber    int
	zobristKey    Key

	material        [ColorLength]Value
	materialNonPawn [ColorLength]Value
	gamePhase       int
}

// NewPosition creates a new position with the given FEN or the start
// position when no FEN is given. Panics on invalid FEN - use
// NewPositionFen to handle errors.
func NewPosition(fen ...string) *Position {
	f := StartFen
	if len(fen) > 0 {
		f = fen[0]
	}
	p, err := NewPositionFen(f)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPositionFen creates a new position from the given FEN string.
func NewPositionFen(fen string) (*Position, error) {
	p := &Position{}
	if err := p.setupBoard(fen); err != nil {
		return nil, err
	}
	return p, nil
}

// ////////////////////////////////////////////////////////////////
// Moves
// ////////////////////////////////////////////////////////////////

// DoMove executes the given move on a copy of the position and returns
// the copy. The move must be at least pseudo legal for the position.
func (p Position) DoMove(m Move) Position {
	from := m.From()
	to := m.To()
	us := p.nextPlayer
	them := us.Flip()

	p.clearEnPassant()
	p.halfMoveClock++

	switch m.MoveType() {
	case Normal:
		if p.board[to] != PieceNone {
			p.removePiece(to)
			p.halfMoveClock = 0
		}
		p.movePiece(from, to)
		if p.board[to].TypeOf() == Pawn {
			p.halfMoveClock = 0
			// double push opens an en passant option
			if to-from == 16 || from-to == 16 {
				p.epSquare = from + Square(us.MoveDirection())
				p.zobristKey ^= zobristEpFile[p.epSquare.FileOf()]
			}
		}
	case Promotion:
		if p.board[to] != PieceNone {
			p.removePiece(to)
		}
		p.removePiece(from)
		p.putPiece(MakePiece(us, m.PromotionType()), to)
		p.halfMoveClock = 0
	case EnPassant:
		p.removePiece(to - Square(us.MoveDirection()))
		p.movePiece(from, to)
		p.halfMoveClock = 0
	case Castling:
		p.movePiece(from, to) // king
		switch to {
		case SqG1:
			p.movePiece(SqH1, SqF1)
		case SqC1:
			p.movePiece(SqA1, SqD1)
		case SqG8:
			p.movePiece(SqH8, SqF8)
		case SqC8:
			p.movePiece(SqA8, SqD8)
		}
	}

	// castling rights can only be lost, never regained
	newCastling := p.castling & castlingRightsMask[from] & castlingRightsMask[to]
	if newCastling != p.castling {
		p.zobristKey ^= zobristCastling[p.castling]
		p.zobristKey ^= zobristCastling[newCastling]
		p.castling = newCastling
	}

	if us == Black {
		p.moveNumber++
	}
	p.nextPlayer = them
	p.zobristKey ^= zobristNextPlayer

	return p
}

// DoNullMove passes the move to the opponent on a copy of the position
// and returns the copy. Used for null move pruning.
func (p Position) DoNullMove() Position {
	p.clearEnPassant()
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristNextPlayer
	return p
}

// IsLegalMove checks if the pseudo legal move leaves the own king in
// check after it is made.
func (p *Position) IsLegalMove(m Move) bool {
	us := p.nextPlayer
	next := p.DoMove(m)
	return !next.IsAttacked(next.kingSquare[us], us.Flip())
}

// GivesCheck determines if the pseudo legal move would give check to
// the opponent king.
func (p *Position) GivesCheck(m Move) bool {
	next := p.DoMove(m)
	return next.HasCheck()
}

// IsCapturingMove determines if the given move captures a piece. This
// includes en passant captures.
func (p *Position) IsCapturingMove(m Move) bool {
	return p.board[m.To()] != PieceNone || m.MoveType() == EnPassant
}

// IsAttacked checks if the given square is attacked by any piece of
// the given color.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	occ := p.OccupiedAll()
	if GetPawnAttacks(by.Flip(), sq)&p.piecesBb[by][Pawn] != 0 {
		return true
	}
	if GetAttacksBb(Knight, sq, occ)&p.piecesBb[by][Knight] != 0 {
		return true
	}
	if GetAttacksBb(King, sq, occ)&p.piecesBb[by][King] != 0 {
		return true
	}
	if GetAttacksBb(Bishop, sq, occ)&(p.piecesBb[by][Bishop]|p.piecesBb[by][Queen]) != 0 {
		return true
	}
	if GetAttacksBb(Rook, sq, occ)&(p.piecesBb[by][Rook]|p.piecesBb[by][Queen]) != 0 {
		return true
	}
	return false
}

// HasCheck returns true if the next player's king is attacked.
func (p *Position) HasCheck() bool {
	return p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip())
}

// ////////////////////////////////////////////////////////////////
// Board mutation primitives
// ////////////////////////////////////////////////////////////////

func (p *Position) putPiece(piece Piece, sq Square) {
	c := piece.ColorOf()
	pt := piece.TypeOf()
	p.board[sq] = piece
	p.piecesBb[c][pt].PushSquare(sq)
	p.occupiedBb[c].PushSquare(sq)
	p.material[c] += pt.ValueOf()
	if pt > Pawn && pt < King {
		p.materialNonPawn[c] += pt.ValueOf()
	}
	p.gamePhase += phaseValues[pt]
	if pt == King {
		p.kingSquare[c] = sq
	}
	p.zobristKey ^= zobristPieces[c][pt][sq]
}

func (p *Position) removePiece(sq Square) Piece {
	piece := p.board[sq]
	c := piece.ColorOf()
	pt := piece.TypeOf()
	p.board[sq] = PieceNone
	p.piecesBb[c][pt].PopSquare(sq)
	p.occupiedBb[c].PopSquare(sq)
	p.material[c] -= pt.ValueOf()
	if pt > Pawn && pt < King {
		p.materialNonPawn[c] -= pt.ValueOf()
	}
	p.gamePhase -= phaseValues[pt]
	p.zobristKey ^= zobristPieces[c][pt][sq]
	return piece
}

func (p *Position) movePiece(from Square, to Square) {
	p.putPiece(p.removePiece(from), to)
}

func (p *Position) clearEnPassant() {
	if p.epSquare != SqNone {
		p.zobristKey ^= zobristEpFile[p.epSquare.FileOf()]
		p.epSquare = SqNone
	}
}

// ////////////////////////////////////////////////////////////////
// FEN
// ////////////////////////////////////////////////////////////////

func (p *Position) setupBoard(fen string) error {
	for sq := SqA1; sq <= SqH8; sq++ {
		p.board[sq] = PieceNone
	}
	p.epSquare = SqNone
	p.kingSquare[White] = SqNone
	p.kingSquare[Black] = SqNone

	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return errors.New("fen: too few fields")
	}

	// piece placement
	f := FileA
	r := Rank8
	for i := 0; i < len(fields[0]); i++ {
		c := fields[0][i]
		switch {
		case c == '/':
			if f != File(8) {
				return errors.New("fen: incomplete rank")
			}
			f = FileA
			r--
			if r < Rank1 {
				return errors.New("fen: too many ranks")
			}
		case c >= '1' && c <= '8':
			f += File(c - '0')
		default:
			piece := PieceFromChar(c)
			if piece == PieceNone || f > FileH {
				return fmt.Errorf("fen: invalid piece placement %q", string(c))
			}
			p.putPiece(piece, SquareOf(f, r))
			f++
		}
	}
	if p.kingSquare[White] == SqNone || p.kingSquare[Black] == SqNone {
		return errors.New("fen: missing king")
	}

	// next player
	switch fields[1] {
	case "w":
		p.nextPlayer = White
	case "b":
		p.nextPlayer = Black
		p.zobristKey ^= zobristNextPlayer
	default:
		return fmt.Errorf("fen: invalid next player %q", fields[1])
	}

	// castling rights
	if len(fields) > 2 && fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.castling.Add(CastlingWhiteOO)
			case 'Q':
				p.castling.Add(CastlingWhiteOOO)
			case 'k':
				p.castling.Add(CastlingBlackOO)
			case 'q':
				p.castling.Add(CastlingBlackOOO)
			default:
				return fmt.Errorf("fen: invalid castling rights %q", fields[2])
			}
		}
	}
	p.zobristKey ^= zobristCastling[p.castling]

	// en passant square
	if len(fields) > 3 && fields[3] != "-" {
		sq := SquareFromString(fields[3])
		if sq == SqNone {
			return fmt.Errorf("fen: invalid en passant square %q", fields[3])
		}
		p.epSquare = sq
		p.zobristKey ^= zobristEpFile[sq.FileOf()]
	}

	// half move clock and move number
	p.moveNumber = 1
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return fmt.Errorf("fen: invalid half move clock %q", fields[4])
		}
		p.halfMoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return fmt.Errorf("fen: invalid move number %q", fields[5])
		}
		p.moveNumber = n
	}
	return nil
}

// StringFen returns the FEN string of the position.
func (p *Position) StringFen() string {
	var os strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		empty := 0
		for f := FileA; f <= FileH; f++ {
			piece := p.board[SquareOf(f, r)]
			if piece == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				os.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			os.WriteString(piece.Char())
		}
		if empty > 0 {
			os.WriteString(strconv.Itoa(empty))
		}
		if r > Rank1 {
			os.WriteString("/")
		}
	}
	os.WriteString(" ")
	os.WriteString(p.nextPlayer.String())
	os.WriteString(" ")
	os.WriteString(p.castling.String())
	os.WriteString(" ")
	os.WriteString(p.epSquare.String())
	os.WriteString(" ")
	os.WriteString(strconv.Itoa(p.halfMoveClock))
	os.WriteString(" ")
	os.WriteString(strconv.Itoa(p.moveNumber))
	return os.String()
}

// String returns a board representation plus the FEN of the position.
func (p *Position) String() string {
	var os strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		for f := FileA; f <= FileH; f++ {
			os.WriteString(p.board[SquareOf(f, r)].Char())
			os.WriteString(" ")
		}
		os.WriteString("\n")
	}
	os.WriteString(p.StringFen())
	return os.String()
}

// ////////////////////////////////////////////////////////////////
// Getters
// ////////////////////////////////////////////////////////////////

// ZobristKey returns the hash key of the position.
func (p *Position) ZobristKey() Key {
	return p.zobristKey
}

// NextPlayer returns the color of the next player.
func (p *Position) NextPlayer() Color {
	return p.nextPlayer
}

// GetPiece returns the piece on the given square.
func (p *Position) GetPiece(sq Square) Piece {
	return p.board[sq]
}

// PiecesBb returns the bitboard of all pieces of the given color and
// piece type.
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.piecesBb[c][pt]
}

// OccupiedAll returns the bitboard of all occupied squares.
func (p *Position) OccupiedAll() Bitboard {
	return p.occupiedBb[White] | p.occupiedBb[Black]
}

// OccupiedBb returns the bitboard of all squares occupied by the
// given color.
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.occupiedBb[c]
}

// KingSquare returns the square of the king of the given color.
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// GetEnPassantSquare returns the en passant square or SqNone.
func (p *Position) GetEnPassantSquare() Square {
	return p.epSquare
}

// CastlingRights returns the castling rights of the position.
func (p *Position) CastlingRights() CastlingRights {
	return p.castling
}

// HalfMoveClock returns the number of half moves since the last pawn
// move or capture.
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// MoveNumber returns the full move number of the position.
func (p *Position) MoveNumber() int {
	return p.moveNumber
}

// Material returns the material value of the given color.
func (p *Position) Material(c Color) Value {
	return p.material[c]
}

// MaterialNonPawn returns the material value of the given color
// without pawns and king. A side without non pawn material is prone
// to zugzwang which disables null move pruning.
func (p *Position) MaterialNonPawn(c Color) Value {
	return p.materialNonPawn[c]
}

// GamePhase returns the current game phase between 0 (endgame, only
// kings and pawns) and GamePhaseMax (all pieces on the board).
func (p *Position) GamePhase() int {
	if p.gamePhase > GamePhaseMax {
		return GamePhaseMax
	}
	return p.gamePhase
}

// GamePhaseFactor returns the game phase as a factor between 0.0 and 1.0.
func (p *Position) GamePhaseFactor() float64 {
	return float64(p.GamePhase()) / GamePhaseMax
}
