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

package movegen

import (
	"github.com/tkarger/AgateGo/internal/position"
)

// Perft counts the leaf nodes of the move generation tree to the
// given depth. The numbers for standard test positions are well known
// and verify the correctness of move generation, legality checking
// and the make move logic.
func Perft(p *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	mg := NewMoveGen()
	return perft(mg, p, depth)
}

func perft(mg *Movegen, p *position.Position, depth int) uint64 {
	var nodes uint64
	moves := mg.GeneratePseudoLegalMoves(p, GenAll).Clone()
	for _, m := range *moves {
		if !p.IsLegalMove(m) {
			continue
		}
		if depth == 1 {
			nodes++
			continue
		}
		next := p.DoMove(m)
		nodes += perft(mg, &next, depth-1)
	}
	return nodes
}
